package wire

import "encoding/binary"

// Link frame layout: dst hardware address (6), src hardware address (6),
// ethertype (2, big-endian), then payload. No trailing checksum.
const LinkHeaderLen = 14

// BuildFrame concatenates the fixed link header and payload. An empty
// payload is valid; no length ceiling applies at this layer.
func BuildFrame(payload []byte, src, dst HardwareAddr, etherType uint16) []byte {
	buf := make([]byte, LinkHeaderLen+len(payload))
	copy(buf[0:6], dst[:])
	copy(buf[6:12], src[:])
	binary.BigEndian.PutUint16(buf[12:14], etherType)
	copy(buf[LinkHeaderLen:], payload)
	return buf
}

// ParseFrame strips the fixed link header and returns the payload.
func ParseFrame(b []byte) ([]byte, error) {
	if len(b) < LinkHeaderLen {
		return nil, ErrMalformedHeader
	}
	return b[LinkHeaderLen:], nil
}

// FrameAddrs reports the source and destination addresses of a frame
// without copying the payload.
func FrameAddrs(b []byte) (src, dst HardwareAddr, err error) {
	if len(b) < LinkHeaderLen {
		return HardwareAddr{}, HardwareAddr{}, ErrMalformedHeader
	}
	copy(dst[:], b[0:6])
	copy(src[:], b[6:12])
	return src, dst, nil
}

package wire

import "encoding/binary"

// Transport segment layout mirrors a minimal TCP header: ports, sequence
// and acknowledgment numbers, data offset, flags, window, checksum
// (always zero here), urgent pointer. The built header is always 20
// bytes; parse honors whatever the data-offset field declares.
const (
	SegmentHeaderLen = 20

	FlagFIN = 0x01
	FlagSYN = 0x02
	FlagRST = 0x04
	FlagPSH = 0x08
	FlagACK = 0x10
	FlagURG = 0x20

	segmentWindow = 0xFFFF
)

// BuildSegment emits a transport segment carrying payload.
func BuildSegment(payload []byte, srcPort, dstPort uint16, flags uint8, seq, ack uint32) []byte {
	buf := make([]byte, SegmentHeaderLen+len(payload))
	binary.BigEndian.PutUint16(buf[0:2], srcPort)
	binary.BigEndian.PutUint16(buf[2:4], dstPort)
	binary.BigEndian.PutUint32(buf[4:8], seq)
	binary.BigEndian.PutUint32(buf[8:12], ack)
	buf[12] = (SegmentHeaderLen / 4) << 4
	buf[13] = flags
	binary.BigEndian.PutUint16(buf[14:16], segmentWindow)
	copy(buf[SegmentHeaderLen:], payload)
	return buf
}

// ParseSegment locates the payload via the data-offset field. A segment
// with a valid header but nothing after it is an error at this layer:
// every segment in the stack exists only to carry the next one.
func ParseSegment(b []byte) ([]byte, error) {
	if len(b) < SegmentHeaderLen {
		return nil, ErrMalformedHeader
	}
	hdrLen := int(b[12]>>4) * 4
	if hdrLen < SegmentHeaderLen {
		return nil, ErrMalformedHeader
	}
	if hdrLen >= len(b) {
		return nil, ErrMissingPayload
	}
	return b[hdrLen:], nil
}

package wire

import "encoding/binary"

// Network packet layout mirrors a minimal IPv4 header: version/IHL,
// TOS, total length, identification, flags/fragment, TTL, protocol,
// header checksum, source address, destination address. Options are
// never emitted, so the built header is always 20 bytes; parse honors
// whatever IHL declares.
const (
	PacketHeaderLen = 20

	// ProtocolTCP is the only next-layer indicator this stack carries.
	ProtocolTCP = 6

	packetVersion = 4
	packetTTL     = 64
)

// BuildPacket emits a network packet carrying payload. The header
// checksum is computed on build and never validated on parse; nothing on
// this path traverses a real router.
func BuildPacket(payload []byte, src, dst Addr4, proto uint8) ([]byte, error) {
	total := PacketHeaderLen + len(payload)
	if total > 0xFFFF {
		return nil, ErrOversize
	}
	buf := make([]byte, total)
	buf[0] = packetVersion<<4 | PacketHeaderLen/4
	binary.BigEndian.PutUint16(buf[2:4], uint16(total))
	buf[8] = packetTTL
	buf[9] = proto
	copy(buf[12:16], src[:])
	copy(buf[16:20], dst[:])
	binary.BigEndian.PutUint16(buf[10:12], headerChecksum(buf[:PacketHeaderLen]))
	copy(buf[PacketHeaderLen:], payload)
	return buf, nil
}

// ParsePacket locates the payload via the self-describing header length.
// The total-length field is deliberately not re-validated: the payload
// extent is everything after IHL words, which is what keeps decode
// lenient about padding added by outer layers.
func ParsePacket(b []byte) ([]byte, error) {
	if len(b) < PacketHeaderLen {
		return nil, ErrMalformedHeader
	}
	if b[0]>>4 != packetVersion {
		return nil, ErrMalformedHeader
	}
	hdrLen := int(b[0]&0x0F) * 4
	if hdrLen < PacketHeaderLen {
		return nil, ErrMalformedHeader
	}
	if hdrLen > len(b) {
		return nil, ErrMissingPayload
	}
	if b[9] != ProtocolTCP {
		return nil, ErrUnexpectedProtocol
	}
	return b[hdrLen:], nil
}

// headerChecksum is the ones-complement sum over the header with the
// checksum field zeroed (RFC 791 style).
func headerChecksum(hdr []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(hdr); i += 2 {
		if i == 10 {
			continue
		}
		sum += uint32(binary.BigEndian.Uint16(hdr[i : i+2]))
	}
	for sum>>16 != 0 {
		sum = sum&0xFFFF + sum>>16
	}
	return ^uint16(sum)
}

package wire

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

// Chunked text message layout mirrors a minimal DNS response: 12-byte
// header, one TXT/IN question for the message name, one TXT/IN answer
// whose RDATA holds the base64 form of the wrapped bytes as an ordered
// sequence of length-prefixed character-strings.
const (
	// ChunkSize is the ceiling on one character-string chunk. The format
	// caps a character-string at 255 bytes; 250 leaves margin.
	ChunkSize = 250

	MessageHeaderLen = 12

	recordTypeTXT = 16
	recordClassIN = 1

	messageID = 0x1337

	// QR | AA | RD | RA, matching a recursive authoritative answer.
	messageFlags = 0x8580
)

// BuildMessage packages segment as the sole TXT answer of a response
// addressed to name. The base64 text is split into at-most-ChunkSize
// chunks in order; an empty segment still produces one empty chunk so
// the answer record is never absent.
func BuildMessage(segment []byte, name string) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(segment)

	chunks := make([]string, 0, len(encoded)/ChunkSize+1)
	for len(encoded) > ChunkSize {
		chunks = append(chunks, encoded[:ChunkSize])
		encoded = encoded[ChunkSize:]
	}
	chunks = append(chunks, encoded)

	rdataLen := 0
	for _, c := range chunks {
		rdataLen += 1 + len(c)
	}
	if rdataLen > 0xFFFF {
		return nil, ErrOversize
	}

	wireName, err := encodeName(name)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, MessageHeaderLen+2*(len(wireName)+4)+6+rdataLen)

	var hdr [MessageHeaderLen]byte
	binary.BigEndian.PutUint16(hdr[0:2], messageID)
	binary.BigEndian.PutUint16(hdr[2:4], messageFlags)
	binary.BigEndian.PutUint16(hdr[4:6], 1) // question count
	binary.BigEndian.PutUint16(hdr[6:8], 1) // answer count
	buf = append(buf, hdr[:]...)

	// Question section.
	buf = append(buf, wireName...)
	buf = binary.BigEndian.AppendUint16(buf, recordTypeTXT)
	buf = binary.BigEndian.AppendUint16(buf, recordClassIN)

	// Answer section. The name is repeated uncompressed.
	buf = append(buf, wireName...)
	buf = binary.BigEndian.AppendUint16(buf, recordTypeTXT)
	buf = binary.BigEndian.AppendUint16(buf, recordClassIN)
	buf = binary.BigEndian.AppendUint32(buf, 0) // TTL
	buf = binary.BigEndian.AppendUint16(buf, uint16(rdataLen))
	for _, c := range chunks {
		buf = append(buf, byte(len(c)))
		buf = append(buf, c...)
	}

	return buf, nil
}

// ParseMessage recovers the segment from the first answer record. Chunks
// are concatenated in the order they appear in RDATA; re-sorting them
// would corrupt every multi-chunk payload.
func ParseMessage(b []byte) ([]byte, error) {
	if len(b) < MessageHeaderLen {
		return nil, ErrMalformedHeader
	}
	qdCount := binary.BigEndian.Uint16(b[4:6])
	anCount := binary.BigEndian.Uint16(b[6:8])
	if anCount == 0 {
		return nil, ErrNoAnswerRecord
	}

	off := MessageHeaderLen
	for i := 0; i < int(qdCount); i++ {
		next, err := skipName(b, off)
		if err != nil {
			return nil, err
		}
		off = next + 4
		if off > len(b) {
			return nil, ErrMalformedHeader
		}
	}

	next, err := skipName(b, off)
	if err != nil {
		return nil, err
	}
	off = next
	if off+10 > len(b) {
		return nil, ErrMalformedHeader
	}
	rType := binary.BigEndian.Uint16(b[off : off+2])
	rdLen := int(binary.BigEndian.Uint16(b[off+8 : off+10]))
	off += 10
	if rType != recordTypeTXT {
		return nil, ErrUnsupportedRecordType
	}
	if off+rdLen > len(b) {
		return nil, ErrMalformedHeader
	}

	var sb strings.Builder
	sb.Grow(rdLen)
	rdata := b[off : off+rdLen]
	for len(rdata) > 0 {
		n := int(rdata[0])
		if 1+n > len(rdata) {
			return nil, ErrMalformedHeader
		}
		sb.Write(rdata[1 : 1+n])
		rdata = rdata[1+n:]
	}

	segment, err := base64.StdEncoding.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("%w: bad chunk text: %v", ErrMalformedHeader, err)
	}
	return segment, nil
}

// encodeName converts a dotted name to length-prefixed labels plus the
// root terminator.
func encodeName(name string) ([]byte, error) {
	labels := strings.Split(strings.TrimSuffix(name, "."), ".")
	out := make([]byte, 0, len(name)+2)
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return nil, fmt.Errorf("wire: invalid message name %q", name)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0), nil
}

// skipName advances past a wire-format name starting at off and returns
// the offset of the first byte after it. Compression pointers are
// honored even though BuildMessage never emits them; hostile or mangled
// input may contain one and must not walk the parser out of bounds.
func skipName(b []byte, off int) (int, error) {
	for {
		if off >= len(b) {
			return 0, ErrMalformedHeader
		}
		n := int(b[off])
		switch {
		case n == 0:
			return off + 1, nil
		case n&0xC0 == 0xC0:
			if off+2 > len(b) {
				return 0, ErrMalformedHeader
			}
			return off + 2, nil
		case n > 63:
			return 0, ErrMalformedHeader
		default:
			off += 1 + n
		}
	}
}

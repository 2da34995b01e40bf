package tunnel

import (
	"encoding/binary"
	"errors"
)

// File payloads travel as: 4-byte big-endian name length, name bytes,
// then content bytes.

var ErrBadFilePayload = errors.New("tunnel: malformed file payload")

func EncodeFilePayload(name string, content []byte) []byte {
	buf := make([]byte, 4, 4+len(name)+len(content))
	binary.BigEndian.PutUint32(buf, uint32(len(name)))
	buf = append(buf, name...)
	return append(buf, content...)
}

func DecodeFilePayload(b []byte) (name string, content []byte, err error) {
	if len(b) < 4 {
		return "", nil, ErrBadFilePayload
	}
	n := binary.BigEndian.Uint32(b[:4])
	if uint64(n) > uint64(len(b)-4) {
		return "", nil, ErrBadFilePayload
	}
	end := 4 + int(n)
	return string(b[4:end]), b[end:], nil
}

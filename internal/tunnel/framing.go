package tunnel

import (
	"encoding/binary"
	"errors"
	"io"
)

// Every packet on a tunnel connection is preceded by a 4-byte big-endian
// length. The length covers the packet only, not itself.

// MaxPacketBytes caps one framed packet read. 16 MiB leaves ample room
// for the layer overhead on top of any reasonable payload.
const MaxPacketBytes = 16 * 1024 * 1024

var (
	ErrPacketTooLarge = errors.New("tunnel: packet exceeds size limit")
	ErrShortPrefix    = errors.New("tunnel: short length prefix")
)

// ReadPacket reads one length-prefixed packet from r.
func ReadPacket(r io.Reader, maxBytes uint32) ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortPrefix
		}
		return nil, err
	}
	n := binary.BigEndian.Uint32(prefix[:])
	if n > maxBytes {
		return nil, ErrPacketTooLarge
	}
	packet := make([]byte, n)
	if _, err := io.ReadFull(r, packet); err != nil {
		return nil, err
	}
	return packet, nil
}

// WritePacket writes one length-prefixed packet to w.
func WritePacket(w io.Writer, packet []byte, maxBytes uint32) error {
	if len(packet) > int(maxBytes) {
		return ErrPacketTooLarge
	}
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(packet)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err := w.Write(packet)
	return err
}

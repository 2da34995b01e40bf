package wire

import (
	"bytes"
	"fmt"
)

// envelopeSeparator terminates the literal header block. The body after
// the first occurrence is opaque and may itself contain the sequence.
var envelopeSeparator = []byte("\r\n\r\n")

// BuildEnvelope wraps body in a literal request-text header block. The
// body is appended verbatim; no re-encoding ever happens at this layer.
func BuildEnvelope(body []byte, method, path, host string) []byte {
	header := fmt.Sprintf(
		"%s %s HTTP/1.1\r\n"+
			"Host: %s\r\n"+
			"Content-Type: application/dns-message\r\n"+
			"Content-Length: %d\r\n"+
			"User-Agent: Turducken/1.0 (Unnecessarily Complex Protocol)\r\n"+
			"Cookie: overhead=yes\r\n"+
			"Connection: keep-alive\r\n"+
			"\r\n",
		method, path, host, len(body),
	)
	buf := make([]byte, 0, len(header)+len(body))
	buf = append(buf, header...)
	return append(buf, body...)
}

// ParseEnvelope returns every byte after the FIRST header separator.
// Content-Length is deliberately ignored: the separator alone is
// authoritative, which is what keeps arbitrary binary bodies safe to
// carry even when they embed the separator themselves.
func ParseEnvelope(b []byte) ([]byte, error) {
	i := bytes.Index(b, envelopeSeparator)
	if i == -1 {
		return nil, ErrTruncatedMessage
	}
	return b[i+len(envelopeSeparator):], nil
}

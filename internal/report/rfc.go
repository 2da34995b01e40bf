// Package report produces the printable artifacts of the protocol: the
// RFC-style description and a PDF embedding the Brainfuck program that
// prints it.
package report

import _ "embed"

//go:embed rfc.txt
var rfcText string

// RFCText returns the embedded protocol description, the default input
// of the Brainfuck generator.
func RFCText() string {
	return rfcText
}

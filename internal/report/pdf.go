package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/nestwork/turducken/internal/brainfuck"
)

// codeChunk keeps one MultiCell call to a size gofpdf lays out quickly.
const codeChunk = 1000

// WritePDF renders code into a printable document: a title page with
// instruction statistics followed by the program in a monospaced face.
func WritePDF(w io.Writer, title string, code string) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(12, 18, 12)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5,
		"This document contains a Brainfuck program that, when executed, "+
			"prints the turducken protocol description. Copy the code from the "+
			"following pages into any Brainfuck interpreter.", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Statistics", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 9)
	counts := brainfuck.InstructionCounts(code)
	pdf.CellFormat(0, 5, fmt.Sprintf("program length: %d characters", len(code)), "", 1, "L", false, 0, "")
	for _, ins := range []struct {
		op   byte
		name string
	}{
		{'+', "increment"},
		{'-', "decrement"},
		{'.', "output"},
		{'<', "move left"},
		{'>', "move right"},
		{'[', "loop start"},
		{']', "loop end"},
	} {
		pdf.CellFormat(0, 5, fmt.Sprintf("  %c  (%s): %d", ins.op, ins.name, counts[ins.op]), "", 1, "L", false, 0, "")
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Program", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 7)
	for len(code) > 0 {
		n := codeChunk
		if n > len(code) {
			n = len(code)
		}
		pdf.MultiCell(0, 3.2, code[:n], "", "L", false)
		code = code[n:]
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

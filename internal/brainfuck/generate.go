// Package brainfuck generates, optimizes, and executes Brainfuck
// programs that print a given text. It exists for the RFC report: the
// protocol description ships as a program that prints itself.
package brainfuck

import (
	"math"
	"strings"
)

// Generate emits a program that outputs text. Each character is reached
// from the previous one by adjusting the current cell: small deltas as
// plain runs of +/-, large deltas via a square multiplication loop in a
// scratch cell.
func Generate(text string) string {
	var sb strings.Builder
	prev := 0

	for _, r := range []byte(text) {
		diff := int(r) - prev

		switch {
		case diff > 0 && diff <= 10:
			sb.WriteString(strings.Repeat("+", diff))
		case diff > 0:
			writeMultiplied(&sb, diff, '+')
		case diff < 0 && diff >= -10:
			sb.WriteString(strings.Repeat("-", -diff))
		case diff < 0:
			writeMultiplied(&sb, -diff, '-')
		}

		sb.WriteByte('.')
		prev = int(r)
	}

	return sb.String()
}

// writeMultiplied builds |diff| on the current cell as factor*factor
// plus a remainder run, using the cell to the right as the loop counter.
func writeMultiplied(sb *strings.Builder, diff int, op byte) {
	factor := int(math.Sqrt(float64(diff)))
	remainder := diff - factor*factor

	sb.WriteByte('>')
	sb.WriteString(strings.Repeat("+", factor))
	sb.WriteString("[<")
	sb.WriteString(strings.Repeat(string(op), factor))
	sb.WriteString(">-]<")
	if remainder > 0 {
		sb.WriteString(strings.Repeat(string(op), remainder))
	}
}

// Optimize removes adjacent +- and -+ pairs until none remain. The
// generator never emits them on its own, but concatenated or hand-edited
// programs may.
func Optimize(code string) string {
	for strings.Contains(code, "+-") || strings.Contains(code, "-+") {
		code = strings.ReplaceAll(code, "+-", "")
		code = strings.ReplaceAll(code, "-+", "")
	}
	return code
}

// InstructionCounts tallies each of the eight instructions, for the
// report's statistics block.
func InstructionCounts(code string) map[byte]int {
	counts := make(map[byte]int, 8)
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '+', '-', '.', ',', '<', '>', '[', ']':
			counts[c]++
		}
	}
	return counts
}

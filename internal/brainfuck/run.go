package brainfuck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnbalancedBrackets = errors.New("brainfuck: unbalanced brackets")
	ErrStepLimit          = errors.New("brainfuck: step limit exceeded")
	ErrTapeLimit          = errors.New("brainfuck: tape limit exceeded")
	ErrPointerUnderflow   = errors.New("brainfuck: pointer moved below cell zero")
)

const (
	// DefaultMaxSteps bounds interpretation so a looping program cannot
	// hang a test run. Generated programs stay far below this.
	DefaultMaxSteps = 50_000_000

	// DefaultMaxTape bounds tape growth.
	DefaultMaxTape = 1 << 20
)

// Run interprets code with no input stream and returns its output.
// Execution is bounded by DefaultMaxSteps and DefaultMaxTape.
func Run(code string) (string, error) {
	jumps, err := matchBrackets(code)
	if err != nil {
		return "", err
	}

	tape := make([]byte, 256)
	var out strings.Builder
	ptr := 0
	steps := 0

	for pc := 0; pc < len(code); pc++ {
		steps++
		if steps > DefaultMaxSteps {
			return "", ErrStepLimit
		}

		switch code[pc] {
		case '+':
			tape[ptr]++
		case '-':
			tape[ptr]--
		case '>':
			ptr++
			if ptr >= len(tape) {
				if len(tape)*2 > DefaultMaxTape {
					return "", ErrTapeLimit
				}
				tape = append(tape, make([]byte, len(tape))...)
			}
		case '<':
			ptr--
			if ptr < 0 {
				return "", ErrPointerUnderflow
			}
		case '.':
			out.WriteByte(tape[ptr])
		case ',':
			tape[ptr] = 0 // no input stream
		case '[':
			if tape[ptr] == 0 {
				pc = jumps[pc]
			}
		case ']':
			if tape[ptr] != 0 {
				pc = jumps[pc]
			}
		}
	}

	return out.String(), nil
}

// matchBrackets maps each bracket's position to its partner.
func matchBrackets(code string) (map[int]int, error) {
	jumps := make(map[int]int)
	var open []int
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '[':
			open = append(open, i)
		case ']':
			if len(open) == 0 {
				return nil, fmt.Errorf("%w: stray ] at %d", ErrUnbalancedBrackets, i)
			}
			j := open[len(open)-1]
			open = open[:len(open)-1]
			jumps[j] = i
			jumps[i] = j
		}
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("%w: unclosed [ at %d", ErrUnbalancedBrackets, open[len(open)-1])
	}
	return jumps, nil
}

package brainfuck

import (
	"errors"
	"strings"
	"testing"
)

func TestGeneratedProgramPrintsItsText(t *testing.T) {
	cases := []string{
		"Hello, World!",
		"turducken",
		"A",
		"zyxwvu TSR 0123", // downward deltas
		"line one\nline two\n",
	}
	for _, text := range cases {
		code := Generate(text)
		out, err := Run(code)
		if err != nil {
			t.Fatalf("%q: run: %v", text, err)
		}
		if out != text {
			t.Fatalf("%q: program printed %q", text, out)
		}
	}
}

func TestGenerateEmptyText(t *testing.T) {
	if code := Generate(""); code != "" {
		t.Fatalf("expected empty program, got %q", code)
	}
}

func TestOptimizePreservesOutput(t *testing.T) {
	text := "optimization must not change behavior"
	code := Generate(text)
	optimized := Optimize(code + "+-" + "-+")

	out, err := Run(optimized)
	if err != nil {
		t.Fatalf("run optimized: %v", err)
	}
	if out != text {
		t.Fatalf("optimized program printed %q", out)
	}
	if strings.Contains(optimized, "+-") || strings.Contains(optimized, "-+") {
		t.Fatal("redundant pairs survived optimization")
	}
}

func TestRunRejectsUnbalancedBrackets(t *testing.T) {
	if _, err := Run("+[+"); !errors.Is(err, ErrUnbalancedBrackets) {
		t.Fatalf("expected ErrUnbalancedBrackets, got %v", err)
	}
	if _, err := Run("+]+"); !errors.Is(err, ErrUnbalancedBrackets) {
		t.Fatalf("expected ErrUnbalancedBrackets, got %v", err)
	}
}

func TestRunStepLimit(t *testing.T) {
	// A cell that never reaches zero loops forever; the bound must trip.
	if _, err := Run("+[]"); !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
}

func TestRunPointerUnderflow(t *testing.T) {
	if _, err := Run("<"); !errors.Is(err, ErrPointerUnderflow) {
		t.Fatalf("expected ErrPointerUnderflow, got %v", err)
	}
}

func TestInstructionCounts(t *testing.T) {
	counts := InstructionCounts("++[->+<]. ignored text ,")
	if counts['+'] != 3 || counts['-'] != 1 || counts['['] != 1 || counts[']'] != 1 {
		t.Fatalf("counts wrong: %v", counts)
	}
	if counts['.'] != 1 || counts[','] != 1 || counts['<'] != 1 || counts['>'] != 1 {
		t.Fatalf("counts wrong: %v", counts)
	}
}

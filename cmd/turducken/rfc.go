package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nestwork/turducken/internal/brainfuck"
	"github.com/nestwork/turducken/internal/report"
	"github.com/nestwork/turducken/internal/termui"
)

var (
	rfcInput  string
	rfcOutput string
)

var rfcCmd = &cobra.Command{
	Use:   "rfc",
	Short: "Generate the protocol description as Brainfuck, or render it to PDF",
}

var rfcBrainfuckCmd = &cobra.Command{
	Use:   "brainfuck",
	Short: "Generate a Brainfuck program that prints the protocol description",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := rfcText()
		if err != nil {
			return err
		}

		code := brainfuck.Optimize(brainfuck.Generate(text))
		if rfcOutput == "" || rfcOutput == "-" {
			fmt.Println(code)
			return nil
		}
		if err := os.WriteFile(rfcOutput, []byte(code), 0o644); err != nil {
			return err
		}
		termui.Success("wrote %d characters of Brainfuck to %s (%.2fx the source text)",
			len(code), rfcOutput, float64(len(code))/float64(len(text)))
		return nil
	},
}

var rfcPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Render the Brainfuck program into a printable PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := rfcText()
		if err != nil {
			return err
		}
		code := brainfuck.Optimize(brainfuck.Generate(text))

		out := rfcOutput
		if out == "" {
			out = "turducken-rfc.pdf"
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := report.WritePDF(f, "Turducken RFC Generator", code); err != nil {
			return err
		}
		info, err := f.Stat()
		if err != nil {
			return err
		}
		termui.Success("wrote %s (%d bytes)", out, info.Size())
		return nil
	},
}

// rfcText loads the generator input: a file when --input is given, the
// embedded protocol description otherwise.
func rfcText() (string, error) {
	if rfcInput == "" {
		return report.RFCText(), nil
	}
	data, err := os.ReadFile(rfcInput)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rfcCmd.PersistentFlags().StringVar(&rfcInput, "input", "", "source text file (default: embedded protocol description)")
	rfcCmd.PersistentFlags().StringVarP(&rfcOutput, "output", "o", "", "output path")
	rfcCmd.AddCommand(rfcBrainfuckCmd)
	rfcCmd.AddCommand(rfcPDFCmd)
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/termui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [text]",
	Short: "Show the layer structure and overhead for a payload",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := []byte("Hello, World! This is a test of the turducken protocol.")
		if len(args) > 0 {
			payload = []byte(strings.Join(args, " "))
		}

		s := stack.New(stack.Config{})
		trace, err := s.Trace(payload)
		if err != nil {
			return err
		}
		st, err := s.OverheadStats(payload)
		if err != nil {
			return err
		}

		termui.Header("Layer Structure")
		termui.LayerTree(len(payload), trace)
		termui.Header("Overhead")
		termui.OverheadTable(st)
		return nil
	},
}

// Package termui renders the client's console output with pterm.
package termui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/tunnel"
)

func Header(title string) {
	pterm.DefaultSection.Println(title)
}

// LayerTree renders the eight-layer structure of one payload, innermost
// last, each node showing the cumulative size after that layer.
func LayerTree(payloadSize int, trace []stack.LayerSize) {
	node := pterm.TreeNode{Text: pterm.Green(fmt.Sprintf("payload (%d bytes)", payloadSize))}
	for _, layer := range trace {
		node = pterm.TreeNode{
			Text:     pterm.Cyan(fmt.Sprintf("%s (%d bytes)", layer.Layer, layer.Size)),
			Children: []pterm.TreeNode{node},
		}
	}
	root := pterm.TreeNode{Text: pterm.Bold.Sprint("turducken packet"), Children: []pterm.TreeNode{node}}
	_ = pterm.DefaultTree.WithRoot(root).Render()
}

// OverheadTable renders the five-field stats record.
func OverheadTable(st stack.Stats) {
	data := pterm.TableData{
		{"Payload size", fmt.Sprintf("%d bytes", st.PayloadSize)},
		{"Total size", fmt.Sprintf("%d bytes", st.TotalSize)},
		{"Header size", fmt.Sprintf("%d bytes", st.HeaderSize)},
		{"Overhead ratio", fmt.Sprintf("%.2fx", st.OverheadRatio)},
		{"Efficiency", fmt.Sprintf("%.2f%%", st.EfficiencyPercent)},
	}
	_ = pterm.DefaultTable.WithData(data).Render()
}

// SnapshotTable renders a server-side counter snapshot.
func SnapshotTable(snap tunnel.Snapshot) {
	data := pterm.TableData{
		{"Metric", "Value"},
		{"Uptime", fmt.Sprintf("%.2fs", snap.UptimeSeconds)},
		{"Packets RX", fmt.Sprintf("%d", snap.PacketsReceived)},
		{"Packets TX", fmt.Sprintf("%d", snap.PacketsSent)},
		{"Bytes RX", fmt.Sprintf("%d", snap.BytesReceived)},
		{"Bytes TX", fmt.Sprintf("%d", snap.BytesSent)},
		{"Overhead", fmt.Sprintf("%d bytes", snap.TotalOverhead)},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func Success(format string, args ...any) {
	pterm.Success.Printfln(format, args...)
}

func Error(format string, args ...any) {
	pterm.Error.Printfln(format, args...)
}

func Info(format string, args ...any) {
	pterm.Info.Printfln(format, args...)
}

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nestwork/turducken/internal/logging"
	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/termui"
	"github.com/nestwork/turducken/internal/tunnel"
)

var (
	flagAddr    string
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "turducken",
	Short: "Client for the turducken eight-layer tunnel",
	Long: "turducken talks to a tunnel server through all eight synthetic protocol\n" +
		"layers: link frame, network packet, transport segment, chunked text\n" +
		"message, text envelope, and the outer segment/packet/frame trio.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.ConfigureRuntime()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "127.0.0.1:9999", "tunnel server address")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "exchange timeout")

	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(rfcCmd)
}

func newClient() *tunnel.Client {
	return tunnel.NewClient(stack.New(stack.Config{}), flagAddr, flagTimeout)
}

var echoCmd = &cobra.Command{
	Use:   "echo <message...>",
	Short: "Send a message through the tunnel and print the echo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := []byte(strings.Join(args, " "))

		termui.Header("Echo")
		resp, rtt, err := newClient().Exchange(cmd.Context(), payload)
		if err != nil {
			return err
		}
		termui.Success("%s", resp)
		termui.Info("round trip: %v", rtt.Round(time.Microsecond))
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat over the tunnel (/quit to leave)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		termui.Header("Chat")
		termui.Info("connected to %s, /quit to leave", flagAddr)

		client := newClient()
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "/quit" {
				break
			}
			resp, rtt, err := client.Exchange(cmd.Context(), []byte(line))
			if err != nil {
				termui.Error("%v", err)
				continue
			}
			fmt.Printf("< %s (%v)\n", resp, rtt.Round(time.Millisecond))
		}
		return scanner.Err()
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <file>",
	Short: "Send a file through the tunnel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		name := filepath.Base(args[0])
		payload := tunnel.EncodeFilePayload(name, content)

		termui.Header("File Transfer")
		termui.Info("sending %s (%d bytes, %d on the wire)", name, len(content), len(payload))

		resp, rtt, err := newClient().Exchange(cmd.Context(), payload)
		if err != nil {
			return err
		}
		termui.Success("%s", resp)
		termui.Info("transfer time: %v", rtt.Round(time.Microsecond))
		return nil
	},
}

var pingCount int

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Measure tunnel round trip times",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		termui.Header("Ping")
		client := newClient()

		var rtts []time.Duration
		for i := 0; i < pingCount; i++ {
			rtt, err := client.Ping(cmd.Context())
			if err != nil {
				termui.Error("ping %d: %v", i+1, err)
				continue
			}
			rtts = append(rtts, rtt)
			termui.Info("ping %d: rtt=%v", i+1, rtt.Round(time.Microsecond))
			if i < pingCount-1 {
				time.Sleep(500 * time.Millisecond)
			}
		}
		if len(rtts) == 0 {
			return fmt.Errorf("no pings succeeded")
		}

		min, max, sum := rtts[0], rtts[0], time.Duration(0)
		for _, r := range rtts {
			if r < min {
				min = r
			}
			if r > max {
				max = r
			}
			sum += r
		}
		termui.Success("%d/%d pings: min=%v avg=%v max=%v",
			len(rtts), pingCount,
			min.Round(time.Microsecond),
			(sum / time.Duration(len(rtts))).Round(time.Microsecond),
			max.Round(time.Microsecond))
		return nil
	},
}

var statsGatewayURL string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Fetch and print gateway counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, statsGatewayURL+"/stats", nil)
		if err != nil {
			return err
		}
		resp, err := (&http.Client{Timeout: flagTimeout}).Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("gateway answered %s", resp.Status)
		}

		var snap tunnel.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return fmt.Errorf("decode stats: %w", err)
		}

		termui.Header("Gateway Statistics")
		termui.SnapshotTable(snap)
		return nil
	},
}

func init() {
	pingCmd.Flags().IntVarP(&pingCount, "count", "c", 5, "number of pings")
	statsCmd.Flags().StringVar(&statsGatewayURL, "gateway", "http://127.0.0.1:8080", "gateway base URL")
}

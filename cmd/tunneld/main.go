package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nestwork/turducken/internal/config"
	"github.com/nestwork/turducken/internal/logging"
	"github.com/nestwork/turducken/internal/observability"
	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/tunnel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tunneld: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to TOML config")
	listen := flag.String("listen", "", "listen address (overrides config)")
	mode := flag.String("mode", "", "tunnel mode (overrides config)")
	flag.Parse()

	logging.ConfigureRuntime()
	observability.InitLogger("tunneld")

	cfg, err := config.LoadTunnelConfig(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *mode != "" {
		if !tunnel.KnownMode(*mode) {
			return fmt.Errorf("unknown mode %q", *mode)
		}
		cfg.Mode = *mode
	}

	stackCfg, err := cfg.Outer.StackConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := tunnel.NewServer(stack.New(stackCfg), cfg.Mode)
	return srv.Serve(ctx, cfg.Listen)
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nestwork/turducken/internal/config"
	"github.com/nestwork/turducken/internal/gateway"
	"github.com/nestwork/turducken/internal/logging"
	"github.com/nestwork/turducken/internal/observability"
	"github.com/nestwork/turducken/internal/stack"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gatewayd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to TOML config")
	listen := flag.String("listen", "", "listen address (overrides config)")
	mode := flag.String("mode", "", "tunnel mode (overrides config)")
	flag.Parse()

	logging.ConfigureRuntime()
	observability.InitLogger("gatewayd")

	cfg, err := config.LoadGatewayConfig(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *mode != "" {
		cfg.Mode = *mode
	}

	stackCfg, err := cfg.Outer.StackConfig()
	if err != nil {
		return err
	}

	g := gateway.New(stack.New(stackCfg), cfg.Mode, cfg.CorsOrigins)
	return g.Serve(cfg.Listen)
}

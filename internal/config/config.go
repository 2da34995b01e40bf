// Package config loads the daemons' TOML configuration files.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/tunnel"
	"github.com/nestwork/turducken/internal/wire"
)

// OuterConfig overrides the stack's outer addressing. Empty fields keep
// the stack defaults.
type OuterConfig struct {
	SrcIP   string `toml:"src_ip"`
	DstIP   string `toml:"dst_ip"`
	SrcPort uint16 `toml:"src_port"`
	DstPort uint16 `toml:"dst_port"`
	SrcHW   string `toml:"src_hw"`
	DstHW   string `toml:"dst_hw"`
}

// TunnelConfig configures tunneld.
type TunnelConfig struct {
	Listen string      `toml:"listen"`
	Mode   string      `toml:"mode"`
	Outer  OuterConfig `toml:"outer"`
}

// GatewayConfig configures gatewayd.
type GatewayConfig struct {
	Listen      string      `toml:"listen"`
	Mode        string      `toml:"mode"`
	CorsOrigins []string    `toml:"cors_origins"`
	Outer       OuterConfig `toml:"outer"`
}

func DefaultTunnelConfig() TunnelConfig {
	return TunnelConfig{Listen: ":9999", Mode: "echo"}
}

func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{Listen: ":8080", Mode: "echo"}
}

// LoadTunnelConfig reads path over the defaults. An empty path returns
// the defaults untouched.
func LoadTunnelConfig(path string) (TunnelConfig, error) {
	cfg := DefaultTunnelConfig()
	if path == "" {
		return cfg, nil
	}

	var raw TunnelConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return TunnelConfig{}, fmt.Errorf("load tunnel config: %w", err)
	}
	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("mode") {
		cfg.Mode = strings.TrimSpace(raw.Mode)
	}
	if meta.IsDefined("outer") {
		cfg.Outer = raw.Outer
	}

	if err := validateCommon(cfg.Listen, cfg.Mode, cfg.Outer); err != nil {
		return TunnelConfig{}, err
	}
	return cfg, nil
}

// LoadGatewayConfig reads path over the defaults. An empty path returns
// the defaults untouched.
func LoadGatewayConfig(path string) (GatewayConfig, error) {
	cfg := DefaultGatewayConfig()
	if path == "" {
		return cfg, nil
	}

	var raw GatewayConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return GatewayConfig{}, fmt.Errorf("load gateway config: %w", err)
	}
	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("mode") {
		cfg.Mode = strings.TrimSpace(raw.Mode)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("outer") {
		cfg.Outer = raw.Outer
	}

	if err := validateCommon(cfg.Listen, cfg.Mode, cfg.Outer); err != nil {
		return GatewayConfig{}, err
	}
	return cfg, nil
}

// StackConfig converts the override block into a stack.Config; fields
// left empty stay zero and take the stack defaults.
func (o OuterConfig) StackConfig() (stack.Config, error) {
	var cfg stack.Config
	var err error

	if o.SrcIP != "" {
		if cfg.OuterSrcIP, err = wire.ParseAddr4(o.SrcIP); err != nil {
			return stack.Config{}, fmt.Errorf("outer src_ip: %w", err)
		}
	}
	if o.DstIP != "" {
		if cfg.OuterDstIP, err = wire.ParseAddr4(o.DstIP); err != nil {
			return stack.Config{}, fmt.Errorf("outer dst_ip: %w", err)
		}
	}
	cfg.OuterSrcPort = o.SrcPort
	cfg.OuterDstPort = o.DstPort
	if o.SrcHW != "" {
		if cfg.OuterSrcHW, err = wire.ParseHardwareAddr(o.SrcHW); err != nil {
			return stack.Config{}, fmt.Errorf("outer src_hw: %w", err)
		}
	}
	if o.DstHW != "" {
		if cfg.OuterDstHW, err = wire.ParseHardwareAddr(o.DstHW); err != nil {
			return stack.Config{}, fmt.Errorf("outer dst_hw: %w", err)
		}
	}
	return cfg, nil
}

func validateCommon(listen, mode string, outer OuterConfig) error {
	if strings.TrimSpace(listen) == "" {
		return fmt.Errorf("config missing listen address")
	}
	if !tunnel.KnownMode(mode) {
		return fmt.Errorf("unknown mode %q (one of: %s)", mode, strings.Join(tunnel.ModeNames(), ", "))
	}
	if _, err := outer.StackConfig(); err != nil {
		return err
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

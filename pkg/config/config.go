// Package config loads application configuration with koanf, layering
// defaults, an optional TOML file, environment variables, and flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the analyzer.
type Config struct {
	Input    string `koanf:"input"`    // path to the edge-list CSV
	WebMode  bool   `koanf:"web"`      // serve results over HTTP instead of printing
	Port     int    `koanf:"port"`     // web server port
	Watch    bool   `koanf:"watch"`    // re-analyze when the edge list changes
	JSONOut  bool   `koanf:"json"`     // print the report as JSON instead of the colored table
	Verbose  int    `koanf:"verbose"`  // -v occurrences
	LogLevel string `koanf:"loglevel"` // explicit level name, overrides verbose
}

// Load loads configuration from defaults, graphrank.toml, environment
// variables (GRAPHRANK_ prefix), and flags.
// Priority: Flags > Env > Config File > Defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"input":    "",
		"web":      false,
		"port":     8080,
		"watch":    false,
		"json":     false,
		"verbose":  0,
		"loglevel": "",
	}
	if err := k.Load(mapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Config file is optional.
	_ = k.Load(file.Provider("graphrank.toml"), toml.Parser())

	if err := k.Load(env.Provider("GRAPHRANK_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "GRAPHRANK_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

type staticProvider struct {
	m map[string]interface{}
}

func mapProvider(m map[string]interface{}) *staticProvider {
	return &staticProvider{m: m}
}

func (p *staticProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *staticProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}

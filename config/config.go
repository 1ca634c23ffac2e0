package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/swasthya/scheduling/core/duration"
	"github.com/swasthya/scheduling/core/erqueue"
	"github.com/swasthya/scheduling/core/metrics"
	"github.com/swasthya/scheduling/core/orschedule"
	"github.com/swasthya/scheduling/core/roster"
)

// Config aggregates the per-engine sections.
type Config struct {
	ER       erqueue.Config    `json:"er"`
	Duration duration.Config   `json:"duration"`
	OR       orschedule.Config `json:"or"`
	Roster   roster.Config     `json:"roster"`
	Metrics  metrics.Config    `json:"metrics"`
}

// Default returns a configuration with every section at its defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	c.ER.SetDefaults()
	c.Duration.SetDefaults()
	c.OR.SetDefaults()
	c.Roster.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ER.Validate(); err != nil {
		return fmt.Errorf("er: %w", err)
	}
	if err := c.Duration.Validate(); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	if err := c.OR.Validate(); err != nil {
		return fmt.Errorf("or: %w", err)
	}
	if err := c.Roster.Validate(); err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

// Load reads a JSON or YAML configuration file with optional environment
// overrides (HS_ prefix, __ as the section separator).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("HS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "hs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

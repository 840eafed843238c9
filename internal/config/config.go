package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/spektr-org/crashlens/engine"
	"github.com/spektr-org/crashlens/render/echarts"
)

// EnvPrefix prefixes environment overrides: CRASHLENS_LISTEN -> listen.
const EnvPrefix = "CRASHLENS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CRASHLENS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("data is required")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	if _, err := c.SeveritySet(); err != nil {
		return err
	}
	return nil
}

// SeveritySet parses DefaultSeverities. An empty list means the engine default.
func (c *Config) SeveritySet() (engine.SeveritySet, error) {
	set, err := engine.ParseSeverityList(strings.Join(c.DefaultSeverities, ","))
	if err != nil {
		return 0, fmt.Errorf("invalid default_severities: %w", err)
	}
	if set == 0 {
		return engine.DefaultSeveritySet, nil
	}
	return set, nil
}

// EngineOptions translates the configuration into dashboard options.
func (c *Config) EngineOptions() ([]engine.Option, error) {
	set, err := c.SeveritySet()
	if err != nil {
		return nil, err
	}
	if set == engine.AllSeveritySet {
		return []engine.Option{engine.WithAllSeverities()}, nil
	}
	return []engine.Option{engine.WithDefaultSeverities(set.Slice()...)}, nil
}

// PageOptions translates the configuration into HTML dashboard options.
func (c *Config) PageOptions() []echarts.Option {
	options := []echarts.Option{echarts.WithTitle(c.Title)}
	if c.AssetsHost != "" {
		options = append(options, echarts.WithAssetsHost(c.AssetsHost))
	}
	return options
}

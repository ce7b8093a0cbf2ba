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
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "NAVCHART_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NAVCHART_*).
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

	// NAVCHART_OUTPUT_DIR -> output_dir, NAVCHART_CHART__DEPTH -> chart.depth.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
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

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[LogFormat]bool{
	LogFormatText: true,
	LogFormatJSON: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.SidebarDepth < 1 {
		return fmt.Errorf("sidebar_depth must be at least 1")
	}
	if c.Chart.VerticalDepth < 1 {
		return fmt.Errorf("chart.vertical_depth must be at least 1")
	}
	if c.Chart.Depth < 1 {
		return fmt.Errorf("chart.depth must be at least 1")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	return nil
}

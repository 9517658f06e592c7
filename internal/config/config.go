package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the frontier view. The portfolio
// statistics themselves are constants in the finance package.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Chart struct {
		Width    int           `yaml:"width"`
		Height   int           `yaml:"height"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"chart"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Chart.CacheTTL = -1 // unset marker, 0 is a valid "no cache"

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("CHART_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse CHART_WIDTH: %w", err)
		}
		cfg.Chart.Width = n
	}
	if v := os.Getenv("CHART_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse CHART_HEIGHT: %w", err)
		}
		cfg.Chart.Height = n
	}
	if v := os.Getenv("CHART_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse CHART_CACHE_TTL: %w", err)
		}
		cfg.Chart.CacheTTL = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	// Defaults
	if cfg.Server.Port == "" {
		cfg.Server.Port = "9095"
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = 1024
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 640
	}
	if cfg.Chart.CacheTTL < 0 {
		cfg.Chart.CacheTTL = 60 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric, got %q", c.Server.Port)
	}
	if c.Chart.Width < 200 || c.Chart.Height < 200 {
		return fmt.Errorf("chart size %dx%d is below 200x200", c.Chart.Width, c.Chart.Height)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

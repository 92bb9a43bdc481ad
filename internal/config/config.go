// Package config provides configuration helpers for go-lenscoach commands.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the coaching pipeline.
const (
	DefaultWebPort       = "8090"
	DefaultCycleInterval = 3 * time.Second
	DefaultModel         = "gemini-2.0-flash"
)

// Config holds the tunable settings for a coaching session.
// Zero values are replaced with defaults by Load/ApplyDefaults.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CycleInterval is the delay between periodic analysis cycles.
	CycleInterval time.Duration `yaml:"cycle_interval"`

	// WebPort is the dashboard listen port.
	WebPort string `yaml:"web_port"`

	Advisor AdvisorConfig `yaml:"advisor"`
}

// AdvisorConfig controls the remote vision-language advisor.
type AdvisorConfig struct {
	// Model is the generation model name.
	Model string `yaml:"model"`

	// MinInterval is the minimum spacing between accepted remote calls.
	MinInterval time.Duration `yaml:"min_interval"`

	// MaxDailyCalls is the calendar-day call ceiling.
	MaxDailyCalls int `yaml:"max_daily_calls"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		LogLevel:      "info",
		CycleInterval: DefaultCycleInterval,
		WebPort:       DefaultWebPort,
		Advisor: AdvisorConfig{
			Model:         DefaultModel,
			MinInterval:   3 * time.Second,
			MaxDailyCalls: 40,
		},
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults replaces zero-valued fields with defaults.
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.CycleInterval <= 0 {
		c.CycleInterval = def.CycleInterval
	}
	if c.WebPort == "" {
		c.WebPort = def.WebPort
	}
	if c.Advisor.Model == "" {
		c.Advisor.Model = def.Advisor.Model
	}
	if c.Advisor.MinInterval <= 0 {
		c.Advisor.MinInterval = def.Advisor.MinInterval
	}
	if c.Advisor.MaxDailyCalls <= 0 {
		c.Advisor.MaxDailyCalls = def.Advisor.MaxDailyCalls
	}
}

// APIKey returns the Gemini API key from GEMINI_API_KEY.
// An empty key means the advisor is disabled and local rules run alone.
func APIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// WebPort returns the dashboard port from WEB_PORT env var.
// Falls back to the provided default if not set.
func WebPort(defaultPort string) string {
	if port := os.Getenv("WEB_PORT"); port != "" {
		return port
	}
	return defaultPort
}

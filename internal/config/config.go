// Package config loads converter settings from an optional YAML file and
// EXPLODER_* environment variables. Command-line flags are applied on top
// by the caller.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/strrl/model-exploder/internal/pipeline"
)

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Expand ExpandConfig `yaml:"expand"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"EXPLODER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"EXPLODER_LOG_FORMAT" env-default:"text"`
}

type OutputConfig struct {
	Quote bool `yaml:"quote" env:"EXPLODER_OUTPUT_QUOTE"`
}

type ExpandConfig struct {
	Unresolved string `yaml:"unresolved" env:"EXPLODER_UNRESOLVED" env-default:"skip"`
}

// Load reads configuration from path when given, otherwise from the
// environment alone. Priority: ENV > YAML > defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}

	if _, err := pipeline.ParseUnresolvedPolicy(c.Expand.Unresolved); err != nil {
		return fmt.Errorf("config: expand.unresolved: %w", err)
	}
	return nil
}

// UnresolvedPolicy returns the validated expansion policy.
func (c *Config) UnresolvedPolicy() pipeline.UnresolvedPolicy {
	policy, err := pipeline.ParseUnresolvedPolicy(c.Expand.Unresolved)
	if err != nil {
		return pipeline.UnresolvedSkip
	}
	return policy
}

package collab

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines collaboration engine pacing and sampling sizes.
type Config struct {
	TickInterval        time.Duration
	ConsistencyInterval time.Duration
	SeedLimit           int
	ReseedLimit         int
}

type fileConfig struct {
	TickInterval        string `yaml:"tick_interval"`
	ConsistencyInterval string `yaml:"consistency_interval"`
	SeedLimit           int    `yaml:"seed_limit"`
	ReseedLimit         int    `yaml:"reseed_limit"`
}

// DefaultConfig returns the stock pacing used in production.
func DefaultConfig() Config {
	return Config{
		TickInterval:        600 * time.Millisecond,
		ConsistencyInterval: 500 * time.Millisecond,
		SeedLimit:           50,
		ReseedLimit:         20,
	}
}

// LoadConfig loads config from yaml or env. A COLLAB_CONFIG yaml file
// takes precedence over env overrides; unset fields keep the stock
// values.
func LoadConfig() (Config, error) {
	cfg := Config{
		TickInterval:        getenvDurationDefault("COLLAB_TICK_INTERVAL", 600*time.Millisecond),
		ConsistencyInterval: getenvDurationDefault("CONSISTENCY_INTERVAL", 500*time.Millisecond),
		SeedLimit:           getenvIntDefault("COLLAB_SEED_LIMIT", 50),
		ReseedLimit:         getenvIntDefault("COLLAB_RESEED_LIMIT", 20),
	}

	if path := os.Getenv("COLLAB_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, err
		}
		if fc.TickInterval != "" {
			parsed, err := time.ParseDuration(fc.TickInterval)
			if err != nil {
				return cfg, fmt.Errorf("collab config: tick_interval: %w", err)
			}
			cfg.TickInterval = parsed
		}
		if fc.ConsistencyInterval != "" {
			parsed, err := time.ParseDuration(fc.ConsistencyInterval)
			if err != nil {
				return cfg, fmt.Errorf("collab config: consistency_interval: %w", err)
			}
			cfg.ConsistencyInterval = parsed
		}
		if fc.SeedLimit != 0 {
			cfg.SeedLimit = fc.SeedLimit
		}
		if fc.ReseedLimit != 0 {
			cfg.ReseedLimit = fc.ReseedLimit
		}
	}

	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("collab config: tick interval must be positive")
	}
	if cfg.ConsistencyInterval <= 0 {
		return cfg, fmt.Errorf("collab config: consistency interval must be positive")
	}
	if cfg.SeedLimit <= 0 || cfg.ReseedLimit <= 0 {
		return cfg, fmt.Errorf("collab config: sample limits must be positive")
	}
	return cfg, nil
}

func getenvDurationDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

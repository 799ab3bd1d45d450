package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	read func(*Config) error
}

// NewLoader creates a new configuration loader reading the process environment
func NewLoader() *Loader {
	return &Loader{
		read: func(cfg *Config) error {
			return cleanenv.ReadEnv(cfg)
		},
	}
}

// Load loads configuration using the cascading strategy:
// 1. Defaults from the env-default tags
// 2. Environment variables (a .env file is loaded by the binary)
// 3. Command line flags, see LoadWithOverrides
func (l *Loader) Load() (*Config, error) {
	cfg := new(Config)
	if err := l.read(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = defaultStoreDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	Env *string

	// Store overrides
	StoreDriver   *string
	StoreDir      *string
	StoreFilename *string

	// HTTP overrides
	HTTPHost *string
	HTTPPort *string

	// Task view overrides
	NearingDueDays *int
	Timezone       *string

	// Auth overrides
	TokenTTL *time.Duration
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Env != nil {
		config.Env = *overrides.Env
	}

	if overrides.StoreDriver != nil {
		config.Store.Driver = *overrides.StoreDriver
	}
	if overrides.StoreDir != nil {
		config.Store.Dir = *overrides.StoreDir
	}
	if overrides.StoreFilename != nil {
		config.Store.Filename = *overrides.StoreFilename
	}

	if overrides.HTTPHost != nil {
		config.HTTP.Host = *overrides.HTTPHost
	}
	if overrides.HTTPPort != nil {
		config.HTTP.Port = *overrides.HTTPPort
	}

	if overrides.NearingDueDays != nil {
		config.Tasks.NearingDueDays = *overrides.NearingDueDays
	}
	if overrides.Timezone != nil {
		config.Tasks.Timezone = *overrides.Timezone
	}

	if overrides.TokenTTL != nil {
		config.Auth.TokenTTL = *overrides.TokenTTL
	}
}

package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// DefaultSigningKey is only accepted outside production.
const DefaultSigningKey = "local-development-key"

// Config holds all configuration options for the task manager
type Config struct {
	Env        string `env:"TM_ENV" env-default:"local"`
	Store      StoreConfig
	HTTP       HTTPConfig
	Auth       AuthConfig
	Tasks      TasksConfig
	Validation ValidationConfig
}

// StoreConfig holds document store configuration
type StoreConfig struct {
	Driver      string `env:"TM_STORE_DRIVER" env-default:"sqlite"`
	Dir         string `env:"TM_STORE_DIR"`
	Filename    string `env:"TM_STORE_FILENAME" env-default:"tm.db"`
	FanOutLimit int    `env:"TM_STORE_FANOUT_LIMIT" env-default:"8"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Host            string        `env:"TM_HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"TM_HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"TM_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"TM_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"TM_HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// AuthConfig holds bearer token configuration
type AuthConfig struct {
	SigningKey string        `env:"TM_AUTH_SIGNING_KEY" env-default:"local-development-key"`
	Issuer     string        `env:"TM_AUTH_ISSUER" env-default:"task-manager"`
	TokenTTL   time.Duration `env:"TM_AUTH_TOKEN_TTL" env-default:"24h"`
}

// TasksConfig holds task view configuration
type TasksConfig struct {
	NearingDueDays int    `env:"TM_TASKS_NEARING_DUE_DAYS" env-default:"3"`
	Timezone       string `env:"TM_TASKS_TIMEZONE" env-default:"Local"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `env:"TM_VALIDATION_TITLE_MAX" env-default:"200"`
	DescriptionMaxLength int `env:"TM_VALIDATION_DESCRIPTION_MAX" env-default:"5000"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Env: EnvLocal,
		Store: StoreConfig{
			Driver:      DriverSQLite,
			Dir:         defaultStoreDir(),
			Filename:    "tm.db",
			FanOutLimit: 8,
		},
		HTTP: HTTPConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Auth: AuthConfig{
			SigningKey: DefaultSigningKey,
			Issuer:     "task-manager",
			TokenTTL:   24 * time.Hour,
		},
		Tasks: TasksConfig{
			NearingDueDays: 3,
			Timezone:       "Local",
		},
		Validation: ValidationConfig{
			TitleMaxLength:       200,
			DescriptionMaxLength: 5000,
		},
	}
}

func defaultStoreDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tm")
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Store.Filename == ":memory:" {
		return c.Store.Filename
	}
	return filepath.Join(c.Store.Dir, c.Store.Filename)
}

// Location returns the location in which task dates are compared
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Tasks.Timezone)
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return &ConfigError{Field: "env", Message: "must be one of local, dev, prod"}
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Dir == "" && c.Store.Filename != ":memory:" {
			return &ConfigError{Field: "store.dir", Message: "store directory cannot be empty"}
		}
		if c.Store.Filename == "" {
			return &ConfigError{Field: "store.filename", Message: "store filename cannot be empty"}
		}
	default:
		return &ConfigError{Field: "store.driver", Message: "must be sqlite or memory"}
	}

	if c.HTTP.Port == "" {
		return &ConfigError{Field: "http.port", Message: "port cannot be empty"}
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return &ConfigError{Field: "http.timeouts", Message: "read and write timeouts must be positive"}
	}

	if c.Auth.SigningKey == "" {
		return &ConfigError{Field: "auth.signing_key", Message: "signing key cannot be empty"}
	}
	if c.Env == EnvProd && c.Auth.SigningKey == DefaultSigningKey {
		return &ConfigError{Field: "auth.signing_key", Message: "the development signing key cannot be used in prod"}
	}
	if c.Auth.TokenTTL <= 0 {
		return &ConfigError{Field: "auth.token_ttl", Message: "token ttl must be positive"}
	}

	if c.Tasks.NearingDueDays < 1 {
		return &ConfigError{Field: "tasks.nearing_due_days", Message: "must be at least 1"}
	}
	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "tasks.timezone", Message: err.Error()}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "must be at least 1"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"task-manager/internal/store"
	"task-manager/internal/store/memory"
	"task-manager/internal/store/sqlite"
)

const storeDirPermissions = 0o755

// CreateStore creates the document store selected by the configuration
func CreateStore(cfg *Config, logger zerolog.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case DriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on exit")
		return memory.New(), nil

	case DriverSQLite:
		dbPath := cfg.GetDatabasePath()
		if dbPath != ":memory:" {
			if err := os.MkdirAll(cfg.Store.Dir, storeDirPermissions); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}

		s, err := sqlite.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Info().
			Str("path", dbPath).
			Msg("opened sqlite store")
		return s, nil
	}

	return nil, &ConfigError{Field: "store.driver", Message: fmt.Sprintf("unknown driver %q", cfg.Store.Driver)}
}

// CreateTestStore creates an in-memory SQLite store for testing
func CreateTestStore() (store.Store, error) {
	s, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return s, nil
}

package backend

import (
	"context"
	"fmt"
	"log/slog"

	applog "resto/internal/log"
	"resto/internal/store"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	if config.SQLiteDBPath == "" {
		return nil, fmt.Errorf("SQLite database path is required for sqlite backend")
	}

	kv, err := store.NewSQLite(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("SQLite backend ready",
		applog.FieldComponent, applog.ComponentBackend,
		applog.FieldBackend, SQLiteBackend.String(),
		"path", config.SQLiteDBPath)

	return &Result{
		Store:   kv,
		Cleanup: kv.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	f.logger.Info("Memory backend ready",
		applog.FieldComponent, applog.ComponentBackend,
		applog.FieldBackend, MemoryBackend.String())

	return &Result{
		Store:   store.NewMemory(),
		Cleanup: nil,
	}, nil
}

// FromAppConfig converts application config values to backend config
func FromAppConfig(dataBackend, sqlitePath string) (Config, error) {
	backendType := BackendType(dataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", dataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: sqlitePath,
	}, nil
}

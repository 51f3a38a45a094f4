package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/roomieboard/internal/config"
	"github.com/mmynk/roomieboard/internal/storage"
	"github.com/mmynk/roomieboard/internal/storage/postgres"
	"github.com/mmynk/roomieboard/internal/storage/sqlite"
)

// OpenStore opens the storage backend selected by cfg.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.StorageDriver, "database", cfg.DBPath)
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.StorageDriver)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

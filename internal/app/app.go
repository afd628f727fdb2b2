// Package app wires configuration, logging, persistence and the task store
// together for the binary.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/taskcal/internal/storage"
	"github.com/sandeepkv93/taskcal/internal/store"
)

type App struct {
	Config  Config
	Logger  zerolog.Logger
	Store   *store.Store
	Adapter *storage.Adapter

	blobs storage.BlobStore
}

// Open builds the configured blob store and loads the task collection from
// it. A damaged payload never fails startup; only an unusable backend does.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*App, error) {
	blobs, err := openBlobs(ctx, cfg)
	if err != nil {
		return nil, err
	}
	adapter := storage.NewAdapter(blobs, logger)
	tasks := adapter.Load(ctx)
	logger.Info().
		Str("storage", cfg.Storage).
		Str("data_dir", cfg.DataDir).
		Int("tasks", len(tasks)).
		Msg("opened task store")

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store.New(adapter, tasks, store.WithLogger(logger)),
		Adapter: adapter,
		blobs:   blobs,
	}, nil
}

func (a *App) Close() error {
	return a.blobs.Close()
}

func openBlobs(ctx context.Context, cfg Config) (storage.BlobStore, error) {
	switch cfg.Storage {
	case StorageSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("app: create data dir: %w", err)
		}
		blobs, err := storage.OpenSQLite(ctx, filepath.Join(cfg.DataDir, "taskcal.db"))
		if err != nil {
			return nil, fmt.Errorf("app: open sqlite storage: %w", err)
		}
		return blobs, nil
	default:
		blobs, err := storage.NewFileBlobStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("app: open file storage: %w", err)
		}
		return blobs, nil
	}
}

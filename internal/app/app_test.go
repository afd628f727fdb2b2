package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/taskcal/internal/storage"
	"github.com/sandeepkv93/taskcal/internal/store"
)

func TestOpenPersistsAcrossRestarts(t *testing.T) {
	for _, backend := range []string{StorageFile, StorageSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := Config{Env: EnvProd, Storage: backend, DataDir: filepath.Join(t.TempDir(), "data"), DefaultView: "month"}
			ctx := context.Background()

			first, err := Open(ctx, cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			created, err := first.Store.Create(ctx, store.CreateInput{Title: "Buy milk"})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if err := first.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			second, err := Open(ctx, cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer second.Close()
			got, ok := second.Store.Get(created.ID)
			if !ok || got != created {
				t.Fatalf("expected %+v after reopen, got %+v (found=%v)", created, got, ok)
			}
		})
	}
}

func TestOpenWithMalformedPayloadStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, storage.StorageKey+".json"), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	a, err := Open(context.Background(), Config{Env: EnvProd, Storage: StorageFile, DataDir: dir}, zerolog.New(&logs))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()
	if a.Store.Len() != 0 {
		t.Fatalf("expected empty store, got %d tasks", a.Store.Len())
	}
	if !strings.Contains(logs.String(), "malformed") {
		t.Fatalf("expected a malformed payload warning, got %q", logs.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	cases := map[string]zerolog.Level{
		EnvProd:  zerolog.InfoLevel,
		EnvDev:   zerolog.DebugLevel,
		EnvLocal: zerolog.TraceLevel,
	}
	for env, want := range cases {
		var buf bytes.Buffer
		if got := newLogger(env, &buf).GetLevel(); got != want {
			t.Fatalf("%s: expected %s, got %s", env, want, got)
		}
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskcal.log")
	logger, closer, err := NewLogger(Config{Env: EnvProd, LogFile: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"message":"hello"`) {
		t.Fatalf("unexpected log output: %s", raw)
	}
}

package postercache_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"movierec/internal/logging"
	"movierec/internal/postercache"
)

func openStore(t *testing.T, path string) *postercache.Store {
	t.Helper()
	store, err := postercache.Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTripAndPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "posters.db")
	store := openStore(t, path)

	if _, ok := store.Get("Heat"); ok {
		t.Fatal("expected empty cache")
	}
	store.Set("Heat", "https://img/heat.jpg")
	store.Set("Obscure", "")
	store.Set("Heat", "https://img/heat2.jpg")

	if url, ok := store.Get("Heat"); !ok || url != "https://img/heat2.jpg" {
		t.Fatalf("unexpected entry %q %v", url, ok)
	}
	if url, ok := store.Get("Obscure"); !ok || url != "" {
		t.Fatalf("expected cached miss, got %q %v", url, ok)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened := openStore(t, path)
	stats, err := reopened.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Entries != 2 || stats.Misses != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	removed, err := reopened.Clear(context.Background())
	if err != nil || removed != 2 {
		t.Fatalf("Clear = %d, %v", removed, err)
	}
	if _, ok := reopened.Get("Heat"); ok {
		t.Fatal("expected cache to be empty after Clear")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posters.db")
	store := openStore(t, path)
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	_ = db.Close()

	if _, err := postercache.Open(path, nil); !errors.Is(err, postercache.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := postercache.Open(" ", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}

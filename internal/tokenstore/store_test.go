package tokenstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaekwang-park/taskhub/internal/tokenstore"
)

func exerciseStore(t *testing.T, store tokenstore.Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, tokenstore.ErrNoToken) {
		t.Fatalf("expected ErrNoToken on empty store, got %v", err)
	}

	if err := store.Save(ctx, "first"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, "second"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != "second" {
		t.Errorf("expected second, got %q", got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, tokenstore.ErrNoToken) {
		t.Errorf("expected ErrNoToken after clear, got %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Errorf("clearing an empty store should succeed, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, tokenstore.NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	exerciseStore(t, tokenstore.NewFile(path))
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := tokenstore.NewFile(path)

	if err := store.Save(context.Background(), "secret"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

func TestFileStore_BlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, err := tokenstore.NewFile(path).Load(context.Background())
	if !errors.Is(err, tokenstore.ErrNoToken) {
		t.Errorf("expected ErrNoToken for blank file, got %v", err)
	}
}

// TestPostgresStore runs only when a database is provided.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TASKHUB_TEST_DSN")
	if dsn == "" {
		t.Skip("TASKHUB_TEST_DSN not set")
	}

	db, err := tokenstore.NewDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	store := tokenstore.NewPostgres(db, "test-"+t.Name())
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	store.Clear(context.Background())

	exerciseStore(t, store)
}

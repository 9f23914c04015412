package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

// exerciseStorage runs the same contract checks against every backend
func exerciseStorage(t *testing.T, storage Storage) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := storage.Get(ctx, KeyToken); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := storage.Set(ctx, KeyToken, "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := storage.Set(ctx, KeyToken, "second"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if err := storage.Set(ctx, KeyUsername, "ada"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := storage.Get(ctx, KeyToken)
	if err != nil || !ok || got != "second" {
		t.Errorf("Get() = %q, %v, %v; want second", got, ok, err)
	}

	if err := storage.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := storage.Get(ctx, KeyToken); ok {
		t.Error("key still present after delete")
	}
	if err := storage.Delete(ctx, KeyToken); err != nil {
		t.Errorf("deleting an absent key should succeed: %v", err)
	}

	if got, ok, _ := storage.Get(ctx, KeyUsername); !ok || got != "ada" {
		t.Errorf("unrelated key lost: %q, %v", got, ok)
	}
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	storage := NewFileStorage(path)
	exerciseStorage(t, storage)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("expected mode 0600, got %o", mode)
	}

	// A second handle on the same path sees the persisted values
	reopened := NewFileStorage(path)
	if got, ok, _ := reopened.Get(context.Background(), KeyUsername); !ok || got != "ada" {
		t.Errorf("reopened Get() = %q, %v", got, ok)
	}
}

func TestFileStorageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := NewFileStorage(path).Get(context.Background(), KeyToken)
	if !errors.Is(err, ErrCorruptStorage) {
		t.Errorf("expected ErrCorruptStorage, got %v", err)
	}
}

func TestKeyringStorage(t *testing.T) {
	keyring.MockInit()
	exerciseStorage(t, NewKeyringStorage(""))
}

func TestKeyringStorageUnavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("no keychain"))
	t.Cleanup(keyring.MockInit)

	storage := NewKeyringStorage("test.service")
	if err := storage.Set(context.Background(), KeyToken, "x"); err == nil {
		t.Error("expected error when keychain is unavailable")
	}
	if _, _, err := storage.Get(context.Background(), KeyToken); err == nil {
		t.Error("expected error when keychain is unavailable")
	}
}

func TestSQLiteStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	storage, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	exerciseStorage(t, storage)
	if err := storage.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if got, ok, _ := reopened.Get(ctx, KeyUsername); !ok || got != "ada" {
		t.Errorf("reopened Get() = %q, %v", got, ok)
	}
}

func TestSessionOverFileStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := New(ctx, NewFileStorage(path))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Login(ctx, "ada@example.com", mintToken(t, map[string]any{"userId": "u-9"})); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	restored, err := New(ctx, NewFileStorage(path))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if restored.UserID() != "u-9" || restored.Username() != "ada@example.com" {
		t.Errorf("unexpected restored identity %+v", restored.Identity())
	}
}

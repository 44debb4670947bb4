// ABOUTME: Tests for persistent key/value storage
// ABOUTME: Validates file round trips, corrupt files, permissions, and XDG defaults

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorageEmpty(t *testing.T) {
	fs := NewFile(t.TempDir())

	_, ok, err := fs.Get("missing")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("expected missing key to be absent")
	}
}

func TestFileStorageSetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	fs := NewFile(tmpDir)

	if err := fs.Set("token", "abc"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// A fresh instance reads what the first one wrote
	other := NewFile(tmpDir)
	value, ok, err := other.Get("token")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok || value != "abc" {
		t.Errorf("expected abc, got %q (present=%t)", value, ok)
	}
}

func TestFileStorageRemove(t *testing.T) {
	fs := NewFile(t.TempDir())
	fs.Set("a", "1")
	fs.Set("b", "2")

	if err := fs.Remove("a"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, ok, _ := fs.Get("a"); ok {
		t.Error("expected a to be removed")
	}
	if v, ok, _ := fs.Get("b"); !ok || v != "2" {
		t.Error("expected b to survive removal of a")
	}

	// Removing again is a no-op
	if err := fs.Remove("a"); err != nil {
		t.Errorf("expected idempotent Remove, got %v", err)
	}
}

func TestFileStorageCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, FileName), []byte("not json"), 0600)

	fs := NewFile(tmpDir)
	if _, ok, err := fs.Get("token"); err != nil || ok {
		t.Errorf("expected corrupt file to read as empty, got ok=%t err=%v", ok, err)
	}

	if err := fs.Set("token", "abc"); err != nil {
		t.Fatalf("Set() over corrupt file error: %v", err)
	}
	if v, _, _ := fs.Get("token"); v != "abc" {
		t.Errorf("expected abc after rewrite, got %q", v)
	}
}

func TestFileStoragePermissions(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested")
	fs := NewFile(tmpDir)

	if err := fs.Set("token", "abc"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	info, err := os.Stat(fs.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected file mode 0600, got %o", perm)
	}
}

func TestFileStorageNoConfigDir(t *testing.T) {
	fs := NewFile("")

	_, _, err := fs.Get("token")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if err := fs.Set("token", "abc"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable on Set, got %v", err)
	}
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigDir(); got != "/tmp/xdg/meu-secretario" {
		t.Errorf("expected /tmp/xdg/meu-secretario, got %s", got)
	}
}

func TestMemoryStorage(t *testing.T) {
	m := NewMemory()
	m.Set("k", "v")

	if v, ok, _ := m.Get("k"); !ok || v != "v" {
		t.Errorf("expected v, got %q", v)
	}
	m.Remove("k")
	if _, ok, _ := m.Get("k"); ok {
		t.Error("expected k to be removed")
	}
}

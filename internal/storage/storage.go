// ABOUTME: Persistent key/value storage standing in for browser local storage
// ABOUTME: File-backed JSON store in the XDG config directory plus an in-memory variant

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the name of the storage file inside the config directory
const FileName = "storage.json"

// ErrUnavailable is returned when the storage medium cannot be read or written
var ErrUnavailable = errors.New("storage unavailable")

// Storage is a flat string key/value medium
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "meu-secretario")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "meu-secretario")
}

// FileStorage keeps all entries in a single JSON object on disk
type FileStorage struct {
	configDir string
	mu        sync.Mutex
}

// NewFile creates a file-backed storage rooted at configDir
func NewFile(configDir string) *FileStorage {
	return &FileStorage{configDir: configDir}
}

// Path returns the location of the storage file
func (fs *FileStorage) Path() string {
	return filepath.Join(fs.configDir, FileName)
}

// Get returns the value stored under key
func (fs *FileStorage) Get(key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.load()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

// Set stores value under key
func (fs *FileStorage) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return fs.save(entries)
}

// Remove deletes key; removing a missing key is not an error
func (fs *FileStorage) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return fs.save(entries)
}

// load reads the storage file. Caller must hold fs.mu.
func (fs *FileStorage) load() (map[string]string, error) {
	if fs.configDir == "" {
		return nil, fmt.Errorf("%w: no config directory", ErrUnavailable)
	}

	data, err := os.ReadFile(fs.Path())
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		// Invalid JSON, start fresh
		slog.Warn("Storage file is corrupt, ignoring contents", "path", fs.Path(), "error", err)
		return map[string]string{}, nil
	}
	return entries, nil
}

// save writes entries through a temp file and rename. Caller must hold fs.mu.
func (fs *FileStorage) save(entries map[string]string) error {
	if err := os.MkdirAll(fs.configDir, 0700); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.configDir, FileName+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmpName, fs.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// MemoryStorage is a map-backed Storage, used for tests and ephemeral runs
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemory creates an empty in-memory storage
func NewMemory() *MemoryStorage {
	return &MemoryStorage{entries: map[string]string{}}
}

// Get returns the value stored under key
func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[key]
	return value, ok, nil
}

// Set stores value under key
func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

// Remove deletes key
func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

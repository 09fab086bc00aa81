// Package storage provides the durable string key/value stores that back
// user preferences.
//
// Absence of a key is the canonical "unset" state: Get reports ok=false and
// Remove on a missing key is not an error.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a synchronous string-keyed, string-valued store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key succeeds.
	Remove(key string) error
	// Close releases any resources held by the store.
	Close() error
}

// Storage drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("storage is closed")

	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Open opens a store for driver at path. An empty path selects DefaultPath.
func Open(driver, path string) (Store, error) {
	if driver == DriverMemory {
		return NewMemoryStore(), nil
	}

	if path == "" {
		p, err := DefaultPath(driver)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch driver {
	case DriverFile, "":
		return OpenFileStore(path)
	case DriverSQLite:
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// DefaultPath returns the default location of the preference store for driver.
func DefaultPath(driver string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	name := "preferences.json"
	if driver == DriverSQLite {
		name = "preferences.db"
	}
	return filepath.Join(dir, name), nil
}

// DataDir returns the application data directory. EZFRAME_HOME overrides
// the user config directory.
func DataDir() (string, error) {
	if home := os.Getenv("EZFRAME_HOME"); home != "" {
		return home, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "ezframe"), nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/ezframe/internal/storage"
)

type opener func(t *testing.T, path string) storage.Store

func backends() map[string]struct {
	file string
	open opener
} {
	return map[string]struct {
		file string
		open opener
	}{
		"file": {"prefs.json", func(t *testing.T, path string) storage.Store {
			s, err := storage.OpenFileStore(path)
			require.NoError(t, err)
			return s
		}},
		"sqlite": {"prefs.db", func(t *testing.T, path string) storage.Store {
			s, err := storage.OpenSQLiteStore(path)
			require.NoError(t, err)
			return s
		}},
	}
}

func TestStoreRoundTripAndReopen(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), b.file)

			s := b.open(t, path)
			_, ok, err := s.Get("advancedMode")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("advancedMode", "true"))
			require.NoError(t, s.Set("advancedMode", "false"))
			require.NoError(t, s.Set("specFilePath", `"/tmp/spec.json"`))
			require.NoError(t, s.Close())

			reopened := b.open(t, path)
			defer reopened.Close()

			v, ok, err := reopened.Get("advancedMode")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "false", v)

			v, ok, err = reopened.Get("specFilePath")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `"/tmp/spec.json"`, v)
		})
	}
}

func TestStoreRemove(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), b.file)
			s := b.open(t, path)
			defer s.Close()

			require.NoError(t, s.Remove("missing"))

			require.NoError(t, s.Set("specFilePath", `"/a"`))
			require.NoError(t, s.Remove("specFilePath"))

			_, ok, err := s.Get("specFilePath")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	s := storage.NewMemoryStore()
	require.NoError(t, s.Close())

	_, _, err := s.Get("k")
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, s.Set("k", "v"), storage.ErrClosed)
	assert.ErrorIs(t, s.Remove("k"), storage.ErrClosed)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := storage.OpenFileStore(path)
	assert.Error(t, err)
}

func TestFileStoreLeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := storage.OpenFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("isDarkMode", "true"))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestOpenDrivers(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.Open(storage.DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, s)

	s, err = storage.Open(storage.DriverFile, filepath.Join(dir, "p.json"))
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, s)

	_, err = storage.Open("redis", filepath.Join(dir, "p"))
	assert.ErrorIs(t, err, storage.ErrUnknownDriver)
}

func TestDefaultPathHonoursHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EZFRAME_HOME", dir)

	p, err := storage.DefaultPath(storage.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "preferences.db"), p)

	p, err = storage.DefaultPath(storage.DriverFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "preferences.json"), p)
}

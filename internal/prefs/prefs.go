// Package prefs holds the user preferences and keeps them in step with a
// durable storage.Store.
//
// Every setter writes storage first and only then updates memory, so a
// failed write leaves the in-memory value untouched.
package prefs

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/storage"
)

// Storage keys. Values are JSON-encoded primitives.
const (
	KeyAdvancedMode = "advancedMode"
	KeyDarkMode     = "isDarkMode"
	KeySpecFilePath = "specFilePath"
)

// Store is the preference state shared by every UI surface.
type Store struct {
	mu        sync.RWMutex
	kv        storage.Store
	state     models.Preferences
	observers []func(models.Preferences)
	logger    zerolog.Logger
}

// Load reads the persisted preferences from kv. Missing keys keep their
// defaults; values that cannot be decoded are logged and ignored.
func Load(kv storage.Store, logger zerolog.Logger) (*Store, error) {
	s := &Store{kv: kv, logger: logger}

	if err := s.loadBool(KeyAdvancedMode, &s.state.AdvancedMode); err != nil {
		return nil, err
	}
	if err := s.loadBool(KeyDarkMode, &s.state.DarkMode); err != nil {
		return nil, err
	}
	if err := s.loadString(KeySpecFilePath, &s.state.SpecFilePath); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) loadBool(key string, dst *bool) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	var v bool
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warn().Str("key", key).Str("value", raw).Msg("ignoring undecodable preference")
		return nil
	}
	*dst = v
	return nil
}

func (s *Store) loadString(key string, dst *string) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warn().Str("key", key).Str("value", raw).Msg("ignoring undecodable preference")
		return nil
	}
	*dst = v
	return nil
}

// Snapshot returns a copy of the current preferences.
func (s *Store) Snapshot() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) AdvancedMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AdvancedMode
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DarkMode
}

// SpecFilePath returns the configured spec file path, ok is false when unset.
func (s *Store) SpecFilePath() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SpecFilePath, s.state.SpecFilePath != ""
}

// OnChange registers fn to be called with the new preferences after every
// committed change.
func (s *Store) OnChange(fn func(models.Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// ToggleAdvancedMode flips advanced mode and persists it, returning the new value.
func (s *Store) ToggleAdvancedMode() (bool, error) {
	return s.toggle(KeyAdvancedMode, func(p *models.Preferences) *bool { return &p.AdvancedMode })
}

// ToggleDarkMode flips dark mode and persists it, returning the new value.
func (s *Store) ToggleDarkMode() (bool, error) {
	return s.toggle(KeyDarkMode, func(p *models.Preferences) *bool { return &p.DarkMode })
}

func (s *Store) toggle(key string, field func(*models.Preferences) *bool) (bool, error) {
	s.mu.Lock()
	next := !*field(&s.state)
	if err := s.kv.Set(key, encode(next)); err != nil {
		s.mu.Unlock()
		return !next, fmt.Errorf("failed to persist %s: %w", key, err)
	}
	*field(&s.state) = next
	snapshot, observers := s.state, s.observers
	s.mu.Unlock()

	s.logger.Debug().Str("key", key).Bool("value", next).Msg("preference changed")
	notify(observers, snapshot)
	return next, nil
}

// SetSpecFilePath stores path, or removes the stored entry when path is empty.
func (s *Store) SetSpecFilePath(path string) error {
	s.mu.Lock()
	var err error
	if path == "" {
		err = s.kv.Remove(KeySpecFilePath)
	} else {
		err = s.kv.Set(KeySpecFilePath, encode(path))
	}
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist %s: %w", KeySpecFilePath, err)
	}
	s.state.SpecFilePath = path
	snapshot, observers := s.state, s.observers
	s.mu.Unlock()

	s.logger.Debug().Str("key", KeySpecFilePath).Str("value", path).Msg("preference changed")
	notify(observers, snapshot)
	return nil
}

func notify(observers []func(models.Preferences), p models.Preferences) {
	for _, fn := range observers {
		fn(p)
	}
}

func encode(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

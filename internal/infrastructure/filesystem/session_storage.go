// Package filesystem provides file-backed implementations of application ports.
package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Ensure interface compliance
var _ ports.SessionStorage = (*SessionStorage)(nil)

// SessionStorage keeps one JSON file per session so that separate processes
// sharing a session id see the same items, the way browser tabs share
// session storage.
type SessionStorage struct {
	path  string
	quota int
	mu    sync.Mutex
}

// NewSessionStorage creates storage for a session under dir.
// A quota of 0 means unlimited.
func NewSessionStorage(dir string, session values.SessionID, quotaBytes int) *SessionStorage {
	return &SessionStorage{
		path:  filepath.Join(dir, "session-"+session.String()+".json"),
		quota: quotaBytes,
	}
}

// DefaultDir returns the directory used when none is configured.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "stitch")
}

// Path returns the backing file.
func (s *SessionStorage) Path() string {
	return s.path
}

// GetItem returns the value stored under key.
func (s *SessionStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *SessionStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value

	if s.quota > 0 && size(items) > s.quota {
		return ports.ErrQuotaExceeded
	}
	return s.write(items)
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *SessionStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(items)
}

// Clear removes the session file.
func (s *SessionStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session storage: %w", err)
	}
	return nil
}

func (s *SessionStorage) read() (map[string]string, error) {
	//nolint:gosec // G304: path is derived from a parsed session uuid
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session storage: %w", err)
	}

	items := make(map[string]string)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse session storage: %w", err)
	}
	return items, nil
}

func (s *SessionStorage) write(items map[string]string) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode session storage: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to commit session storage: %w", err)
	}
	return nil
}

func size(items map[string]string) int {
	n := 0
	for k, v := range items {
		n += len(k) + len(v)
	}
	return n
}

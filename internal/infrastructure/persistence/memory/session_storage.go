// Package memory provides in-memory implementations of application ports.
package memory

import (
	"sync"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Ensure interface compliance
var _ ports.SessionStorage = (*SessionStorage)(nil)

// SessionStorage is key/value storage scoped to one session.
// Useful for testing and single-process use.
type SessionStorage struct {
	items    map[string]string
	session  values.SessionID
	quota    int
	used     int
	disabled bool
	mu       sync.RWMutex
}

// NewSessionStorage creates storage for a session. A quota of 0 means unlimited.
func NewSessionStorage(session values.SessionID, quotaBytes int) *SessionStorage {
	return &SessionStorage{
		items:   make(map[string]string),
		session: session,
		quota:   quotaBytes,
	}
}

// Session returns the session this storage belongs to.
func (s *SessionStorage) Session() values.SessionID {
	return s.session
}

// Disable makes every subsequent call fail, like storage blocked by the browser.
func (s *SessionStorage) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = true
}

// GetItem returns the value stored under key.
func (s *SessionStorage) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.disabled {
		return "", false, ports.ErrStorageDisabled
	}
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *SessionStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return ports.ErrStorageDisabled
	}

	used := s.used - entrySize(key, s.items[key], s.has(key)) + entrySize(key, value, true)
	if s.quota > 0 && used > s.quota {
		return ports.ErrQuotaExceeded
	}
	s.items[key] = value
	s.used = used
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *SessionStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return ports.ErrStorageDisabled
	}
	if s.has(key) {
		s.used -= entrySize(key, s.items[key], true)
		delete(s.items, key)
	}
	return nil
}

func (s *SessionStorage) has(key string) bool {
	_, ok := s.items[key]
	return ok
}

func entrySize(key, value string, present bool) int {
	if !present {
		return 0
	}
	return len(key) + len(value)
}

// Package values contains domain value objects that encapsulate
// primitive types with validation.
package values

import (
	"fmt"

	"github.com/google/uuid"
)

// SessionID scopes ephemeral storage to one browsing session.
type SessionID struct {
	value uuid.UUID
}

// NewSessionID creates a new random session ID
func NewSessionID() SessionID {
	return SessionID{value: uuid.New()}
}

// ParseSessionID parses a string into a SessionID
func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, fmt.Errorf("invalid session ID: %w", err)
	}
	return SessionID{value: id}, nil
}

// MustParseSessionID parses a string or panics (for tests only)
func MustParseSessionID(s string) SessionID {
	id, err := ParseSessionID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation
func (s SessionID) String() string {
	return s.value.String()
}

// IsZero returns true if this is the zero value
func (s SessionID) IsZero() bool {
	return s.value == uuid.Nil
}

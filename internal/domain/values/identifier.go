package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SubjectID identifies the product or variant a configuration applies to.
// Enforces non-empty, trimmed identifiers.
type SubjectID struct {
	value string
}

// NewSubjectID creates a SubjectID with validation
func NewSubjectID(id string) (SubjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return SubjectID{}, fmt.Errorf("subject id cannot be empty")
	}
	return SubjectID{value: id}, nil
}

// MustNewSubjectID creates a SubjectID or panics
func MustNewSubjectID(id string) SubjectID {
	s, err := NewSubjectID(id)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the string representation
func (s SubjectID) String() string {
	return s.value
}

// IsEmpty returns true if this is the zero value
func (s SubjectID) IsEmpty() bool {
	return s.value == ""
}

// Equals checks if two subject ids are equal
func (s SubjectID) Equals(other SubjectID) bool {
	return s.value == other.value
}

// MarshalJSON implements json.Marshaler
func (s SubjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (s *SubjectID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid subject id JSON: %w", err)
	}
	id, err := NewSubjectID(raw)
	if err != nil {
		return err
	}
	*s = id
	return nil
}

// LineReference identifies an existing cart line (the line key).
type LineReference struct {
	value string
}

// NewLineReference creates a LineReference with validation
func NewLineReference(ref string) (LineReference, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return LineReference{}, fmt.Errorf("line reference cannot be empty")
	}
	return LineReference{value: ref}, nil
}

// MustNewLineReference creates a LineReference or panics
func MustNewLineReference(ref string) LineReference {
	l, err := NewLineReference(ref)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns the string representation
func (l LineReference) String() string {
	return l.value
}

// IsEmpty returns true if this is the zero value
func (l LineReference) IsEmpty() bool {
	return l.value == ""
}

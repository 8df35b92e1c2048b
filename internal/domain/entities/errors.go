package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownGroup is returned when a selection names a group outside the catalog.
	ErrUnknownGroup = errors.New("unknown option group")
	// ErrUnknownValue is returned when a selection names a value outside its group.
	ErrUnknownValue = errors.New("unknown option value")
)

// UnknownOptionError indicates a selection that does not resolve against the catalog.
type UnknownOptionError struct {
	Err   error
	Group string
	Value string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%v: %s=%s", e.Err, e.Group, e.Value)
}

func (e *UnknownOptionError) Unwrap() error {
	return e.Err
}

package apperrors

import (
	"errors"
	"fmt"

	"github.com/reglet-dev/stitch/internal/domain/values"
)

// ErrSubmissionInFlight is returned when a submit is attempted while one is running.
var ErrSubmissionInFlight = errors.New("submission already in progress")

// ErrInvalidConfiguration is returned when submitting a configuration that fails validation.
var ErrInvalidConfiguration = errors.New("configuration is not valid")

// ValidationError describes a Validation Engine result.
// It is never returned from a mutation, only used to report why submission is gated.
type ValidationError struct {
	Reason values.InvalidReason
	Group  string
}

func (e *ValidationError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Reason, e.Group)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidConfiguration).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// PersistenceError indicates snapshot storage failed. It is logged, never propagated.
type PersistenceError struct {
	Cause error
	Op    string
	Key   string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for %s: %v", e.Op, e.Key, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// NewPersistenceError creates a new persistence error.
func NewPersistenceError(op, key string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Key: key, Cause: cause}
}

// CartSubmissionError indicates the cart service rejected a submission
// or could not be reached.
type CartSubmissionError struct {
	Cause       error
	Operation   string // add, change or retrofit
	Description string
	Status      int
}

func (e *CartSubmissionError) Error() string {
	msg := fmt.Sprintf("cart %s failed", e.Operation)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *CartSubmissionError) Unwrap() error {
	return e.Cause
}

// NewCartSubmissionError creates a new cart submission error.
func NewCartSubmissionError(operation string, status int, description string, cause error) *CartSubmissionError {
	return &CartSubmissionError{
		Operation:   operation,
		Status:      status,
		Description: description,
		Cause:       cause,
	}
}

// UserMessage returns the text shown next to the submit control.
func (e *CartSubmissionError) UserMessage() string {
	if e.Description != "" {
		return e.Description
	}
	return "We couldn't update your cart. Please try again."
}

// ErrNothingToSubmit is returned when personalization is off, so there is no plan to apply.
var ErrNothingToSubmit = errors.New("personalization is not enabled")

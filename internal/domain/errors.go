package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// This is usually wrapped by a ValidationError carrying the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrNotFound is returned when a referenced word, user or progress record is missing.
	ErrNotFound = errors.New("not found")

	// ErrStateInvariant is returned when a progress record is in a state the
	// scheduling rules do not define. It signals corrupted data, not bad input.
	ErrStateInvariant = errors.New("progress state invariant violated")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a rejected field together with the underlying cause.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", e.Err, e.Field, e.Message)
}

// Unwrap exposes the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError. A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr) || errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidID)
}

// NotFoundError names the kind and identifier of a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Unwrap returns ErrNotFound so callers can match with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// StateInvariantError reports a transition requested from an undefined pool/phase.
type StateInvariantError struct {
	Operation     string
	Pool          Pool
	InReviewPhase bool
}

// Error implements the error interface.
func (e *StateInvariantError) Error() string {
	return fmt.Sprintf("%s: cannot %s from pool %q (review phase: %t)",
		ErrStateInvariant, e.Operation, e.Pool, e.InReviewPhase)
}

// Unwrap returns ErrStateInvariant.
func (e *StateInvariantError) Unwrap() error {
	return ErrStateInvariant
}

// NewStateInvariantError creates a StateInvariantError.
func NewStateInvariantError(operation string, pool Pool, inReview bool) *StateInvariantError {
	return &StateInvariantError{Operation: operation, Pool: pool, InReviewPhase: inReview}
}

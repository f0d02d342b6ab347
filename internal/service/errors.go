package service

import (
	"fmt"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// Common service errors, checked by callers with errors.Is. Each wraps
// domain.ErrValidation so the API layer answers 400 Bad Request.
var (
	// ErrNotInP0 indicates a learn completion named a word that already has progress.
	ErrNotInP0 = fmt.Errorf("%w: word is not in P0", domain.ErrValidation)

	// ErrNotRemedial indicates a review operation named a word outside R1..R5.
	ErrNotRemedial = fmt.Errorf("%w: word is not in a remedial pool", domain.ErrValidation)

	// ErrEmptyBatch indicates a request carried no word identifiers.
	ErrEmptyBatch = fmt.Errorf("%w: no words provided", domain.ErrValidation)

	// ErrWrongPhase indicates a remedial word was sent to the step of the
	// other phase: a review-phase word answered as a retest, or a
	// practice-phase word marked as reviewed.
	ErrWrongPhase = fmt.Errorf("%w: word is not in the expected review phase", domain.ErrValidation)

	// ErrDuplicateWord indicates the same word appeared twice in one batch.
	ErrDuplicateWord = fmt.Errorf("%w: word appears more than once", domain.ErrValidation)
)

// ServiceError wraps a failure with the operation that produced it.
// The wrapped error keeps its identity for errors.Is / errors.As, so the API
// layer can still map a not-found or validation cause to its status code.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

package srs

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// ErrNilProgress is returned when a transition is requested without a record.
var ErrNilProgress = errors.New("word progress cannot be nil")

// Service is the pool state machine. Every method is pure: it returns a new
// record and never mutates its input.
type Service interface {
	// Learn creates the P1 record for a word leaving P0.
	Learn(userID, wordID uuid.UUID, now time.Time) (*domain.WordProgress, error)

	// Answer applies a practice or remedial-retest answer.
	Answer(
		progress *domain.WordProgress,
		correct bool,
		now time.Time,
	) (*domain.WordProgress, Outcome, error)

	// CompleteReview finishes the review display step of a remedial word.
	CompleteReview(progress *domain.WordProgress, now time.Time) (*domain.WordProgress, error)

	// Params exposes the schedule table in use.
	Params() *Params
}

type defaultService struct {
	params *Params
}

var _ Service = (*defaultService)(nil)

// NewDefaultService creates a state machine with the default schedule table.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a state machine with a custom schedule table.
// It returns an error if the table is invalid.
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		params = NewDefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultService{params: params}, nil
}

func (s *defaultService) Learn(userID, wordID uuid.UUID, now time.Time) (*domain.WordProgress, error) {
	p := newLearnedProgress(userID, wordID, now, s.params)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *defaultService) Answer(
	progress *domain.WordProgress,
	correct bool,
	now time.Time,
) (*domain.WordProgress, Outcome, error) {
	if progress == nil {
		return nil, Outcome{}, ErrNilProgress
	}
	return calculateAnswer(progress, correct, now, s.params)
}

func (s *defaultService) CompleteReview(
	progress *domain.WordProgress,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}
	return calculateReviewCompletion(progress, now, s.params)
}

func (s *defaultService) Params() *Params {
	return s.params
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Progress validation errors.
var (
	ErrEmptyProgressUserID = errors.New("progress user ID cannot be empty")
	ErrEmptyProgressWordID = errors.New("progress word ID cannot be empty")
	ErrInvalidProgressPool = errors.New("progress pool must be P1..P6 or R1..R5")
	ErrReviewPhaseOutsideR = errors.New("review phase is only valid in a remedial pool")
)

// WordProgress tracks one user's position in the schedule for one word.
// A missing record means the word is still in P0.
type WordProgress struct {
	UserID              uuid.UUID  `json:"user_id" db:"user_id"`
	WordID              uuid.UUID  `json:"word_id" db:"word_id"`
	Pool                Pool       `json:"pool" db:"pool"`
	InReviewPhase       bool       `json:"is_in_review_phase" db:"is_in_review_phase"`
	LearnedAt           time.Time  `json:"learned_at" db:"learned_at"`
	LastPracticeTime    time.Time  `json:"last_practice_time" db:"last_practice_time"`
	NextAvailableTime   time.Time  `json:"next_available_time" db:"next_available_time"`
	ReviewCompletedTime *time.Time `json:"review_completed_time,omitempty" db:"review_completed_time"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// Validate checks the record invariants.
func (p *WordProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.WordID == uuid.Nil {
		return ErrEmptyProgressWordID
	}
	if !p.Pool.Persistable() {
		return ErrInvalidProgressPool
	}
	if p.InReviewPhase && !p.Pool.IsRemedial() {
		return ErrReviewPhaseOutsideR
	}
	return nil
}

// IsDue reports whether the word is eligible at now.
func (p *WordProgress) IsDue(now time.Time) bool {
	return !p.NextAvailableTime.After(now)
}

// Clone returns a copy that shares no pointers with p.
func (p *WordProgress) Clone() *WordProgress {
	c := *p
	if p.ReviewCompletedTime != nil {
		t := *p.ReviewCompletedTime
		c.ReviewCompletedTime = &t
	}
	return &c
}

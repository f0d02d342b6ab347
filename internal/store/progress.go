package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// ProgressStore persists WordProgress records keyed by (user_id, word_id).
// At most one record exists per pair; its absence means pool P0.
type ProgressStore interface {
	// Get retrieves the record for a pair without locking it.
	// Returns ErrProgressNotFound if the word is still in P0.
	Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error)

	// GetForUpdate retrieves the record with a row-level lock. It must run
	// inside a transaction; concurrent writers to the same pair serialize on it.
	// Returns ErrProgressNotFound if the word is still in P0.
	GetForUpdate(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error)

	// Create inserts a new record.
	// Returns ErrProgressExists if the pair already has one.
	Create(ctx context.Context, progress *domain.WordProgress) error

	// Update overwrites the mutable fields of an existing record.
	// Returns ErrProgressNotFound if the pair has no record.
	Update(ctx context.Context, progress *domain.WordProgress) error

	// ListByUser returns every record of a user ordered by next available time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error)

	// ListDuePractice returns records due at now in P1..P5, or in R1..R5 in the
	// practice phase, earliest due first, at most limit.
	ListDuePractice(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.WordProgress, error)

	// ListDueReview returns R1..R5 records in the review phase due at now,
	// earliest due first, at most limit.
	ListDueReview(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.WordProgress, error)

	// CountLearnedSince counts records whose learned_at is at or after since.
	CountLearnedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// CountPoolDueBy counts records in pool whose next available time is at or before by.
	CountPoolDueBy(ctx context.Context, userID uuid.UUID, pool domain.Pool, by time.Time) (int, error)

	// CountDuePractice counts what ListDuePractice would return without a limit.
	CountDuePractice(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// CountDueReview counts what ListDueReview would return without a limit.
	CountDueReview(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// CountUpcoming counts scheduled (non-mastered) records becoming due in (from, to].
	CountUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)

	// NextAvailableAfter returns the earliest next available time strictly after
	// now among non-mastered records, or nil when nothing is scheduled.
	NextAvailableAfter(ctx context.Context, userID uuid.UUID, now time.Time) (*time.Time, error)

	// ResetCooldown makes every record of the user due at now and returns the count.
	ResetCooldown(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// DeleteByUser removes every record of the user, returning them all to P0.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

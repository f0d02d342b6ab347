package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// AnswerStore appends to the per-user answer history.
type AnswerStore interface {
	// CreateBatch appends records in order.
	CreateBatch(ctx context.Context, records []*domain.AnswerRecord) error

	// CountSince counts the user's answers recorded at or after since.
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

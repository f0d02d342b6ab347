package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// PostgresAnswerStore implements the store.AnswerStore interface over the
// append-only answer_history table.
type PostgresAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnswerStore creates a new PostgreSQL implementation of the AnswerStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAnswerStore(db store.DBTX, logger *slog.Logger) *PostgresAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// CreateBatch implements store.AnswerStore.CreateBatch
func (s *PostgresAnswerStore) CreateBatch(ctx context.Context, records []*domain.AnswerRecord) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO answer_history (id, user_id, word_id, word, is_correct, exercise_type,
			source, pool, user_answer, response_time_ms, created_at)
		VALUES (:id, :user_id, :word_id, :word, :is_correct, :exercise_type,
			:source, :pool, :user_answer, :response_time_ms, :created_at)
	`
	for _, record := range records {
		if record.ID == uuid.Nil {
			return fmt.Errorf("%w: answer record ID cannot be empty", store.ErrInvalidEntity)
		}
		if _, err := sqlx.NamedExecContext(ctx, s.db, query, record); err != nil {
			log.Error("failed to insert answer record",
				slog.String("error", err.Error()),
				slog.String("user_id", record.UserID.String()),
				slog.String("word_id", record.WordID.String()))
			return MapError(err)
		}
	}

	log.Debug("answer history recorded", slog.Int("count", len(records)))
	return nil
}

// CountSince implements store.AnswerStore.CountSince
func (s *PostgresAnswerStore) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var n int
	query := `SELECT COUNT(*) FROM answer_history WHERE user_id = $1 AND created_at >= $2`
	if err := sqlx.GetContext(ctx, s.db, &n, query, userID, since); err != nil {
		log.Error("failed to count answers",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}
	return n, nil
}

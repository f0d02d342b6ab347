package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

const progressColumns = `user_id, word_id, pool, is_in_review_phase, learned_at,
	last_practice_time, next_available_time, review_completed_time, created_at, updated_at`

// Due-set predicates shared by the list and count queries.
const (
	practiceDueClause = `(pool IN ('P1', 'P2', 'P3', 'P4', 'P5')
		OR (pool LIKE 'R%' AND NOT is_in_review_phase))`
	reviewDueClause = `(pool LIKE 'R%' AND is_in_review_phase)`
	scheduledClause = `pool <> 'P6'`
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Get implements store.ProgressStore.Get
func (s *PostgresProgressStore) Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error) {
	return s.get(ctx, userID, wordID, false)
}

// GetForUpdate implements store.ProgressStore.GetForUpdate
// The row lock only has effect when the store runs inside a transaction.
func (s *PostgresProgressStore) GetForUpdate(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	return s.get(ctx, userID, wordID, true)
}

func (s *PostgresProgressStore) get(
	ctx context.Context,
	userID, wordID uuid.UUID,
	forUpdate bool,
) (*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + progressColumns + ` FROM word_progress WHERE user_id = $1 AND word_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var progress domain.WordProgress
	if err := sqlx.GetContext(ctx, s.db, &progress, query, userID, wordID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word progress not found",
				slog.String("user_id", userID.String()),
				slog.String("word_id", wordID.String()))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word_id", wordID.String()))
		return nil, MapError(err)
	}
	return &progress, nil
}

// Create implements store.ProgressStore.Create
// Returns store.ErrProgressExists if the pair already has a record.
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.WordProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("word progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", progress.WordID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO word_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		progress.UserID,
		progress.WordID,
		string(progress.Pool),
		progress.InReviewPhase,
		progress.LearnedAt,
		progress.LastPracticeTime,
		progress.NextAvailableTime,
		progress.ReviewCompletedTime,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("word progress already exists",
				slog.String("user_id", progress.UserID.String()),
				slog.String("word_id", progress.WordID.String()))
			return store.ErrProgressExists
		}
		log.Error("failed to create word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return MapError(err)
	}

	log.Debug("word progress created",
		slog.String("user_id", progress.UserID.String()),
		slog.String("word_id", progress.WordID.String()),
		slog.String("pool", progress.Pool.String()))
	return nil
}

// Update implements store.ProgressStore.Update
// Returns store.ErrProgressNotFound if the pair has no record.
func (s *PostgresProgressStore) Update(ctx context.Context, progress *domain.WordProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("word progress validation failed during update",
			slog.String("error", err.Error()),
			slog.String("word_id", progress.WordID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE word_progress
		SET pool = $3,
			is_in_review_phase = $4,
			last_practice_time = $5,
			next_available_time = $6,
			review_completed_time = $7,
			updated_at = $8
		WHERE user_id = $1 AND word_id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		progress.UserID,
		progress.WordID,
		string(progress.Pool),
		progress.InReviewPhase,
		progress.LastPracticeTime,
		progress.NextAvailableTime,
		progress.ReviewCompletedTime,
		progress.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrProgressNotFound); err != nil {
		log.Warn("word progress not found for update",
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return err
	}
	return nil
}

// ListByUser implements store.ProgressStore.ListByUser
func (s *PostgresProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM word_progress
		WHERE user_id = $1
		ORDER BY next_available_time, word_id`
	return s.list(ctx, "list progress", query, userID)
}

// ListDuePractice implements store.ProgressStore.ListDuePractice
func (s *PostgresProgressStore) ListDuePractice(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.WordProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM word_progress
		WHERE user_id = $1 AND next_available_time <= $2 AND ` + practiceDueClause + `
		ORDER BY next_available_time, word_id
		LIMIT $3`
	return s.list(ctx, "list due practice", query, userID, now, limit)
}

// ListDueReview implements store.ProgressStore.ListDueReview
func (s *PostgresProgressStore) ListDueReview(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.WordProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM word_progress
		WHERE user_id = $1 AND next_available_time <= $2 AND ` + reviewDueClause + `
		ORDER BY next_available_time, word_id
		LIMIT $3`
	return s.list(ctx, "list due review", query, userID, now, limit)
}

func (s *PostgresProgressStore) list(
	ctx context.Context,
	operation, query string,
	args ...interface{},
) ([]*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records := []*domain.WordProgress{}
	if err := sqlx.SelectContext(ctx, s.db, &records, query, args...); err != nil {
		log.Error("failed to "+operation,
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return records, nil
}

// CountLearnedSince implements store.ProgressStore.CountLearnedSince
func (s *PostgresProgressStore) CountLearnedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM word_progress WHERE user_id = $1 AND learned_at >= $2`
	return s.count(ctx, "count learned", query, userID, since)
}

// CountPoolDueBy implements store.ProgressStore.CountPoolDueBy
func (s *PostgresProgressStore) CountPoolDueBy(
	ctx context.Context,
	userID uuid.UUID,
	pool domain.Pool,
	by time.Time,
) (int, error) {
	query := `SELECT COUNT(*) FROM word_progress
		WHERE user_id = $1 AND pool = $2 AND next_available_time <= $3`
	return s.count(ctx, "count pool", query, userID, string(pool), by)
}

// CountDuePractice implements store.ProgressStore.CountDuePractice
func (s *PostgresProgressStore) CountDuePractice(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM word_progress
		WHERE user_id = $1 AND next_available_time <= $2 AND ` + practiceDueClause
	return s.count(ctx, "count due practice", query, userID, now)
}

// CountDueReview implements store.ProgressStore.CountDueReview
func (s *PostgresProgressStore) CountDueReview(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM word_progress
		WHERE user_id = $1 AND next_available_time <= $2 AND ` + reviewDueClause
	return s.count(ctx, "count due review", query, userID, now)
}

// CountUpcoming implements store.ProgressStore.CountUpcoming
func (s *PostgresProgressStore) CountUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM word_progress
		WHERE user_id = $1 AND next_available_time > $2 AND next_available_time <= $3
		AND ` + scheduledClause
	return s.count(ctx, "count upcoming", query, userID, from, to)
}

func (s *PostgresProgressStore) count(
	ctx context.Context,
	operation, query string,
	args ...interface{},
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, query, args...); err != nil {
		log.Error("failed to "+operation,
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}

// NextAvailableAfter implements store.ProgressStore.NextAvailableAfter
func (s *PostgresProgressStore) NextAvailableAfter(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT MIN(next_available_time) FROM word_progress
		WHERE user_id = $1 AND next_available_time > $2 AND ` + scheduledClause

	var next sql.NullTime
	if err := sqlx.GetContext(ctx, s.db, &next, query, userID, now); err != nil {
		log.Error("failed to get next available time",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	if !next.Valid {
		return nil, nil
	}
	t := next.Time
	return &t, nil
}

// ResetCooldown implements store.ProgressStore.ResetCooldown
func (s *PostgresProgressStore) ResetCooldown(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE word_progress
		SET next_available_time = $2, updated_at = $2
		WHERE user_id = $1`
	result, err := s.db.ExecContext(ctx, query, userID, now)
	if err != nil {
		log.Error("failed to reset cooldown",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return 0, err
	}

	log.Info("cooldown reset",
		slog.String("user_id", userID.String()),
		slog.Int("count", n))
	return n, nil
}

// DeleteByUser implements store.ProgressStore.DeleteByUser
func (s *PostgresProgressStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM word_progress WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return 0, err
	}

	log.Info("progress deleted",
		slog.String("user_id", userID.String()),
		slog.Int("count", n))
	return n, nil
}

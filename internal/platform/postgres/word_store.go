package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

const wordColumns = `w.id, w.word, w.translation, w.sentence, w.sentence_zh,
	w.image_url, w.audio_url, w.level_id, w.category_id, w.created_at`

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

var _ store.WordStore = (*PostgresWordStore)(nil)

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var word domain.Word
	query := `SELECT ` + wordColumns + ` FROM words w WHERE w.id = $1`
	if err := sqlx.GetContext(ctx, s.db, &word, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word_id", id.String()))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return nil, MapError(err)
	}
	return &word, nil
}

// GetByIDs implements store.WordStore.GetByIDs
func (s *PostgresWordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error) {
	if len(ids) == 0 {
		return []*domain.Word{}, nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := sqlx.In(`SELECT `+wordColumns+` FROM words w WHERE w.id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build word lookup query: %w", err)
	}

	words := []*domain.Word{}
	if err := sqlx.SelectContext(ctx, s.db, &words, s.db.Rebind(query), args...); err != nil {
		log.Error("failed to get words by ids",
			slog.String("error", err.Error()),
			slog.Int("requested", len(ids)))
		return nil, MapError(err)
	}

	log.Debug("retrieved words by ids",
		slog.Int("requested", len(ids)),
		slog.Int("found", len(words)))
	return words, nil
}

// GetByText implements store.WordStore.GetByText
func (s *PostgresWordStore) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var word domain.Word
	query := `SELECT ` + wordColumns + ` FROM words w WHERE w.word = $1`
	if err := sqlx.GetContext(ctx, s.db, &word, query, text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word", text))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by spelling",
			slog.String("error", err.Error()),
			slog.String("word", text))
		return nil, MapError(err)
	}
	return &word, nil
}

// ListAll implements store.WordStore.ListAll
func (s *PostgresWordStore) ListAll(ctx context.Context) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	words := []*domain.Word{}
	query := `SELECT ` + wordColumns + ` FROM words w ORDER BY w.word`
	if err := sqlx.SelectContext(ctx, s.db, &words, query); err != nil {
		log.Error("failed to list words", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return words, nil
}

// RandomByLevel implements store.WordStore.RandomByLevel
func (s *PostgresWordStore) RandomByLevel(ctx context.Context, levelID, limit int) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	words := []*domain.Word{}
	query := `SELECT ` + wordColumns + ` FROM words w
		WHERE w.level_id = $1
		ORDER BY RANDOM()
		LIMIT $2`
	if err := sqlx.SelectContext(ctx, s.db, &words, query, levelID, limit); err != nil {
		log.Error("failed to select random words for level",
			slog.String("error", err.Error()),
			slog.Int("level_id", levelID))
		return nil, MapError(err)
	}
	return words, nil
}

// ListUnlearned implements store.WordStore.ListUnlearned
func (s *PostgresWordStore) ListUnlearned(
	ctx context.Context,
	userID uuid.UUID,
	filter store.UnlearnedFilter,
	limit int,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	args := []interface{}{userID}
	sb.WriteString(`SELECT ` + wordColumns + ` FROM words w
		WHERE NOT EXISTS (
			SELECT 1 FROM word_progress p WHERE p.user_id = $1 AND p.word_id = w.id
		)`)
	if filter.LevelID != nil {
		args = append(args, *filter.LevelID)
		fmt.Fprintf(&sb, " AND w.level_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		fmt.Fprintf(&sb, " AND w.category_id = $%d", len(args))
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " ORDER BY w.word LIMIT $%d", len(args))

	words := []*domain.Word{}
	if err := sqlx.SelectContext(ctx, s.db, &words, sb.String(), args...); err != nil {
		log.Error("failed to list unlearned words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	return words, nil
}

// CountUnlearned implements store.WordStore.CountUnlearned
func (s *PostgresWordStore) CountUnlearned(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	query := `SELECT COUNT(*) FROM words w
		WHERE NOT EXISTS (
			SELECT 1 FROM word_progress p WHERE p.user_id = $1 AND p.word_id = w.id
		)`
	if err := sqlx.GetContext(ctx, s.db, &count, query, userID); err != nil {
		log.Error("failed to count unlearned words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}
	return count, nil
}

// CreateMany implements store.WordStore.CreateMany
// Words whose spelling already exists are skipped rather than failing the batch.
func (s *PostgresWordStore) CreateMany(ctx context.Context, words []*domain.Word) (int, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO words (id, word, translation, sentence, sentence_zh,
			image_url, audio_url, level_id, category_id, created_at)
		VALUES (:id, :word, :translation, :sentence, :sentence_zh,
			:image_url, :audio_url, :level_id, :category_id, :created_at)
		ON CONFLICT (word) DO NOTHING
	`

	created, skipped := 0, 0
	for _, word := range words {
		if err := word.Validate(); err != nil {
			log.Warn("word validation failed during bulk create",
				slog.String("error", err.Error()),
				slog.String("word", word.Text))
			return created, skipped, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		result, err := sqlx.NamedExecContext(ctx, s.db, query, word)
		if err != nil {
			log.Error("failed to insert word",
				slog.String("error", err.Error()),
				slog.String("word", word.Text))
			return created, skipped, MapError(err)
		}
		n, err := rowsAffected(result)
		if err != nil {
			return created, skipped, err
		}
		if n == 0 {
			skipped++
			continue
		}
		created++
	}

	log.Info("bulk word create finished",
		slog.Int("created", created),
		slog.Int("skipped", skipped))
	return created, skipped, nil
}

// DeleteAll implements store.WordStore.DeleteAll
// Progress and answer history rows go with the words through ON DELETE CASCADE.
func (s *PostgresWordStore) DeleteAll(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM words`)
	if err != nil {
		log.Error("failed to delete words", slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return 0, err
	}

	log.Info("deleted all words", slog.Int("count", n))
	return n, nil
}

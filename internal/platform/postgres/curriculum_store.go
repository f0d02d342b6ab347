package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// PostgresCurriculumStore implements the store.CurriculumStore interface
// over the word_levels and word_categories reference tables.
type PostgresCurriculumStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCurriculumStore creates a new PostgreSQL implementation of the CurriculumStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCurriculumStore(db store.DBTX, logger *slog.Logger) *PostgresCurriculumStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCurriculumStore{
		db:     db,
		logger: logger.With(slog.String("component", "curriculum_store")),
	}
}

var _ store.CurriculumStore = (*PostgresCurriculumStore)(nil)

// ListLevels implements store.CurriculumStore.ListLevels
func (s *PostgresCurriculumStore) ListLevels(ctx context.Context) ([]domain.Level, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	levels := []domain.Level{}
	query := `SELECT id, label, sort_order FROM word_levels ORDER BY sort_order`
	if err := sqlx.SelectContext(ctx, s.db, &levels, query); err != nil {
		log.Error("failed to list levels", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return levels, nil
}

// ListCategories implements store.CurriculumStore.ListCategories
func (s *PostgresCurriculumStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	categories := []domain.Category{}
	query := `SELECT id, label, sort_order FROM word_categories ORDER BY sort_order`
	if err := sqlx.SelectContext(ctx, s.db, &categories, query); err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return categories, nil
}

// EnsureLevel implements store.CurriculumStore.EnsureLevel
func (s *PostgresCurriculumStore) EnsureLevel(ctx context.Context, label string) (domain.Level, error) {
	var level domain.Level
	err := s.ensure(ctx, "word_levels", label, &level)
	return level, err
}

// EnsureCategory implements store.CurriculumStore.EnsureCategory
func (s *PostgresCurriculumStore) EnsureCategory(ctx context.Context, label string) (domain.Category, error) {
	var category domain.Category
	err := s.ensure(ctx, "word_categories", label, &category)
	return category, err
}

// ensure looks up a reference row by label and appends it after the current
// maximum sort order when absent. table is always one of the two constant
// table names above.
func (s *PostgresCurriculumStore) ensure(ctx context.Context, table, label string, dest interface{}) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("%w: %s label cannot be empty", store.ErrInvalidEntity, table)
	}

	selectQuery := `SELECT id, label, sort_order FROM ` + table + ` WHERE label = $1`
	err := sqlx.GetContext(ctx, s.db, dest, selectQuery, label)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to look up curriculum entry",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.String("label", label))
		return MapError(err)
	}

	insertQuery := `INSERT INTO ` + table + ` (label, sort_order)
		VALUES ($1, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM ` + table + `))
		RETURNING id, label, sort_order`
	if err := sqlx.GetContext(ctx, s.db, dest, insertQuery, label); err != nil {
		log.Error("failed to create curriculum entry",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.String("label", label))
		return MapError(err)
	}

	log.Info("created curriculum entry",
		slog.String("table", table),
		slog.String("label", label))
	return nil
}

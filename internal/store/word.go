package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// UnlearnedFilter narrows ListUnlearned to one curriculum cell. Nil fields
// leave that dimension unconstrained.
type UnlearnedFilter struct {
	LevelID    *int
	CategoryID *int
}

// WordStore defines the word catalog lookups the core consumes.
type WordStore interface {
	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// GetByIDs retrieves every existing word among ids. Missing ids are
	// silently skipped; callers compare lengths to detect them.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error)

	// GetByText retrieves a word by its exact spelling.
	// Returns ErrWordNotFound if no word is spelled that way.
	GetByText(ctx context.Context, text string) (*domain.Word, error)

	// ListAll returns the whole catalog ordered by spelling.
	ListAll(ctx context.Context) ([]*domain.Word, error)

	// RandomByLevel returns up to limit random words of one level.
	RandomByLevel(ctx context.Context, levelID, limit int) ([]*domain.Word, error)

	// ListUnlearned returns up to limit words the user has no progress record
	// for, restricted by filter. Results are ordered by spelling.
	ListUnlearned(
		ctx context.Context,
		userID uuid.UUID,
		filter UnlearnedFilter,
		limit int,
	) ([]*domain.Word, error)

	// CountUnlearned counts catalog words without a progress record for the user.
	CountUnlearned(ctx context.Context, userID uuid.UUID) (int, error)

	// CreateMany inserts words, skipping any whose spelling already exists.
	// It returns how many were created and how many were skipped.
	CreateMany(ctx context.Context, words []*domain.Word) (created int, skipped int, err error)

	// DeleteAll removes every catalog word together with the progress that
	// references it, returning the number of words removed.
	DeleteAll(ctx context.Context) (int, error)
}

// CurriculumStore exposes the ordered level and category reference data.
type CurriculumStore interface {
	// ListLevels returns all levels ordered by their sort order.
	ListLevels(ctx context.Context) ([]domain.Level, error)

	// ListCategories returns all categories ordered by their sort order.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// EnsureLevel returns the level with the given label, creating it after
	// the current last level when missing.
	EnsureLevel(ctx context.Context, label string) (domain.Level, error)

	// EnsureCategory returns the category with the given label, creating it
	// after the current last category when missing.
	EnsureCategory(ctx context.Context, label string) (domain.Category, error)
}

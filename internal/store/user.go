package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// UserStore persists learners and their curriculum pointer.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrDuplicate if a user with the same ID already exists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// UpdatePointer sets the user's current level and category.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePointer(ctx context.Context, userID uuid.UUID, levelID, categoryID int) error

	// MarkTutorialCompleted stamps the vocabulary tutorial as finished at at,
	// overwriting any earlier completion.
	// Returns ErrUserNotFound if the user does not exist.
	MarkTutorialCompleted(ctx context.Context, userID uuid.UUID, at time.Time) error

	// Delete removes the user and, by ownership, all of their progress.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

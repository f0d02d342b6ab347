package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyUserID is returned when a user carries the nil UUID.
var ErrEmptyUserID = errors.New("user ID cannot be empty")

// User is a learner. Identity is established by the bearer token; this record
// only holds the curriculum pointer, the frontier of content offered to learn
// sessions. A nil pointer component means the pointer is unset.
type User struct {
	ID                uuid.UUID `json:"id" db:"id"`
	CurrentLevelID    *int      `json:"current_level_id,omitempty" db:"current_level_id"`
	CurrentCategoryID *int      `json:"current_category_id,omitempty" db:"current_category_id"`

	// TutorialCompletedAt is when the user last finished the vocabulary tutorial.
	TutorialCompletedAt *time.Time `json:"vocabulary_tutorial_completed_at,omitempty" db:"vocabulary_tutorial_completed_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a user with an unset curriculum pointer.
func NewUser(id uuid.UUID, now time.Time) (*User, error) {
	u := &User{ID: id, CreatedAt: now, UpdatedAt: now}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	return nil
}

// HasPointer reports whether both pointer components are set.
func (u *User) HasPointer() bool {
	return u.CurrentLevelID != nil && u.CurrentCategoryID != nil
}

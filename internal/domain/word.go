package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word validation errors.
var (
	ErrWordIDEmpty          = errors.New("word ID cannot be empty")
	ErrWordTextEmpty        = errors.New("word text cannot be empty")
	ErrWordTranslationEmpty = errors.New("word translation cannot be empty")
)

// Word is a catalog entry. Words are reference data: progress records point
// at them by ID but never own them.
type Word struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Text        string    `json:"word" db:"word"`
	Translation string    `json:"translation" db:"translation"`
	Sentence    *string   `json:"sentence,omitempty" db:"sentence"`
	SentenceZh  *string   `json:"sentence_zh,omitempty" db:"sentence_zh"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	AudioURL    *string   `json:"audio_url,omitempty" db:"audio_url"`
	LevelID     *int      `json:"level_id,omitempty" db:"level_id"`
	CategoryID  *int      `json:"category_id,omitempty" db:"category_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewWord creates a catalog word with a fresh ID.
func NewWord(text, translation string) (*Word, error) {
	w := &Word{
		ID:          uuid.New(),
		Text:        strings.TrimSpace(text),
		Translation: strings.TrimSpace(translation),
		CreatedAt:   time.Now().UTC(),
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks the required catalog fields.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}
	if strings.TrimSpace(w.Text) == "" {
		return ErrWordTextEmpty
	}
	if strings.TrimSpace(w.Translation) == "" {
		return ErrWordTranslationEmpty
	}
	return nil
}

// Level is an ordered difficulty tier of the curriculum.
type Level struct {
	ID    int    `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
	Order int    `json:"order" db:"sort_order"`
}

// Category is an ordered topical group within every level.
type Category struct {
	ID    int    `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
	Order int    `json:"order" db:"sort_order"`
}

// CurriculumPair is one (level, category) cell of the curriculum grid.
type CurriculumPair struct {
	Level    Level
	Category Category
}

// Less orders pairs by level order, then category order.
func (p CurriculumPair) Less(other CurriculumPair) bool {
	if p.Level.Order != other.Level.Order {
		return p.Level.Order < other.Level.Order
	}
	return p.Category.Order < other.Category.Order
}

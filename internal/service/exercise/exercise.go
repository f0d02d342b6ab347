package exercise

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// Exercise is one drill presented for a word.
type Exercise struct {
	WordID      uuid.UUID
	Word        string
	Translation string
	ImageURL    *string
	AudioURL    *string
	Pool        domain.Pool
	Type        domain.ExerciseType

	// Options is empty for speaking drills.
	Options []Option
	// CorrectIndex is nil for speaking drills.
	CorrectIndex *int
}

// Build creates the exercise for word in pool. Pn and Rn use the drill of
// rung n. A pool without a drill (P0, P6) is a StateInvariantError.
func (g *Generator) Build(word *domain.Word, pool domain.Pool, session, catalog []*domain.Word) (Exercise, error) {
	exerciseType, ok := domain.ExerciseTypeForPool(pool)
	if !ok {
		return Exercise{}, domain.NewStateInvariantError("build exercise", pool, false)
	}
	return g.build(word, pool, exerciseType, session, catalog), nil
}

// BuildLearn creates the reading_lv1 exercise that closes a learn session.
func (g *Generator) BuildLearn(word *domain.Word, session, catalog []*domain.Word) Exercise {
	return g.build(word, domain.PoolP0, domain.ExerciseReadingLv1, session, catalog)
}

// BuildType creates an exercise of the given type for word in pool,
// whatever drill the pool would normally get.
func (g *Generator) BuildType(
	word *domain.Word,
	pool domain.Pool,
	exerciseType domain.ExerciseType,
	session, catalog []*domain.Word,
) Exercise {
	return g.build(word, pool, exerciseType, session, catalog)
}

func (g *Generator) build(
	word *domain.Word,
	pool domain.Pool,
	exerciseType domain.ExerciseType,
	session, catalog []*domain.Word,
) Exercise {
	ex := Exercise{
		WordID:      word.ID,
		Word:        word.Text,
		Translation: word.Translation,
		ImageURL:    word.ImageURL,
		AudioURL:    word.AudioURL,
		Pool:        pool,
		Type:        exerciseType,
		Options:     []Option{},
	}
	if exerciseType.IsSpeaking() {
		return ex
	}
	options, correct := g.Options(word, session, catalog)
	ex.Options = options
	ex.CorrectIndex = &correct
	return ex
}

// SortByType orders exercises reading first, then listening, then speaking.
// Exercises of the same type keep their relative order.
func SortByType(exercises []Exercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].Type.Rank() < exercises[j].Type.Rank()
	})
}

// Order lists the distinct exercise types in the order they first appear.
func Order(exercises []Exercise) []domain.ExerciseType {
	seen := map[domain.ExerciseType]bool{}
	order := []domain.ExerciseType{}
	for _, ex := range exercises {
		if !seen[ex.Type] {
			seen[ex.Type] = true
			order = append(order, ex.Type)
		}
	}
	return order
}

package curriculum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// UnlearnedLister is the slice of store.WordStore the traversal reads.
type UnlearnedLister interface {
	ListUnlearned(
		ctx context.Context,
		userID uuid.UUID,
		filter store.UnlearnedFilter,
		limit int,
	) ([]*domain.Word, error)
}

// Selection is the outcome of filling a learn quota.
type Selection struct {
	Words []*domain.Word

	// Fallback is set when the user's pointer was unset or pointed outside
	// the grid, and the words were drawn from all unlearned words instead.
	Fallback bool
}

// Traversal fills learn sessions by walking the grid from a user's pointer.
type Traversal struct {
	logger *slog.Logger
}

// NewTraversal creates a Traversal.
func NewTraversal(logger *slog.Logger) *Traversal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Traversal{logger: logger.With(slog.String("component", "curriculum_traversal"))}
}

// SelectWords returns up to quota unlearned words, starting at the user's
// pointer and moving forward one (level, category) pair at a time until the
// quota is filled or the grid is exhausted.
func (t *Traversal) SelectWords(
	ctx context.Context,
	words UnlearnedLister,
	grid Grid,
	user *domain.User,
	quota int,
) (Selection, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	if quota <= 0 {
		return Selection{Words: []*domain.Word{}}, nil
	}

	start, ok := grid.PointerOf(user)
	if !ok {
		log.Debug("curriculum pointer unset or invalid, using unordered unlearned words",
			slog.String("user_id", user.ID.String()))
		selected, err := words.ListUnlearned(ctx, user.ID, store.UnlearnedFilter{}, quota)
		if err != nil {
			return Selection{}, fmt.Errorf("failed to list unlearned words: %w", err)
		}
		return Selection{Words: selected, Fallback: true}, nil
	}

	selected := make([]*domain.Word, 0, quota)
	seen := make(map[uuid.UUID]bool, quota)
	for _, pair := range grid.From(start) {
		needed := quota - len(selected)
		if needed == 0 {
			break
		}
		levelID, categoryID := pair.Level.ID, pair.Category.ID
		batch, err := words.ListUnlearned(ctx, user.ID, store.UnlearnedFilter{
			LevelID:    &levelID,
			CategoryID: &categoryID,
		}, needed)
		if err != nil {
			return Selection{}, fmt.Errorf("failed to list unlearned words for %s/%s: %w",
				pair.Level.Label, pair.Category.Label, err)
		}
		for _, w := range batch {
			if seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			selected = append(selected, w)
		}
	}

	log.Debug("selected learn words",
		slog.String("user_id", user.ID.String()),
		slog.String("start_level", start.Level.Label),
		slog.String("start_category", start.Category.Label),
		slog.Int("count", len(selected)))

	return Selection{Words: selected}, nil
}

// Advance returns the pointer a user should hold after completing words:
// the highest pair among them, if it ranks above the current pointer.
// Words outside the grid are ignored. An unresolvable current pointer ranks
// below every pair. The second result is false when the pointer stays.
func Advance(grid Grid, user *domain.User, completed []*domain.Word) (domain.CurriculumPair, bool) {
	var (
		best  domain.CurriculumPair
		found bool
	)
	for _, w := range completed {
		pair, ok := grid.PairOf(w)
		if !ok {
			continue
		}
		if !found || best.Less(pair) {
			best, found = pair, true
		}
	}
	if !found {
		return domain.CurriculumPair{}, false
	}

	if current, ok := grid.PointerOf(user); ok && !current.Less(best) {
		return domain.CurriculumPair{}, false
	}
	return best, true
}

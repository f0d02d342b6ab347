package exercise

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// MinOptionCount is the smallest option set that still offers a choice.
const MinOptionCount = 2

// Option is one multiple-choice answer.
type Option struct {
	Index       int
	WordID      uuid.UUID
	Translation string
	ImageURL    *string
}

// Generator builds randomized option sets. It is safe for concurrent use.
type Generator struct {
	count int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator producing count options per exercise.
// A nil rng uses a randomly seeded source; tests pass a seeded one to make
// option placement deterministic.
func NewGenerator(count int, rng *rand.Rand) (*Generator, error) {
	if count < MinOptionCount {
		return nil, domain.NewValidationError("options_count",
			fmt.Sprintf("must be at least %d, got %d", MinOptionCount, count), domain.ErrValidation)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{count: count, rng: rng}, nil
}

// Count returns the configured option count.
func (g *Generator) Count() int {
	return g.count
}

func normalizeTranslation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Options returns up to Count options for target and the index of the
// correct one. Distractors come from session first and from catalog only
// when session has too few. A distractor never shares the target's ID or
// translation, and no two options share a translation. Fewer options are
// returned only when the candidates run out.
func (g *Generator) Options(target *domain.Word, session, catalog []*domain.Word) ([]Option, int) {
	taken := map[uuid.UUID]bool{target.ID: true}
	translations := map[string]bool{normalizeTranslation(target.Translation): true}

	eligible := func(w *domain.Word) bool {
		return w != nil && !taken[w.ID] && !translations[normalizeTranslation(w.Translation)]
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	distractors := make([]*domain.Word, 0, g.count-1)
	draw := func(pool []*domain.Word) {
		candidates := make([]*domain.Word, 0, len(pool))
		for _, w := range pool {
			if eligible(w) {
				candidates = append(candidates, w)
			}
		}
		g.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		for _, w := range candidates {
			if len(distractors) == g.count-1 {
				return
			}
			if !eligible(w) {
				continue
			}
			taken[w.ID] = true
			translations[normalizeTranslation(w.Translation)] = true
			distractors = append(distractors, w)
		}
	}

	draw(session)
	if len(distractors) < g.count-1 {
		draw(catalog)
	}

	words := append(distractors, target)
	g.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	options := make([]Option, len(words))
	correct := 0
	for i, w := range words {
		options[i] = Option{Index: i, WordID: w.ID, Translation: w.Translation, ImageURL: w.ImageURL}
		if w.ID == target.ID {
			correct = i
		}
	}
	return options, correct
}

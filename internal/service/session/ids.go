package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
)

func parseWordID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("word_id", fmt.Sprintf("invalid word_id: %q", raw), domain.ErrInvalidID)
	}
	return id, nil
}

// parseWordIDs validates every identifier before any state is touched.
// Repeats collapse when dedupe is set and are rejected otherwise.
func parseWordIDs(raw []string, dedupe bool) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, service.ErrEmptyBatch
	}
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, r := range raw {
		id, err := parseWordID(r)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			if dedupe {
				continue
			}
			return nil, fmt.Errorf("%w: %s", service.ErrDuplicateWord, id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// indexWords maps words by ID. It fails with a NotFoundError naming the
// first of ids that has no word.
func indexWords(ids []uuid.UUID, words []*domain.Word) (map[uuid.UUID]*domain.Word, error) {
	byID := make(map[uuid.UUID]*domain.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, domain.NewNotFoundError("word", id.String())
		}
	}
	return byID, nil
}

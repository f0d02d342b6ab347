package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// Entry is one word to import. Level and Category are labels resolved (and
// created when missing) at import time; LevelID and CategoryID reference
// existing rows directly and win over the labels.
type Entry struct {
	Word        string
	Translation string
	Sentence    *string
	SentenceZh  *string
	ImageURL    *string
	AudioURL    *string
	LevelID     *int
	CategoryID  *int
	Level       string
	Category    string
}

// ImportRequest is a batch of entries.
type ImportRequest struct {
	Entries       []Entry
	ClearExisting bool
}

// ImportResult reports what an import did. Skipped counts entries whose
// spelling was already in the catalog.
type ImportResult struct {
	Imported int
	Skipped  int
	Cleared  int
}

// Service is the catalog administration API.
type Service interface {
	// ImportWords validates and inserts entries in one unit of work.
	ImportWords(ctx context.Context, req ImportRequest) (*ImportResult, error)

	// ListWords returns the whole catalog ordered by spelling.
	ListWords(ctx context.Context) ([]*domain.Word, error)
}

type catalogService struct {
	tx     store.Transactor
	now    func() time.Time
	logger *slog.Logger
}

var _ Service = (*catalogService)(nil)

// NewService creates the catalog service.
func NewService(tx store.Transactor, now func() time.Time, logger *slog.Logger) (Service, error) {
	if tx == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil", domain.ErrValidation)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogService{
		tx:     tx,
		now:    now,
		logger: logger.With(slog.String("component", "catalog_service")),
	}, nil
}

// ImportWords implements Service.ImportWords. Any invalid entry rejects the
// whole batch.
func (s *catalogService) ImportWords(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(req.Entries) == 0 {
		return nil, service.NewServiceError("import_words", "invalid request", service.ErrEmptyBatch)
	}
	for i, e := range req.Entries {
		if strings.TrimSpace(e.Word) == "" {
			return nil, service.NewServiceError("import_words", "invalid request",
				domain.NewValidationError(fmt.Sprintf("words[%d].word", i), "cannot be empty", domain.ErrValidation))
		}
		if strings.TrimSpace(e.Translation) == "" {
			return nil, service.NewServiceError("import_words", "invalid request",
				domain.NewValidationError(fmt.Sprintf("words[%d].translation", i), "cannot be empty", domain.ErrValidation))
		}
	}

	now := s.now().UTC()
	result := &ImportResult{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if req.ClearExisting {
			cleared, err := repos.Words.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear catalog: %w", err)
			}
			result.Cleared = cleared
		}

		refs, err := newResolver(ctx, repos.Curriculum)
		if err != nil {
			return err
		}

		words := make([]*domain.Word, 0, len(req.Entries))
		for i, e := range req.Entries {
			w, err := domain.NewWord(e.Word, e.Translation)
			if err != nil {
				return domain.NewValidationError(fmt.Sprintf("words[%d]", i), err.Error(), domain.ErrValidation)
			}
			w.Sentence = trimmed(e.Sentence)
			w.SentenceZh = trimmed(e.SentenceZh)
			w.ImageURL = trimmed(e.ImageURL)
			w.AudioURL = trimmed(e.AudioURL)
			w.CreatedAt = now

			if w.LevelID, err = refs.level(ctx, i, e); err != nil {
				return err
			}
			if w.CategoryID, err = refs.category(ctx, i, e); err != nil {
				return err
			}
			words = append(words, w)
		}

		result.Imported, result.Skipped, err = repos.Words.CreateMany(ctx, words)
		if err != nil {
			return fmt.Errorf("failed to insert words: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("word import failed",
			slog.String("error", err.Error()),
			slog.Int("entries", len(req.Entries)))
		return nil, service.NewServiceError("import_words", "failed to import words", err)
	}

	log.Info("words imported",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("cleared", result.Cleared))
	return result, nil
}

// ListWords implements Service.ListWords.
func (s *catalogService) ListWords(ctx context.Context) ([]*domain.Word, error) {
	var words []*domain.Word
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		words, err = repos.Words.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, service.NewServiceError("list_words", "failed to list words", err)
	}
	if words == nil {
		words = []*domain.Word{}
	}
	return words, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// resolver maps entry references to curriculum IDs, caching label lookups
// so each new label is created once per import.
type resolver struct {
	curriculum store.CurriculumStore
	levelIDs    map[int]bool
	categoryIDs map[int]bool
	levels      map[string]int
	categories  map[string]int
}

func newResolver(ctx context.Context, curriculum store.CurriculumStore) (*resolver, error) {
	levels, err := curriculum.ListLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	categories, err := curriculum.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	r := &resolver{
		curriculum:  curriculum,
		levelIDs:    make(map[int]bool, len(levels)),
		categoryIDs: make(map[int]bool, len(categories)),
		levels:      make(map[string]int, len(levels)),
		categories:  make(map[string]int, len(categories)),
	}
	for _, l := range levels {
		r.levelIDs[l.ID] = true
		r.levels[l.Label] = l.ID
	}
	for _, c := range categories {
		r.categoryIDs[c.ID] = true
		r.categories[c.Label] = c.ID
	}
	return r, nil
}

func (r *resolver) level(ctx context.Context, i int, e Entry) (*int, error) {
	if e.LevelID != nil {
		if !r.levelIDs[*e.LevelID] {
			return nil, domain.NewValidationError(fmt.Sprintf("words[%d].level_id", i),
				fmt.Sprintf("level %d does not exist", *e.LevelID), domain.ErrValidation)
		}
		id := *e.LevelID
		return &id, nil
	}
	label := strings.TrimSpace(e.Level)
	if label == "" {
		return nil, nil
	}
	if id, ok := r.levels[label]; ok {
		return &id, nil
	}
	level, err := r.curriculum.EnsureLevel(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("failed to create level %q: %w", label, err)
	}
	r.levels[label] = level.ID
	r.levelIDs[level.ID] = true
	return &level.ID, nil
}

func (r *resolver) category(ctx context.Context, i int, e Entry) (*int, error) {
	if e.CategoryID != nil {
		if !r.categoryIDs[*e.CategoryID] {
			return nil, domain.NewValidationError(fmt.Sprintf("words[%d].category_id", i),
				fmt.Sprintf("category %d does not exist", *e.CategoryID), domain.ErrValidation)
		}
		id := *e.CategoryID
		return &id, nil
	}
	label := strings.TrimSpace(e.Category)
	if label == "" {
		return nil, nil
	}
	if id, ok := r.categories[label]; ok {
		return &id, nil
	}
	category, err := r.curriculum.EnsureCategory(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", label, err)
	}
	r.categories[label] = category.ID
	r.categoryIDs[category.ID] = true
	return &category.ID, nil
}

package curriculum

import (
	"context"
	"fmt"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// Catalog is the curriculum reference data the traversal reads.
type Catalog interface {
	ListLevels(ctx context.Context) ([]domain.Level, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// Grid is the ordered (level, category) curriculum. Every category exists
// within every level; traversal order is level first, then category.
type Grid struct {
	Levels     []domain.Level
	Categories []domain.Category
}

// LoadGrid reads the ordered levels and categories.
func LoadGrid(ctx context.Context, catalog Catalog) (Grid, error) {
	levels, err := catalog.ListLevels(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to list levels: %w", err)
	}
	categories, err := catalog.ListCategories(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return Grid{Levels: levels, Categories: categories}, nil
}

// Level returns the level with the given ID.
func (g Grid) Level(id int) (domain.Level, bool) {
	for _, l := range g.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Level{}, false
}

// Category returns the category with the given ID.
func (g Grid) Category(id int) (domain.Category, bool) {
	for _, c := range g.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// LevelByOrder returns the level with the given sort order.
func (g Grid) LevelByOrder(order int) (domain.Level, bool) {
	for _, l := range g.Levels {
		if l.Order == order {
			return l, true
		}
	}
	return domain.Level{}, false
}

// FirstCategory returns the category that opens every level.
func (g Grid) FirstCategory() (domain.Category, bool) {
	if len(g.Categories) == 0 {
		return domain.Category{}, false
	}
	return g.Categories[0], true
}

// Pair resolves optional level and category IDs. It fails if either is nil
// or unknown.
func (g Grid) Pair(levelID, categoryID *int) (domain.CurriculumPair, bool) {
	if levelID == nil || categoryID == nil {
		return domain.CurriculumPair{}, false
	}
	l, ok := g.Level(*levelID)
	if !ok {
		return domain.CurriculumPair{}, false
	}
	c, ok := g.Category(*categoryID)
	if !ok {
		return domain.CurriculumPair{}, false
	}
	return domain.CurriculumPair{Level: l, Category: c}, true
}

// PairOf resolves the pair a word belongs to.
func (g Grid) PairOf(w *domain.Word) (domain.CurriculumPair, bool) {
	return g.Pair(w.LevelID, w.CategoryID)
}

// PointerOf resolves a user's curriculum pointer.
func (g Grid) PointerOf(u *domain.User) (domain.CurriculumPair, bool) {
	return g.Pair(u.CurrentLevelID, u.CurrentCategoryID)
}

// From returns every pair at or after start in traversal order: the rest of
// start's level, then each following level from its first category.
func (g Grid) From(start domain.CurriculumPair) []domain.CurriculumPair {
	var out []domain.CurriculumPair
	for _, l := range g.Levels {
		if l.Order < start.Level.Order {
			continue
		}
		for _, c := range g.Categories {
			if l.Order == start.Level.Order && c.Order < start.Category.Order {
				continue
			}
			out = append(out, domain.CurriculumPair{Level: l, Category: c})
		}
	}
	return out
}

package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/curriculum"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// GetLevelAnalysisSession implements Service.GetLevelAnalysisSession. Words
// are drawn per level in level order; distractors come from the whole catalog.
func (s *sessionService) GetLevelAnalysisSession(ctx context.Context, userID uuid.UUID) (*LevelAnalysisSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := &LevelAnalysisSession{Exercises: []AnalysisExercise{}}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		grid, err := curriculum.LoadGrid(ctx, repos.Curriculum)
		if err != nil {
			return err
		}
		catalog, err := repos.Words.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list catalog: %w", err)
		}
		for _, level := range grid.Levels {
			words, err := repos.Words.RandomByLevel(ctx, level.ID, s.cfg.LevelAnalysisWordsPerLevel)
			if err != nil {
				return fmt.Errorf("failed to sample level %s: %w", level.Label, err)
			}
			for _, w := range words {
				result.Exercises = append(result.Exercises, AnalysisExercise{
					Exercise:   s.options.BuildLearn(w, nil, catalog),
					LevelOrder: level.Order,
				})
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to assemble level analysis session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("get_level_analysis_session", "failed to assemble level analysis", err)
	}
	return result, nil
}

// SubmitLevelAnalysis implements Service.SubmitLevelAnalysis. The pointer
// moves to the first category of the chosen level, backwards if need be.
func (s *sessionService) SubmitLevelAnalysis(ctx context.Context, userID uuid.UUID, levelOrder int) (*Placement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *Placement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		grid, err := curriculum.LoadGrid(ctx, repos.Curriculum)
		if err != nil {
			return err
		}
		level, ok := grid.LevelByOrder(levelOrder)
		if !ok {
			return domain.NewNotFoundError("level", strconv.Itoa(levelOrder))
		}
		category, ok := grid.FirstCategory()
		if !ok {
			return domain.NewNotFoundError("category", "first")
		}
		if err := repos.Users.UpdatePointer(ctx, userID, level.ID, category.ID); err != nil {
			return fmt.Errorf("failed to set curriculum pointer: %w", err)
		}
		result = &Placement{Level: level, Category: category}
		return nil
	})
	if err != nil {
		log.Warn("level analysis rejected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("level_order", levelOrder))
		return nil, service.NewServiceError("submit_level_analysis", "failed to apply placement", err)
	}

	log.Info("learner placed",
		slog.String("user_id", userID.String()),
		slog.String("level", result.Level.Label),
		slog.String("category", result.Category.Label))
	return result, nil
}

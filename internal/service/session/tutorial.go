package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// Tutorial content. The catalog must contain every one of these spellings.
var (
	TutorialWord        = "apple"
	TutorialDistractors = []string{"banana", "grape", "mango"}
	TutorialSteps       = []domain.ExerciseType{
		domain.ExerciseReadingLv1,
		domain.ExerciseReadingLv2,
		domain.ExerciseListeningLv1,
		domain.ExerciseSpeakingLv1,
		domain.ExerciseSpeakingLv2,
	}
)

// GetVocabularyTutorial implements Service.GetVocabularyTutorial.
func (s *sessionService) GetVocabularyTutorial(ctx context.Context, userID uuid.UUID) (*Tutorial, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *Tutorial
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		target, err := tutorialWord(ctx, repos.Words, TutorialWord)
		if err != nil {
			return err
		}
		distractors := make([]*domain.Word, 0, len(TutorialDistractors))
		for _, text := range TutorialDistractors {
			w, err := tutorialWord(ctx, repos.Words, text)
			if err != nil {
				return err
			}
			distractors = append(distractors, w)
		}

		result = &Tutorial{
			Word:  newWordDetail(target, ""),
			Steps: make([]TutorialStep, 0, len(TutorialSteps)),
		}
		for i, exerciseType := range TutorialSteps {
			result.Steps = append(result.Steps, TutorialStep{
				Step:     i + 1,
				Exercise: s.options.BuildType(target, domain.PoolP0, exerciseType, distractors, nil),
			})
		}
		return nil
	})
	if err != nil {
		log.Error("failed to assemble vocabulary tutorial",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("get_vocabulary_tutorial", "failed to assemble tutorial", err)
	}
	return result, nil
}

func tutorialWord(ctx context.Context, words store.WordStore, text string) (*domain.Word, error) {
	w, err := words.GetByText(ctx, text)
	if errors.Is(err, store.ErrWordNotFound) {
		return nil, domain.NewNotFoundError("tutorial_word", text)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tutorial word %q: %w", text, err)
	}
	return w, nil
}

// CompleteVocabularyTutorial implements Service.CompleteVocabularyTutorial.
func (s *sessionService) CompleteVocabularyTutorial(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Users.MarkTutorialCompleted(ctx, userID, now)
	})
	if err != nil {
		return service.NewServiceError("complete_vocabulary_tutorial", "failed to record tutorial completion", err)
	}
	log.Info("vocabulary tutorial completed", slog.String("user_id", userID.String()))
	return nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/events"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/curriculum"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// GetLearnSession implements Service.GetLearnSession.
func (s *sessionService) GetLearnSession(ctx context.Context, userID uuid.UUID) (*LearnSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	var result *LearnSession
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		decision, err := s.gate.CanLearn(ctx, eligibility.CountersFrom(repos), userID, now)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			result = unavailableLearn(decision.Reason)
			return nil
		}

		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		grid, err := curriculum.LoadGrid(ctx, repos.Curriculum)
		if err != nil {
			return err
		}
		selection, err := s.traversal.SelectWords(ctx, repos.Words, grid, user, s.cfg.LearnSessionSize)
		if err != nil {
			return err
		}
		if len(selection.Words) == 0 {
			result = unavailableLearn(eligibility.ReasonNoWordsInP0)
			return nil
		}

		catalog, err := repos.Words.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list catalog: %w", err)
		}

		result = &LearnSession{
			Available: true,
			Words:     make([]WordDetail, 0, len(selection.Words)),
			Exercises: make([]exercise.Exercise, 0, len(selection.Words)),
		}
		for _, w := range selection.Words {
			result.Words = append(result.Words, newWordDetail(w, ""))
			result.Exercises = append(result.Exercises, s.options.BuildLearn(w, selection.Words, catalog))
		}

		log.Debug("assembled learn session",
			slog.String("user_id", userID.String()),
			slog.Int("word_count", len(selection.Words)),
			slog.Bool("pointer_fallback", selection.Fallback))
		return nil
	})
	if err != nil {
		log.Error("failed to assemble learn session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("get_learn_session", "failed to assemble learn session", err)
	}
	return result, nil
}

func unavailableLearn(reason eligibility.Reason) *LearnSession {
	return &LearnSession{
		Reason:    reason,
		Words:     []WordDetail{},
		Exercises: []exercise.Exercise{},
	}
}

// CompleteLearn implements Service.CompleteLearn. Repeated IDs collapse.
func (s *sessionService) CompleteLearn(ctx context.Context, userID uuid.UUID, wordIDs []string) (*LearnResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	ids, err := parseWordIDs(wordIDs, true)
	if err != nil {
		return nil, service.NewServiceError("complete_learn", "invalid request", err)
	}

	result := &LearnResult{}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		words, err := repos.Words.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load words: %w", err)
		}
		if _, err := indexWords(ids, words); err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := repos.Progress.GetForUpdate(ctx, userID, id); err == nil {
				return fmt.Errorf("%w: %s", service.ErrNotInP0, id)
			} else if !errors.Is(err, store.ErrProgressNotFound) {
				return fmt.Errorf("failed to check progress for %s: %w", id, err)
			}

			progress, err := s.srs.Learn(userID, id, now)
			if err != nil {
				return err
			}
			if err := repos.Progress.Create(ctx, progress); err != nil {
				if errors.Is(err, store.ErrProgressExists) {
					return fmt.Errorf("%w: %s", service.ErrNotInP0, id)
				}
				return fmt.Errorf("failed to create progress for %s: %w", id, err)
			}
		}
		result.WordsMoved = len(ids)

		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		grid, err := curriculum.LoadGrid(ctx, repos.Curriculum)
		if err != nil {
			return err
		}
		if pointer, moved := curriculum.Advance(grid, user, words); moved {
			if err := repos.Users.UpdatePointer(ctx, userID, pointer.Level.ID, pointer.Category.ID); err != nil {
				return fmt.Errorf("failed to advance curriculum pointer: %w", err)
			}
			result.Pointer = &pointer
			log.Info("curriculum pointer advanced",
				slog.String("user_id", userID.String()),
				slog.String("level", pointer.Level.Label),
				slog.String("category", pointer.Category.Label))
		}

		result.TodayLearned, err = repos.Progress.CountLearnedSince(ctx, userID, eligibility.StartOfDay(now))
		if err != nil {
			return fmt.Errorf("failed to count words learned today: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Warn("learn completion rejected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("word_count", len(ids)))
		return nil, service.NewServiceError("complete_learn", "failed to complete learn session", err)
	}

	log.Info("learn session completed",
		slog.String("user_id", userID.String()),
		slog.Int("words_moved", result.WordsMoved),
		slog.Int("today_learned", result.TodayLearned))

	s.publish(ctx, events.TypeLearnCompleted, userID, events.LearnCompletedPayload{
		WordIDs:      ids,
		TodayLearned: result.TodayLearned,
	})
	return result, nil
}

// publish emits an event after commit. Handler failures are logged and do
// not fail the request.
func (s *sessionService) publish(ctx context.Context, eventType string, userID uuid.UUID, payload interface{}) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(eventType, userID, payload, s.clock())
	if err != nil {
		log.Error("failed to build event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()))
	}
}

// buildExercises builds one exercise per record using session as the
// preferred distractor pool.
func (s *sessionService) buildExercises(
	records []*domain.WordProgress,
	byID map[uuid.UUID]*domain.Word,
	session, catalog []*domain.Word,
) ([]exercise.Exercise, error) {
	out := make([]exercise.Exercise, 0, len(records))
	for _, p := range records {
		ex, err := s.options.Build(byID[p.WordID], p.Pool, session, catalog)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}

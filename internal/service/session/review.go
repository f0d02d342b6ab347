package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// GetReviewSession implements Service.GetReviewSession. Each word carries its
// remedial pool so the client can show the matching retest drill.
func (s *sessionService) GetReviewSession(ctx context.Context, userID uuid.UUID) (*ReviewSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	var result *ReviewSession
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		decision, err := s.gate.CanReview(ctx, eligibility.CountersFrom(repos), userID, now)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			result = unavailableReview(decision.Reason)
			return nil
		}

		due, err := repos.Progress.ListDueReview(ctx, userID, now, s.cfg.ReviewMaxWords)
		if err != nil {
			return fmt.Errorf("failed to list due review words: %w", err)
		}
		byID, session, catalog, err := loadSessionWords(ctx, repos, due)
		if err != nil {
			return err
		}
		exercises, err := s.buildExercises(due, byID, session, catalog)
		if err != nil {
			return err
		}

		result = &ReviewSession{
			Available: true,
			Words:     make([]WordDetail, 0, len(due)),
			Exercises: exercises,
		}
		for _, p := range due {
			result.Words = append(result.Words, newWordDetail(byID[p.WordID], p.Pool))
		}
		return nil
	})
	if err != nil {
		log.Error("failed to assemble review session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("get_review_session", "failed to assemble review session", err)
	}
	return result, nil
}

func unavailableReview(reason eligibility.Reason) *ReviewSession {
	return &ReviewSession{
		Reason:    reason,
		Words:     []WordDetail{},
		Exercises: []exercise.Exercise{},
	}
}

// CompleteReview implements Service.CompleteReview. Every word must be a
// remedial word in its review phase; otherwise nothing is changed.
func (s *sessionService) CompleteReview(ctx context.Context, userID uuid.UUID, wordIDs []string) (*ReviewCompletion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	ids, err := parseWordIDs(wordIDs, true)
	if err != nil {
		return nil, service.NewServiceError("complete_review", "invalid request", err)
	}

	result := &ReviewCompletion{}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var earliest time.Time
		for _, id := range ids {
			progress, err := repos.Progress.GetForUpdate(ctx, userID, id)
			if err != nil {
				if errors.Is(err, store.ErrProgressNotFound) {
					return domain.NewNotFoundError("word_progress", id.String())
				}
				return fmt.Errorf("failed to load progress for %s: %w", id, err)
			}
			if !progress.Pool.IsRemedial() {
				return fmt.Errorf("%w: %s is in %s", service.ErrNotRemedial, id, progress.Pool)
			}
			if !progress.InReviewPhase {
				return fmt.Errorf("%w: %s is already in retest", service.ErrWrongPhase, id)
			}

			next, err := s.srs.CompleteReview(progress, now)
			if err != nil {
				return err
			}
			if err := repos.Progress.Update(ctx, next); err != nil {
				return fmt.Errorf("failed to update progress for %s: %w", id, err)
			}
			if earliest.IsZero() || next.NextAvailableTime.Before(earliest) {
				earliest = next.NextAvailableTime
			}
		}
		result.WordsCompleted = len(ids)
		result.NextPracticeTime = &earliest
		return nil
	})
	if err != nil {
		log.Warn("review completion rejected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("word_count", len(ids)))
		return nil, service.NewServiceError("complete_review", "failed to complete review", err)
	}

	log.Info("review completed",
		slog.String("user_id", userID.String()),
		slog.Int("words_completed", result.WordsCompleted))
	return result, nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/events"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// GetPracticeSession implements Service.GetPracticeSession. The batch is
// all-or-nothing: fewer due words than the batch size means no session.
func (s *sessionService) GetPracticeSession(ctx context.Context, userID uuid.UUID) (*PracticeSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	var result *PracticeSession
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		decision, err := s.gate.CanPractice(ctx, eligibility.CountersFrom(repos), userID, now)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			result = unavailablePractice(decision.Reason)
			return nil
		}

		due, err := repos.Progress.ListDuePractice(ctx, userID, now, s.cfg.PracticeSessionSize)
		if err != nil {
			return fmt.Errorf("failed to list due practice words: %w", err)
		}
		if len(due) < s.cfg.PracticeSessionSize {
			result = unavailablePractice(eligibility.ReasonNotEnoughWords)
			return nil
		}

		byID, session, catalog, err := loadSessionWords(ctx, repos, due)
		if err != nil {
			return err
		}
		exercises, err := s.buildExercises(due, byID, session, catalog)
		if err != nil {
			return err
		}
		exercise.SortByType(exercises)

		result = &PracticeSession{
			Available:     true,
			Exercises:     exercises,
			ExerciseOrder: exercise.Order(exercises),
		}
		return nil
	})
	if err != nil {
		log.Error("failed to assemble practice session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("get_practice_session", "failed to assemble practice session", err)
	}
	return result, nil
}

func unavailablePractice(reason eligibility.Reason) *PracticeSession {
	return &PracticeSession{
		Reason:        reason,
		Exercises:     []exercise.Exercise{},
		ExerciseOrder: []domain.ExerciseType{},
	}
}

// loadSessionWords loads the words behind records, in record order, plus
// the whole catalog for distractors. A record whose word vanished is a
// NotFoundError.
func loadSessionWords(
	ctx context.Context,
	repos store.Repositories,
	records []*domain.WordProgress,
) (map[uuid.UUID]*domain.Word, []*domain.Word, []*domain.Word, error) {
	ids := make([]uuid.UUID, len(records))
	for i, p := range records {
		ids[i] = p.WordID
	}
	words, err := repos.Words.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load session words: %w", err)
	}
	byID, err := indexWords(ids, words)
	if err != nil {
		return nil, nil, nil, err
	}
	session := make([]*domain.Word, len(ids))
	for i, id := range ids {
		session[i] = byID[id]
	}
	catalog, err := repos.Words.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return byID, session, catalog, nil
}

// SubmitPractice implements Service.SubmitPractice.
func (s *sessionService) SubmitPractice(ctx context.Context, userID uuid.UUID, answers []Answer) (*SubmitResult, error) {
	return s.submit(ctx, "submit_practice", userID, answers)
}

// SubmitReview implements Service.SubmitReview. Retest answers follow the
// same transition rules as practice.
func (s *sessionService) SubmitReview(ctx context.Context, userID uuid.UUID, answers []Answer) (*SubmitResult, error) {
	return s.submit(ctx, "submit_review", userID, answers)
}

type parsedAnswer struct {
	Answer
	id uuid.UUID
}

func parseAnswers(answers []Answer) ([]parsedAnswer, error) {
	if len(answers) == 0 {
		return nil, service.ErrEmptyBatch
	}
	raw := make([]string, len(answers))
	for i, a := range answers {
		raw[i] = a.WordID
	}
	ids, err := parseWordIDs(raw, false)
	if err != nil {
		return nil, err
	}
	out := make([]parsedAnswer, len(answers))
	for i, a := range answers {
		if a.ExerciseType != "" && !a.ExerciseType.Valid() {
			return nil, domain.NewValidationError("exercise_type",
				fmt.Sprintf("unknown exercise type %q", a.ExerciseType), domain.ErrValidation)
		}
		if a.ResponseTimeMs != nil && *a.ResponseTimeMs < 0 {
			return nil, domain.NewValidationError("response_time_ms", "cannot be negative", domain.ErrValidation)
		}
		out[i] = parsedAnswer{Answer: a, id: ids[i]}
	}
	return out, nil
}

// submit applies answers one word at a time, in request order, inside one
// unit of work. Each record is read with a row lock so concurrent
// submissions for the same word serialize.
func (s *sessionService) submit(ctx context.Context, op string, userID uuid.UUID, answers []Answer) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	parsed, err := parseAnswers(answers)
	if err != nil {
		return nil, service.NewServiceError(op, "invalid request", err)
	}

	result := &SubmitResult{Results: make([]AnswerResult, 0, len(parsed))}
	var mastered []events.ProgressMasteredPayload

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		records := make([]*domain.AnswerRecord, 0, len(parsed))

		for _, a := range parsed {
			progress, err := repos.Progress.GetForUpdate(ctx, userID, a.id)
			if err != nil {
				if errors.Is(err, store.ErrProgressNotFound) {
					return domain.NewNotFoundError("word_progress", a.id.String())
				}
				return fmt.Errorf("failed to load progress for %s: %w", a.id, err)
			}
			if progress.InReviewPhase {
				return fmt.Errorf("%w: %s is awaiting review", service.ErrWrongPhase, a.id)
			}
			word, err := repos.Words.GetByID(ctx, a.id)
			if err != nil {
				if errors.Is(err, store.ErrWordNotFound) {
					return domain.NewNotFoundError("word", a.id.String())
				}
				return fmt.Errorf("failed to load word %s: %w", a.id, err)
			}

			next, outcome, err := s.srs.Answer(progress, a.Correct, now)
			if err != nil {
				return err
			}
			if err := repos.Progress.Update(ctx, next); err != nil {
				return fmt.Errorf("failed to update progress for %s: %w", a.id, err)
			}

			exerciseType := a.ExerciseType
			if exerciseType == "" {
				exerciseType, _ = domain.ExerciseTypeForPool(progress.Pool)
			}
			records = append(records, &domain.AnswerRecord{
				ID:             uuid.New(),
				UserID:         userID,
				WordID:         a.id,
				Word:           word.Text,
				Correct:        a.Correct,
				ExerciseType:   exerciseType,
				Source:         domain.SourceForPool(progress.Pool),
				Pool:           progress.Pool,
				UserAnswer:     a.UserAnswer,
				ResponseTimeMs: a.ResponseTimeMs,
				CreatedAt:      now,
			})

			if a.Correct {
				result.Summary.CorrectCount++
			} else {
				result.Summary.IncorrectCount++
			}
			if outcome.ReturnedToPractice {
				result.Summary.ReturnedToPractice++
			}
			if outcome.Mastered && outcome.PreviousPool != domain.PoolP6 {
				mastered = append(mastered, events.ProgressMasteredPayload{WordID: a.id, Word: word.Text})
			}

			result.Results = append(result.Results, AnswerResult{
				WordID:            a.id,
				Correct:           a.Correct,
				PreviousPool:      outcome.PreviousPool,
				NewPool:           outcome.NewPool,
				NextAvailableTime: outcome.NextAvailableTime,
			})
		}

		if err := repos.Answers.CreateBatch(ctx, records); err != nil {
			return fmt.Errorf("failed to record answers: %w", err)
		}

		next, err := s.nextAvailableIfIdle(ctx, repos, userID, now)
		if err != nil {
			return err
		}
		result.NextAvailableTime = next
		return nil
	})
	if err != nil {
		log.Warn("submission rejected",
			slog.String("operation", op),
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("answer_count", len(parsed)))
		return nil, service.NewServiceError(op, "failed to apply answers", err)
	}

	log.Info("answers applied",
		slog.String("operation", op),
		slog.String("user_id", userID.String()),
		slog.Int("correct", result.Summary.CorrectCount),
		slog.Int("incorrect", result.Summary.IncorrectCount))

	for _, m := range mastered {
		s.publish(ctx, events.TypeProgressMastered, userID, m)
	}
	return result, nil
}

// nextAvailableIfIdle returns the earliest upcoming due time when no session
// of any kind can start now, and nil otherwise.
func (s *sessionService) nextAvailableIfIdle(
	ctx context.Context,
	repos store.Repositories,
	userID uuid.UUID,
	now time.Time,
) (*time.Time, error) {
	status, err := s.gate.Evaluate(ctx, eligibility.CountersFrom(repos), userID, now)
	if err != nil {
		return nil, err
	}
	if status.AnyAllowed() {
		return nil, nil
	}
	next, err := repos.Progress.NextAvailableAfter(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find next available time: %w", err)
	}
	return next, nil
}

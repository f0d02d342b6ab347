package srs

import (
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// Outcome summarizes one applied transition.
type Outcome struct {
	PreviousPool      domain.Pool
	NewPool           domain.Pool
	InReviewPhase     bool
	NextAvailableTime time.Time

	// Mastered is set when the word ends at the terminal rung.
	Mastered bool

	// ReturnedToPractice is set when a remedial word passed its retest.
	ReturnedToPractice bool
}

// checkState rejects pool/phase combinations the schedule does not define.
func checkState(op string, p *domain.WordProgress) error {
	if !p.Pool.Persistable() || (p.InReviewPhase && !p.Pool.IsRemedial()) {
		return domain.NewStateInvariantError(op, p.Pool, p.InReviewPhase)
	}
	return nil
}

// newLearnedProgress builds the record created when a word leaves P0.
func newLearnedProgress(userID, wordID uuid.UUID, now time.Time, params *Params) *domain.WordProgress {
	return &domain.WordProgress{
		UserID:            userID,
		WordID:            wordID,
		Pool:              domain.PoolP1,
		LearnedAt:         now,
		LastPracticeTime:  now,
		NextAvailableTime: now.Add(params.PracticeDelay(1)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// calculateAnswer applies a practice-style answer and returns a new record.
//
// Practice ladder: correct Pn moves to P(n+1), incorrect Pn falls to Rn in the
// review phase. P6 is terminal and absorbs any answer without rescheduling.
// Remedial ladder (practice phase only): correct Rn returns to Pn, incorrect
// Rn stays and goes back to the review phase.
func calculateAnswer(
	p *domain.WordProgress,
	correct bool,
	now time.Time,
	params *Params,
) (*domain.WordProgress, Outcome, error) {
	if err := checkState("answer", p); err != nil {
		return nil, Outcome{}, err
	}
	if p.InReviewPhase {
		return nil, Outcome{}, domain.NewStateInvariantError("answer", p.Pool, true)
	}

	next := p.Clone()
	next.LastPracticeTime = now
	next.UpdatedAt = now
	n := p.Pool.Rung()

	out := Outcome{PreviousPool: p.Pool}

	switch {
	case p.Pool.IsMastered():
		out.Mastered = true
	case p.Pool.IsPractice() && correct:
		next.Pool = domain.PracticePool(n + 1)
		next.NextAvailableTime = now.Add(params.PracticeDelay(n + 1))
		out.Mastered = next.Pool.IsMastered()
	case p.Pool.IsPractice():
		next.Pool = domain.RemedialPool(n)
		next.InReviewPhase = true
		next.NextAvailableTime = now.Add(params.ReviewDisplayDelay)
	case correct:
		next.Pool = domain.PracticePool(n)
		next.NextAvailableTime = now.Add(params.PracticeDelay(n))
		out.ReturnedToPractice = true
	default:
		next.InReviewPhase = true
		next.NextAvailableTime = now.Add(params.ReviewDisplayDelay)
	}

	out.NewPool = next.Pool
	out.InReviewPhase = next.InReviewPhase
	out.NextAvailableTime = next.NextAvailableTime
	return next, out, nil
}

// calculateReviewCompletion flips a remedial word from the review display to
// its practice retest. The pool never changes.
func calculateReviewCompletion(
	p *domain.WordProgress,
	now time.Time,
	params *Params,
) (*domain.WordProgress, error) {
	if err := checkState("complete review", p); err != nil {
		return nil, err
	}
	if !p.Pool.IsRemedial() || !p.InReviewPhase {
		return nil, domain.NewStateInvariantError("complete review", p.Pool, p.InReviewPhase)
	}

	next := p.Clone()
	next.InReviewPhase = false
	next.NextAvailableTime = now.Add(params.RemedialPracticeDelay)
	completed := now
	next.ReviewCompletedTime = &completed
	next.UpdatedAt = now
	return next, nil
}

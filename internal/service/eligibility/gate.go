package eligibility

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/config"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// Reason is the machine-readable code of a refused admission.
type Reason string

// Refusal reasons.
const (
	ReasonDailyLimitReached Reason = "daily_limit_reached"
	ReasonP1PoolFull        Reason = "p1_pool_full"
	ReasonNoWordsInP0       Reason = "no_words_in_p0"
	ReasonNotEnoughWords    Reason = "not_enough_words"
)

// Decision is the result of one admission check. A refusal is a normal
// outcome, not an error.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow is the decision that admits a session.
func Allow() Decision { return Decision{Allowed: true} }

// Deny is the decision that refuses a session for reason.
func Deny(reason Reason) Decision { return Decision{Reason: reason} }

// Limits are the admission thresholds.
type Limits struct {
	DailyLearnLimit  int
	P1UpcomingLimit  int
	P1UpcomingWindow time.Duration
	PracticeMinWords int
	ReviewMinWords   int
}

// DefaultLimits returns the stock thresholds.
func DefaultLimits() Limits {
	return Limits{
		DailyLearnLimit:  50,
		P1UpcomingLimit:  10,
		P1UpcomingWindow: 10 * time.Minute,
		PracticeMinWords: 5,
		ReviewMinWords:   3,
	}
}

// LimitsFromConfig builds Limits from the learning configuration. A practice
// session is all-or-nothing, so its minimum is the batch size.
func LimitsFromConfig(cfg config.LearningConfig) Limits {
	return Limits{
		DailyLearnLimit:  cfg.DailyLearnLimit,
		P1UpcomingLimit:  cfg.P1UpcomingLimit,
		P1UpcomingWindow: cfg.P1UpcomingWindow,
		PracticeMinWords: cfg.PracticeSessionSize,
		ReviewMinWords:   cfg.ReviewMinWords,
	}
}

// Validate checks that every threshold is positive.
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int64
	}{
		{"daily_learn_limit", int64(l.DailyLearnLimit)},
		{"p1_upcoming_limit", int64(l.P1UpcomingLimit)},
		{"p1_upcoming_window", int64(l.P1UpcomingWindow)},
		{"practice_min_words", int64(l.PracticeMinWords)},
		{"review_min_words", int64(l.ReviewMinWords)},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return domain.NewValidationError(c.name, fmt.Sprintf("must be positive, got %d", c.value), domain.ErrValidation)
		}
	}
	return nil
}

// ProgressCounter is the slice of store.ProgressStore the gate reads.
type ProgressCounter interface {
	CountLearnedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CountPoolDueBy(ctx context.Context, userID uuid.UUID, pool domain.Pool, by time.Time) (int, error)
	CountDuePractice(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	CountDueReview(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
}

// UnlearnedCounter is the slice of store.WordStore the gate reads.
type UnlearnedCounter interface {
	CountUnlearned(ctx context.Context, userID uuid.UUID) (int, error)
}

// Counters binds the gate to a set of stores, usually those of the current
// unit of work.
type Counters struct {
	Progress ProgressCounter
	Words    UnlearnedCounter
}

// CountersFrom extracts the gate's view of repos.
func CountersFrom(repos store.Repositories) Counters {
	return Counters{Progress: repos.Progress, Words: repos.Words}
}

// Status is the outcome of all three checks at one instant.
type Status struct {
	Learn    Decision
	Practice Decision
	Review   Decision
}

// AnyAllowed reports whether at least one kind of session may start.
func (s Status) AnyAllowed() bool {
	return s.Learn.Allowed || s.Practice.Allowed || s.Review.Allowed
}

// Gate evaluates admission checks. Every call reads fresh counts; nothing
// is cached because eligibility depends on the time of the request.
type Gate struct {
	limits Limits
	logger *slog.Logger
}

// NewGate creates a Gate. It returns an error if limits are invalid.
func NewGate(limits Limits, logger *slog.Logger) (*Gate, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		limits: limits,
		logger: logger.With(slog.String("component", "eligibility_gate")),
	}, nil
}

// Limits returns the thresholds in use.
func (g *Gate) Limits() Limits {
	return g.limits
}

// StartOfDay returns UTC midnight of the day containing now.
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CanLearn checks, in order, the daily cap, the upcoming P1 cap and whether
// any unlearned word remains. The first failing check names the reason.
func (g *Gate) CanLearn(ctx context.Context, c Counters, userID uuid.UUID, now time.Time) (Decision, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	learned, err := c.Progress.CountLearnedSince(ctx, userID, StartOfDay(now))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to count words learned today: %w", err)
	}
	if learned >= g.limits.DailyLearnLimit {
		log.Debug("learn refused",
			slog.String("user_id", userID.String()),
			slog.String("reason", string(ReasonDailyLimitReached)),
			slog.Int("today_learned", learned))
		return Deny(ReasonDailyLimitReached), nil
	}

	upcoming, err := c.Progress.CountPoolDueBy(ctx, userID, domain.PoolP1, now.Add(g.limits.P1UpcomingWindow))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to count upcoming P1 words: %w", err)
	}
	if upcoming >= g.limits.P1UpcomingLimit {
		log.Debug("learn refused",
			slog.String("user_id", userID.String()),
			slog.String("reason", string(ReasonP1PoolFull)),
			slog.Int("p1_upcoming", upcoming))
		return Deny(ReasonP1PoolFull), nil
	}

	unlearned, err := c.Words.CountUnlearned(ctx, userID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to count unlearned words: %w", err)
	}
	if unlearned == 0 {
		return Deny(ReasonNoWordsInP0), nil
	}

	return Allow(), nil
}

// CanPractice checks that due practice-ladder words plus due remedial
// practice-phase words reach the batch minimum.
func (g *Gate) CanPractice(ctx context.Context, c Counters, userID uuid.UUID, now time.Time) (Decision, error) {
	due, err := c.Progress.CountDuePractice(ctx, userID, now)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to count due practice words: %w", err)
	}
	if due < g.limits.PracticeMinWords {
		return Deny(ReasonNotEnoughWords), nil
	}
	return Allow(), nil
}

// CanReview checks that due remedial review-phase words reach the minimum.
func (g *Gate) CanReview(ctx context.Context, c Counters, userID uuid.UUID, now time.Time) (Decision, error) {
	due, err := c.Progress.CountDueReview(ctx, userID, now)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to count due review words: %w", err)
	}
	if due < g.limits.ReviewMinWords {
		return Deny(ReasonNotEnoughWords), nil
	}
	return Allow(), nil
}

// Evaluate runs all three checks.
func (g *Gate) Evaluate(ctx context.Context, c Counters, userID uuid.UUID, now time.Time) (Status, error) {
	var (
		s   Status
		err error
	)
	if s.Learn, err = g.CanLearn(ctx, c, userID, now); err != nil {
		return Status{}, err
	}
	if s.Practice, err = g.CanPractice(ctx, c, userID, now); err != nil {
		return Status{}, err
	}
	if s.Review, err = g.CanReview(ctx, c, userID, now); err != nil {
		return Status{}, err
	}
	return s, nil
}

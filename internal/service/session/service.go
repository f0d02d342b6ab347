package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/config"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain/srs"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/events"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/curriculum"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// Service assembles learn, practice and review sessions and applies their
// results. Every operation runs as one unit of work: a submission either
// applies to every word it names or to none.
type Service interface {
	// GetLearnSession returns up to the learn quota of P0 words with one
	// reading_lv1 exercise each, or an unavailable session with a reason.
	GetLearnSession(ctx context.Context, userID uuid.UUID) (*LearnSession, error)

	// CompleteLearn moves the named P0 words to P1 and advances the
	// curriculum pointer.
	CompleteLearn(ctx context.Context, userID uuid.UUID, wordIDs []string) (*LearnResult, error)

	// GetPracticeSession returns a full batch of due practice words, or an
	// unavailable session with a reason.
	GetPracticeSession(ctx context.Context, userID uuid.UUID) (*PracticeSession, error)

	// SubmitPractice applies practice answers.
	SubmitPractice(ctx context.Context, userID uuid.UUID, answers []Answer) (*SubmitResult, error)

	// GetReviewSession returns due review-phase words, or an unavailable
	// session with a reason.
	GetReviewSession(ctx context.Context, userID uuid.UUID) (*ReviewSession, error)

	// CompleteReview ends the review display of the named remedial words.
	CompleteReview(ctx context.Context, userID uuid.UUID, wordIDs []string) (*ReviewCompletion, error)

	// SubmitReview applies remedial retest answers.
	SubmitReview(ctx context.Context, userID uuid.UUID, answers []Answer) (*SubmitResult, error)

	// GetStats returns the home screen counters and gate status.
	GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error)

	// GetWordPool lists every catalog word under the user's pool for it.
	GetWordPool(ctx context.Context, userID uuid.UUID) (*WordPool, error)

	// GetLevelAnalysisSession returns placement exercises drawn from every level.
	GetLevelAnalysisSession(ctx context.Context, userID uuid.UUID) (*LevelAnalysisSession, error)

	// SubmitLevelAnalysis places the user at the start of the given level.
	SubmitLevelAnalysis(ctx context.Context, userID uuid.UUID, levelOrder int) (*Placement, error)

	// GetVocabularyTutorial returns the fixed walkthrough of every drill
	// type. It fails with a not-found error when a tutorial word is missing
	// from the catalog.
	GetVocabularyTutorial(ctx context.Context, userID uuid.UUID) (*Tutorial, error)

	// CompleteVocabularyTutorial records that the user finished the tutorial.
	CompleteVocabularyTutorial(ctx context.Context, userID uuid.UUID) error

	// ResetProgress deletes all of the user's progress and returns the count.
	ResetProgress(ctx context.Context, userID uuid.UUID) (int, error)

	// ResetCooldown makes all of the user's words due now and returns the count.
	ResetCooldown(ctx context.Context, userID uuid.UUID) (int, error)
}

// Config holds the session sizes.
type Config struct {
	LearnSessionSize           int
	PracticeSessionSize        int
	ReviewMaxWords             int
	UpcomingWindow             time.Duration
	LevelAnalysisWordsPerLevel int
}

// DefaultConfig returns the stock session sizes.
func DefaultConfig() Config {
	return Config{
		LearnSessionSize:           5,
		PracticeSessionSize:        5,
		ReviewMaxWords:             5,
		UpcomingWindow:             24 * time.Hour,
		LevelAnalysisWordsPerLevel: 10,
	}
}

// ConfigFromLearning builds Config from the learning configuration.
func ConfigFromLearning(cfg config.LearningConfig) Config {
	return Config{
		LearnSessionSize:           cfg.LearnSessionSize,
		PracticeSessionSize:        cfg.PracticeSessionSize,
		ReviewMaxWords:             cfg.ReviewMaxWords,
		UpcomingWindow:             cfg.UpcomingWindow,
		LevelAnalysisWordsPerLevel: cfg.LevelAnalysisWordsPerLevel,
	}
}

// Dependencies are the collaborators of the session service. Emitter, Now
// and Logger are optional.
type Dependencies struct {
	Transactor store.Transactor
	SRS        srs.Service
	Gate       *eligibility.Gate
	Traversal  *curriculum.Traversal
	Options    *exercise.Generator
	Emitter    events.EventEmitter
	Config     Config
	Now        func() time.Time
	Logger     *slog.Logger
}

type sessionService struct {
	tx        store.Transactor
	srs       srs.Service
	gate      *eligibility.Gate
	traversal *curriculum.Traversal
	options   *exercise.Generator
	emitter   events.EventEmitter
	cfg       Config
	now       func() time.Time
	logger    *slog.Logger
}

var _ Service = (*sessionService)(nil)

// NewService creates the session service.
func NewService(deps Dependencies) (Service, error) {
	required := []struct {
		name  string
		isNil bool
	}{
		{"transactor", deps.Transactor == nil},
		{"srs", deps.SRS == nil},
		{"gate", deps.Gate == nil},
		{"traversal", deps.Traversal == nil},
		{"options", deps.Options == nil},
	}
	for _, r := range required {
		if r.isNil {
			return nil, domain.NewValidationError(r.name, "cannot be nil", domain.ErrValidation)
		}
	}

	sizes := []struct {
		name  string
		value int
	}{
		{"learn_session_size", deps.Config.LearnSessionSize},
		{"practice_session_size", deps.Config.PracticeSessionSize},
		{"review_max_words", deps.Config.ReviewMaxWords},
		{"upcoming_window", int(deps.Config.UpcomingWindow)},
		{"level_analysis_words_per_level", deps.Config.LevelAnalysisWordsPerLevel},
	}
	for _, sz := range sizes {
		if sz.value <= 0 {
			return nil, domain.NewValidationError(sz.name, "must be positive", domain.ErrValidation)
		}
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &sessionService{
		tx:        deps.Transactor,
		srs:       deps.SRS,
		gate:      deps.Gate,
		traversal: deps.Traversal,
		options:   deps.Options,
		emitter:   deps.Emitter,
		cfg:       deps.Config,
		now:       now,
		logger:    logger.With(slog.String("component", "session_service")),
	}, nil
}

func (s *sessionService) clock() time.Time {
	return s.now().UTC()
}

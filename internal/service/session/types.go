package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
)

// WordDetail is the study card of a word. Pool is empty outside review.
type WordDetail struct {
	ID          uuid.UUID
	Word        string
	Translation string
	Sentence    *string
	SentenceZh  *string
	ImageURL    *string
	AudioURL    *string
	Pool        domain.Pool
}

func newWordDetail(w *domain.Word, pool domain.Pool) WordDetail {
	return WordDetail{
		ID:          w.ID,
		Word:        w.Text,
		Translation: w.Translation,
		Sentence:    w.Sentence,
		SentenceZh:  w.SentenceZh,
		ImageURL:    w.ImageURL,
		AudioURL:    w.AudioURL,
		Pool:        pool,
	}
}

// LearnSession is the payload of GetLearnSession.
type LearnSession struct {
	Available bool
	Reason    eligibility.Reason
	Words     []WordDetail
	Exercises []exercise.Exercise
}

// LearnResult is the payload of CompleteLearn.
type LearnResult struct {
	WordsMoved   int
	TodayLearned int

	// Pointer is the new curriculum pointer, or nil if it did not move.
	Pointer *domain.CurriculumPair
}

// PracticeSession is the payload of GetPracticeSession.
type PracticeSession struct {
	Available     bool
	Reason        eligibility.Reason
	Exercises     []exercise.Exercise
	ExerciseOrder []domain.ExerciseType
}

// ReviewSession is the payload of GetReviewSession.
type ReviewSession struct {
	Available bool
	Reason    eligibility.Reason
	Words     []WordDetail
	Exercises []exercise.Exercise
}

// Answer is one submitted practice or retest answer. ExerciseType, when
// empty, defaults to the drill of the word's current pool.
type Answer struct {
	WordID         string
	Correct        bool
	ExerciseType   domain.ExerciseType
	UserAnswer     *string
	ResponseTimeMs *int
}

// AnswerResult is the transition applied for one answer.
type AnswerResult struct {
	WordID            uuid.UUID
	Correct           bool
	PreviousPool      domain.Pool
	NewPool           domain.Pool
	NextAvailableTime time.Time
}

// Summary tallies a submission.
type Summary struct {
	CorrectCount   int
	IncorrectCount int

	// ReturnedToPractice counts remedial words that passed their retest.
	ReturnedToPractice int
}

// SubmitResult is the payload of SubmitPractice and SubmitReview.
type SubmitResult struct {
	Results []AnswerResult
	Summary Summary

	// NextAvailableTime is set only when no session of any kind can start.
	NextAvailableTime *time.Time
}

// ReviewCompletion is the payload of CompleteReview.
type ReviewCompletion struct {
	WordsCompleted   int
	NextPracticeTime *time.Time
}

// Stats is the payload of GetStats.
type Stats struct {
	TodayLearned      int
	AvailablePractice int
	AvailableReview   int
	Upcoming          int
	Status            eligibility.Status
	NextAvailableTime *time.Time
	CurrentLevel      *domain.Level
	CurrentCategory   *domain.Category
}

// PoolEntry is one word listed under its pool.
type PoolEntry struct {
	WordID            uuid.UUID
	Word              string
	Translation       string
	NextAvailableTime *time.Time
}

// WordPool is the payload of GetWordPool. Every pool, P0 included, has an
// entry even when empty.
type WordPool struct {
	Pools      map[domain.Pool][]PoolEntry
	TotalCount int
}

// AnalysisExercise is a placement exercise tagged with its level.
type AnalysisExercise struct {
	exercise.Exercise
	LevelOrder int
}

// LevelAnalysisSession is the payload of GetLevelAnalysisSession.
type LevelAnalysisSession struct {
	Exercises []AnalysisExercise
}

// TutorialStep is one numbered drill of the vocabulary tutorial.
type TutorialStep struct {
	Step int
	exercise.Exercise
}

// Tutorial is the payload of GetVocabularyTutorial.
type Tutorial struct {
	Word  WordDetail
	Steps []TutorialStep
}

// Placement is the payload of SubmitLevelAnalysis.
type Placement struct {
	Level    domain.Level
	Category domain.Category
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnswerSource records which flow produced an answer.
type AnswerSource string

// Answer sources.
const (
	AnswerSourcePractice       AnswerSource = "practice"
	AnswerSourceReviewPractice AnswerSource = "review_practice"
)

// AnswerRecord is one entry of a user's answer history. Records are append-only.
type AnswerRecord struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	UserID         uuid.UUID    `json:"user_id" db:"user_id"`
	WordID         uuid.UUID    `json:"word_id" db:"word_id"`
	Word           string       `json:"word" db:"word"`
	Correct        bool         `json:"is_correct" db:"is_correct"`
	ExerciseType   ExerciseType `json:"exercise_type" db:"exercise_type"`
	Source         AnswerSource `json:"source" db:"source"`
	Pool           Pool         `json:"pool" db:"pool"`
	UserAnswer     *string      `json:"user_answer,omitempty" db:"user_answer"`
	ResponseTimeMs *int         `json:"response_time_ms,omitempty" db:"response_time_ms"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

// SourceForPool returns the answer source for a word answered from pool p.
func SourceForPool(p Pool) AnswerSource {
	if p.IsRemedial() {
		return AnswerSourceReviewPractice
	}
	return AnswerSourcePractice
}

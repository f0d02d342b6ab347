package api

import (
	"time"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/session"
)

// Requests

// WordIDsRequest is the body of the learn and review completion endpoints.
// Clients may also send their per-word answers; they are not needed.
type WordIDsRequest struct {
	WordIDs []string `json:"word_ids" validate:"required,min=1,dive,required"`
}

// AnswerRequest is one answered exercise.
type AnswerRequest struct {
	WordID         string  `json:"word_id"                    validate:"required"`
	Correct        *bool   `json:"correct"                    validate:"required"`
	ExerciseType   string  `json:"exercise_type,omitempty"    validate:"omitempty,oneof=reading_lv1 listening_lv1 speaking_lv1 reading_lv2 speaking_lv2"`
	UserAnswer     *string `json:"user_answer,omitempty"      validate:"omitempty,max=500"`
	ResponseTimeMs *int    `json:"response_time_ms,omitempty" validate:"omitempty,gte=0"`
}

// SubmitAnswersRequest is the body of the practice and review submit endpoints.
type SubmitAnswersRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

// LevelAnalysisSubmitRequest is the body of the placement submit endpoint.
type LevelAnalysisSubmitRequest struct {
	LevelOrder *int `json:"level_order" validate:"required,gt=0"`
}

// WordInput is one catalog entry of an import.
type WordInput struct {
	Word        string  `json:"word"                  validate:"required,max=200"`
	Translation string  `json:"translation"           validate:"required,max=500"`
	Sentence    *string `json:"sentence,omitempty"`
	SentenceZh  *string `json:"sentence_zh,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"   validate:"omitempty,url"`
	AudioURL    *string `json:"audio_url,omitempty"   validate:"omitempty,url"`
	LevelID     *int    `json:"level_id,omitempty"    validate:"omitempty,gt=0"`
	CategoryID  *int    `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Level       string  `json:"level,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// ImportWordsRequest is the body of the words import endpoint.
type ImportWordsRequest struct {
	Words         []WordInput `json:"words"          validate:"required,min=1,dive"`
	ClearExisting bool        `json:"clear_existing"`
}

// Shared response parts

// WordDetailResponse is a study card.
type WordDetailResponse struct {
	ID          string  `json:"id"`
	Word        string  `json:"word"`
	Translation string  `json:"translation"`
	Sentence    *string `json:"sentence"`
	SentenceZh  *string `json:"sentence_zh"`
	ImageURL    *string `json:"image_url"`
	AudioURL    *string `json:"audio_url"`
	Pool        string  `json:"pool,omitempty"`
}

// OptionResponse is one multiple-choice option.
type OptionResponse struct {
	Index       int     `json:"index"`
	WordID      string  `json:"word_id"`
	Translation string  `json:"translation"`
	ImageURL    *string `json:"image_url"`
}

// ExerciseResponse is one drill.
type ExerciseResponse struct {
	WordID       string           `json:"word_id"`
	Word         string           `json:"word"`
	Translation  string           `json:"translation"`
	ImageURL     *string          `json:"image_url"`
	AudioURL     *string          `json:"audio_url"`
	Pool         string           `json:"pool"`
	Type         string           `json:"type"`
	Options      []OptionResponse `json:"options"`
	CorrectIndex *int             `json:"correct_index"`
}

// LevelResponse identifies a level or a category.
type LevelResponse struct {
	ID    int    `json:"id"`
	Order int    `json:"order"`
	Label string `json:"label"`
}

// Session responses

// LearnSessionResponse is returned by GET /api/learn/session.
type LearnSessionResponse struct {
	Available bool                 `json:"available"`
	Reason    *string              `json:"reason"`
	Words     []WordDetailResponse `json:"words"`
	Exercises []ExerciseResponse   `json:"exercises"`
}

// LearnCompleteResponse is returned by POST /api/learn/complete.
type LearnCompleteResponse struct {
	Success         bool           `json:"success"`
	WordsMoved      int            `json:"words_moved"`
	TodayLearned    int            `json:"today_learned"`
	CurrentLevel    *LevelResponse `json:"current_level,omitempty"`
	CurrentCategory *LevelResponse `json:"current_category,omitempty"`
}

// PracticeSessionResponse is returned by GET /api/practice/session.
type PracticeSessionResponse struct {
	Available     bool               `json:"available"`
	Reason        *string            `json:"reason"`
	Exercises     []ExerciseResponse `json:"exercises"`
	ExerciseOrder []string           `json:"exercise_order"`
}

// AnswerResultResponse is the transition applied to one answered word.
type AnswerResultResponse struct {
	WordID            string    `json:"word_id"`
	Correct           bool      `json:"correct"`
	PreviousPool      string    `json:"previous_pool"`
	NewPool           string    `json:"new_pool"`
	NextAvailableTime time.Time `json:"next_available_time"`
}

// PracticeSummaryResponse tallies a practice submission.
type PracticeSummaryResponse struct {
	CorrectCount   int `json:"correct_count"`
	IncorrectCount int `json:"incorrect_count"`
}

// PracticeSubmitResponse is returned by POST /api/practice/submit.
type PracticeSubmitResponse struct {
	Success           bool                    `json:"success"`
	Results           []AnswerResultResponse  `json:"results"`
	Summary           PracticeSummaryResponse `json:"summary"`
	NextAvailableTime *time.Time              `json:"next_available_time"`
}

// ReviewSummaryResponse tallies a retest submission. ReturnedToPractice
// counts words that passed and went back to their practice pool.
type ReviewSummaryResponse struct {
	CorrectCount       int `json:"correct_count"`
	IncorrectCount     int `json:"incorrect_count"`
	ReturnedToPractice int `json:"returned_to_p"`
}

// ReviewSubmitResponse is returned by POST /api/review/submit.
type ReviewSubmitResponse struct {
	Success           bool                   `json:"success"`
	Results           []AnswerResultResponse `json:"results"`
	Summary           ReviewSummaryResponse  `json:"summary"`
	NextAvailableTime *time.Time             `json:"next_available_time"`
}

// ReviewSessionResponse is returned by GET /api/review/session.
type ReviewSessionResponse struct {
	Available bool                 `json:"available"`
	Reason    *string              `json:"reason"`
	Words     []WordDetailResponse `json:"words"`
	Exercises []ExerciseResponse   `json:"exercises"`
}

// ReviewCompleteResponse is returned by POST /api/review/complete.
type ReviewCompleteResponse struct {
	Success           bool       `json:"success"`
	WordsCompleted    int        `json:"words_completed"`
	NextAvailableTime *time.Time `json:"next_available_time"`
}

// StatsResponse is returned by GET /api/home/stats.
type StatsResponse struct {
	TodayLearned      int            `json:"today_learned"`
	AvailablePractice int            `json:"available_practice"`
	AvailableReview   int            `json:"available_review"`
	Upcoming24h       int            `json:"upcoming_24h"`
	CanLearn          bool           `json:"can_learn"`
	CanPractice       bool           `json:"can_practice"`
	CanReview         bool           `json:"can_review"`
	NextAvailableTime *time.Time     `json:"next_available_time"`
	CurrentLevel      *LevelResponse `json:"current_level"`
	CurrentCategory   *LevelResponse `json:"current_category"`
}

// WordPoolItem is one word listed under its pool.
type WordPoolItem struct {
	WordID            string     `json:"word_id"`
	Word              string     `json:"word"`
	Translation       string     `json:"translation"`
	NextAvailableTime *time.Time `json:"next_available_time"`
}

// WordPoolResponse is returned by GET /api/home/word-pool.
type WordPoolResponse struct {
	Pools      map[string][]WordPoolItem `json:"pools"`
	TotalCount int                       `json:"total_count"`
}

// LevelAnalysisExerciseResponse is a placement drill tagged with its level.
type LevelAnalysisExerciseResponse struct {
	ExerciseResponse
	LevelOrder int `json:"level_order"`
}

// LevelAnalysisSessionResponse is returned by GET /api/level-analysis/session.
type LevelAnalysisSessionResponse struct {
	Exercises []LevelAnalysisExerciseResponse `json:"exercises"`
}

// LevelAnalysisSubmitResponse is returned by POST /api/level-analysis/submit.
type LevelAnalysisSubmitResponse struct {
	Success         bool          `json:"success"`
	CurrentLevel    LevelResponse `json:"current_level"`
	CurrentCategory LevelResponse `json:"current_category"`
}

// Tutorial responses

// TutorialStepResponse is one numbered tutorial drill.
type TutorialStepResponse struct {
	Step int `json:"step"`
	ExerciseResponse
}

// VocabularyTutorialResponse is returned by GET /api/tutorial/vocabulary.
type VocabularyTutorialResponse struct {
	Word  WordDetailResponse     `json:"word"`
	Steps []TutorialStepResponse `json:"steps"`
}

// TutorialCompleteResponse is returned by POST /api/tutorial/vocabulary/complete.
type TutorialCompleteResponse struct {
	Success bool `json:"success"`
}

// Admin responses

// ResetProgressResponse is returned by POST /api/admin/reset-progress.
type ResetProgressResponse struct {
	Success    bool `json:"success"`
	WordsReset int  `json:"words_reset"`
}

// ResetCooldownResponse is returned by POST /api/admin/reset-cooldown.
type ResetCooldownResponse struct {
	Success       bool `json:"success"`
	WordsAffected int  `json:"words_affected"`
}

// ImportWordsResponse is returned by POST /api/admin/words.
type ImportWordsResponse struct {
	Success       bool `json:"success"`
	WordsImported int  `json:"words_imported"`
	WordsSkipped  int  `json:"words_skipped"`
	WordsCleared  int  `json:"words_cleared"`
}

// WordOutput is one catalog word.
type WordOutput struct {
	ID          string    `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Sentence    *string   `json:"sentence"`
	SentenceZh  *string   `json:"sentence_zh"`
	ImageURL    *string   `json:"image_url"`
	AudioURL    *string   `json:"audio_url"`
	LevelID     *int      `json:"level_id"`
	CategoryID  *int      `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// WordsListResponse is returned by GET /api/admin/words.
type WordsListResponse struct {
	Words      []WordOutput `json:"words"`
	TotalCount int          `json:"total_count"`
}

// Converters

func reasonPtr(reason eligibility.Reason) *string {
	if reason == "" {
		return nil
	}
	s := string(reason)
	return &s
}

func toWordDetails(words []session.WordDetail) []WordDetailResponse {
	out := make([]WordDetailResponse, 0, len(words))
	for _, w := range words {
		out = append(out, WordDetailResponse{
			ID:          w.ID.String(),
			Word:        w.Word,
			Translation: w.Translation,
			Sentence:    w.Sentence,
			SentenceZh:  w.SentenceZh,
			ImageURL:    w.ImageURL,
			AudioURL:    w.AudioURL,
			Pool:        string(w.Pool),
		})
	}
	return out
}

func toExercise(ex exercise.Exercise) ExerciseResponse {
	options := make([]OptionResponse, 0, len(ex.Options))
	for _, o := range ex.Options {
		options = append(options, OptionResponse{
			Index:       o.Index,
			WordID:      o.WordID.String(),
			Translation: o.Translation,
			ImageURL:    o.ImageURL,
		})
	}
	return ExerciseResponse{
		WordID:       ex.WordID.String(),
		Word:         ex.Word,
		Translation:  ex.Translation,
		ImageURL:     ex.ImageURL,
		AudioURL:     ex.AudioURL,
		Pool:         string(ex.Pool),
		Type:         string(ex.Type),
		Options:      options,
		CorrectIndex: ex.CorrectIndex,
	}
}

func toExercises(exercises []exercise.Exercise) []ExerciseResponse {
	out := make([]ExerciseResponse, 0, len(exercises))
	for _, ex := range exercises {
		out = append(out, toExercise(ex))
	}
	return out
}

func toLevel(id, order int, label string) *LevelResponse {
	return &LevelResponse{ID: id, Order: order, Label: label}
}

func levelResponse(l *domain.Level) *LevelResponse {
	if l == nil {
		return nil
	}
	return toLevel(l.ID, l.Order, l.Label)
}

func categoryResponse(c *domain.Category) *LevelResponse {
	if c == nil {
		return nil
	}
	return toLevel(c.ID, c.Order, c.Label)
}

func toAnswers(reqs []AnswerRequest) []session.Answer {
	out := make([]session.Answer, 0, len(reqs))
	for _, a := range reqs {
		out = append(out, session.Answer{
			WordID:         a.WordID,
			Correct:        a.Correct != nil && *a.Correct,
			ExerciseType:   domain.ExerciseType(a.ExerciseType),
			UserAnswer:     a.UserAnswer,
			ResponseTimeMs: a.ResponseTimeMs,
		})
	}
	return out
}

func toAnswerResults(res *session.SubmitResult) []AnswerResultResponse {
	results := make([]AnswerResultResponse, 0, len(res.Results))
	for _, r := range res.Results {
		results = append(results, AnswerResultResponse{
			WordID:            r.WordID.String(),
			Correct:           r.Correct,
			PreviousPool:      string(r.PreviousPool),
			NewPool:           string(r.NewPool),
			NextAvailableTime: r.NextAvailableTime,
		})
	}
	return results
}

func toPracticeSubmitResponse(res *session.SubmitResult) PracticeSubmitResponse {
	return PracticeSubmitResponse{
		Success: true,
		Results: toAnswerResults(res),
		Summary: PracticeSummaryResponse{
			CorrectCount:   res.Summary.CorrectCount,
			IncorrectCount: res.Summary.IncorrectCount,
		},
		NextAvailableTime: res.NextAvailableTime,
	}
}

func toReviewSubmitResponse(res *session.SubmitResult) ReviewSubmitResponse {
	return ReviewSubmitResponse{
		Success: true,
		Results: toAnswerResults(res),
		Summary: ReviewSummaryResponse{
			CorrectCount:       res.Summary.CorrectCount,
			IncorrectCount:     res.Summary.IncorrectCount,
			ReturnedToPractice: res.Summary.ReturnedToPractice,
		},
		NextAvailableTime: res.NextAvailableTime,
	}
}

func toTutorialResponse(tut *session.Tutorial) VocabularyTutorialResponse {
	steps := make([]TutorialStepResponse, 0, len(tut.Steps))
	for _, s := range tut.Steps {
		steps = append(steps, TutorialStepResponse{Step: s.Step, ExerciseResponse: toExercise(s.Exercise)})
	}
	return VocabularyTutorialResponse{
		Word:  toWordDetails([]session.WordDetail{tut.Word})[0],
		Steps: steps,
	}
}

func toStatsResponse(st *session.Stats) StatsResponse {
	return StatsResponse{
		TodayLearned:      st.TodayLearned,
		AvailablePractice: st.AvailablePractice,
		AvailableReview:   st.AvailableReview,
		Upcoming24h:       st.Upcoming,
		CanLearn:          st.Status.Learn.Allowed,
		CanPractice:       st.Status.Practice.Allowed,
		CanReview:         st.Status.Review.Allowed,
		NextAvailableTime: st.NextAvailableTime,
		CurrentLevel:      levelResponse(st.CurrentLevel),
		CurrentCategory:   categoryResponse(st.CurrentCategory),
	}
}

func toWordPoolResponse(wp *session.WordPool) WordPoolResponse {
	pools := make(map[string][]WordPoolItem, len(wp.Pools))
	for pool, entries := range wp.Pools {
		items := make([]WordPoolItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, WordPoolItem{
				WordID:            e.WordID.String(),
				Word:              e.Word,
				Translation:       e.Translation,
				NextAvailableTime: e.NextAvailableTime,
			})
		}
		pools[string(pool)] = items
	}
	return WordPoolResponse{Pools: pools, TotalCount: wp.TotalCount}
}

func toImportRequest(req ImportWordsRequest) catalog.ImportRequest {
	entries := make([]catalog.Entry, 0, len(req.Words))
	for _, w := range req.Words {
		entries = append(entries, catalog.Entry{
			Word:        w.Word,
			Translation: w.Translation,
			Sentence:    w.Sentence,
			SentenceZh:  w.SentenceZh,
			ImageURL:    w.ImageURL,
			AudioURL:    w.AudioURL,
			LevelID:     w.LevelID,
			CategoryID:  w.CategoryID,
			Level:       w.Level,
			Category:    w.Category,
		})
	}
	return catalog.ImportRequest{Entries: entries, ClearExisting: req.ClearExisting}
}

func toWordOutputs(words []*domain.Word) []WordOutput {
	out := make([]WordOutput, 0, len(words))
	for _, w := range words {
		out = append(out, WordOutput{
			ID:          w.ID.String(),
			Word:        w.Text,
			Translation: w.Translation,
			Sentence:    w.Sentence,
			SentenceZh:  w.SentenceZh,
			ImageURL:    w.ImageURL,
			AudioURL:    w.AudioURL,
			LevelID:     w.LevelID,
			CategoryID:  w.CategoryID,
			CreatedAt:   w.CreatedAt,
		})
	}
	return out
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/session"
)

// SessionHandler serves the learner endpoints: learn, practice, review,
// home statistics and level analysis.
type SessionHandler struct {
	sessions session.Service
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions session.Service, logger *slog.Logger) *SessionHandler {
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session service cannot be nil for SessionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// GetLearnSession handles GET /api/learn/session.
func (h *SessionHandler) GetLearnSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.GetLearnSession(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get learn session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LearnSessionResponse{
		Available: s.Available,
		Reason:    reasonPtr(s.Reason),
		Words:     toWordDetails(s.Words),
		Exercises: toExercises(s.Exercises),
	})
}

// CompleteLearn handles POST /api/learn/complete.
func (h *SessionHandler) CompleteLearn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req WordIDsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.sessions.CompleteLearn(r.Context(), userID, req.WordIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete learn session")
		return
	}

	resp := LearnCompleteResponse{
		Success:      true,
		WordsMoved:   res.WordsMoved,
		TodayLearned: res.TodayLearned,
	}
	if res.Pointer != nil {
		resp.CurrentLevel = levelResponse(&res.Pointer.Level)
		resp.CurrentCategory = categoryResponse(&res.Pointer.Category)
	}
	log.Debug("learn session completed", slog.Int("words_moved", res.WordsMoved))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetPracticeSession handles GET /api/practice/session.
func (h *SessionHandler) GetPracticeSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.GetPracticeSession(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get practice session")
		return
	}

	order := make([]string, 0, len(s.ExerciseOrder))
	for _, t := range s.ExerciseOrder {
		order = append(order, string(t))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PracticeSessionResponse{
		Available:     s.Available,
		Reason:        reasonPtr(s.Reason),
		Exercises:     toExercises(s.Exercises),
		ExerciseOrder: order,
	})
}

// SubmitPractice handles POST /api/practice/submit.
func (h *SessionHandler) SubmitPractice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req SubmitAnswersRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.sessions.SubmitPractice(r.Context(), userID, toAnswers(req.Answers))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit practice answers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPracticeSubmitResponse(res))
}

// GetReviewSession handles GET /api/review/session.
func (h *SessionHandler) GetReviewSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.GetReviewSession(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get review session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewSessionResponse{
		Available: s.Available,
		Reason:    reasonPtr(s.Reason),
		Words:     toWordDetails(s.Words),
		Exercises: toExercises(s.Exercises),
	})
}

// CompleteReview handles POST /api/review/complete.
func (h *SessionHandler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req WordIDsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.sessions.CompleteReview(r.Context(), userID, req.WordIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewCompleteResponse{
		Success:           true,
		WordsCompleted:    res.WordsCompleted,
		NextAvailableTime: res.NextPracticeTime,
	})
}

// SubmitReview handles POST /api/review/submit.
func (h *SessionHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req SubmitAnswersRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.sessions.SubmitReview(r.Context(), userID, toAnswers(req.Answers))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review answers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toReviewSubmitResponse(res))
}

// GetStats handles GET /api/home/stats.
func (h *SessionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	st, err := h.sessions.GetStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get stats")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toStatsResponse(st))
}

// GetWordPool handles GET /api/home/word-pool.
func (h *SessionHandler) GetWordPool(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	wp, err := h.sessions.GetWordPool(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word pool")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toWordPoolResponse(wp))
}

// GetLevelAnalysisSession handles GET /api/level-analysis/session.
func (h *SessionHandler) GetLevelAnalysisSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.GetLevelAnalysisSession(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get level analysis session")
		return
	}

	exercises := make([]LevelAnalysisExerciseResponse, 0, len(s.Exercises))
	for _, ex := range s.Exercises {
		exercises = append(exercises, LevelAnalysisExerciseResponse{
			ExerciseResponse: toExercise(ex.Exercise),
			LevelOrder:       ex.LevelOrder,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LevelAnalysisSessionResponse{Exercises: exercises})
}

// SubmitLevelAnalysis handles POST /api/level-analysis/submit.
func (h *SessionHandler) SubmitLevelAnalysis(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req LevelAnalysisSubmitRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	placement, err := h.sessions.SubmitLevelAnalysis(r.Context(), userID, *req.LevelOrder)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit level analysis")
		return
	}

	log.Info("user placed",
		slog.Int("level_order", placement.Level.Order),
		slog.String("level", placement.Level.Label))
	shared.RespondWithJSON(w, r, http.StatusOK, LevelAnalysisSubmitResponse{
		Success:         true,
		CurrentLevel:    *levelResponse(&placement.Level),
		CurrentCategory: *categoryResponse(&placement.Category),
	})
}

// GetVocabularyTutorial handles GET /api/tutorial/vocabulary.
func (h *SessionHandler) GetVocabularyTutorial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tut, err := h.sessions.GetVocabularyTutorial(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get vocabulary tutorial")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTutorialResponse(tut))
}

// CompleteVocabularyTutorial handles POST /api/tutorial/vocabulary/complete.
func (h *SessionHandler) CompleteVocabularyTutorial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.CompleteVocabularyTutorial(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to complete vocabulary tutorial")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TutorialCompleteResponse{Success: true})
}

package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/middleware"
)

// newRouter builds the HTTP routes. Everything under /api requires a bearer
// token; /api/admin additionally requires the admin role.
func newRouter(svc services, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(logger))

	sessionHandler := api.NewSessionHandler(svc.sessionService, logger)
	adminHandler := api.NewAdminHandler(svc.sessionService, svc.catalogService, logger)
	authMiddleware := middleware.NewAuthMiddleware(svc.jwt, svc.users)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/learn/session", sessionHandler.GetLearnSession)
		r.Post("/learn/complete", sessionHandler.CompleteLearn)

		r.Get("/practice/session", sessionHandler.GetPracticeSession)
		r.Post("/practice/submit", sessionHandler.SubmitPractice)

		r.Get("/review/session", sessionHandler.GetReviewSession)
		r.Post("/review/complete", sessionHandler.CompleteReview)
		r.Post("/review/submit", sessionHandler.SubmitReview)

		r.Get("/home/stats", sessionHandler.GetStats)
		r.Get("/home/word-pool", sessionHandler.GetWordPool)

		r.Get("/level-analysis/session", sessionHandler.GetLevelAnalysisSession)
		r.Post("/level-analysis/submit", sessionHandler.SubmitLevelAnalysis)

		r.Get("/tutorial/vocabulary", sessionHandler.GetVocabularyTutorial)
		r.Post("/tutorial/vocabulary/complete", sessionHandler.CompleteVocabularyTutorial)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/reset-progress", adminHandler.ResetProgress)
			r.Post("/reset-cooldown", adminHandler.ResetCooldown)
			r.Post("/words", adminHandler.ImportWords)
			r.Get("/words", adminHandler.ListWords)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/session"
)

// AdminHandler serves /api/admin. Progress resets act on the caller's own
// account; the catalog endpoints act on the shared word list.
type AdminHandler struct {
	sessions session.Service
	catalog  catalog.Service
	logger   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(sessions session.Service, catalogService catalog.Service, logger *slog.Logger) *AdminHandler {
	if sessions == nil || catalogService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session and catalog services cannot be nil for AdminHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		sessions: sessions,
		catalog:  catalogService,
		logger:   logger.With(slog.String("component", "admin_handler")),
	}
}

// ResetProgress handles POST /api/admin/reset-progress.
func (h *AdminHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	n, err := h.sessions.ResetProgress(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset progress")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ResetProgressResponse{Success: true, WordsReset: n})
}

// ResetCooldown handles POST /api/admin/reset-cooldown.
func (h *AdminHandler) ResetCooldown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	n, err := h.sessions.ResetCooldown(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset cooldown")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ResetCooldownResponse{Success: true, WordsAffected: n})
}

// ImportWords handles POST /api/admin/words.
func (h *AdminHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ImportWordsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.catalog.ImportWords(r.Context(), toImportRequest(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import words")
		return
	}

	log.Info("words imported",
		slog.Int("imported", res.Imported),
		slog.Int("skipped", res.Skipped),
		slog.Int("cleared", res.Cleared))
	shared.RespondWithJSON(w, r, http.StatusOK, ImportWordsResponse{
		Success:       true,
		WordsImported: res.Imported,
		WordsSkipped:  res.Skipped,
		WordsCleared:  res.Cleared,
	})
}

// ListWords handles GET /api/admin/words.
func (h *AdminHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.catalog.ListWords(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list words")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, WordsListResponse{
		Words:      toWordOutputs(words),
		TotalCount: len(words),
	})
}

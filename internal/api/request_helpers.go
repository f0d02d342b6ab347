package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
)

// requireUserID returns the authenticated user ID, or writes a 401 and
// returns false. The auth middleware guarantees the ID on protected routes,
// so a miss means the route was registered outside the authenticated group.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, false
	}
	return userID, true
}

// decodeRequest decodes and validates the JSON body into v, writing a 400
// and returning false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeAndValidate(r, v); err != nil {
		HandleValidationError(w, r, err)
		return false
	}
	return true
}

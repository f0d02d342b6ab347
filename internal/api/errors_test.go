package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/auth"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "expired token", err: auth.ErrExpiredToken, wantStatus: http.StatusUnauthorized, wantMessage: "Token expired"},
		{name: "invalid token", err: auth.ErrInvalidToken, wantStatus: http.StatusUnauthorized, wantMessage: "Invalid token"},
		{name: "unauthorized", err: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantMessage: "Invalid token"},
		{name: "forbidden", err: ErrForbidden, wantStatus: http.StatusForbidden, wantMessage: "Admin role required"},
		{
			name:        "word already learned",
			err:         service.NewServiceError("complete_learn", "rejected", service.ErrNotInP0),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Word has already been learned",
		},
		{
			name:        "wrong phase",
			err:         service.NewServiceError("submit_review", "rejected", service.ErrWrongPhase),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Word is not in the expected review phase",
		},
		{name: "empty batch", err: service.ErrEmptyBatch, wantStatus: http.StatusBadRequest, wantMessage: "No words provided"},
		{
			name:        "field validation",
			err:         domain.NewValidationError("exercise_type", "is not a known exercise type", nil),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid exercise_type: is not a known exercise type",
		},
		{name: "invalid id", err: domain.ErrInvalidID, wantStatus: http.StatusBadRequest, wantMessage: "Invalid ID"},
		{name: "empty body", err: shared.ErrEmptyBody, wantStatus: http.StatusBadRequest, wantMessage: "Request body is required"},
		{
			name:        "missing sheet column",
			err:         fmt.Errorf("%w: translation", catalog.ErrMissingColumn),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing required column",
		},
		{
			name:        "domain not found",
			err:         service.NewServiceError("submit_practice", "failed", domain.NewNotFoundError("word_progress", uuid.NewString())),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Word progress not found",
		},
		{name: "store word not found", err: store.ErrWordNotFound, wantStatus: http.StatusNotFound, wantMessage: "Word not found"},
		{name: "store user not found", err: store.ErrUserNotFound, wantStatus: http.StatusNotFound, wantMessage: "User not found"},
		{name: "duplicate", err: store.ErrProgressExists, wantStatus: http.StatusConflict, wantMessage: "Resource already exists"},
		{
			name:        "state invariant",
			err:         domain.NewStateInvariantError("answer", domain.PoolP0, false),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "unknown",
			err:         errors.New("pq: UPDATE word_progress SET pool = $1"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.wantMessage, GetSafeErrorMessage(tc.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(&WordIDsRequest{})
	require.Error(t, err)
	assert.Equal(t, "Invalid word_ids: required field", SanitizeValidationError(err))
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		err         error
		defaultMsg  string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "server error uses default message",
			err:         errors.New("connection refused"),
			defaultMsg:  "Failed to get stats",
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to get stats",
		},
		{
			name:        "server error without default",
			err:         errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "client error keeps safe message",
			err:         service.ErrNotRemedial,
			defaultMsg:  "Failed to complete review",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Word is not in a review pool",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(shared.SetTraceID(req.Context()))

			HandleAPIError(rr, req, tc.err, tc.defaultMsg)

			assert.Equal(t, tc.wantStatus, rr.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMessage, body.Error)
			assert.Equal(t, shared.GetTraceID(req.Context()), body.TraceID)
		})
	}
}

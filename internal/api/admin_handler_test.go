package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/mocks"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
)

func TestNewAdminHandler_PanicsWithoutServices(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewAdminHandler(&mocks.MockSessionService{}, nil, nil) })
	assert.Panics(t, func() { NewAdminHandler(nil, &mocks.MockCatalogService{}, nil) })
}

func TestAdminHandler_Resets(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessions := &mocks.MockSessionService{}
	sessions.On("ResetProgress", mock.Anything, userID).Return(12, nil)
	sessions.On("ResetCooldown", mock.Anything, userID).Return(0, errors.New("deadlock detected"))
	h := NewAdminHandler(sessions, &mocks.MockCatalogService{}, nil)

	rr := httptest.NewRecorder()
	h.ResetProgress(rr, newRequest(t, http.MethodPost, "/api/admin/reset-progress", nil, userID))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"words_reset":12}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ResetCooldown(rr, newRequest(t, http.MethodPost, "/api/admin/reset-cooldown", nil, userID))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to reset cooldown", decodeBody[shared.ErrorResponse](t, rr).Error)

	rr = httptest.NewRecorder()
	h.ResetProgress(rr, newRequest(t, http.MethodPost, "/api/admin/reset-progress", nil, uuid.Nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	sessions.AssertExpectations(t)
}

func TestAdminHandler_ImportWords(t *testing.T) {
	t.Parallel()

	levelID := 1
	testCases := []struct {
		name        string
		body        string
		callService bool
		result      *catalog.ImportResult
		err         error
		wantStatus  int
		wantBody    string
	}{
		{
			name: "imported",
			body: `{"clear_existing":true,"words":[
				{"word":"apple","translation":"蘋果","level_id":1},
				{"word":"pear","translation":"梨","level":"A1","category":"food"}]}`,
			callService: true,
			result:      &catalog.ImportResult{Imported: 1, Skipped: 1, Cleared: 30},
			wantStatus:  http.StatusOK,
			wantBody:    `{"success":true,"words_imported":1,"words_skipped":1,"words_cleared":30}`,
		},
		{
			name:        "unknown level id",
			body:        `{"words":[{"word":"apple","translation":"蘋果","level_id":1},{"word":"pear","translation":"梨","level":"A1","category":"food"}],"clear_existing":true}`,
			callService: true,
			err:         domain.NewValidationError("words[0].level_id", "does not exist", domain.ErrValidation),
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"Invalid words[0].level_id: does not exist"}`,
		},
		{
			name:       "missing translation",
			body:       `{"words":[{"word":"apple"}]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid translation: required field"}`,
		},
		{
			name:       "no words",
			body:       `{"words":[]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid words: too short"}`,
		},
		{
			name:       "bad image url",
			body:       `{"words":[{"word":"apple","translation":"蘋果","image_url":"not a url"}]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid image_url: validation failed"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cat := &mocks.MockCatalogService{}
			if tc.callService {
				cat.On("ImportWords", mock.Anything, mock.MatchedBy(func(req catalog.ImportRequest) bool {
					return req.ClearExisting && len(req.Entries) == 2 &&
						req.Entries[0].LevelID != nil && *req.Entries[0].LevelID == levelID &&
						req.Entries[1].Level == "A1" && req.Entries[1].Category == "food"
				})).Return(tc.result, tc.err)
			}

			rr := httptest.NewRecorder()
			NewAdminHandler(&mocks.MockSessionService{}, cat, nil).
				ImportWords(rr, newRequest(t, http.MethodPost, "/api/admin/words", tc.body, uuid.New()))

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.JSONEq(t, tc.wantBody, rr.Body.String())
			cat.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_ImportWords_EmptyBatchFromService(t *testing.T) {
	t.Parallel()

	cat := &mocks.MockCatalogService{}
	cat.On("ImportWords", mock.Anything, mock.Anything).
		Return(nil, service.NewServiceError("import_words", "rejected", service.ErrEmptyBatch))

	rr := httptest.NewRecorder()
	NewAdminHandler(&mocks.MockSessionService{}, cat, nil).ImportWords(rr,
		newRequest(t, http.MethodPost, "/api/admin/words", `{"words":[{"word":" ","translation":"x"}]}`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No words provided", decodeBody[shared.ErrorResponse](t, rr).Error)
}

func TestAdminHandler_ListWords(t *testing.T) {
	t.Parallel()

	apple, err := domain.NewWord("apple", "蘋果")
	require.NoError(t, err)
	levelID := 3
	apple.LevelID = &levelID

	cat := &mocks.MockCatalogService{}
	cat.On("ListWords", mock.Anything).Return([]*domain.Word{apple}, nil).Once()
	cat.On("ListWords", mock.Anything).Return(nil, errors.New("timeout")).Once()
	h := NewAdminHandler(&mocks.MockSessionService{}, cat, nil)

	rr := httptest.NewRecorder()
	h.ListWords(rr, newRequest(t, http.MethodGet, "/api/admin/words", nil, uuid.New()))
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[WordsListResponse](t, rr)
	assert.Equal(t, 1, resp.TotalCount)
	require.Len(t, resp.Words, 1)
	assert.Equal(t, apple.ID.String(), resp.Words[0].ID)
	assert.Equal(t, "apple", resp.Words[0].Word)
	require.NotNil(t, resp.Words[0].LevelID)
	assert.Equal(t, 3, *resp.Words[0].LevelID)

	rr = httptest.NewRecorder()
	h.ListWords(rr, newRequest(t, http.MethodGet, "/api/admin/words", nil, uuid.New()))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to list words", decodeBody[shared.ErrorResponse](t, rr).Error)

	cat.AssertExpectations(t)
}

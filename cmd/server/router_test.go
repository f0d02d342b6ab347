package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/mocks"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/auth"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/session"
)

var (
	learnerID = uuid.MustParse("8d7c4a4e-3a55-4c34-9b7f-1f4f8c7a0001")
	adminID   = uuid.MustParse("8d7c4a4e-3a55-4c34-9b7f-1f4f8c7a0002")
)

func testServices(sessions *mocks.MockSessionService) services {
	jwt := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "learner-token":
				return &auth.Claims{UserID: learnerID, Role: auth.RoleLearner}, nil
			case "admin-token":
				return &auth.Claims{UserID: adminID, Role: auth.RoleAdmin}, nil
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}

	users := &mocks.MockUserService{}
	users.On("EnsureUser", mock.Anything, mock.Anything).Return(&domain.User{}, nil)

	return services{
		jwt:            jwt,
		users:          users,
		sessionService: sessions,
		catalogService: &mocks.MockCatalogService{},
	}
}

func TestRouter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		method     string
		path       string
		token      string
		setup      func(m *mocks.MockSessionService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "health is public",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   "OK",
		},
		{
			name:       "api requires a token",
			method:     http.MethodGet,
			path:       "/api/home/stats",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "forged token",
			method:     http.MethodGet,
			path:       "/api/home/stats",
			token:      "forged",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "learner reads stats",
			method: http.MethodGet,
			path:   "/api/home/stats",
			token:  "learner-token",
			setup: func(m *mocks.MockSessionService) {
				m.On("GetStats", mock.Anything, learnerID).Return(&session.Stats{TodayLearned: 7}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "learner cannot use admin routes",
			method:     http.MethodPost,
			path:       "/api/admin/reset-progress",
			token:      "learner-token",
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "admin resets own progress",
			method: http.MethodPost,
			path:   "/api/admin/reset-progress",
			token:  "admin-token",
			setup: func(m *mocks.MockSessionService) {
				m.On("ResetProgress", mock.Anything, adminID).Return(4, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"words_reset":4}`,
		},
		{
			name:   "learner completes tutorial",
			method: http.MethodPost,
			path:   "/api/tutorial/vocabulary/complete",
			token:  "learner-token",
			setup: func(m *mocks.MockSessionService) {
				m.On("CompleteVocabularyTutorial", mock.Anything, learnerID).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
		},
		{
			name:   "tutorial word missing from catalog",
			method: http.MethodGet,
			path:   "/api/tutorial/vocabulary",
			token:  "learner-token",
			setup: func(m *mocks.MockSessionService) {
				m.On("GetVocabularyTutorial", mock.Anything, learnerID).
					Return(nil, domain.NewNotFoundError("tutorial_word", "apple"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "tutorial requires a token",
			method:     http.MethodGet,
			path:       "/api/tutorial/vocabulary",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			path:       "/api/practice/submit",
			token:      "learner-token",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/cards/next",
			token:      "learner-token",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sessions := &mocks.MockSessionService{}
			if tc.setup != nil {
				tc.setup(sessions)
			}
			log, _ := logger.NewTestLogger()
			router := newRouter(testServices(sessions), log)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			switch {
			case tc.wantBody == "OK":
				assert.Equal(t, "OK", rr.Body.String())
			case tc.wantBody != "":
				assert.JSONEq(t, tc.wantBody, rr.Body.String())
			}
			sessions.AssertExpectations(t)
		})
	}
}

func TestRouter_StatsBody(t *testing.T) {
	t.Parallel()

	sessions := &mocks.MockSessionService{}
	sessions.On("GetStats", mock.Anything, learnerID).Return(&session.Stats{TodayLearned: 7, Upcoming: 2}, nil)
	log, _ := logger.NewTestLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/home/stats", nil)
	req.Header.Set("Authorization", "Bearer learner-token")
	rr := httptest.NewRecorder()
	newRouter(testServices(sessions), log).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"today_learned":7`)
	assert.Contains(t, rr.Body.String(), `"upcoming_24h":2`)
}

func TestRouter_Tutorial(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	correct := 0
	sessions := &mocks.MockSessionService{}
	sessions.On("GetVocabularyTutorial", mock.Anything, learnerID).Return(&session.Tutorial{
		Word: session.WordDetail{ID: wordID, Word: "apple", Translation: "蘋果"},
		Steps: []session.TutorialStep{
			{Step: 1, Exercise: exercise.Exercise{
				WordID: wordID, Word: "apple", Pool: domain.PoolP0, Type: domain.ExerciseReadingLv1,
				Options:      []exercise.Option{{Index: 0, WordID: wordID, Translation: "蘋果"}},
				CorrectIndex: &correct,
			}},
			{Step: 4, Exercise: exercise.Exercise{
				WordID: wordID, Word: "apple", Pool: domain.PoolP0, Type: domain.ExerciseSpeakingLv1,
				Options: []exercise.Option{},
			}},
		},
	}, nil)
	log, _ := logger.NewTestLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/tutorial/vocabulary", nil)
	req.Header.Set("Authorization", "Bearer learner-token")
	rr := httptest.NewRecorder()
	newRouter(testServices(sessions), log).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"word":{"id":"`+wordID.String()+`"`)
	assert.Contains(t, body, `"step":1`)
	assert.Contains(t, body, `"type":"speaking_lv1"`)
	assert.Contains(t, body, `"options":[],"correct_index":null`)
	sessions.AssertExpectations(t)
}

func TestRouter_TutorialWordMissing(t *testing.T) {
	t.Parallel()

	sessions := &mocks.MockSessionService{}
	sessions.On("GetVocabularyTutorial", mock.Anything, learnerID).
		Return(nil, domain.NewNotFoundError("tutorial_word", "mango"))
	log, _ := logger.NewTestLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/tutorial/vocabulary", nil)
	req.Header.Set("Authorization", "Bearer learner-token")
	rr := httptest.NewRecorder()
	newRouter(testServices(sessions), log).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error":"Tutorial word not found"`)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runServer(ctx, server, time.Second, log)
	assert.NoError(t, err)
}

func TestRunServer_ListenFailure(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	server := &http.Server{Addr: "not-a-valid-address", Handler: http.NotFoundHandler()}

	err := runServer(context.Background(), server, time.Second, log)
	require.Error(t, err)
	assert.False(t, errors.Is(err, http.ErrServerClosed))
}

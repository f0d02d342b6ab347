package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/session"
)

// MockSessionService is a testify mock of session.Service.
type MockSessionService struct {
	mock.Mock
}

var _ session.Service = (*MockSessionService)(nil)

// GetLearnSession implements session.Service.
func (m *MockSessionService) GetLearnSession(ctx context.Context, userID uuid.UUID) (*session.LearnSession, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).(*session.LearnSession); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// CompleteLearn implements session.Service.
func (m *MockSessionService) CompleteLearn(ctx context.Context, userID uuid.UUID, wordIDs []string) (*session.LearnResult, error) {
	args := m.Called(ctx, userID, wordIDs)
	if res, ok := args.Get(0).(*session.LearnResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetPracticeSession implements session.Service.
func (m *MockSessionService) GetPracticeSession(ctx context.Context, userID uuid.UUID) (*session.PracticeSession, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).(*session.PracticeSession); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// SubmitPractice implements session.Service.
func (m *MockSessionService) SubmitPractice(ctx context.Context, userID uuid.UUID, answers []session.Answer) (*session.SubmitResult, error) {
	args := m.Called(ctx, userID, answers)
	if res, ok := args.Get(0).(*session.SubmitResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetReviewSession implements session.Service.
func (m *MockSessionService) GetReviewSession(ctx context.Context, userID uuid.UUID) (*session.ReviewSession, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).(*session.ReviewSession); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// CompleteReview implements session.Service.
func (m *MockSessionService) CompleteReview(ctx context.Context, userID uuid.UUID, wordIDs []string) (*session.ReviewCompletion, error) {
	args := m.Called(ctx, userID, wordIDs)
	if res, ok := args.Get(0).(*session.ReviewCompletion); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// SubmitReview implements session.Service.
func (m *MockSessionService) SubmitReview(ctx context.Context, userID uuid.UUID, answers []session.Answer) (*session.SubmitResult, error) {
	args := m.Called(ctx, userID, answers)
	if res, ok := args.Get(0).(*session.SubmitResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetStats implements session.Service.
func (m *MockSessionService) GetStats(ctx context.Context, userID uuid.UUID) (*session.Stats, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).(*session.Stats); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetWordPool implements session.Service.
func (m *MockSessionService) GetWordPool(ctx context.Context, userID uuid.UUID) (*session.WordPool, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).(*session.WordPool); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetLevelAnalysisSession implements session.Service.
func (m *MockSessionService) GetLevelAnalysisSession(ctx context.Context, userID uuid.UUID) (*session.LevelAnalysisSession, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).(*session.LevelAnalysisSession); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// SubmitLevelAnalysis implements session.Service.
func (m *MockSessionService) SubmitLevelAnalysis(ctx context.Context, userID uuid.UUID, levelOrder int) (*session.Placement, error) {
	args := m.Called(ctx, userID, levelOrder)
	if res, ok := args.Get(0).(*session.Placement); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// ResetProgress implements session.Service.
func (m *MockSessionService) ResetProgress(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// ResetCooldown implements session.Service.
func (m *MockSessionService) ResetCooldown(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// GetVocabularyTutorial implements session.Service.
func (m *MockSessionService) GetVocabularyTutorial(ctx context.Context, userID uuid.UUID) (*session.Tutorial, error) {
	args := m.Called(ctx, userID)
	if res, ok := args.Get(0).(*session.Tutorial); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// CompleteVocabularyTutorial implements session.Service.
func (m *MockSessionService) CompleteVocabularyTutorial(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// MockCatalogService is a testify mock of catalog.Service.
type MockCatalogService struct {
	mock.Mock
}

var _ catalog.Service = (*MockCatalogService)(nil)

// ImportWords implements catalog.Service.
func (m *MockCatalogService) ImportWords(ctx context.Context, req catalog.ImportRequest) (*catalog.ImportResult, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*catalog.ImportResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListWords implements catalog.Service.
func (m *MockCatalogService) ListWords(ctx context.Context) ([]*domain.Word, error) {
	args := m.Called(ctx)
	if words, ok := args.Get(0).([]*domain.Word); ok {
		return words, args.Error(1)
	}
	return nil, args.Error(1)
}

// Package mocks provides shared test doubles for the service interfaces
// consumed by the HTTP layer.
//
// MockJWTService uses function fields with static fallbacks. The service
// mocks embed testify's mock.Mock:
//
//	svc := &mocks.MockSessionService{}
//	svc.On("GetStats", mock.Anything, userID).Return(&session.Stats{}, nil)
//	defer svc.AssertExpectations(t)
package mocks

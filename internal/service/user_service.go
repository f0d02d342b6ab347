package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// UserService manages the learner rows behind verified bearer identities.
type UserService interface {
	// EnsureUser returns the user with the given ID, creating it with an
	// unset curriculum pointer on first sight.
	EnsureUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	users  store.UserStore
	now    func() time.Time
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. A nil now defaults to time.Now.
func NewUserService(users store.UserStore, now func() time.Time, logger *slog.Logger) (*UserServiceImpl, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		now:    now,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found", slog.String("user_id", userID.String()))
		} else {
			log.Error("failed to retrieve user",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// EnsureUser returns the existing user or creates it. A concurrent first
// request for the same ID loses the insert race and reads the winner's row.
func (s *UserServiceImpl) EnsureUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Error("failed to look up user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("ensure_user", "failed to look up user", err)
	}

	user, err = domain.NewUser(userID, s.now().UTC())
	if err != nil {
		return nil, NewServiceError("ensure_user", "invalid user identity",
			domain.NewValidationError("user_id", err.Error(), domain.ErrInvalidID))
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("user created concurrently", slog.String("user_id", userID.String()))
			return s.GetUser(ctx, userID)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("ensure_user", "failed to create user", err)
	}

	log.Info("user created", slog.String("user_id", userID.String()))
	return user, nil
}

package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// ResetProgress implements Service.ResetProgress.
func (s *sessionService) ResetProgress(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		deleted, err = repos.Progress.DeleteByUser(ctx, userID)
		return err
	})
	if err != nil {
		return 0, service.NewServiceError("reset_progress", "failed to reset progress", err)
	}
	log.Info("progress reset",
		slog.String("user_id", userID.String()),
		slog.Int("deleted", deleted))
	return deleted, nil
}

// ResetCooldown implements Service.ResetCooldown.
func (s *sessionService) ResetCooldown(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	var updated int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		updated, err = repos.Progress.ResetCooldown(ctx, userID, now)
		return err
	})
	if err != nil {
		return 0, service.NewServiceError("reset_cooldown", "failed to reset cooldown", err)
	}
	log.Info("cooldown reset",
		slog.String("user_id", userID.String()),
		slog.Int("updated", updated))
	return updated, nil
}

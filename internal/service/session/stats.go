package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/curriculum"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// GetStats implements Service.GetStats.
func (s *sessionService) GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	stats := &Stats{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		if stats.TodayLearned, err = repos.Progress.CountLearnedSince(ctx, userID, eligibility.StartOfDay(now)); err != nil {
			return fmt.Errorf("failed to count words learned today: %w", err)
		}
		if stats.AvailablePractice, err = repos.Progress.CountDuePractice(ctx, userID, now); err != nil {
			return fmt.Errorf("failed to count due practice words: %w", err)
		}
		if stats.AvailableReview, err = repos.Progress.CountDueReview(ctx, userID, now); err != nil {
			return fmt.Errorf("failed to count due review words: %w", err)
		}
		if stats.Upcoming, err = repos.Progress.CountUpcoming(ctx, userID, now, now.Add(s.cfg.UpcomingWindow)); err != nil {
			return fmt.Errorf("failed to count upcoming words: %w", err)
		}

		if stats.Status, err = s.gate.Evaluate(ctx, eligibility.CountersFrom(repos), userID, now); err != nil {
			return err
		}
		if !stats.Status.AnyAllowed() {
			if stats.NextAvailableTime, err = repos.Progress.NextAvailableAfter(ctx, userID, now); err != nil {
				return fmt.Errorf("failed to find next available time: %w", err)
			}
		}

		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		grid, err := curriculum.LoadGrid(ctx, repos.Curriculum)
		if err != nil {
			return err
		}
		if user.CurrentLevelID != nil {
			if level, ok := grid.Level(*user.CurrentLevelID); ok {
				stats.CurrentLevel = &level
			}
		}
		if user.CurrentCategoryID != nil {
			if category, ok := grid.Category(*user.CurrentCategoryID); ok {
				stats.CurrentCategory = &category
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to compute stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("get_stats", "failed to compute stats", err)
	}
	return stats, nil
}

// GetWordPool implements Service.GetWordPool.
func (s *sessionService) GetWordPool(ctx context.Context, userID uuid.UUID) (*WordPool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := &WordPool{Pools: make(map[domain.Pool][]PoolEntry, len(domain.AllPools))}
	for _, p := range domain.AllPools {
		result.Pools[p] = []PoolEntry{}
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		records, err := repos.Progress.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list progress: %w", err)
		}
		catalog, err := repos.Words.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list catalog: %w", err)
		}

		byID := make(map[uuid.UUID]*domain.Word, len(catalog))
		for _, w := range catalog {
			byID[w.ID] = w
		}
		learned := make(map[uuid.UUID]bool, len(records))
		for _, p := range records {
			w, ok := byID[p.WordID]
			if !ok {
				continue
			}
			learned[p.WordID] = true
			next := p.NextAvailableTime
			result.Pools[p.Pool] = append(result.Pools[p.Pool], PoolEntry{
				WordID:            w.ID,
				Word:              w.Text,
				Translation:       w.Translation,
				NextAvailableTime: &next,
			})
		}
		for _, w := range catalog {
			if learned[w.ID] {
				continue
			}
			result.Pools[domain.PoolP0] = append(result.Pools[domain.PoolP0], PoolEntry{
				WordID:      w.ID,
				Word:        w.Text,
				Translation: w.Translation,
			})
		}
		result.TotalCount = len(catalog)
		return nil
	})
	if err != nil {
		log.Error("failed to list word pool",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("get_word_pool", "failed to list word pool", err)
	}
	return result, nil
}

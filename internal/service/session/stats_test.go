package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

func TestGetStats(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		withUnlearned bool
		wantNext      *time.Time
	}{
		{name: "learning still open", withUnlearned: true},
		{name: "every gate closed", wantNext: ptrTime(testStart.Add(2 * time.Hour))},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)

			dueP1 := f.word("duep1", f.a1, f.daily)
			f.put(dueP1, domain.PoolP1, false, testStart.Add(-time.Hour), testStart.Add(-time.Minute))
			dueReview := f.word("duereview", f.a1, f.daily)
			f.put(dueReview, domain.PoolR2, true, yesterday, testStart.Add(-time.Minute))
			soon := f.word("soon", f.a1, f.daily)
			f.put(soon, domain.PoolP3, false, yesterday, testStart.Add(2*time.Hour))
			done := f.word("done", f.a1, f.daily)
			f.put(done, domain.PoolP6, false, yesterday, testStart.Add(time.Hour))
			far := f.word("far", f.a1, f.daily)
			f.put(far, domain.PoolP2, false, yesterday, testStart.Add(30*time.Hour))
			if tc.withUnlearned {
				f.word("unlearned", f.a1, f.daily)
			}

			stats, err := f.svc.GetStats(context.Background(), f.userID)
			require.NoError(t, err)
			assert.Equal(t, 1, stats.TodayLearned)
			assert.Equal(t, 1, stats.AvailablePractice)
			assert.Equal(t, 1, stats.AvailableReview)
			assert.Equal(t, 1, stats.Upcoming, "mastered and out-of-window words are not upcoming")
			assert.Equal(t, tc.withUnlearned, stats.Status.Learn.Allowed)
			assert.False(t, stats.Status.Practice.Allowed)
			assert.False(t, stats.Status.Review.Allowed)
			assert.Equal(t, tc.wantNext, stats.NextAvailableTime)

			require.NotNil(t, stats.CurrentLevel)
			require.NotNil(t, stats.CurrentCategory)
			assert.Equal(t, f.a1, *stats.CurrentLevel)
			assert.Equal(t, f.daily, *stats.CurrentCategory)
		})
	}
}

func TestGetStats_UnsetPointer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.ms.Repositories().Users.UpdatePointer(ctx, f.userID, 99, f.food.ID))

	stats, err := f.svc.GetStats(ctx, f.userID)
	require.NoError(t, err)
	assert.Nil(t, stats.CurrentLevel, "unknown level ids are not reported")
	require.NotNil(t, stats.CurrentCategory)
	assert.Equal(t, f.food, *stats.CurrentCategory)
	assert.Nil(t, stats.NextAvailableTime, "nothing is scheduled")
}

func TestGetWordPool(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	learning := f.word("learning", f.a1, f.daily)
	f.put(learning, domain.PoolP1, false, yesterday, testStart.Add(time.Minute))
	failed := f.word("failed", f.a1, f.daily)
	f.put(failed, domain.PoolR2, true, yesterday, testStart.Add(time.Hour))
	untouched := f.word("untouched", f.a2, f.food)

	pool, err := f.svc.GetWordPool(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 3, pool.TotalCount)
	assert.Len(t, pool.Pools, len(domain.AllPools))

	for _, p := range domain.AllPools {
		assert.NotNil(t, pool.Pools[p], "pool %s", p)
	}

	require.Len(t, pool.Pools[domain.PoolP0], 1)
	assert.Equal(t, untouched.ID, pool.Pools[domain.PoolP0][0].WordID)
	assert.Nil(t, pool.Pools[domain.PoolP0][0].NextAvailableTime)

	require.Len(t, pool.Pools[domain.PoolP1], 1)
	entry := pool.Pools[domain.PoolP1][0]
	assert.Equal(t, "learning", entry.Word)
	assert.Equal(t, "譯learning", entry.Translation)
	require.NotNil(t, entry.NextAvailableTime)
	assert.Equal(t, testStart.Add(time.Minute), *entry.NextAvailableTime)

	require.Len(t, pool.Pools[domain.PoolR2], 1)
	assert.Equal(t, failed.ID, pool.Pools[domain.PoolR2][0].WordID)
	assert.Empty(t, pool.Pools[domain.PoolP6])
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

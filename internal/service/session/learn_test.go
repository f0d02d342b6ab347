package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/events"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

func TestGetLearnSession_Unavailable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		seed   func(f *fixture)
		reason eligibility.Reason
	}{
		{
			name: "daily limit reached",
			seed: func(f *fixture) {
				f.word("spare", f.a1, f.daily)
				for i := 0; i < 50; i++ {
					w := f.word(uuid.NewString(), f.a1, f.daily)
					f.put(w, domain.PoolP2, false, testStart.Add(-time.Hour), testStart.Add(time.Hour))
				}
			},
			reason: eligibility.ReasonDailyLimitReached,
		},
		{
			name: "too many P1 words coming up",
			seed: func(f *fixture) {
				f.word("spare", f.a1, f.daily)
				yesterday := testStart.Add(-24 * time.Hour)
				for i := 0; i < 10; i++ {
					w := f.word(uuid.NewString(), f.a1, f.daily)
					f.put(w, domain.PoolP1, false, yesterday, testStart.Add(5*time.Minute))
				}
			},
			reason: eligibility.ReasonP1PoolFull,
		},
		{
			name:   "catalog exhausted",
			seed:   func(f *fixture) {},
			reason: eligibility.ReasonNoWordsInP0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			tc.seed(f)

			session, err := f.svc.GetLearnSession(context.Background(), f.userID)
			require.NoError(t, err)
			assert.False(t, session.Available)
			assert.Equal(t, tc.reason, session.Reason)
			assert.NotNil(t, session.Words)
			assert.Empty(t, session.Exercises)
		})
	}
}

func TestGetLearnSession_FollowsPointerAndAdvancesIt(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.ms.Repositories().Users.UpdatePointer(ctx, f.userID, f.a1.ID, f.food.ID))

	f.words(f.a1, f.daily, "behind1", "behind2")
	food := f.words(f.a1, f.food, "bread", "rice")
	next := f.words(f.a2, f.daily, "cab", "car", "cart", "cat")

	session, err := f.svc.GetLearnSession(ctx, f.userID)
	require.NoError(t, err)
	require.True(t, session.Available)

	want := append(idsOf(food), idsOf(next[:3])...)
	assert.Equal(t, want, exerciseIDs(session.Exercises))

	result, err := f.svc.CompleteLearn(ctx, f.userID, exerciseIDs(session.Exercises))
	require.NoError(t, err)
	require.NotNil(t, result.Pointer)
	assert.Equal(t, f.a2, result.Pointer.Level)
	assert.Equal(t, f.daily, result.Pointer.Category)

	user := f.ms.User(f.userID)
	require.NotNil(t, user.CurrentLevelID)
	assert.Equal(t, f.a2.ID, *user.CurrentLevelID)
	assert.Equal(t, f.daily.ID, *user.CurrentCategoryID)
}

func TestGetLearnSession_UnsetPointerFallsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	stranger := uuid.New()
	f.ms.SeedUser(stranger, nil, nil)
	f.ms.SeedWord("loose", "散", nil, nil)
	f.word("kept", f.a2, f.food)

	session, err := f.svc.GetLearnSession(ctx, stranger)
	require.NoError(t, err)
	require.True(t, session.Available)
	assert.Len(t, session.Words, 2)
}

// The learn gate counts every unlearned word, while the session only walks
// forward from the pointer. Words behind it or outside the grid keep the
// gate open without ever being offered.
func TestGetLearnSession_UnreachableWordsKeepGateOpen(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	ahead := uuid.New()
	f.ms.SeedUser(ahead, &f.a2.ID, &f.food.ID)
	f.word("behind", f.a1, f.daily)
	f.ms.SeedWord("loose", "譯loose", nil, nil)

	stats, err := f.svc.GetStats(context.Background(), ahead)
	require.NoError(t, err)
	assert.True(t, stats.Status.Learn.Allowed)

	s, err := f.svc.GetLearnSession(context.Background(), ahead)
	require.NoError(t, err)
	assert.False(t, s.Available)
	assert.Equal(t, eligibility.ReasonNoWordsInP0, s.Reason)
}

func TestCompleteLearn_Rejections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		ids     func(f *fixture, fresh, learned *domain.Word) []string
		wantErr error
	}{
		{
			name:    "empty batch",
			ids:     func(*fixture, *domain.Word, *domain.Word) []string { return nil },
			wantErr: service.ErrEmptyBatch,
		},
		{
			name: "malformed id",
			ids: func(_ *fixture, fresh, _ *domain.Word) []string {
				return []string{fresh.ID.String(), "not-a-uuid"}
			},
			wantErr: domain.ErrInvalidID,
		},
		{
			name: "unknown word",
			ids: func(_ *fixture, fresh, _ *domain.Word) []string {
				return []string{fresh.ID.String(), uuid.NewString()}
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "word already learned",
			ids: func(_ *fixture, fresh, learned *domain.Word) []string {
				return []string{fresh.ID.String(), learned.ID.String()}
			},
			wantErr: service.ErrNotInP0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			fresh := f.word("fresh", f.a1, f.daily)
			learned := f.word("learned", f.a1, f.daily)
			f.put(learned, domain.PoolP3, false, testStart.Add(-48*time.Hour), testStart)

			result, err := f.svc.CompleteLearn(context.Background(), f.userID, tc.ids(f, fresh, learned))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, result)

			assert.Nil(t, f.ms.Progress(f.userID, fresh.ID), "nothing is applied when one word fails")
			assert.Equal(t, domain.PoolP3, f.ms.Progress(f.userID, learned.ID).Pool)
			assert.Empty(t, f.recorder.Events())
		})
	}
}

func TestCompleteLearn_CollapsesRepeatedIDs(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.word("echo", f.a1, f.daily)

	result, err := f.svc.CompleteLearn(context.Background(), f.userID, []string{w.ID.String(), w.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.WordsMoved)

	progress := f.ms.Progress(f.userID, w.ID)
	require.NotNil(t, progress)
	assert.Equal(t, domain.PoolP1, progress.Pool)
	assert.Equal(t, testStart, progress.LearnedAt)
	assert.Equal(t, testStart.Add(10*time.Minute), progress.NextAvailableTime)
}

func TestCompleteLearn_EventFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, errors.New("handler down"))
	w := f.word("sturdy", f.a1, f.daily)

	result, err := f.svc.CompleteLearn(context.Background(), f.userID, []string{w.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.WordsMoved)
	assert.Len(t, f.recorder.OfType(events.TypeLearnCompleted), 1)
}

func TestCompleteLearn_CommitFailurePublishesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.word("fragile", f.a1, f.daily)
	f.ms.FailOn("Commit", errors.New("connection reset"))

	_, err := f.svc.CompleteLearn(context.Background(), f.userID, []string{w.ID.String()})
	require.ErrorIs(t, err, store.ErrTransactionFailed)
	assert.Nil(t, f.ms.Progress(f.userID, w.ID))
	assert.Empty(t, f.recorder.Events())
}

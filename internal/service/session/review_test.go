package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
)

func TestGetReviewSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	pools := []domain.Pool{domain.PoolR1, domain.PoolR3, domain.PoolR5}
	for i, pool := range pools {
		w := f.word(string(pool), f.a1, f.daily)
		f.put(w, pool, true, yesterday, testStart.Add(-time.Duration(3-i)*time.Minute))
	}
	notYet := f.word("notyet", f.a1, f.daily)
	f.put(notYet, domain.PoolR2, true, yesterday, testStart.Add(time.Minute))

	session, err := f.svc.GetReviewSession(context.Background(), f.userID)
	require.NoError(t, err)
	require.True(t, session.Available)
	require.Len(t, session.Words, 3)
	require.Len(t, session.Exercises, 3)

	wantTypes := []domain.ExerciseType{domain.ExerciseReadingLv1, domain.ExerciseSpeakingLv1, domain.ExerciseSpeakingLv2}
	for i, pool := range pools {
		assert.Equal(t, pool, session.Words[i].Pool)
		assert.Equal(t, string(pool), session.Words[i].Word)
		assert.Equal(t, wantTypes[i], session.Exercises[i].Type)
		assert.Equal(t, pool, session.Exercises[i].Pool)
	}
}

func TestGetReviewSession_Limits(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		due       int
		available bool
		words     int
	}{
		{name: "below minimum", due: 2},
		{name: "at minimum", due: 3, available: true, words: 3},
		{name: "capped at maximum", due: 8, available: true, words: 5},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			for i := 0; i < tc.due; i++ {
				w := f.word(uuid.NewString(), f.a1, f.daily)
				f.put(w, domain.PoolR2, true, yesterday, testStart)
			}

			session, err := f.svc.GetReviewSession(context.Background(), f.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.available, session.Available)
			assert.Len(t, session.Words, tc.words)
			if !tc.available {
				assert.Equal(t, eligibility.ReasonNotEnoughWords, session.Reason)
			}
		})
	}
}

func TestCompleteReview(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	early := f.word("early", f.a1, f.daily)
	late := f.word("late", f.a1, f.daily)
	f.put(early, domain.PoolR1, true, yesterday, testStart)
	f.put(late, domain.PoolR4, true, yesterday, testStart)

	result, err := f.svc.CompleteReview(context.Background(), f.userID, idsOf([]*domain.Word{early, late}))
	require.NoError(t, err)
	assert.Equal(t, 2, result.WordsCompleted)
	require.NotNil(t, result.NextPracticeTime)
	assert.Equal(t, testStart.Add(20*time.Hour), *result.NextPracticeTime)

	for _, w := range []*domain.Word{early, late} {
		progress := f.ms.Progress(f.userID, w.ID)
		assert.False(t, progress.InReviewPhase)
		require.NotNil(t, progress.ReviewCompletedTime)
		assert.Equal(t, testStart, *progress.ReviewCompletedTime)
	}
	assert.Equal(t, domain.PoolR4, f.ms.Progress(f.userID, late.ID).Pool, "the pool never changes")
}

func TestCompleteReview_Rejections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		second  func(f *fixture) string
		wantErr error
	}{
		{
			name: "practice ladder word",
			second: func(f *fixture) string {
				w := f.word("climber", f.a1, f.daily)
				f.put(w, domain.PoolP2, false, yesterday, testStart)
				return w.ID.String()
			},
			wantErr: service.ErrNotRemedial,
		},
		{
			name: "remedial word already in retest",
			second: func(f *fixture) string {
				w := f.word("retesting", f.a1, f.daily)
				f.put(w, domain.PoolR2, false, yesterday, testStart)
				return w.ID.String()
			},
			wantErr: service.ErrWrongPhase,
		},
		{
			name: "word never learned",
			second: func(f *fixture) string {
				return f.word("fresh", f.a1, f.daily).ID.String()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			first := f.word("first", f.a1, f.daily)
			f.put(first, domain.PoolR1, true, yesterday, testStart)

			_, err := f.svc.CompleteReview(context.Background(), f.userID, []string{first.ID.String(), tc.second(f)})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, f.ms.Progress(f.userID, first.ID).InReviewPhase, "nothing is applied when one word fails")
		})
	}

	f := newFixture(t, nil)
	_, err := f.svc.CompleteReview(context.Background(), f.userID, nil)
	assert.ErrorIs(t, err, service.ErrEmptyBatch)
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	passing := f.word("passing", f.a1, f.daily)
	failing := f.word("failing", f.a1, f.daily)
	f.put(passing, domain.PoolR1, false, yesterday, testStart)
	f.put(failing, domain.PoolR3, false, yesterday, testStart)

	result, err := f.svc.SubmitReview(context.Background(), f.userID, []Answer{
		{WordID: passing.ID.String(), Correct: true},
		{WordID: failing.ID.String(), Correct: false},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{CorrectCount: 1, IncorrectCount: 1, ReturnedToPractice: 1}, result.Summary)

	back := f.ms.Progress(f.userID, passing.ID)
	assert.Equal(t, domain.PoolP1, back.Pool)
	assert.Equal(t, testStart.Add(10*time.Minute), back.NextAvailableTime)

	again := f.ms.Progress(f.userID, failing.ID)
	assert.Equal(t, domain.PoolR3, again.Pool)
	assert.True(t, again.InReviewPhase)
	assert.Equal(t, testStart.Add(time.Hour), again.NextAvailableTime)

	history := f.ms.Answers()
	require.Len(t, history, 2)
	for _, a := range history {
		assert.Equal(t, domain.AnswerSourceReviewPractice, a.Source)
	}
	assert.Equal(t, domain.ExerciseSpeakingLv1, history[1].ExerciseType)
}

func TestSubmitReview_RejectsReviewPhaseWord(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.word("waiting", f.a1, f.daily)
	f.put(w, domain.PoolR2, true, yesterday, testStart)

	_, err := f.svc.SubmitReview(context.Background(), f.userID, []Answer{{WordID: w.ID.String(), Correct: true}})
	assert.ErrorIs(t, err, service.ErrWrongPhase)
	assert.True(t, f.ms.Progress(f.userID, w.ID).InReviewPhase)
}

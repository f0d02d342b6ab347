package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

func seedTutorialWords(f *fixture, texts ...string) map[string]*domain.Word {
	out := make(map[string]*domain.Word, len(texts))
	for _, text := range texts {
		out[text] = f.ms.SeedWord(text, "譯"+text, nil, nil)
	}
	return out
}

func TestGetVocabularyTutorial(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	words := seedTutorialWords(f, "apple", "banana", "grape", "mango")
	f.word("pear", f.a1, f.daily)
	tutorialIDs := []uuid.UUID{words["apple"].ID, words["banana"].ID, words["grape"].ID, words["mango"].ID}

	tut, err := f.svc.GetVocabularyTutorial(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, words["apple"].ID, tut.Word.ID)
	assert.Equal(t, "apple", tut.Word.Word)
	require.Len(t, tut.Steps, 5)

	wantTypes := []domain.ExerciseType{
		domain.ExerciseReadingLv1,
		domain.ExerciseReadingLv2,
		domain.ExerciseListeningLv1,
		domain.ExerciseSpeakingLv1,
		domain.ExerciseSpeakingLv2,
	}
	for i, step := range tut.Steps {
		assert.Equal(t, i+1, step.Step)
		assert.Equal(t, wantTypes[i], step.Type)
		assert.Equal(t, words["apple"].ID, step.WordID)

		if step.Type.IsSpeaking() {
			assert.Empty(t, step.Options)
			assert.Nil(t, step.CorrectIndex)
			continue
		}
		require.NotNil(t, step.CorrectIndex)
		assert.Equal(t, words["apple"].ID, step.Options[*step.CorrectIndex].WordID)
		ids := make([]uuid.UUID, 0, len(step.Options))
		for _, o := range step.Options {
			ids = append(ids, o.WordID)
		}
		assert.ElementsMatch(t, tutorialIDs, ids, "options come only from the tutorial words")
	}

	assert.Zero(t, f.ms.ProgressCount(f.userID), "the tutorial never touches progress")
}

func TestGetVocabularyTutorial_MissingWord(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		seed    []string
		missing string
	}{
		{name: "no target", seed: []string{"banana", "grape", "mango"}, missing: "apple"},
		{name: "no distractor", seed: []string{"apple", "banana", "grape"}, missing: "mango"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			seedTutorialWords(f, tc.seed...)

			_, err := f.svc.GetVocabularyTutorial(context.Background(), f.userID)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrNotFound)

			var nf *domain.NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, "tutorial_word", nf.Entity)
			assert.Equal(t, tc.missing, nf.ID)
		})
	}
}

func TestCompleteVocabularyTutorial(t *testing.T) {
	t.Parallel()

	t.Run("stamps completion time", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)
		require.Nil(t, f.ms.User(f.userID).TutorialCompletedAt)

		require.NoError(t, f.svc.CompleteVocabularyTutorial(context.Background(), f.userID))

		completed := f.ms.User(f.userID).TutorialCompletedAt
		require.NotNil(t, completed)
		assert.True(t, testStart.Equal(*completed))
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		err := f.svc.CompleteVocabularyTutorial(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

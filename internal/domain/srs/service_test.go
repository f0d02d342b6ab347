package srs_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain/srs"
)

func TestServiceLearn(t *testing.T) {
	t.Parallel()
	svc := srs.NewDefaultService()
	now := time.Now().UTC()
	userID, wordID := uuid.New(), uuid.New()

	p, err := svc.Learn(userID, wordID, now)
	require.NoError(t, err)
	assert.Equal(t, domain.PoolP1, p.Pool)
	assert.Equal(t, now, p.LearnedAt)
	assert.Equal(t, now.Add(10*time.Minute), p.NextAvailableTime)
	assert.False(t, p.InReviewPhase)

	_, err = svc.Learn(uuid.Nil, wordID, now)
	assert.ErrorIs(t, err, domain.ErrEmptyProgressUserID)
}

func TestServiceNilProgress(t *testing.T) {
	t.Parallel()
	svc := srs.NewDefaultService()

	_, _, err := svc.Answer(nil, true, time.Now())
	assert.ErrorIs(t, err, srs.ErrNilProgress)

	_, err = svc.CompleteReview(nil, time.Now())
	assert.ErrorIs(t, err, srs.ErrNilProgress)
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()

	svc, err := srs.NewServiceWithParams(nil)
	require.NoError(t, err)
	assert.Equal(t, srs.NewDefaultParams(), svc.Params())

	_, err = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{P2: time.Minute}))
	assert.Error(t, err)
}

package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsAreValid(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	require.NoError(t, params.Validate())

	assert.Equal(t, 10*time.Minute, params.PracticeDelay(1))
	assert.Equal(t, time.Hour, params.ReviewDisplayDelay)
	assert.Equal(t, 20*time.Hour, params.RemedialPracticeDelay)
	assert.Zero(t, params.PracticeDelay(0))
	assert.Zero(t, params.PracticeDelay(7))
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, NewDefaultParams(), NewParams(ParamsConfig{}))
	})

	t.Run("overrides apply", func(t *testing.T) {
		t.Parallel()
		params := NewParams(ParamsConfig{
			P1:               5 * time.Minute,
			P6:               1000 * time.Hour,
			ReviewDisplay:    30 * time.Minute,
			RemedialPractice: 12 * time.Hour,
		})
		assert.Equal(t, 5*time.Minute, params.PracticeDelay(1))
		assert.Equal(t, 20*time.Hour, params.PracticeDelay(2))
		assert.Equal(t, 1000*time.Hour, params.PracticeDelay(6))
		assert.Equal(t, 30*time.Minute, params.ReviewDisplayDelay)
		assert.Equal(t, 12*time.Hour, params.RemedialPracticeDelay)
	})
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		config  ParamsConfig
		mutate  func(p *Params)
		wantErr string
	}{
		{
			name:    "ladder must increase",
			config:  ParamsConfig{P3: time.Hour},
			wantErr: "P3",
		},
		{
			name:    "equal rungs rejected",
			config:  ParamsConfig{P2: 10 * time.Minute},
			wantErr: "P2",
		},
		{
			name:    "negative review delay rejected",
			mutate:  func(p *Params) { p.ReviewDisplayDelay = -time.Minute },
			wantErr: "review display",
		},
		{
			name:    "zero remedial delay rejected",
			mutate:  func(p *Params) { p.RemedialPracticeDelay = 0 },
			wantErr: "remedial practice",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			params := NewParams(tc.config)
			if tc.mutate != nil {
				tc.mutate(params)
			}
			err := params.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

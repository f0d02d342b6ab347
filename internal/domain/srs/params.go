package srs

import (
	"fmt"
	"time"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
)

// Params is the fixed schedule table: how long a word waits after entering a
// pool/phase before it is due again. Ladder delays must strictly increase.
type Params struct {
	// PracticeDelays[n] is the wait after entering practice rung Pn (n = 1..6).
	PracticeDelays [domain.MaxPracticeRung + 1]time.Duration

	// ReviewDisplayDelay is the wait before a failed word is shown for review.
	ReviewDisplayDelay time.Duration

	// RemedialPracticeDelay is the wait between completing the review display
	// and the remedial retest.
	RemedialPracticeDelay time.Duration
}

// ParamsConfig allows overriding the default table. Zero values keep the default.
type ParamsConfig struct {
	P1 time.Duration
	P2 time.Duration
	P3 time.Duration
	P4 time.Duration
	P5 time.Duration
	P6 time.Duration

	ReviewDisplay    time.Duration
	RemedialPractice time.Duration
}

// NewDefaultParams creates the default schedule table.
func NewDefaultParams() *Params {
	return &Params{
		PracticeDelays: [domain.MaxPracticeRung + 1]time.Duration{
			1: 10 * time.Minute,
			2: 20 * time.Hour,
			3: 48 * time.Hour,
			4: 96 * time.Hour,
			5: 168 * time.Hour,
			6: 336 * time.Hour,
		},
		ReviewDisplayDelay:    time.Hour,
		RemedialPracticeDelay: 20 * time.Hour,
	}
}

// NewParams creates a schedule table with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	overrides := [...]time.Duration{
		1: config.P1, 2: config.P2, 3: config.P3, 4: config.P4, 5: config.P5, 6: config.P6,
	}
	for n, d := range overrides {
		if d > 0 {
			params.PracticeDelays[n] = d
		}
	}
	if config.ReviewDisplay > 0 {
		params.ReviewDisplayDelay = config.ReviewDisplay
	}
	if config.RemedialPractice > 0 {
		params.RemedialPracticeDelay = config.RemedialPractice
	}

	return params
}

// Validate checks that every delay is positive and the ladder strictly increases.
func (p *Params) Validate() error {
	for n := 1; n <= domain.MaxPracticeRung; n++ {
		d := p.PracticeDelays[n]
		if d <= 0 {
			return fmt.Errorf("schedule delay for P%d must be positive, got %s", n, d)
		}
		if n > 1 && d <= p.PracticeDelays[n-1] {
			return fmt.Errorf("schedule delay for P%d (%s) must exceed P%d (%s)",
				n, d, n-1, p.PracticeDelays[n-1])
		}
	}
	if p.ReviewDisplayDelay <= 0 {
		return fmt.Errorf("review display delay must be positive, got %s", p.ReviewDisplayDelay)
	}
	if p.RemedialPracticeDelay <= 0 {
		return fmt.Errorf("remedial practice delay must be positive, got %s", p.RemedialPracticeDelay)
	}
	return nil
}

// PracticeDelay returns the wait for practice rung n (1..6).
func (p *Params) PracticeDelay(n int) time.Duration {
	if n < 1 || n > domain.MaxPracticeRung {
		return 0
	}
	return p.PracticeDelays[n]
}

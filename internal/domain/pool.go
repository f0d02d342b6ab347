package domain

import (
	"fmt"
	"strconv"
)

// Pool is a word's position in the learning schedule.
//
// P0 is virtual: it is never persisted and stands for "no progress record".
// P1..P6 form the practice ladder and R1..R5 the remedial ladder; a remedial
// pool always mirrors the practice rung the word fell from.
type Pool string

// Known pools.
const (
	PoolP0 Pool = "P0"
	PoolP1 Pool = "P1"
	PoolP2 Pool = "P2"
	PoolP3 Pool = "P3"
	PoolP4 Pool = "P4"
	PoolP5 Pool = "P5"
	PoolP6 Pool = "P6"
	PoolR1 Pool = "R1"
	PoolR2 Pool = "R2"
	PoolR3 Pool = "R3"
	PoolR4 Pool = "R4"
	PoolR5 Pool = "R5"
)

const (
	// MaxPracticeRung is the terminal (mastered) rung of the practice ladder.
	MaxPracticeRung = 6
	// MaxRemedialRung is the highest remedial rung.
	MaxRemedialRung = 5
)

// AllPools lists every pool in display order, P0 included.
var AllPools = []Pool{
	PoolP0, PoolP1, PoolP2, PoolP3, PoolP4, PoolP5, PoolP6,
	PoolR1, PoolR2, PoolR3, PoolR4, PoolR5,
}

// PracticePool returns the practice pool for rung n.
func PracticePool(n int) Pool {
	return Pool("P" + strconv.Itoa(n))
}

// RemedialPool returns the remedial pool for rung n.
func RemedialPool(n int) Pool {
	return Pool("R" + strconv.Itoa(n))
}

// ParsePool validates s as a persisted pool (P1..P6 or R1..R5).
func ParsePool(s string) (Pool, error) {
	p := Pool(s)
	if !p.Persistable() {
		return "", NewValidationError("pool", fmt.Sprintf("%q is not a valid pool", s), ErrValidation)
	}
	return p, nil
}

// Rung returns the numeric part of the pool, or 0 if the pool is malformed.
func (p Pool) Rung() int {
	if len(p) != 2 {
		return 0
	}
	n, err := strconv.Atoi(string(p[1:]))
	if err != nil {
		return 0
	}
	return n
}

// IsPractice reports whether p is on the practice ladder (P1..P6).
func (p Pool) IsPractice() bool {
	n := p.Rung()
	return len(p) == 2 && p[0] == 'P' && n >= 1 && n <= MaxPracticeRung
}

// IsRemedial reports whether p is on the remedial ladder (R1..R5).
func (p Pool) IsRemedial() bool {
	n := p.Rung()
	return len(p) == 2 && p[0] == 'R' && n >= 1 && n <= MaxRemedialRung
}

// IsMastered reports whether p is the terminal practice rung.
func (p Pool) IsMastered() bool {
	return p == PoolP6
}

// Persistable reports whether a progress record may hold this pool.
func (p Pool) Persistable() bool {
	return p.IsPractice() || p.IsRemedial()
}

// String implements fmt.Stringer.
func (p Pool) String() string {
	return string(p)
}

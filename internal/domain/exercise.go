package domain

// ExerciseType names the drill presented for a word.
type ExerciseType string

// Exercise types, one per practice rung.
const (
	ExerciseReadingLv1   ExerciseType = "reading_lv1"
	ExerciseListeningLv1 ExerciseType = "listening_lv1"
	ExerciseSpeakingLv1  ExerciseType = "speaking_lv1"
	ExerciseReadingLv2   ExerciseType = "reading_lv2"
	ExerciseSpeakingLv2  ExerciseType = "speaking_lv2"
)

// rungExercises maps practice rungs 1..5 to their drill.
var rungExercises = [...]ExerciseType{
	1: ExerciseReadingLv1,
	2: ExerciseListeningLv1,
	3: ExerciseSpeakingLv1,
	4: ExerciseReadingLv2,
	5: ExerciseSpeakingLv2,
}

// ExerciseTypeOrder is the presentation order: reading, then listening, then speaking.
var ExerciseTypeOrder = []ExerciseType{
	ExerciseReadingLv1,
	ExerciseReadingLv2,
	ExerciseListeningLv1,
	ExerciseSpeakingLv1,
	ExerciseSpeakingLv2,
}

// ExerciseTypeForPool returns the drill for a word in pool p. Pn and Rn share
// the drill of rung n. P0, P6 and malformed pools have none.
func ExerciseTypeForPool(p Pool) (ExerciseType, bool) {
	if !p.IsPractice() && !p.IsRemedial() {
		return "", false
	}
	n := p.Rung()
	if n < 1 || n >= len(rungExercises) {
		return "", false
	}
	return rungExercises[n], true
}

// IsSpeaking reports whether the exercise is production-only and carries no options.
func (t ExerciseType) IsSpeaking() bool {
	return t == ExerciseSpeakingLv1 || t == ExerciseSpeakingLv2
}

// Valid reports whether t is a known exercise type.
func (t ExerciseType) Valid() bool {
	return t.Rank() < len(ExerciseTypeOrder)
}

// Rank is the position of t in ExerciseTypeOrder; unknown types sort last.
func (t ExerciseType) Rank() int {
	for i, et := range ExerciseTypeOrder {
		if et == t {
			return i
		}
	}
	return len(ExerciseTypeOrder)
}

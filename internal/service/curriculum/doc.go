// Package curriculum orders the catalog into a (level, category) grid and
// walks it from a learner's pointer to pick the next words to learn.
//
// The pointer only moves forward through Advance; placement through level
// analysis is the one caller allowed to set it anywhere.
package curriculum

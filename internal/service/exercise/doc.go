// Package exercise turns words into drills: it picks the exercise type for a
// word's pool and builds shuffled multiple-choice options for reading and
// listening drills. Speaking drills carry no options.
package exercise

// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the scheduling core, which treats progress as a durable store keyed by
// (user_id, word_id).
//
// Store implementations return the sentinel errors declared in errors.go so
// callers can branch on not-found and duplicate conditions without knowing
// which backend produced them.
package store

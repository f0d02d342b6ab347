// Package eligibility decides whether a learner may start a learn, practice
// or review session right now.
//
// Each check returns a Decision: either allowed, or refused with one of the
// Reason codes that clients render as guidance. Checks only read counts and
// take the stores to read from as a Counters value, so a caller can evaluate
// the gate inside the same transaction that assembles the session.
package eligibility

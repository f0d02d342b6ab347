// Package session assembles learn, practice and review sessions and applies
// their results.
//
// Every operation runs inside one store.Transactor unit of work. The
// eligibility gate reads its counts through the same repositories, so the
// decision and the session built from it see one consistent state, and a
// rejected submission leaves no partial writes behind. Events are published
// only after the unit of work commits.
package session

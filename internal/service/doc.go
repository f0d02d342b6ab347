// Package service contains the application-level use cases that sit between
// the HTTP handlers and the stores.
//
// The root package holds what every use case shares: ServiceError, the
// validation sentinels the API layer maps to 400, and UserService, which
// bootstraps the learner row behind a verified bearer identity. The learning
// flows live in sub-packages:
//
//   - eligibility: the admission gate for learn, practice and review sessions
//   - curriculum: pointer traversal over the ordered (level, category) grid
//   - exercise: exercise construction and multiple-choice option generation
//   - session: the session assembler that composes all of the above
//   - auth: bearer token issue and validation
//
// Services receive their stores and collaborators through constructor
// injection and run every multi-write operation inside a single
// store.Transactor unit of work.
package service

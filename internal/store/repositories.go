package store

import "context"

// Repositories groups the stores a unit of work operates on.
type Repositories struct {
	Words      WordStore
	Curriculum CurriculumStore
	Users      UserStore
	Progress   ProgressStore
	Answers    AnswerStore
}

// UnitOfWorkFn runs against stores bound to a single transaction.
type UnitOfWorkFn func(ctx context.Context, repos Repositories) error

// Transactor runs units of work atomically: either every write made through
// the provided repositories is committed, or none is.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn UnitOfWorkFn) error
}

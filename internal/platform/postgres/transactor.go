package postgres

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// NewRepositories builds every store over the same DBTX, which is either the
// pool or an open transaction.
func NewRepositories(db store.DBTX, logger *slog.Logger) store.Repositories {
	return store.Repositories{
		Words:      NewPostgresWordStore(db, logger),
		Curriculum: NewPostgresCurriculumStore(db, logger),
		Users:      NewPostgresUserStore(db, logger),
		Progress:   NewPostgresProgressStore(db, logger),
		Answers:    NewPostgresAnswerStore(db, logger),
	}
}

// Transactor runs units of work inside a single database transaction,
// handing them stores bound to that transaction.
type Transactor struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewTransactor creates a Transactor over db.
func NewTransactor(db *sqlx.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{db: db, logger: logger}
}

var _ store.Transactor = (*Transactor)(nil)

// WithinTransaction implements store.Transactor.WithinTransaction
func (t *Transactor) WithinTransaction(ctx context.Context, fn store.UnitOfWorkFn) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, NewRepositories(tx, t.logger))
	})
}

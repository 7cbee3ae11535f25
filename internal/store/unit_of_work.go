package store

import "context"

// Stores groups the stores bound to one unit of work.
type Stores struct {
	Accounts AccountStore
	Tasks    TaskStore
}

// UnitOfWorkFn is the body of a unit of work. Every store in s shares the
// same transaction.
type UnitOfWorkFn func(ctx context.Context, s Stores) error

// UnitOfWork runs functions atomically. If fn returns an error (or panics)
// nothing it wrote is kept.
type UnitOfWork interface {
	Do(ctx context.Context, fn UnitOfWorkFn) error
}

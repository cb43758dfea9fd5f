package ports

import "context"

// Stores are the repositories bound to one transaction.
type Stores struct {
	Places Repository
	Owners OwnerRepository
}

// UnitOfWork scopes a multi-document mutation. Do commits when fn returns nil
// and rolls back every write otherwise. fn must use the context and stores it
// receives. Failed transactions are not retried.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

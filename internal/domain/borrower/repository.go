package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	// Scoped to the creating user.
	GetByID(ctx context.Context, ownerID, borrowerID string) (*Borrower, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Borrower, error)
}

package borrowermock

import (
	"context"

	domain "prestamos-backend/internal/domain/borrower"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn      func(ctx context.Context, b *domain.Borrower) error
	GetByIDFn     func(ctx context.Context, ownerID, borrowerID string) (*domain.Borrower, error)
	ListByOwnerFn func(ctx context.Context, ownerID string) ([]domain.Borrower, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Borrower) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, ownerID, borrowerID string) (*domain.Borrower, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Borrower, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, context.Canceled
}

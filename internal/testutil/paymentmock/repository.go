package paymentmock

import (
	"context"

	domain "prestamos-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, p *domain.Payment) error
	GetByIDFn          func(ctx context.Context, loanID, paymentID string) (*domain.Payment, error)
	GetByIDForUpdateFn func(ctx context.Context, loanID, paymentID string) (*domain.Payment, error)
	ListByLoanIDFn     func(ctx context.Context, loanID string) ([]domain.Payment, error)
	TransitionFn       func(ctx context.Context, paymentID string, from, to domain.Status) (bool, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, loanID, paymentID string) (*domain.Payment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, loanID, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, loanID, paymentID string) (*domain.Payment, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, loanID, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

// Transition defaults to a successful swap.
func (m *Repo) Transition(ctx context.Context, paymentID string, from, to domain.Status) (bool, error) {
	if m.TransitionFn != nil {
		return m.TransitionFn(ctx, paymentID, from, to)
	}
	return true, nil
}

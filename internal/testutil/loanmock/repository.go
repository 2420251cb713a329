package loanmock

import (
	"context"

	domain "prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled so a missing stub fails loudly.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Loan) error
	GetByIDFn           func(ctx context.Context, ownerID, loanID string) (*domain.Loan, error)
	GetByIDForUpdateFn  func(ctx context.Context, ownerID, loanID string) (*domain.Loan, error)
	GetWithPaymentsFn   func(ctx context.Context, ownerID, loanID string) (*domain.Loan, []payment.Payment, error)
	ListByOwnerFn       func(ctx context.Context, ownerID string) ([]domain.Loan, error)
	ListByBorrowerIDsFn func(ctx context.Context, borrowerIDs []string) ([]domain.Loan, error)
	SaveLedgerFn        func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, ownerID, loanID string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, ownerID, loanID string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, ownerID, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetWithPayments(ctx context.Context, ownerID, loanID string) (*domain.Loan, []payment.Payment, error) {
	if m.GetWithPaymentsFn != nil {
		return m.GetWithPaymentsFn(ctx, ownerID, loanID)
	}
	return nil, nil, context.Canceled
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Loan, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByBorrowerIDs(ctx context.Context, borrowerIDs []string) ([]domain.Loan, error) {
	if m.ListByBorrowerIDsFn != nil {
		return m.ListByBorrowerIDsFn(ctx, borrowerIDs)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveLedger(ctx context.Context, l *domain.Loan) error {
	if m.SaveLedgerFn != nil {
		return m.SaveLedgerFn(ctx, l)
	}
	return nil
}

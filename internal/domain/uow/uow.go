package uow

import (
	"context"

	"prestamos-backend/internal/domain/borrower"
	"prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/payment"
	"prestamos-backend/internal/domain/user"
)

// Repos bound to one transaction.
type Repos struct {
	Loans     loan.Repository
	Payments  payment.Repository
	Borrowers borrower.Repository
	Users     user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the owner's loan first, then pass it in
	WithinLoanTx(ctx context.Context, ownerID, loanID string, fn func(r Repos, l *loan.Loan) error) error
}

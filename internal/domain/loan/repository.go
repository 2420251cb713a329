package loan

import (
	"context"

	"prestamos-backend/internal/domain/payment"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error

	// Lookups are scoped to the owning user.
	GetByID(ctx context.Context, ownerID, loanID string) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, ownerID, loanID string) (*Loan, error)
	// Loan joined with its payment history (empty, never nil).
	GetWithPayments(ctx context.Context, ownerID, loanID string) (*Loan, []payment.Payment, error)

	ListByOwner(ctx context.Context, ownerID string) ([]Loan, error)
	ListByBorrowerIDs(ctx context.Context, borrowerIDs []string) ([]Loan, error)

	// SaveLedger persists balance, surcharge, winnings and status only.
	SaveLedger(ctx context.Context, l *Loan) error
}

package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error

	// Lookups are scoped to the loan; a payment of another loan is not found.
	GetByID(ctx context.Context, loanID, paymentID string) (*Payment, error)
	GetByIDForUpdate(ctx context.Context, loanID, paymentID string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanID string) ([]Payment, error)

	// Transition moves the payment from one status to another only if it is
	// still in `from`. Reports whether a row changed.
	Transition(ctx context.Context, paymentID string, from, to Status) (bool, error)
}

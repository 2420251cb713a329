package payment

import (
	"context"
	"errors"
	"fmt"

	domainLoan "prestamos-backend/internal/domain/loan"
	domain "prestamos-backend/internal/domain/payment"
	"prestamos-backend/internal/domain/user"

	"gorm.io/gorm"
)

// Usecase serves read access to a loan's payments for the loan's owner.
type Usecase struct {
	loans    domainLoan.Repository
	payments domain.Repository
}

func NewUsecase(loans domainLoan.Repository, payments domain.Repository) *Usecase {
	return &Usecase{loans: loans, payments: payments}
}

func (u *Usecase) ListByLoan(ctx context.Context, p user.Principal, loanID string) ([]PaymentDTO, error) {
	if err := u.ensureLoan(ctx, p, loanID); err != nil {
		return nil, err
	}
	ps, err := u.payments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return ToDTOs(ps), nil
}

func (u *Usecase) Get(ctx context.Context, p user.Principal, loanID, paymentID string) (*PaymentDTO, error) {
	if err := u.ensureLoan(ctx, p, loanID); err != nil {
		return nil, err
	}
	pay, err := u.payments.GetByID(ctx, loanID, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	dto := ToDTO(*pay)
	return &dto, nil
}

func (u *Usecase) ensureLoan(ctx context.Context, p user.Principal, loanID string) error {
	if _, err := u.loans.GetByID(ctx, p.UserID, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainLoan.ErrNotFound
		}
		return fmt.Errorf("get loan: %w", err)
	}
	return nil
}

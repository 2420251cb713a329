package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"prestamos-backend/internal/domain/apperr"
	domainBorrower "prestamos-backend/internal/domain/borrower"
	domain "prestamos-backend/internal/domain/loan"
	domainPayment "prestamos-backend/internal/domain/payment"
	"prestamos-backend/internal/domain/uow"
	"prestamos-backend/internal/domain/user"
	ucPayment "prestamos-backend/internal/usecase/payment"
	"prestamos-backend/pkg/id"
	"prestamos-backend/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBorrowerRequired = fmt.Errorf("borrower_id is required: %w", apperr.ErrInvalidArgument)
	ErrInvalidDate      = fmt.Errorf("dates must use the YYYY-MM-DD format: %w", apperr.ErrInvalidArgument)
)

type Usecase struct {
	loans domain.Repository
	uow   uow.UnitOfWork
	now   func() time.Time
}

// NewUsecase: loans serves plain reads, the UoW every write.
func NewUsecase(loans domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func invalidArg(field string, err error) error {
	return fmt.Errorf("%s: %w: %w", field, err, apperr.ErrInvalidArgument)
}

func (u *Usecase) Create(ctx context.Context, p user.Principal, in CreateLoanInput) (*LoanDTO, error) {
	if strings.TrimSpace(in.BorrowerID) == "" {
		return nil, ErrBorrowerRequired
	}
	amount, err := money.Parse(in.Amount)
	if err != nil {
		return nil, invalidArg("amount", err)
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	rate := domain.DefaultInterestRate
	if in.InterestRate != nil && strings.TrimSpace(*in.InterestRate) != "" {
		if rate, err = money.Parse(*in.InterestRate); err != nil {
			return nil, invalidArg("interest_rate", err)
		}
		if rate.GreaterThan(domain.MaxInterestRate) {
			return nil, domain.ErrInvalidRate
		}
	}

	start, err := time.Parse(DateLayout, strings.TrimSpace(in.StartDate))
	if err != nil {
		return nil, ErrInvalidDate
	}
	due, err := time.Parse(DateLayout, strings.TrimSpace(in.DueDate))
	if err != nil {
		return nil, ErrInvalidDate
	}
	if due.Before(start) {
		return nil, domain.ErrInvalidDates
	}

	status := domain.StatusActive
	if in.Status != nil && *in.Status != "" {
		if status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, err
		}
	}

	l := &domain.Loan{
		ID:           id.New(),
		BorrowerID:   in.BorrowerID,
		OwnerID:      p.UserID,
		Amount:       amount,
		Surcharge:    decimal.Zero,
		Winnings:     decimal.Zero,
		Balance:      decimal.Zero,
		InterestRate: rate,
		StartDate:    start,
		DueDate:      due,
		Status:       status,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Borrowers.GetByID(ctx, p.UserID, in.BorrowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainBorrower.ErrNotFound
			}
			return fmt.Errorf("get borrower: %w", err)
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := ToDTO(*l)
	return &dto, nil
}

// FindByID returns the loan with its full payment history.
func (u *Usecase) FindByID(ctx context.Context, p user.Principal, loanID string) (*LoanDetailDTO, error) {
	l, payments, err := u.loans.GetWithPayments(ctx, p.UserID, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &LoanDetailDTO{LoanDTO: ToDTO(*l), Payments: ucPayment.ToDTOs(payments)}, nil
}

func (u *Usecase) List(ctx context.Context, p user.Principal) ([]LoanDTO, error) {
	ls, err := u.loans.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return ToDTOs(ls), nil
}

// GeneratePayment records a new PENDING payment. A surcharge also grows the
// loan's outstanding surcharge right away; interest is derived from the loan.
func (u *Usecase) GeneratePayment(ctx context.Context, p user.Principal, in GeneratePaymentInput) error {
	typ, err := domainPayment.ParseType(in.Type)
	if err != nil {
		return err
	}

	supplied := in.Amount != nil && strings.TrimSpace(*in.Amount) != ""
	var amount decimal.Decimal
	switch {
	case typ.RequiresAmount() && !supplied:
		return domainPayment.ErrAmountRequired
	case typ.RequiresAmount():
		if amount, err = money.Parse(*in.Amount); err != nil {
			return invalidArg("amount", err)
		}
	case supplied:
		return domainPayment.ErrAmountNotAllowed
	}

	err = u.uow.WithinLoanTx(ctx, p.UserID, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		switch typ {
		case domainPayment.TypePayment:
			// balance moves only when the payment is applied
		case domainPayment.TypeSurcharge:
			if err := l.AddSurcharge(amount); err != nil {
				return err
			}
			if err := r.Loans.SaveLedger(ctx, l); err != nil {
				return fmt.Errorf("save loan: %w", err)
			}
		case domainPayment.TypeInterest:
			amount = l.InterestDue()
			if !money.Fits(amount) {
				return domain.ErrOverflow
			}
		}

		now := u.now()
		pay := &domainPayment.Payment{
			ID:          id.New(),
			LoanID:      l.ID,
			Amount:      amount,
			Status:      domainPayment.StatusPending,
			PaymentType: typ,
			PaymentDate: now,
			CreatedAt:   now,
		}
		if err := r.Payments.Create(ctx, pay); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	return loanTxErr(err)
}

// ApplyPayment settles a pending payment onto its loan. The loan row is
// locked and the payment status is swapped with a compare-and-set, so a
// payment can be applied at most once.
func (u *Usecase) ApplyPayment(ctx context.Context, p user.Principal, loanID, paymentID string) error {
	err := u.uow.WithinLoanTx(ctx, p.UserID, loanID, func(r uow.Repos, l *domain.Loan) error {
		pay, err := lockPending(ctx, r, l.ID, paymentID)
		if err != nil {
			return err
		}
		if err := l.ApplyPayment(pay.PaymentType, pay.Amount); err != nil {
			return err
		}
		if err := settle(ctx, r, pay.ID, domainPayment.StatusCompleted); err != nil {
			return err
		}
		if err := r.Loans.SaveLedger(ctx, l); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		log.Printf("loan %s: applied %s payment %s of %s (status %s)", l.ID, pay.PaymentType, pay.ID, money.Format(pay.Amount), l.Status)
		return nil
	})
	return loanTxErr(err)
}

// ExpirePayment retires a pending payment without touching the loan.
func (u *Usecase) ExpirePayment(ctx context.Context, p user.Principal, loanID, paymentID string) error {
	err := u.uow.WithinLoanTx(ctx, p.UserID, loanID, func(r uow.Repos, l *domain.Loan) error {
		pay, err := lockPending(ctx, r, l.ID, paymentID)
		if err != nil {
			return err
		}
		return settle(ctx, r, pay.ID, domainPayment.StatusExpired)
	})
	return loanTxErr(err)
}

func lockPending(ctx context.Context, r uow.Repos, loanID, paymentID string) (*domainPayment.Payment, error) {
	pay, err := r.Payments.GetByIDForUpdate(ctx, loanID, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainPayment.ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if pay.Status != domainPayment.StatusPending {
		return nil, domainPayment.ErrAlreadySettled
	}
	return pay, nil
}

func settle(ctx context.Context, r uow.Repos, paymentID string, to domainPayment.Status) error {
	ok, err := r.Payments.Transition(ctx, paymentID, domainPayment.StatusPending, to)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if !ok {
		return domainPayment.ErrAlreadySettled
	}
	return nil
}

// loanTxErr maps the loan-lock miss of WithinLoanTx; callbacks translate
// their own lookups.
func loanTxErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

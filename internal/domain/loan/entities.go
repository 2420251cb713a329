package loan

import (
	"fmt"
	"time"

	"prestamos-backend/internal/domain/apperr"
	"prestamos-backend/internal/domain/payment"
	"prestamos-backend/pkg/money"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = fmt.Errorf("loan %w", apperr.ErrNotFound)
	ErrInvalidStatus = fmt.Errorf("unknown loan status: %w", apperr.ErrInvalidArgument)
	ErrInvalidDates  = fmt.Errorf("due date must not be before start date: %w", apperr.ErrInvalidArgument)
	ErrInvalidAmount = fmt.Errorf("loan amount must be greater than zero: %w", apperr.ErrInvalidArgument)
	ErrInvalidRate   = fmt.Errorf("interest rate must be between 0 and 999.99: %w", apperr.ErrInvalidArgument)
	ErrOverflow      = fmt.Errorf("ledger amount would exceed 99999999.99: %w", apperr.ErrInvalidArgument)
)

// DefaultInterestRate is a percentage.
var DefaultInterestRate = decimal.RequireFromString("10.00")

// MaxInterestRate fits numeric(5,2).
var MaxInterestRate = decimal.RequireFromString("999.99")

type Status string

const (
	StatusApproved  Status = "APPROVED"
	StatusDisbursed Status = "DISBURSED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusDefaulted Status = "DEFAULTED"
	StatusCanceled  Status = "CANCELED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusApproved, StatusDisbursed, StatusActive, StatusCompleted, StatusDefaulted, StatusCanceled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Table: loans
type Loan struct {
	ID           string          `gorm:"column:id;size:36;primaryKey" json:"id"`
	BorrowerID   string          `gorm:"column:borrower_id;size:36;not null;index:idx_loans_borrower" json:"borrower_id"`
	OwnerID      string          `gorm:"column:owner_id;size:64;not null;index:idx_loans_owner" json:"owner_id"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Surcharge    decimal.Decimal `gorm:"column:surcharge;type:decimal(10,2);not null" json:"surcharge"`
	Winnings     decimal.Decimal `gorm:"column:winnings;type:decimal(10,2);not null" json:"winnings"`
	Balance      decimal.Decimal `gorm:"column:balance;type:decimal(10,2);not null" json:"balance"`
	InterestRate decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	StartDate    time.Time       `gorm:"column:start_date;type:date;not null" json:"start_date"`
	DueDate      time.Time       `gorm:"column:due_date;type:date;not null" json:"due_date"`
	Status       Status          `gorm:"column:status;size:16;not null" json:"status"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Outstanding is the principal not yet repaid; never negative.
func (l *Loan) Outstanding() decimal.Decimal {
	rest := l.Amount.Sub(l.Balance)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// InterestDue is interestRate% of the outstanding principal.
func (l *Loan) InterestDue() decimal.Decimal {
	return money.Percent(l.InterestRate, l.Outstanding())
}

// AddSurcharge grows the outstanding surcharge when a surcharge charge is raised.
// The loan is left unchanged on ErrOverflow.
func (l *Loan) AddSurcharge(amount decimal.Decimal) error {
	next := l.Surcharge.Add(amount)
	if !money.Fits(next) {
		return ErrOverflow
	}
	l.Surcharge = next
	return nil
}

// ApplyPayment books a settled payment onto the ledger fields and completes
// the loan once the repaid balance reaches the principal. On error the loan
// is left unchanged.
func (l *Loan) ApplyPayment(t payment.Type, amount decimal.Decimal) error {
	balance, surcharge, winnings := l.Balance, l.Surcharge, l.Winnings
	switch t {
	case payment.TypePayment:
		balance = balance.Add(amount)
	case payment.TypeSurcharge:
		surcharge = surcharge.Sub(amount)
		winnings = winnings.Add(amount)
	case payment.TypeInterest:
		winnings = winnings.Add(amount)
	default:
		return payment.ErrInvalidType
	}
	if !money.Fits(balance) || !money.Fits(winnings) {
		return ErrOverflow
	}
	l.Balance, l.Surcharge, l.Winnings = balance, surcharge, winnings
	if l.Balance.GreaterThanOrEqual(l.Amount) {
		l.Status = StatusCompleted
	}
	return nil
}

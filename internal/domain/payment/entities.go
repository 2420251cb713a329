package payment

import (
	"fmt"
	"time"

	"prestamos-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = fmt.Errorf("payment %w", apperr.ErrNotFound)
	ErrInvalidType      = fmt.Errorf("unknown payment type: %w", apperr.ErrInvalidArgument)
	ErrAmountRequired   = fmt.Errorf("amount is required for this payment type: %w", apperr.ErrInvalidArgument)
	ErrAmountNotAllowed = fmt.Errorf("amount must not be supplied for interest payments: %w", apperr.ErrInvalidArgument)
	ErrAlreadySettled   = fmt.Errorf("payment is no longer pending: %w", apperr.ErrConflict)
)

type Type string

// INTREST is the stored spelling of the interest type.
const (
	TypePayment   Type = "PAYMENT"
	TypeInterest  Type = "INTREST"
	TypeSurcharge Type = "SURCHARGE"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypePayment, TypeInterest, TypeSurcharge:
		return t, nil
	}
	return "", ErrInvalidType
}

// RequiresAmount reports whether the caller must supply the amount.
// Interest amounts are always derived from the loan.
func (t Type) RequiresAmount() bool { return t == TypePayment || t == TypeSurcharge }

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusExpired   Status = "EXPIRED"
)

// CanTransition allows only PENDING -> COMPLETED and PENDING -> EXPIRED.
func (s Status) CanTransition(to Status) bool {
	return s == StatusPending && (to == StatusCompleted || to == StatusExpired)
}

// Table: payments
type Payment struct {
	ID          string          `gorm:"column:id;size:36;primaryKey" json:"id"`
	LoanID      string          `gorm:"column:loan_id;size:36;not null;index:idx_payments_loan" json:"loan_id"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Status      Status          `gorm:"column:status;size:16;not null" json:"status"`
	PaymentType Type            `gorm:"column:payment_type;size:16;not null" json:"payment_type"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null" json:"payment_date"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

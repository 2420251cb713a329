package mysql

import (
	"context"
	"time"

	loanDomain "prestamos-backend/internal/domain/loan"
	paymentDomain "prestamos-backend/internal/domain/payment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, ownerID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", loanID, ownerID).
		First(&out)
	return &out, res.Error
}

// GetByIDForUpdate takes a row lock on MySQL; SQLite has no row locks and
// the dialect drops the clause.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, ownerID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", loanID, ownerID).
		First(&out)
	return &out, res.Error
}

// loanPaymentRow is one row of loans LEFT JOIN payments.
type loanPaymentRow struct {
	loanDomain.Loan  `gorm:"embedded"`
	PaymentID        *string             `gorm:"column:payment_id"`
	PaymentAmount    decimal.NullDecimal `gorm:"column:payment_amount"`
	PaymentStatus    *string             `gorm:"column:payment_status"`
	PaymentType      *string             `gorm:"column:payment_payment_type"`
	PaymentDate      *time.Time          `gorm:"column:payment_payment_date"`
	PaymentCreatedAt *time.Time          `gorm:"column:payment_created_at"`
}

func (r *LoanRepository) GetWithPayments(ctx context.Context, ownerID, loanID string) (*loanDomain.Loan, []paymentDomain.Payment, error) {
	var rows []loanPaymentRow
	res := r.db.WithContext(ctx).
		Table("loans").
		Select(`loans.*,
			payments.id AS payment_id,
			payments.amount AS payment_amount,
			payments.status AS payment_status,
			payments.payment_type AS payment_payment_type,
			payments.payment_date AS payment_payment_date,
			payments.created_at AS payment_created_at`).
		Joins("LEFT JOIN payments ON payments.loan_id = loans.id").
		Where("loans.id = ? AND loans.owner_id = ?", loanID, ownerID).
		Order("payments.created_at ASC, payments.id ASC").
		Scan(&rows)
	if res.Error != nil {
		return nil, nil, res.Error
	}
	if len(rows) == 0 {
		return nil, nil, gorm.ErrRecordNotFound
	}

	l := rows[0].Loan
	payments := make([]paymentDomain.Payment, 0, len(rows))
	for _, row := range rows {
		// a loan without payments yields one row with all payment columns NULL
		if row.PaymentID == nil {
			continue
		}
		p := paymentDomain.Payment{
			ID:     *row.PaymentID,
			LoanID: l.ID,
			Amount: row.PaymentAmount.Decimal,
		}
		if row.PaymentStatus != nil {
			p.Status = paymentDomain.Status(*row.PaymentStatus)
		}
		if row.PaymentType != nil {
			p.PaymentType = paymentDomain.Type(*row.PaymentType)
		}
		if row.PaymentDate != nil {
			p.PaymentDate = *row.PaymentDate
		}
		if row.PaymentCreatedAt != nil {
			p.CreatedAt = *row.PaymentCreatedAt
		}
		payments = append(payments, p)
	}
	return &l, payments, nil
}

func (r *LoanRepository) ListByOwner(ctx context.Context, ownerID string) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByBorrowerIDs(ctx context.Context, borrowerIDs []string) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	if len(borrowerIDs) == 0 {
		return out, nil
	}
	res := r.db.WithContext(ctx).
		Where("borrower_id IN ?", borrowerIDs).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// SaveLedger never touches amount: the principal is immutable.
func (r *LoanRepository) SaveLedger(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"balance":    l.Balance,
			"surcharge":  l.Surcharge,
			"winnings":   l.Winnings,
			"status":     l.Status,
			"updated_at": time.Now().UTC(),
		}).Error
}

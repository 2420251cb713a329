package mysql

import (
	"context"

	paymentDomain "prestamos-backend/internal/domain/payment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, loanID, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("id = ? AND loan_id = ?", paymentID, loanID).
		First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, loanID, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND loan_id = ?", paymentID, loanID).
		First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]paymentDomain.Payment, error) {
	out := []paymentDomain.Payment{}
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// Transition is a compare-and-set on status, so two concurrent settlements
// of the same payment cannot both succeed.
func (r *PaymentRepository) Transition(ctx context.Context, paymentID string, from, to paymentDomain.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("id = ? AND status = ?", paymentID, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

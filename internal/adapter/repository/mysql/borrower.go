package mysql

import (
	"context"

	borrowerDomain "prestamos-backend/internal/domain/borrower"

	"gorm.io/gorm"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) GetByID(ctx context.Context, ownerID, borrowerID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", borrowerID, ownerID).
		First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) ListByOwner(ctx context.Context, ownerID string) ([]borrowerDomain.Borrower, error) {
	out := []borrowerDomain.Borrower{}
	res := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

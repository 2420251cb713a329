package mysql

import (
	"context"

	userDomain "prestamos-backend/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// CreateIfMissing leaves an existing row, including its role, untouched.
func (r *UserRepository) CreateIfMissing(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.User, error) {
	out := []userDomain.User{}
	res := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role userDomain.Role) error {
	return r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

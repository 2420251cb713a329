package usermock

import (
	"context"

	domain "prestamos-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn          func(ctx context.Context, u *domain.User) error
	CreateIfMissingFn func(ctx context.Context, u *domain.User) error
	GetByIDFn         func(ctx context.Context, userID string) (*domain.User, error)
	ListFn            func(ctx context.Context) ([]domain.User, error)
	UpdateRoleFn      func(ctx context.Context, userID string, role domain.Role) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) CreateIfMissing(ctx context.Context, u *domain.User) error {
	if m.CreateIfMissingFn != nil {
		return m.CreateIfMissingFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, userID, role)
	}
	return nil
}

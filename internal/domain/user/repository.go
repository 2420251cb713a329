package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	// CreateIfMissing inserts u unless a user with its id already exists.
	CreateIfMissing(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, userID string, role Role) error
}

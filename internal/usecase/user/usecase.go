package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	domain "prestamos-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Usecase struct {
	repo domain.Repository
	// ids already written by Register in this process
	seen sync.Map
}

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

// Register records p in the users table the first time it is seen, with the
// role it arrived with. Later role changes go through UpdateRole.
func (u *Usecase) Register(ctx context.Context, p domain.Principal) error {
	if _, ok := u.seen.Load(p.UserID); ok {
		return nil
	}
	if err := u.repo.CreateIfMissing(ctx, &domain.User{ID: p.UserID, Role: p.Role}); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	u.seen.Store(p.UserID, struct{}{})
	return nil
}

func (u *Usecase) List(ctx context.Context) ([]UserDTO, error) {
	us, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]UserDTO, 0, len(us))
	for _, x := range us {
		out = append(out, UserDTO{ID: x.ID, Name: x.Name, Email: x.Email, Role: string(x.Role)})
	}
	return out, nil
}

// UpdateRole is reserved to admins.
func (u *Usecase) UpdateRole(ctx context.Context, p domain.Principal, userID, role string) error {
	if !p.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	if _, err := u.repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := u.repo.UpdateRole(ctx, userID, r); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	log.Printf("user %s: role set to %s by %s", userID, r, p.UserID)
	return nil
}

package borrower

import (
	"fmt"
	"time"

	"prestamos-backend/internal/domain/apperr"
)

var (
	ErrNotFound     = fmt.Errorf("borrower %w", apperr.ErrNotFound)
	ErrNameRequired = fmt.Errorf("borrower name is required: %w", apperr.ErrInvalidArgument)
)

// Table: borrowers
type Borrower struct {
	ID        string    `gorm:"column:id;size:36;primaryKey" json:"id"`
	CreatedBy string    `gorm:"column:created_by;size:64;not null;index:idx_borrowers_created_by" json:"created_by"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Email     *string   `gorm:"column:email;type:text" json:"email,omitempty"`
	Phone     *string   `gorm:"column:phone;type:text" json:"phone,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Borrower) TableName() string { return "borrowers" }

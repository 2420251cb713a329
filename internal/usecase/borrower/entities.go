package borrower

import (
	"time"

	ucLoan "prestamos-backend/internal/usecase/loan"
)

type CreateBorrowerInput struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type BorrowerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// BorrowerWithLoansDTO.Loans is [] (never null) for a borrower without loans.
type BorrowerWithLoansDTO struct {
	BorrowerDTO
	Loans []ucLoan.LoanDTO `json:"loans"`
}

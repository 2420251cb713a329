package loan

import (
	"time"

	domain "prestamos-backend/internal/domain/loan"
	ucPayment "prestamos-backend/internal/usecase/payment"
	"prestamos-backend/pkg/money"
)

// DateLayout is the wire format of start and due dates.
const DateLayout = "2006-01-02"

type CreateLoanInput struct {
	BorrowerID   string  `json:"borrower_id"`
	Amount       string  `json:"amount"`
	InterestRate *string `json:"interest_rate,omitempty"`
	StartDate    string  `json:"start_date"`
	DueDate      string  `json:"due_date"`
	Status       *string `json:"status,omitempty"`
}

// GeneratePaymentInput.Amount is required for PAYMENT and SURCHARGE and
// must be absent for INTREST.
type GeneratePaymentInput struct {
	LoanID string
	Type   string
	Amount *string
}

type LoanDTO struct {
	ID           string    `json:"id"`
	BorrowerID   string    `json:"borrower_id"`
	Amount       string    `json:"amount"`
	Surcharge    string    `json:"surcharge"`
	Winnings     string    `json:"winnings"`
	Balance      string    `json:"balance"`
	InterestRate string    `json:"interest_rate"`
	StartDate    string    `json:"start_date"`
	DueDate      string    `json:"due_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoanDetailDTO struct {
	LoanDTO
	Payments []ucPayment.PaymentDTO `json:"payments"`
}

func ToDTO(l domain.Loan) LoanDTO {
	return LoanDTO{
		ID:           l.ID,
		BorrowerID:   l.BorrowerID,
		Amount:       money.Format(l.Amount),
		Surcharge:    money.Format(l.Surcharge),
		Winnings:     money.Format(l.Winnings),
		Balance:      money.Format(l.Balance),
		InterestRate: money.Format(l.InterestRate),
		StartDate:    l.StartDate.Format(DateLayout),
		DueDate:      l.DueDate.Format(DateLayout),
		Status:       string(l.Status),
		CreatedAt:    l.CreatedAt,
	}
}

func ToDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, ToDTO(l))
	}
	return out
}

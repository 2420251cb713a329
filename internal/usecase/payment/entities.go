package payment

import (
	"time"

	domain "prestamos-backend/internal/domain/payment"
	"prestamos-backend/pkg/money"
)

type PaymentDTO struct {
	ID          string    `json:"id"`
	LoanID      string    `json:"loan_id"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	PaymentType string    `json:"payment_type"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToDTO(p domain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          p.ID,
		LoanID:      p.LoanID,
		Amount:      money.Format(p.Amount),
		Status:      string(p.Status),
		PaymentType: string(p.PaymentType),
		PaymentDate: p.PaymentDate,
		CreatedAt:   p.CreatedAt,
	}
}

// ToDTOs never returns nil.
func ToDTOs(ps []domain.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToDTO(p))
	}
	return out
}

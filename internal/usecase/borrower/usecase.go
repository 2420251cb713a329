package borrower

import (
	"context"
	"fmt"
	"strings"

	domain "prestamos-backend/internal/domain/borrower"
	domainLoan "prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/user"
	ucLoan "prestamos-backend/internal/usecase/loan"
	"prestamos-backend/pkg/id"
)

type Usecase struct {
	borrowers domain.Repository
	loans     domainLoan.Repository
}

func NewUsecase(borrowers domain.Repository, loans domainLoan.Repository) *Usecase {
	return &Usecase{borrowers: borrowers, loans: loans}
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toDTO(b domain.Borrower) BorrowerDTO {
	return BorrowerDTO{ID: b.ID, Name: b.Name, Email: b.Email, Phone: b.Phone, CreatedAt: b.CreatedAt}
}

func (u *Usecase) Create(ctx context.Context, p user.Principal, in CreateBorrowerInput) (*BorrowerDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	b := &domain.Borrower{
		ID:        id.New(),
		CreatedBy: p.UserID,
		Name:      name,
		Email:     optional(in.Email),
		Phone:     optional(in.Phone),
	}
	if err := u.borrowers.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create borrower: %w", err)
	}
	dto := toDTO(*b)
	return &dto, nil
}

// ListWithLoans returns the caller's borrowers, each with its loans attached.
// Summaries over the loans are left to the presentation layer.
func (u *Usecase) ListWithLoans(ctx context.Context, p user.Principal) ([]BorrowerWithLoansDTO, error) {
	bs, err := u.borrowers.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list borrowers: %w", err)
	}

	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.ID)
	}
	loans, err := u.loans.ListByBorrowerIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	byBorrower := make(map[string][]ucLoan.LoanDTO, len(bs))
	for _, l := range loans {
		byBorrower[l.BorrowerID] = append(byBorrower[l.BorrowerID], ucLoan.ToDTO(l))
	}

	out := make([]BorrowerWithLoansDTO, 0, len(bs))
	for _, b := range bs {
		ls := byBorrower[b.ID]
		if ls == nil {
			ls = []ucLoan.LoanDTO{}
		}
		out = append(out, BorrowerWithLoansDTO{BorrowerDTO: toDTO(b), Loans: ls})
	}
	return out, nil
}

package http

import (
	"net/http"

	"prestamos-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID   string  `json:"borrower_id"   validate:"required,max=36"`
	Amount       string  `json:"amount"        validate:"required,money"`
	InterestRate *string `json:"interest_rate" validate:"omitempty,money"`
	// Accept canonical date `YYYY-MM-DD` (aligns with schema DATE)
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	DueDate   string  `json:"due_date"   validate:"required,datetime=2006-01-02"`
	Status    *string `json:"status"     validate:"omitempty,oneof=APPROVED DISBURSED ACTIVE COMPLETED DEFAULTED CANCELED"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	var req createLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), p, loan.CreateLoanInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetLoan returns the loan with its payment history.
func (h *LoanHandler) GetLoan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	ids, ok := params(c, "loan_id")
	if !ok {
		return missingParams(c, "loan_id")
	}
	dto, err := h.uc.FindByID(c.Request().Context(), p, ids[0])
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

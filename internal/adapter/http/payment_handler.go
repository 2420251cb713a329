package http

import (
	"context"
	"net/http"

	"prestamos-backend/internal/domain/user"
	"prestamos-backend/internal/usecase/loan"
	"prestamos-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

// PaymentHandler serves the payments of a loan. Mutations go through the
// loan usecase since they move the loan ledger.
type PaymentHandler struct {
	loans    *loan.Usecase
	payments *payment.Usecase
}

func NewPaymentHandler(loans *loan.Usecase, payments *payment.Usecase) *PaymentHandler {
	return &PaymentHandler{loans: loans, payments: payments}
}

type generatePaymentReq struct {
	Type   string  `json:"type"   validate:"required,oneof=PAYMENT INTREST SURCHARGE"`
	Amount *string `json:"amount" validate:"omitempty,money"`
}

func (h *PaymentHandler) GeneratePayment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	ids, ok := params(c, "loan_id")
	if !ok {
		return missingParams(c, "loan_id")
	}
	var req generatePaymentReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	in := loan.GeneratePaymentInput{LoanID: ids[0], Type: req.Type, Amount: req.Amount}
	if err := h.loans.GeneratePayment(c.Request().Context(), p, in); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	ids, ok := params(c, "loan_id")
	if !ok {
		return missingParams(c, "loan_id")
	}
	out, err := h.payments.ListByLoan(c.Request().Context(), p, ids[0])
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	ids, ok := params(c, "loan_id", "payment_id")
	if !ok {
		return missingParams(c, "loan_id", "payment_id")
	}
	dto, err := h.payments.Get(c.Request().Context(), p, ids[0], ids[1])
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) ApplyPayment(c echo.Context) error {
	return h.settle(c, h.loans.ApplyPayment)
}

func (h *PaymentHandler) ExpirePayment(c echo.Context) error {
	return h.settle(c, h.loans.ExpirePayment)
}

func (h *PaymentHandler) settle(c echo.Context, op func(ctx context.Context, p user.Principal, loanID, paymentID string) error) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err)
	}
	ids, ok := params(c, "loan_id", "payment_id")
	if !ok {
		return missingParams(c, "loan_id", "payment_id")
	}
	if err := op(c.Request().Context(), p, ids[0], ids[1]); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

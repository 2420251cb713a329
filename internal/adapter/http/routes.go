package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health    *Handler
	Borrowers *BorrowerHandler
	Loans     *LoanHandler
	Payments  *PaymentHandler
	Users     *UserHandler
}

// Register mounts /health on e and the ledger API on e.Group("/api", mw...).
func (h Handlers) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api", mw...)
	api.POST("/borrowers", h.Borrowers.CreateBorrower)
	api.GET("/borrowers", h.Borrowers.ListBorrowers)

	api.POST("/loans", h.Loans.CreateLoan)
	api.GET("/loans", h.Loans.ListLoans)
	api.GET("/loans/:loan_id", h.Loans.GetLoan)

	api.POST("/loans/:loan_id/payments", h.Payments.GeneratePayment)
	api.GET("/loans/:loan_id/payments", h.Payments.ListPayments)
	api.GET("/loans/:loan_id/payments/:payment_id", h.Payments.GetPayment)
	api.POST("/loans/:loan_id/payments/:payment_id/apply", h.Payments.ApplyPayment)
	api.POST("/loans/:loan_id/payments/:payment_id/expire", h.Payments.ExpirePayment)

	api.GET("/users", h.Users.ListUsers)
	api.PUT("/users/:user_id/role", h.Users.UpdateRole)
}

package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "prestamos-backend/internal/domain/loan"
	paymentDomain "prestamos-backend/internal/domain/payment"
	"prestamos-backend/internal/domain/uow"
	"prestamos-backend/internal/testutil/sqlitedb"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	l := makeLoan("owner-1", "b-1")
	p := makePayment(l.ID, paymentDomain.TypePayment, "25.00", time.Now().UTC())
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Payments.Create(ctx, p)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	repos := guow.Repos()
	if _, err := repos.Loans.GetByID(ctx, "owner-1", l.ID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	if _, err := repos.Payments.GetByID(ctx, l.ID, p.ID); err != nil {
		t.Fatalf("payment not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	sentinel := errors.New("boom")
	l := makeLoan("owner-1", "b-1")
	p := makePayment(l.ID, paymentDomain.TypePayment, "25.00", time.Now().UTC())

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}

	repos := guow.Repos()
	if _, err := repos.Loans.GetByID(ctx, "owner-1", l.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
	if _, err := repos.Payments.GetByID(ctx, l.ID, p.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected payment not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	seed := makeLoan("owner-1", "b-1")
	if err := NewLoanRepository(db).Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	err := guow.WithinLoanTx(ctx, "owner-1", seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.ID != seed.ID {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		if err := l.AddSurcharge(dec("15.00")); err != nil {
			return err
		}
		return r.Loans.SaveLedger(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := NewLoanRepository(db).GetByID(ctx, "owner-1", seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Surcharge.Equal(dec("15")) {
		t.Fatalf("surcharge = %s, want 15", got.Surcharge)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	seed := makeLoan("owner-1", "b-1")
	if err := NewLoanRepository(db).Create(ctx, seed); err != nil {
		t.Fatal(err)
	}

	sentinel := errors.New("stop")
	_ = guow.WithinLoanTx(ctx, "owner-1", seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := l.AddSurcharge(dec("15.00")); err != nil {
			return err
		}
		if err := r.Loans.SaveLedger(ctx, l); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := NewLoanRepository(db).GetByID(ctx, "owner-1", seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Surcharge.IsZero() {
		t.Fatalf("surcharge = %s after rollback, want 0", got.Surcharge)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(context.Background(), "owner-1", "nope", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

package http

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"prestamos-backend/internal/domain/apperr"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestMoneyValidation(t *testing.T) {
	type P struct {
		Amount string `json:"amount" validate:"money"`
	}
	cv := NewValidator()

	for _, v := range []string{"0", "10", "10.5", "1234.56", " 7.00 "} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected money OK for %q, got %v", v, err)
		}
	}
	for _, v := range []string{"", "abc", "-1", "1.234", "1e3x", "1e3", "100000000"} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected money error for %q", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "amount", "at most 2 decimal places") {
			t.Fatalf("expected money message for %q, got %+v", v, fe)
		}
	}
}

func TestMoneyValidation_OptionalPointer(t *testing.T) {
	type P struct {
		Amount *string `json:"amount" validate:"omitempty,money"`
	}
	cv := NewValidator()
	if err := cv.Validate(P{}); err != nil {
		t.Fatalf("nil amount must pass: %v", err)
	}
	bad := "1.001"
	if err := cv.Validate(P{Amount: &bad}); err == nil {
		t.Fatal("expected error for 1.001")
	}
}

func TestRequiredAndTagMapping(t *testing.T) {
	type P struct {
		Name   string `json:"name"   validate:"required"`
		Date   string `json:"date"   validate:"datetime=2006-01-02"`
		Kind   string `json:"kind"   validate:"oneof=A B"`
		Email  string `json:"email"  validate:"email"`
		Short  string `json:"short"  validate:"max=2"`
		Min    int    `json:"min"    validate:"gte=10"`
		Max    int    `json:"max"    validate:"lte=5"`
		NoJSON string `validate:"required"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Date: "2024/01/01", Kind: "C", Email: "x", Short: "abc", Min: 9, Max: 6})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	for field, msg := range map[string]string{
		"name":   "is required",
		"date":   "2006-01-02",
		"kind":   "one of: A B",
		"email":  "valid email",
		"short":  "at most 2 characters",
		"min":    "greater than or equal to 10",
		"max":    "less than or equal to 5",
		"NoJSON": "is required",
	} {
		if !containsFieldMsg(fe, field, msg) {
			t.Fatalf("missing %q for %s: %+v", msg, field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[error]int{
		fmt.Errorf("loan %w", apperr.ErrNotFound):           404,
		fmt.Errorf("bad: %w", apperr.ErrInvalidArgument):    400,
		fmt.Errorf("settled: %w", apperr.ErrConflict):        409,
		fmt.Errorf("admin: %w", apperr.ErrPermissionDenied): 403,
		errors.New("db down"):                                500,
	}
	for err, want := range tests {
		if got := statusFor(apperr.KindOf(err)); got != want {
			t.Errorf("statusFor(%v) = %d, want %d", err, got, want)
		}
	}
}

package errors

import (
	"testing"
)

func TestFieldNilError(t *testing.T) {
	if err := Field("Name", nil, "no issue"); err != nil {
		t.Fatalf("a nil error must not create a field error: %+v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Amount", ErrAmount, "must be positive"),
		Field("Expiry", ErrExpired, ""),
		Field("Amount", ErrEmpty, ""),
	)

	if errs := FieldErrors(err, "Amount"); len(errs) != 2 {
		t.Fatalf("want 2 errors for Amount, got %d: %v", len(errs), errs)
	}
	if errs := FieldErrors(err, "Expiry"); len(errs) != 1 {
		t.Fatalf("want 1 error for Expiry, got %d: %v", len(errs), errs)
	}
	if errs := FieldErrors(err, "Period"); len(errs) != 0 {
		t.Fatalf("want no errors for Period, got %d: %v", len(errs), errs)
	}
}

func TestAppendFlattens(t *testing.T) {
	err := Append(
		nil,
		Append(ErrEmpty, ErrState),
		nil,
		ErrDuplicate,
	)
	m, ok := err.(multiError)
	if !ok {
		t.Fatalf("want a multiError, got %T", err)
	}
	if len(m) != 3 {
		t.Fatalf("want 3 collected errors, got %d", len(m))
	}
}

func TestAppendAllNil(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestAppendSingleIsUnwrapped(t *testing.T) {
	err := Append(nil, ErrEmpty)
	if err != ErrEmpty {
		t.Fatalf("a single error must not be wrapped: %+v", err)
	}
}

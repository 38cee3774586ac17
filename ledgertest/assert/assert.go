// Package assert holds minimal assert helpers for tests that do not
// want a full matcher library.
package assert

import (
	"reflect"
	"testing"
)

// Nil fails the test if given value is not nil.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	if value != nil && !reflect.ValueOf(value).IsNil() {
		t.Fatalf("want a nil value, got %#v", value)
	}
}

// Equal fails the test if the two values are not deeply equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant: %#v\n got: %#v", want, got)
	}
}

// IsErr fails the test unless got matches the wanted error class.
func IsErr(t testing.TB, want interface{ Is(error) bool }, got error) {
	t.Helper()
	if !want.Is(got) {
		t.Fatalf("unexpected error: %+v", got)
	}
}

// Panics fails the test unless running fn panics.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}

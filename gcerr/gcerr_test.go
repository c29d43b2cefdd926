package gcerr

import (
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	e := New(UnknownType, "no such type %q", "Foo")
	if got, want := e.Error(), `gocodec: unknown type: no such type "Foo"`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	e.Location = "line 3"
	if got, want := e.Error(), `gocodec: unknown type at line 3: no such type "Foo"`; got != want {
		t.Fatalf("Error() with location = %q, want %q", got, want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(MalformedInput, "offset 4", cause)

	if !errors.Is(wrapped, cause) {
		t.Fatalf("errors.Is(wrapped, cause) = false, want true")
	}

	var ce *Error
	if !errors.As(wrapped, &ce) {
		t.Fatalf("errors.As failed to find *Error")
	}
	if ce.Category != MalformedInput {
		t.Fatalf("Category = %v, want MalformedInput", ce.Category)
	}
	if ce.Location != "offset 4" {
		t.Fatalf("Location = %q, want %q", ce.Location, "offset 4")
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if err := Wrap(MalformedInput, "x", nil); err != nil {
		t.Fatalf("Wrap(nil) = %v, want nil", err)
	}
}

func TestWrapAlreadyGcerrKeepsCategoryFillsLocation(t *testing.T) {
	inner := New(UnknownEnumConstant, "bad constant")
	wrapped := Wrap(MalformedInput, "loc-1", inner)

	ce, ok := wrapped.(*Error)
	if !ok {
		t.Fatalf("Wrap did not return *Error: %T", wrapped)
	}
	if ce.Category != UnknownEnumConstant {
		t.Fatalf("Category = %v, want the original UnknownEnumConstant (Wrap must not override)", ce.Category)
	}
	if ce.Location != "loc-1" {
		t.Fatalf("Location = %q, want backfilled %q", ce.Location, "loc-1")
	}

	// Location is only backfilled when empty; a second Wrap must not clobber it.
	again := Wrap(MalformedInput, "loc-2", wrapped)
	ce2 := again.(*Error)
	if ce2.Location != "loc-1" {
		t.Fatalf("Location = %q after re-wrap, want unchanged %q", ce2.Location, "loc-1")
	}
}

func TestIsComparesCategory(t *testing.T) {
	a := New(UnknownType, "a")
	b := New(UnknownType, "b")
	c := New(MalformedInput, "c")

	if !errors.Is(a, b) {
		t.Fatalf("errors.Is(a, b) = false, want true (same category)")
	}
	if errors.Is(a, c) {
		t.Fatalf("errors.Is(a, c) = true, want false (different category)")
	}
}

func TestCategoryOf(t *testing.T) {
	e := New(StructuralMismatch, "bad")
	cat, ok := CategoryOf(e)
	if !ok || cat != StructuralMismatch {
		t.Fatalf("CategoryOf(e) = (%v, %v), want (StructuralMismatch, true)", cat, ok)
	}

	plain := errors.New("plain")
	if _, ok := CategoryOf(plain); ok {
		t.Fatalf("CategoryOf(plain error) reported ok=true, want false")
	}
}

func TestCategoryStrings(t *testing.T) {
	cases := map[Category]string{
		Other:               "error",
		MalformedInput:      "malformed input",
		UnknownType:         "unknown type",
		UnknownEnumConstant: "unknown enum constant",
		MissingConstructor:  "missing constructor",
		MalformedScalar:     "malformed scalar",
		StructuralMismatch:  "structural mismatch",
	}
	for cat, want := range cases {
		if got := cat.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, want)
		}
	}
}

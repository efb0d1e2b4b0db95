package render

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindDeserialization, "bad json", nil), errorslib.CategoryValidation, "deserialization"},
		{NewError(KindInputShape, "not a dict", nil), errorslib.CategoryValidation, "input_shape"},
		{NewError(KindCompilation, "unknown variable", nil), errorslib.CategoryValidation, "compilation"},
		{NewError(KindExport, "bad font", nil), errorslib.CategoryInternal, "export"},
		{context.Canceled, errorslib.CategoryOperation, "canceled"},
		{context.DeadlineExceeded, errorslib.CategoryOperation, "canceled"},
		{errors.New("boom"), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}

	if AsGoError(nil) != nil {
		t.Fatalf("expected nil mapping for nil error")
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewError(KindDeserialization, "invalid render options", cause)
	if got := err.Error(); got != "invalid render options: unexpected end of JSON input" {
		t.Fatalf("unexpected message %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected error to unwrap to cause")
	}
	if got := NewError(KindCompilation, "", cause).Error(); got != cause.Error() {
		t.Fatalf("expected bare cause message, got %q", got)
	}

	wrapped := fmt.Errorf("outer: %w", NewError(KindExport, "x", nil))
	if KindFromError(wrapped) != KindExport {
		t.Fatalf("expected export kind through wrapping")
	}
	if KindFromError(nil) != "" {
		t.Fatalf("expected empty kind for nil error")
	}
}

package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jacentio/lattice/store"
)

// --- Predicate Tests ---

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"positive", 1, false},
		{"large", 99999, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"wrong type", "1", true},
	}

	check := store.PositiveInt()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("PositiveInt(%v): expected error=%v, got %v", tt.value, tt.wantErr, err)
			}
		})
	}
}

func TestNonBlank(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"text", "hello", false},
		{"padded", "  hello  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"wrong type", 7, true},
	}

	check := store.NonBlank()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NonBlank(%q): expected error=%v, got %v", tt.value, tt.wantErr, err)
			}
		})
	}
}

func TestContains(t *testing.T) {
	check := store.Contains("@")
	if err := check("a@example.com"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
	if err := check("aexample.com"); err == nil {
		t.Error("expected failure for string without '@'")
	}
}

func TestHasAnyPrefix(t *testing.T) {
	check := store.HasAnyPrefix("http://", "https://")

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"http://a.com/x.jpg", false},
		{"https://a.com/x.jpg", false},
		{"ftp://a.com/x.jpg", true},
		{"no-scheme", true},
	}
	for _, tt := range tests {
		err := check(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("HasAnyPrefix(%q): expected error=%v, got %v", tt.value, tt.wantErr, err)
		}
	}
}

func TestHasAnySuffix(t *testing.T) {
	check := store.HasAnySuffix(".png")
	if err := check("http://a.com/cat.PNG"); err != nil {
		t.Errorf("expected case-insensitive match, got %v", err)
	}
	if err := check("http://a.com/cat.jpg"); err == nil {
		t.Error("expected failure for .jpg")
	}
}

func TestNonZeroTime(t *testing.T) {
	check := store.NonZeroTime()
	if err := check(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
	if err := check(time.Time{}); err == nil {
		t.Error("expected failure for zero time")
	}
}

func TestAll(t *testing.T) {
	check := store.All(store.NonBlank(), store.Contains("@"))
	if err := check("a@b"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
	if err := check(""); err == nil {
		t.Error("expected first predicate to fail")
	}
	if err := check("ab"); err == nil {
		t.Error("expected second predicate to fail")
	}
}

// --- Schema.Validate Tests ---

func TestSchema_Validate_FirstFailureWins(t *testing.T) {
	schema := store.Schema{Kind: "parent", Rules: []store.Rule{
		{Field: "id", Get: func(e store.Entity) any { return e.(*Parent).ID }, Check: store.PositiveInt()},
		{Field: "name", Get: func(e store.Entity) any { return e.(*Parent).Name }, Check: store.NonBlank()},
	}}

	err := schema.Validate(&Parent{ID: 0, Name: ""})

	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	// Rules run in declaration order.
	if verr.Field != "id" {
		t.Errorf("expected first failing field 'id', got %q", verr.Field)
	}
	if verr.Kind != "parent" {
		t.Errorf("expected kind 'parent', got %q", verr.Kind)
	}
}

func TestSchema_Validate_Passes(t *testing.T) {
	schema := store.Schema{Kind: "parent", Rules: []store.Rule{
		{Field: "id", Get: func(e store.Entity) any { return e.(*Parent).ID }, Check: store.PositiveInt()},
	}}

	if err := schema.Validate(&Parent{ID: 1}); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
}

func TestSchema_Validate_NoRules(t *testing.T) {
	schema := store.Schema{Kind: "parent"}

	if err := schema.Validate(&Parent{}); err != nil {
		t.Errorf("expected empty schema to pass anything, got %v", err)
	}
}

func TestValidationError_UnwrapsToErrValidation(t *testing.T) {
	err := &store.ValidationError{Kind: "user", Field: "email", Reason: "must contain \"@\""}

	if !errors.Is(err, store.ErrValidation) {
		t.Error("expected ValidationError to unwrap to ErrValidation")
	}
	want := `user: invalid field "email": must contain "@"`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

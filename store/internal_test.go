package store

import (
	"testing"
	"time"
)

// --- removeRef Tests ---

func TestRemoveRef_First(t *testing.T) {
	result := removeRef([]string{"a", "b", "c"}, "a")
	if len(result) != 2 || result[0] != "b" || result[1] != "c" {
		t.Errorf("expected [b c], got %v", result)
	}
}

func TestRemoveRef_Middle(t *testing.T) {
	result := removeRef([]string{"a", "b", "c"}, "b")
	if len(result) != 2 || result[0] != "a" || result[1] != "c" {
		t.Errorf("expected [a c], got %v", result)
	}
}

func TestRemoveRef_Missing(t *testing.T) {
	result := removeRef([]string{"a", "b"}, "z")
	if len(result) != 2 {
		t.Errorf("expected slice unchanged, got %v", result)
	}
}

func TestRemoveRef_Empty(t *testing.T) {
	result := removeRef(nil, "a")
	if len(result) != 0 {
		t.Errorf("expected empty result, got %v", result)
	}
}

// --- ownerRefOf Tests ---

type rootRecord struct{}

func (rootRecord) EntityKind() string { return "root" }
func (rootRecord) EntityRef() string  { return "root#1" }

type ownedRecord struct{ owner string }

func (o ownedRecord) EntityKind() string { return "owned" }
func (o ownedRecord) EntityRef() string  { return "owned#1" }
func (o ownedRecord) OwnerRef() string   { return o.owner }

func TestOwnerRefOf_Root(t *testing.T) {
	if got := ownerRefOf(rootRecord{}); got != "" {
		t.Errorf("expected empty owner for root entity, got %q", got)
	}
}

func TestOwnerRefOf_Owned(t *testing.T) {
	if got := ownerRefOf(ownedRecord{owner: "root#1"}); got != "root#1" {
		t.Errorf("expected 'root#1', got %q", got)
	}
}

func TestOwnerRefOf_OwnedEmpty(t *testing.T) {
	// An Owned entity may report no owner; treated as a root.
	if got := ownerRefOf(ownedRecord{}); got != "" {
		t.Errorf("expected empty owner, got %q", got)
	}
}

// --- Config Tests ---

func TestConfig_ValidateDefaults(t *testing.T) {
	var cfg Config
	cfg.validate()

	if cfg.SeqStart != 1 {
		t.Errorf("expected SeqStart 1, got %d", cfg.SeqStart)
	}
	if cfg.Clock == nil {
		t.Fatal("expected Clock default")
	}
	if cfg.Clock().IsZero() {
		t.Error("expected default clock to return the current time")
	}
}

func TestConfig_ValidateBounds(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected int
	}{
		{"negative", Config{SeqStart: -5}, 1},
		{"zero", Config{SeqStart: 0}, 1},
		{"kept", Config{SeqStart: 50}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.validate()
			if tt.cfg.SeqStart != tt.expected {
				t.Errorf("expected SeqStart %d, got %d", tt.expected, tt.cfg.SeqStart)
			}
		})
	}
}

func TestConfig_ValidateKeepsClock(t *testing.T) {
	at := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{Clock: func() time.Time { return at }}
	cfg.validate()

	if !cfg.Clock().Equal(at) {
		t.Error("expected injected clock to be kept")
	}
}

package store

import (
	"fmt"
	"strings"
	"time"
)

// Predicate checks a single field value.
type Predicate func(v any) error

// Rule binds a named field to an accessor and a predicate.
type Rule struct {
	// Field is the payload field name reported on failure.
	Field string

	// Get extracts the field value from the entity.
	Get func(Entity) any

	// Check validates the extracted value.
	Check Predicate
}

// Schema is the declarative validation schema for one entity kind.
// Rules are evaluated in order; the first failure is reported as a
// *ValidationError naming the field. Validation never has side effects.
type Schema struct {
	Kind  string
	Rules []Rule
}

// Validate checks an entity against the schema.
func (s Schema) Validate(e Entity) error {
	for _, r := range s.Rules {
		if err := r.Check(r.Get(e)); err != nil {
			return &ValidationError{Kind: s.Kind, Field: r.Field, Reason: err.Error()}
		}
	}
	return nil
}

// --- Predicate helpers ---

// PositiveInt requires an int value greater than zero.
func PositiveInt() Predicate {
	return func(v any) error {
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("expected int, got %T", v)
		}
		if n <= 0 {
			return fmt.Errorf("must be a positive identifier")
		}
		return nil
	}
}

// NonBlank requires a string that is non-empty after trimming.
func NonBlank() Predicate {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("must not be blank")
		}
		return nil
	}
}

// Contains requires a string containing sub.
func Contains(sub string) Predicate {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		if !strings.Contains(s, sub) {
			return fmt.Errorf("must contain %q", sub)
		}
		return nil
	}
}

// HasAnyPrefix requires a string starting with one of the prefixes.
func HasAnyPrefix(prefixes ...string) Predicate {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				return nil
			}
		}
		return fmt.Errorf("must start with one of %s", strings.Join(prefixes, ", "))
	}
}

// HasAnySuffix requires a string ending with one of the suffixes
// (case-insensitive).
func HasAnySuffix(suffixes ...string) Predicate {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		lower := strings.ToLower(s)
		for _, suf := range suffixes {
			if strings.HasSuffix(lower, strings.ToLower(suf)) {
				return nil
			}
		}
		return fmt.Errorf("must end with one of %s", strings.Join(suffixes, ", "))
	}
}

// NonZeroTime requires a non-zero time.Time.
func NonZeroTime() Predicate {
	return func(v any) error {
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		if t.IsZero() {
			return fmt.Errorf("must be set")
		}
		return nil
	}
}

// All combines predicates; every one must pass.
func All(checks ...Predicate) Predicate {
	return func(v any) error {
		for _, c := range checks {
			if err := c(v); err != nil {
				return err
			}
		}
		return nil
	}
}

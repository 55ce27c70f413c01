package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a payload fails schema validation.
	// Failures carry field detail via *ValidationError.
	ErrValidation = errors.New("lattice: invalid payload")

	// ErrParentNotFound is returned when the owning entity doesn't exist.
	ErrParentNotFound = errors.New("lattice: owner entity not found")

	// ErrNotFound is returned when an entity doesn't exist.
	ErrNotFound = errors.New("lattice: entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity
	// whose id is already taken within its scope.
	ErrAlreadyExists = errors.New("lattice: entity already exists")

	// ErrHasChildren is returned when attempting to delete an entity with
	// children while orphan protection is enabled.
	ErrHasChildren = errors.New("lattice: entity has children")

	// ErrConcurrentModification is returned when optimistic lock fails
	// (version mismatch).
	ErrConcurrentModification = errors.New("lattice: entity was modified concurrently")

	// ErrDuplicateValue is returned when a unique field constraint is
	// violated.
	ErrDuplicateValue = errors.New("lattice: duplicate value for unique field")

	// ErrInvalidTargetKind is returned when a polymorphic target name is
	// not one of the accepted kinds.
	ErrInvalidTargetKind = errors.New("lattice: invalid target kind")

	// ErrInvalidPassword is returned by login when the credentials don't
	// match the stored record.
	ErrInvalidPassword = errors.New("lattice: invalid password")

	// ErrKindNotRegistered is returned when an operation names an entity
	// kind the registry has no schema for.
	ErrKindNotRegistered = errors.New("lattice: entity kind not registered")

	// ErrRelationshipNotRegistered is returned when an owned entity's
	// kind is not a registered child kind of its owner's kind.
	ErrRelationshipNotRegistered = errors.New("lattice: relationship not registered")
)

// ValidationError reports the first schema rule a payload failed.
// It unwraps to ErrValidation.
type ValidationError struct {
	Kind   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid field %q: %s", e.Kind, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

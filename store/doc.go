// Package store provides an in-memory data access layer with hierarchical entity support.
//
// Lattice is designed for applications that need to model hierarchical
// relationships in memory while maintaining referential integrity,
// unique constraints, and schema-driven payload validation.
//
// # Key Features
//
//   - Owner validation on child creation (atomic)
//   - Orphan protection (prevent deleting parents with children)
//   - Opt-in cascading deletes (children are orphaned by default)
//   - Unique field constraints within an entity kind
//   - Scoped identifiers (ids unique only within a parent record)
//   - Declarative per-kind validation schemas with field-level errors
//   - Optimistic locking with version field
//   - Insertion-order listing and predicate queries
//   - Synchronous change feed for journaling and logging
//
// # Entity Interfaces
//
// All entities must implement the [Entity] interface:
//
//	type Entity interface {
//	    EntityKind() string
//	    EntityRef() string
//	}
//
// Entities that belong to a parent implement [Owned]; entities with
// extra references that must resolve at creation time implement
// [Referencer]; entities with unique constraints implement
// [UniqueFielder].
//
// # Uniqueness
//
// Unique constraints are enforced through an incrementally maintained
// index rather than a scan over the collection, so inserts stay O(1)
// per constrained field. First write wins; a later conflicting write
// fails with [ErrDuplicateValue] and leaves the first record untouched.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - entity doesn't exist
//   - [ErrParentNotFound] - owner validation failed
//   - [ErrAlreadyExists] - id already taken within its scope
//   - [ErrHasChildren] - cannot delete entity with children
//   - [ErrConcurrentModification] - optimistic lock failed
//   - [ErrDuplicateValue] - unique constraint violated
//   - [ErrValidation] - payload failed schema validation
//
// Validation failures carry the failing field via [ValidationError].
package store

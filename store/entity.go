// Package store provides an in-memory data access layer with hierarchical entity support.
package store

import "time"

// Entity is the base interface for all storable types.
type Entity interface {
	// EntityKind returns the entity kind name (e.g. "user").
	EntityKind() string

	// EntityRef returns the type-qualified reference (e.g. "user#1").
	// References are unique across the whole store; records whose id is
	// only unique within a parent scope embed the parent reference
	// (e.g. "photo#3/comment#5").
	EntityRef() string
}

// Owned is implemented by entities that belong to a parent entity.
type Owned interface {
	// OwnerRef returns the owner's entity reference. The owner must
	// exist at creation time.
	OwnerRef() string
}

// Referencer is implemented by entities that hold additional references
// beyond their owner, all of which must resolve at creation time
// (e.g. a comment's author).
type Referencer interface {
	// EntityRefs returns the referenced entity references.
	EntityRefs() []string
}

// UniqueFielder is implemented by entities with unique field constraints.
type UniqueFielder interface {
	// UniqueFields returns field name to value mappings for fields
	// that must be unique across the entity kind.
	UniqueFields() map[string]string
}

// Meta holds store-managed metadata for a record.
type Meta struct {
	// Version is the optimistic lock version. Starts at 1.
	Version int64

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time

	// UpdatedAt is the last update timestamp.
	UpdatedAt time.Time

	// EntityRef is the type-qualified entity reference.
	EntityRef string

	// OwnerRef is the owner's entity reference (empty for root entities).
	OwnerRef string
}

// Op identifies a mutation kind in the change feed.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes a committed mutation. Events are emitted synchronously
// after the store state has changed.
type Event struct {
	Op   Op
	Kind string
	Ref  string
	At   time.Time
}

// Sink receives change feed events.
type Sink interface {
	Record(Event)
}

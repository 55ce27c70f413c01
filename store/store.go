package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/jacentio/lattice/internal/refkey"
)

// Store provides in-memory keyed collections with hierarchical entity
// support. All state is process-lifetime only; nothing persists.
//
// A single RWMutex guards every operation, so each mutation is atomic
// with respect to concurrent callers. No operation suspends; reads and
// writes return synchronously.
type Store struct {
	mu       sync.RWMutex
	config   Config
	registry *Registry

	records  map[string]Entity   // ref -> record
	meta     map[string]*Meta    // ref -> managed metadata
	order    map[string][]string // kind -> refs in insertion order
	unique   map[string]string   // unique index key -> claiming ref
	children map[string][]string // owner ref -> child refs in insertion order
	seq      map[string]int      // kind -> next sequence value

	sinks []Sink
}

// New creates a new Store instance.
func New(config Config) *Store {
	config.validate()
	s := &Store{config: config}
	s.reset()
	return s
}

// NewWithRegistry creates a new Store instance with a schema and
// relationship registry. With a registry set, every Create and Update
// is validated against the kind's schema first.
func NewWithRegistry(config Config, registry *Registry) *Store {
	s := New(config)
	s.registry = registry
	return s
}

// SetRegistry sets the schema and relationship registry.
func (s *Store) SetRegistry(registry *Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = registry
}

// Registry returns the registry, or nil if not set.
func (s *Store) Registry() *Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Watch registers a change feed sink. Sinks receive events
// synchronously after each committed mutation, outside the store lock.
func (s *Store) Watch(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// Now returns the current time from the configured clock.
func (s *Store) Now() time.Time {
	return s.config.Clock()
}

// NextID returns the next value of the kind's id sequence.
// Sequences are independent from caller-assigned ids and restart at
// Config.SeqStart after Reset.
func (s *Store) NextID(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.seq[kind]
	if !ok {
		id = s.config.SeqStart
	}
	s.seq[kind] = id + 1
	return id
}

// Create creates a new entity with owner validation and unique
// constraints. The operation has no partial effects: on any failure the
// store is left unchanged.
func (s *Store) Create(e Entity) error {
	if err := s.validateEntity(e); err != nil {
		return err
	}

	s.mu.Lock()
	events, err := s.createLocked(e)
	s.mu.Unlock()

	s.emit(events)
	return err
}

func (s *Store) createLocked(e Entity) ([]Event, error) {
	ref := e.EntityRef()
	kind := e.EntityKind()

	// 1. Owner must exist and accept children of this kind.
	ownerRef := ownerRefOf(e)
	if err := s.checkOwnerLocked(ownerRef, kind); err != nil {
		return nil, err
	}

	// 2. Every additional reference must resolve.
	if rf, ok := e.(Referencer); ok {
		for _, r := range rf.EntityRefs() {
			if _, ok := s.records[r]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, r)
			}
		}
	}

	// 3. Id uniqueness within the record's scope.
	if _, ok := s.records[ref]; ok {
		return nil, ErrAlreadyExists
	}

	// 4. Unique field constraints across the kind.
	var uniqueKeys []string
	if uf, ok := e.(UniqueFielder); ok {
		for field, value := range uf.UniqueFields() {
			key := refkey.Unique(kind, field, value)
			if _, claimed := s.unique[key]; claimed {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateValue, field)
			}
			uniqueKeys = append(uniqueKeys, key)
		}
	}

	// 5. Commit.
	now := s.config.Clock()
	s.records[ref] = e
	s.meta[ref] = &Meta{
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
		EntityRef: ref,
		OwnerRef:  ownerRef,
	}
	s.order[kind] = append(s.order[kind], ref)
	for _, key := range uniqueKeys {
		s.unique[key] = ref
	}
	if ownerRef != "" {
		s.children[ownerRef] = append(s.children[ownerRef], ref)
	}

	return []Event{{Op: OpCreate, Kind: kind, Ref: ref, At: now}}, nil
}

// Get retrieves an entity by reference, returning ErrNotFound when
// absent. The returned value is the stored record itself; callers that
// mutate it must go through Update to commit the change.
func (s *Store) Get(ref string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[ref]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Info returns the store-managed metadata for a record.
func (s *Store) Info(ref string) (Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meta[ref]
	if !ok {
		return Meta{}, ErrNotFound
	}
	return *m, nil
}

// List returns all records of a kind in insertion order.
// The slice is freshly allocated on every call.
func (s *Store) List(kind string) []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := s.order[kind]
	out := make([]Entity, 0, len(refs))
	for _, ref := range refs {
		out = append(out, s.records[ref])
	}
	return out
}

// Query returns the records of a kind matching the predicate, in
// insertion order. The slice is freshly allocated on every call.
func (s *Store) Query(kind string, match func(Entity) bool) []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Entity{}
	for _, ref := range s.order[kind] {
		if e := s.records[ref]; match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the children of an owner, filtered by kind, in
// insertion order. An empty childKind returns children of every kind.
func (s *Store) Children(ownerRef, childKind string) []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Entity{}
	for _, ref := range s.children[ownerRef] {
		if childKind != "" && refkey.Kind(ref) != childKind {
			continue
		}
		out = append(out, s.records[ref])
	}
	return out
}

// Update replaces a record with optimistic locking. The entity must
// already exist and expectedVersion must match the stored version. If
// unique fields changed, old constraints are released and new ones
// claimed atomically; a collision fails with ErrDuplicateValue and
// leaves the store unchanged.
func (s *Store) Update(e Entity, expectedVersion int64) error {
	if err := s.validateEntity(e); err != nil {
		return err
	}

	s.mu.Lock()
	events, err := s.updateLocked(e, expectedVersion)
	s.mu.Unlock()

	s.emit(events)
	return err
}

func (s *Store) updateLocked(e Entity, expectedVersion int64) ([]Event, error) {
	ref := e.EntityRef()
	kind := e.EntityKind()

	current, ok := s.records[ref]
	if !ok {
		return nil, ErrNotFound
	}
	m := s.meta[ref]
	if m.Version != expectedVersion {
		return nil, ErrConcurrentModification
	}

	// A changed owner gets the same checks as on create.
	ownerRef := ownerRefOf(e)
	if ownerRef != m.OwnerRef {
		if err := s.checkOwnerLocked(ownerRef, kind); err != nil {
			return nil, err
		}
	}

	// Diff unique fields against the stored record.
	var claim, release []string
	if uf, ok := e.(UniqueFielder); ok {
		oldFields := map[string]string{}
		if ouf, ok := current.(UniqueFielder); ok {
			oldFields = ouf.UniqueFields()
		}
		for field, value := range uf.UniqueFields() {
			if old, had := oldFields[field]; had && old == value {
				continue
			}
			key := refkey.Unique(kind, field, value)
			if owner, claimed := s.unique[key]; claimed && owner != ref {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateValue, field)
			}
			claim = append(claim, key)
			if old, had := oldFields[field]; had {
				release = append(release, refkey.Unique(kind, field, old))
			}
		}
	}

	now := s.config.Clock()
	for _, key := range release {
		delete(s.unique, key)
	}
	for _, key := range claim {
		s.unique[key] = ref
	}
	if ownerRef != m.OwnerRef {
		// Re-home the child edge under the new owner.
		if m.OwnerRef != "" {
			s.children[m.OwnerRef] = removeRef(s.children[m.OwnerRef], ref)
		}
		if ownerRef != "" {
			s.children[ownerRef] = append(s.children[ownerRef], ref)
		}
		m.OwnerRef = ownerRef
	}
	s.records[ref] = e
	m.Version++
	m.UpdatedAt = now

	return []Event{{Op: OpUpdate, Kind: kind, Ref: ref, At: now}}, nil
}

// DeleteOptions configures delete behavior.
type DeleteOptions struct {
	// Cascade removes the entity's child subtree depth-first.
	// The default leaves children in place, orphaned.
	Cascade bool

	// OrphanProtect fails the delete with ErrHasChildren if children
	// exist. Ignored when Cascade is set.
	OrphanProtect bool
}

// Delete removes an entity by reference, returning ErrNotFound when
// absent. Without options the entity's children are orphaned rather
// than removed.
func (s *Store) Delete(ref string, opts DeleteOptions) error {
	s.mu.Lock()
	events, err := s.deleteLocked(ref, opts)
	s.mu.Unlock()

	s.emit(events)
	return err
}

func (s *Store) deleteLocked(ref string, opts DeleteOptions) ([]Event, error) {
	if _, ok := s.records[ref]; !ok {
		return nil, ErrNotFound
	}
	if opts.OrphanProtect && !opts.Cascade && len(s.children[ref]) > 0 {
		return nil, ErrHasChildren
	}

	var events []Event
	s.removeLocked(ref, opts.Cascade, &events)
	return events, nil
}

// removeLocked removes one record and, when cascade is set, its
// subtree depth-first. Callers must hold the write lock.
func (s *Store) removeLocked(ref string, cascade bool, events *[]Event) {
	e, ok := s.records[ref]
	if !ok {
		return
	}

	if cascade {
		// Copy: removeLocked mutates s.children[ref].
		refs := append([]string(nil), s.children[ref]...)
		for _, child := range refs {
			s.removeLocked(child, true, events)
		}
	}
	// Orphaned children stay listed under their kind but are no longer
	// reachable through the deleted owner.
	delete(s.children, ref)

	kind := e.EntityKind()

	if uf, ok := e.(UniqueFielder); ok {
		for field, value := range uf.UniqueFields() {
			delete(s.unique, refkey.Unique(kind, field, value))
		}
	}
	// The meta edge is authoritative; the record's OwnerRef may have
	// been re-homed since creation.
	if ownerRef := s.meta[ref].OwnerRef; ownerRef != "" {
		s.children[ownerRef] = removeRef(s.children[ownerRef], ref)
	}
	s.order[kind] = removeRef(s.order[kind], ref)
	delete(s.records, ref)
	delete(s.meta, ref)

	*events = append(*events, Event{Op: OpDelete, Kind: kind, Ref: ref, At: s.config.Clock()})
}

// Reset clears all records of one kind and restores its id sequence.
// Child records of other kinds are left in place; use ResetAll between
// test scenarios to clear everything.
func (s *Store) Reset(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := append([]string(nil), s.order[kind]...)
	for _, ref := range refs {
		var discard []Event
		s.removeLocked(ref, false, &discard)
	}
	delete(s.order, kind)
	delete(s.seq, kind)
}

// ResetAll clears every record, unique index, ownership edge and id
// sequence. Registered sinks and the registry are kept.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.records = make(map[string]Entity)
	s.meta = make(map[string]*Meta)
	s.order = make(map[string][]string)
	s.unique = make(map[string]string)
	s.children = make(map[string][]string)
	s.seq = make(map[string]int)
}

// checkOwnerLocked verifies a prospective owner edge: the owner must
// exist and, when a registry is set, the child kind must be registered
// under the owner's kind. An empty ownerRef is a root entity and always
// passes. Callers must hold the lock.
func (s *Store) checkOwnerLocked(ownerRef, kind string) error {
	if ownerRef == "" {
		return nil
	}
	if _, ok := s.records[ownerRef]; !ok {
		return ErrParentNotFound
	}
	if s.registry != nil {
		ownerKind := refkey.Kind(ownerRef)
		if !s.registry.Allows(ownerKind, kind) {
			return fmt.Errorf("%w: %s cannot own %s", ErrRelationshipNotRegistered, ownerKind, kind)
		}
	}
	return nil
}

// validateEntity runs the registered schema for the entity's kind.
// Stores built without a registry skip validation entirely.
func (s *Store) validateEntity(e Entity) error {
	s.mu.RLock()
	registry := s.registry
	s.mu.RUnlock()

	if registry == nil {
		return nil
	}
	schema, ok := registry.Schema(e.EntityKind())
	if !ok {
		return fmt.Errorf("%w: %s", ErrKindNotRegistered, e.EntityKind())
	}
	return schema.Validate(e)
}

// emit delivers events to sinks outside the store lock, so sinks may
// call back into the store.
func (s *Store) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	s.mu.RLock()
	sinks := append([]Sink(nil), s.sinks...)
	s.mu.RUnlock()

	for _, sink := range sinks {
		for _, ev := range events {
			sink.Record(ev)
		}
	}
}

func ownerRefOf(e Entity) string {
	if o, ok := e.(Owned); ok {
		return o.OwnerRef()
	}
	return ""
}

// removeRef removes the first occurrence of ref, preserving order.
func removeRef(refs []string, ref string) []string {
	for i, r := range refs {
		if r == ref {
			return append(refs[:i], refs[i+1:]...)
		}
	}
	return refs
}

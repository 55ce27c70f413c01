package store

// Relationship defines a parent-child relationship between entity kinds.
type Relationship struct {
	// ParentKind is the parent entity kind (e.g. "user").
	ParentKind string

	// ChildKind is the child entity kind (e.g. "photo").
	ChildKind string
}

// Registry holds the validation schemas and parent-child relationships
// for all known entity kinds.
type Registry struct {
	schemas       map[string]Schema
	relationships []Relationship
	byParent      map[string][]Relationship
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:       make(map[string]Schema),
		relationships: []Relationship{},
		byParent:      make(map[string][]Relationship),
	}
}

// RegisterSchema adds a validation schema for an entity kind.
// Registering the same kind twice replaces the previous schema.
func (r *Registry) RegisterSchema(s Schema) {
	r.schemas[s.Kind] = s
}

// Schema returns the schema for a kind, if registered.
func (r *Registry) Schema(kind string) (Schema, bool) {
	s, ok := r.schemas[kind]
	return s, ok
}

// HasSchema reports whether a schema is registered for the kind.
func (r *Registry) HasSchema(kind string) bool {
	_, ok := r.schemas[kind]
	return ok
}

// Register adds a relationship to the registry.
func (r *Registry) Register(rel Relationship) {
	r.relationships = append(r.relationships, rel)
	r.byParent[rel.ParentKind] = append(r.byParent[rel.ParentKind], rel)
}

// Allows reports whether childKind is a registered child kind of
// parentKind.
func (r *Registry) Allows(parentKind, childKind string) bool {
	for _, rel := range r.byParent[parentKind] {
		if rel.ChildKind == childKind {
			return true
		}
	}
	return false
}

// ChildrenOf returns all child relationships for a given parent kind.
func (r *Registry) ChildrenOf(parentKind string) []Relationship {
	return r.byParent[parentKind]
}

// AllRelationships returns all registered relationships.
func (r *Registry) AllRelationships() []Relationship {
	return r.relationships
}

// HasChildren returns true if the parent kind has any registered child
// relationships.
func (r *Registry) HasChildren(parentKind string) bool {
	return len(r.byParent[parentKind]) > 0
}

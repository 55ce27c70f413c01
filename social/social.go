// Package social models the user / photo / post / comment entity family
// on top of the lattice store.
//
// Users own photos and posts; photos and posts own comments. Deleting a
// user orphans their content (no automatic cascade), while deleting a
// photo or post removes its comments with it. Comment ids are unique
// only within the content item they attach to.
package social

import (
	"github.com/jacentio/lattice/store"
)

// Entity kind names registered by this package.
const (
	KindUser    = "user"
	KindPhoto   = "photo"
	KindPost    = "post"
	KindComment = "comment"
)

// Social bundles the typed services over a single store instance.
type Social struct {
	Users    *Users
	Gallery  *Gallery
	Posts    *Posts
	Comments *Comments

	store *store.Store
}

// New creates a store wired with the social registry and the services
// around it. Independent instances don't share any state.
func New(cfg store.Config) *Social {
	st := store.NewWithRegistry(cfg, NewRegistry())
	return &Social{
		Users:    NewUsers(st),
		Gallery:  NewGallery(st),
		Posts:    NewPosts(st),
		Comments: NewComments(st),
		store:    st,
	}
}

// Store returns the underlying store, e.g. for registering feed sinks.
func (s *Social) Store() *store.Store {
	return s.store
}

// Reset clears every record and id sequence for test isolation.
func (s *Social) Reset() {
	s.store.ResetAll()
}

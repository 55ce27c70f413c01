package social

import (
	"strings"
	"time"

	"github.com/jacentio/lattice/internal/refkey"
	"github.com/jacentio/lattice/store"
)

// Post is a text entry owned by one user.
type Post struct {
	ID       int
	AuthorID int
	Text     string
	Category string
	Date     time.Time
}

func (p *Post) EntityKind() string { return KindPost }
func (p *Post) EntityRef() string  { return refkey.Ref(KindPost, p.ID) }
func (p *Post) OwnerRef() string   { return refkey.Ref(KindUser, p.AuthorID) }

// Posts manages posts.
type Posts struct {
	store *store.Store
}

// NewPosts creates a Posts service over the store.
func NewPosts(s *store.Store) *Posts {
	return &Posts{store: s}
}

// Add stores a post under a user. A zero id gets the next sequence
// value. The user must exist.
func (s *Posts) Add(userID int, p Post) (*Post, error) {
	rec := p
	rec.AuthorID = userID
	if rec.ID == 0 {
		rec.ID = s.store.NextID(KindPost)
	}
	if err := s.store.Create(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns a post by id.
func (s *Posts) Get(id int) (*Post, error) {
	e, err := s.store.Get(refkey.Ref(KindPost, id))
	if err != nil {
		return nil, err
	}
	return e.(*Post), nil
}

// ByUser returns the user's posts in insertion order.
func (s *Posts) ByUser(userID int) []*Post {
	return asPosts(s.store.Children(refkey.Ref(KindUser, userID), KindPost))
}

// ByCategory returns the user's posts with an exact category match.
func (s *Posts) ByCategory(userID int, category string) []*Post {
	out := []*Post{}
	for _, p := range s.ByUser(userID) {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// AllByCategory returns every post with an exact category match,
// across all users.
func (s *Posts) AllByCategory(category string) []*Post {
	return asPosts(s.store.Query(KindPost, func(e store.Entity) bool {
		return e.(*Post).Category == category
	}))
}

// ByRangeDate returns posts dated within [start, end]. Both bounds are
// inclusive.
func (s *Posts) ByRangeDate(start, end time.Time) []*Post {
	return asPosts(s.store.Query(KindPost, func(e store.Entity) bool {
		d := e.(*Post).Date
		return !d.Before(start) && !d.After(end)
	}))
}

// Search returns the user's posts whose text contains the substring,
// case-insensitively.
func (s *Posts) Search(userID int, text string) []*Post {
	needle := strings.ToLower(text)
	out := []*Post{}
	for _, p := range s.ByUser(userID) {
		if strings.Contains(strings.ToLower(p.Text), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Remove deletes the user's post by id, along with its comments.
// Returns ErrNotFound when the post doesn't exist or belongs to
// another user.
func (s *Posts) Remove(userID, postID int) error {
	p, err := s.Get(postID)
	if err != nil {
		return err
	}
	if p.AuthorID != userID {
		return store.ErrNotFound
	}
	return s.store.Delete(p.EntityRef(), store.DeleteOptions{Cascade: true})
}

// RemoveAt deletes the user's post by position in insertion order.
// Kept for compatibility with the positional addressing of the legacy
// interface; prefer Remove.
func (s *Posts) RemoveAt(userID, index int) error {
	posts := s.ByUser(userID)
	if index < 0 || index >= len(posts) {
		return store.ErrNotFound
	}
	return s.Remove(userID, posts[index].ID)
}

func asPosts(entities []store.Entity) []*Post {
	out := make([]*Post, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*Post))
	}
	return out
}

package social

import (
	"fmt"
	"strings"
	"time"

	"github.com/jacentio/lattice/internal/refkey"
	"github.com/jacentio/lattice/store"
)

// Target names the polymorphic parent content item of a comment.
type Target string

const (
	TargetPost  Target = "post"
	TargetPhoto Target = "photo"
)

// ParseTarget parses a target kind name. Matching is case-insensitive
// and accepts the legacy alias "foto" for photos. Anything else fails
// with ErrInvalidTargetKind naming the accepted values.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "post":
		return TargetPost, nil
	case "photo", "foto":
		return TargetPhoto, nil
	}
	return "", fmt.Errorf("%w: %q (accepted: post, photo, foto)", store.ErrInvalidTargetKind, name)
}

func (t Target) kind() string {
	return string(t)
}

// Comment is a remark on a post or photo. Ids are unique only within
// the content item the comment attaches to; the same id under a
// different item is a distinct comment.
type Comment struct {
	ID        int
	Target    Target
	ContentID int
	AuthorID  int
	Body      string
	CreatedAt time.Time
}

func (c *Comment) EntityKind() string { return KindComment }

func (c *Comment) EntityRef() string {
	return refkey.Nested(c.OwnerRef(), KindComment, c.ID)
}

func (c *Comment) OwnerRef() string {
	return refkey.Ref(c.Target.kind(), c.ContentID)
}

// EntityRefs implements store.Referencer: the author must exist when
// the comment is created.
func (c *Comment) EntityRefs() []string {
	return []string{refkey.Ref(KindUser, c.AuthorID)}
}

// Comments manages comments on posts and photos.
type Comments struct {
	store *store.Store
}

// NewComments creates a Comments service over the store.
func NewComments(s *store.Store) *Comments {
	return &Comments{store: s}
}

// Create attaches a comment to the content item addressed by
// (targetKind, ownerID, contentID). The owner user and the content
// item must exist and the item must belong to that user. A zero
// comment id gets the next sequence value; a zero CreatedAt is stamped
// from the store clock.
func (s *Comments) Create(targetKind string, ownerID, contentID int, c Comment) (*Comment, error) {
	target, err := s.resolve(targetKind, ownerID, contentID)
	if err != nil {
		return nil, err
	}

	rec := c
	rec.Target = target
	rec.ContentID = contentID
	if rec.ID == 0 {
		rec.ID = s.store.NextID(KindComment)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.store.Now()
	}
	if err := s.store.Create(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListFor returns the content item's comments in insertion order.
func (s *Comments) ListFor(targetKind string, ownerID, contentID int) ([]*Comment, error) {
	target, err := s.resolve(targetKind, ownerID, contentID)
	if err != nil {
		return nil, err
	}

	children := s.store.Children(refkey.Ref(target.kind(), contentID), KindComment)
	out := make([]*Comment, 0, len(children))
	for _, e := range children {
		out = append(out, e.(*Comment))
	}
	return out, nil
}

// Delete removes one comment from a content item by comment id.
func (s *Comments) Delete(targetKind string, ownerID, contentID, commentID int) error {
	target, err := s.resolve(targetKind, ownerID, contentID)
	if err != nil {
		return err
	}

	ref := refkey.Nested(refkey.Ref(target.kind(), contentID), KindComment, commentID)
	return s.store.Delete(ref, store.DeleteOptions{})
}

// resolve performs the two-step target address resolution: the owning
// user first, then the content item among that user's items.
func (s *Comments) resolve(targetKind string, ownerID, contentID int) (Target, error) {
	target, err := ParseTarget(targetKind)
	if err != nil {
		return "", err
	}

	if _, err := s.store.Get(refkey.Ref(KindUser, ownerID)); err != nil {
		return "", fmt.Errorf("%w: user#%d", store.ErrParentNotFound, ownerID)
	}

	e, err := s.store.Get(refkey.Ref(target.kind(), contentID))
	if err != nil {
		return "", err
	}
	var authorID int
	switch content := e.(type) {
	case *Photo:
		authorID = content.AuthorID
	case *Post:
		authorID = content.AuthorID
	}
	if authorID != ownerID {
		// Exists, but not among this user's items.
		return "", store.ErrNotFound
	}
	return target, nil
}

package social

import (
	"strings"
	"time"

	"github.com/jacentio/lattice/internal/refkey"
	"github.com/jacentio/lattice/store"
)

// Photo is a gallery image owned by one user. Likes form a set: each
// user id appears at most once.
type Photo struct {
	ID        int
	Title     string
	URL       string
	AuthorID  int
	Likes     []int
	CreatedAt time.Time
}

func (p *Photo) EntityKind() string { return KindPhoto }
func (p *Photo) EntityRef() string  { return refkey.Ref(KindPhoto, p.ID) }
func (p *Photo) OwnerRef() string   { return refkey.Ref(KindUser, p.AuthorID) }

// LikedBy reports whether userID has liked the photo.
func (p *Photo) LikedBy(userID int) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Gallery manages photos.
type Gallery struct {
	store *store.Store
}

// NewGallery creates a Gallery service over the store.
func NewGallery(s *store.Store) *Gallery {
	return &Gallery{store: s}
}

// Add stores a photo with a caller-assigned id. The author must exist.
func (g *Gallery) Add(p Photo) (*Photo, error) {
	rec := p
	if err := g.store.Create(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upload stores a photo for the user with a system-assigned id when
// p.ID is zero. Beyond the shared schema, uploads require a png image
// and an explicit CreatedAt.
func (g *Gallery) Upload(authorID int, p Photo) (*Photo, error) {
	rec := p
	rec.AuthorID = authorID
	if !strings.HasSuffix(strings.ToLower(rec.URL), ".png") {
		return nil, &store.ValidationError{Kind: KindPhoto, Field: "url", Reason: "unsupported image type, must be png"}
	}
	if rec.CreatedAt.IsZero() {
		return nil, &store.ValidationError{Kind: KindPhoto, Field: "createdAt", Reason: "must be set"}
	}
	// Draw the id only after the upload checks, so failed uploads
	// don't consume sequence values.
	if rec.ID == 0 {
		rec.ID = g.store.NextID(KindPhoto)
	}
	if err := g.store.Create(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns a photo by id.
func (g *Gallery) Get(id int) (*Photo, error) {
	e, err := g.store.Get(refkey.Ref(KindPhoto, id))
	if err != nil {
		return nil, err
	}
	return e.(*Photo), nil
}

// All returns every photo in insertion order.
func (g *Gallery) All() []*Photo {
	return asPhotos(g.store.List(KindPhoto))
}

// ByTitle returns photos whose title contains the substring,
// case-insensitively.
func (g *Gallery) ByTitle(title string) []*Photo {
	needle := strings.ToLower(title)
	return asPhotos(g.store.Query(KindPhoto, func(e store.Entity) bool {
		return strings.Contains(strings.ToLower(e.(*Photo).Title), needle)
	}))
}

// ByUser returns the user's photos in upload order.
func (g *Gallery) ByUser(userID int) []*Photo {
	return asPhotos(g.store.Children(refkey.Ref(KindUser, userID), KindPhoto))
}

// ByRangeDate returns the user's photos created within [start, end].
// Both bounds are inclusive.
func (g *Gallery) ByRangeDate(userID int, start, end time.Time) []*Photo {
	out := []*Photo{}
	for _, p := range g.ByUser(userID) {
		if !p.CreatedAt.Before(start) && !p.CreatedAt.After(end) {
			out = append(out, p)
		}
	}
	return out
}

// UpdateTitle replaces a photo's title. The new title must be
// non-blank.
func (g *Gallery) UpdateTitle(id int, title string) (*Photo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &store.ValidationError{Kind: KindPhoto, Field: "title", Reason: "must not be blank"}
	}
	return g.update(id, func(p *Photo) {
		p.Title = title
	})
}

// Delete removes a photo and its comments.
func (g *Gallery) Delete(id int) error {
	return g.store.Delete(refkey.Ref(KindPhoto, id), store.DeleteOptions{Cascade: true})
}

// Like adds userID to the photo's likes. Liking twice is a no-op.
func (g *Gallery) Like(photoID, userID int) (*Photo, error) {
	return g.update(photoID, func(p *Photo) {
		if !p.LikedBy(userID) {
			p.Likes = append(p.Likes, userID)
		}
	})
}

// Unlike removes userID from the photo's likes. Unliking a user that
// never liked the photo is a no-op.
func (g *Gallery) Unlike(photoID, userID int) (*Photo, error) {
	return g.update(photoID, func(p *Photo) {
		for i, id := range p.Likes {
			if id == userID {
				p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
				return
			}
		}
	})
}

// Likes returns a copy of the photo's likes in like order.
func (g *Gallery) Likes(photoID int) ([]int, error) {
	p, err := g.Get(photoID)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), p.Likes...), nil
}

// update commits a read-modify-write of one photo.
func (g *Gallery) update(id int, mutate func(*Photo)) (*Photo, error) {
	ref := refkey.Ref(KindPhoto, id)
	e, err := g.store.Get(ref)
	if err != nil {
		return nil, err
	}
	info, err := g.store.Info(ref)
	if err != nil {
		return nil, err
	}

	rec := *e.(*Photo)
	rec.Likes = append([]int(nil), e.(*Photo).Likes...)
	mutate(&rec)

	if err := g.store.Update(&rec, info.Version); err != nil {
		return nil, err
	}
	return &rec, nil
}

func asPhotos(entities []store.Entity) []*Photo {
	out := make([]*Photo, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*Photo))
	}
	return out
}

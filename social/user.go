package social

import (
	"github.com/jacentio/lattice/internal/refkey"
	"github.com/jacentio/lattice/store"
)

// User is a registered account. Users own photos and posts.
type User struct {
	ID       int
	Name     string
	UserName string
	Password string
	Email    string
}

func (u *User) EntityKind() string { return KindUser }
func (u *User) EntityRef() string  { return refkey.Ref(KindUser, u.ID) }

// UniqueFields implements store.UniqueFielder. UserName matching is
// case-sensitive, matching the legacy behavior.
func (u *User) UniqueFields() map[string]string {
	return map[string]string{
		"userName": u.UserName,
		"email":    u.Email,
	}
}

// Users manages user accounts.
type Users struct {
	store *store.Store
}

// NewUsers creates a Users service over the store.
func NewUsers(s *store.Store) *Users {
	return &Users{store: s}
}

// Create registers a new user. The id is caller-assigned; id, userName
// and email must each be unique across all users.
func (s *Users) Create(u User) (*User, error) {
	rec := u
	if err := s.store.Create(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns a user by id.
func (s *Users) Get(id int) (*User, error) {
	e, err := s.store.Get(refkey.Ref(KindUser, id))
	if err != nil {
		return nil, err
	}
	return e.(*User), nil
}

// All returns every user in insertion order.
func (s *Users) All() []*User {
	return asUsers(s.store.List(KindUser))
}

// UserUpdate holds the whitelisted mutable fields. Nil fields are left
// unchanged; id and email are immutable.
type UserUpdate struct {
	Name     *string
	UserName *string
	Password *string
}

// Update applies a whitelisted-field update to a user.
func (s *Users) Update(id int, upd UserUpdate) (*User, error) {
	ref := refkey.Ref(KindUser, id)
	e, err := s.store.Get(ref)
	if err != nil {
		return nil, err
	}
	info, err := s.store.Info(ref)
	if err != nil {
		return nil, err
	}

	rec := *e.(*User)
	if upd.Name != nil {
		rec.Name = *upd.Name
	}
	if upd.UserName != nil {
		rec.UserName = *upd.UserName
	}
	if upd.Password != nil {
		rec.Password = *upd.Password
	}

	if err := s.store.Update(&rec, info.Version); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a user. By default the user's photos and posts are
// orphaned, not removed; pass DeleteOptions{Cascade: true} to remove
// the whole subtree.
func (s *Users) Delete(id int, opts store.DeleteOptions) error {
	return s.store.Delete(refkey.Ref(KindUser, id), opts)
}

// Login checks credentials by userName. Returns ErrNotFound when no
// such user exists and ErrInvalidPassword on a mismatch.
func (s *Users) Login(userName, password string) (*User, error) {
	found := s.store.Query(KindUser, func(e store.Entity) bool {
		return e.(*User).UserName == userName
	})
	if len(found) == 0 {
		return nil, store.ErrNotFound
	}
	u := found[0].(*User)
	if u.Password != password {
		return nil, store.ErrInvalidPassword
	}
	return u, nil
}

func asUsers(entities []store.Entity) []*User {
	out := make([]*User, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*User))
	}
	return out
}

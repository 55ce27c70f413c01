package social

import "github.com/jacentio/lattice/store"

// NewRegistry builds the schema and relationship registry for the
// social entity family. Rules run in declaration order; the first
// failure names the offending field.
func NewRegistry() *store.Registry {
	r := store.NewRegistry()

	r.RegisterSchema(store.Schema{Kind: KindUser, Rules: []store.Rule{
		{Field: "id", Get: func(e store.Entity) any { return e.(*User).ID }, Check: store.PositiveInt()},
		{Field: "userName", Get: func(e store.Entity) any { return e.(*User).UserName }, Check: store.NonBlank()},
		{Field: "password", Get: func(e store.Entity) any { return e.(*User).Password }, Check: store.NonBlank()},
		{Field: "email", Get: func(e store.Entity) any { return e.(*User).Email }, Check: store.All(store.NonBlank(), store.Contains("@"))},
	}})

	r.RegisterSchema(store.Schema{Kind: KindPhoto, Rules: []store.Rule{
		{Field: "id", Get: func(e store.Entity) any { return e.(*Photo).ID }, Check: store.PositiveInt()},
		{Field: "title", Get: func(e store.Entity) any { return e.(*Photo).Title }, Check: store.NonBlank()},
		{Field: "url", Get: func(e store.Entity) any { return e.(*Photo).URL }, Check: store.All(store.NonBlank(), store.HasAnyPrefix("http://", "https://"))},
		{Field: "authorId", Get: func(e store.Entity) any { return e.(*Photo).AuthorID }, Check: store.PositiveInt()},
	}})

	r.RegisterSchema(store.Schema{Kind: KindPost, Rules: []store.Rule{
		{Field: "id", Get: func(e store.Entity) any { return e.(*Post).ID }, Check: store.PositiveInt()},
		{Field: "text", Get: func(e store.Entity) any { return e.(*Post).Text }, Check: store.NonBlank()},
		{Field: "date", Get: func(e store.Entity) any { return e.(*Post).Date }, Check: store.NonZeroTime()},
		{Field: "category", Get: func(e store.Entity) any { return e.(*Post).Category }, Check: store.NonBlank()},
		{Field: "authorId", Get: func(e store.Entity) any { return e.(*Post).AuthorID }, Check: store.PositiveInt()},
	}})

	r.RegisterSchema(store.Schema{Kind: KindComment, Rules: []store.Rule{
		{Field: "id", Get: func(e store.Entity) any { return e.(*Comment).ID }, Check: store.PositiveInt()},
		{Field: "body", Get: func(e store.Entity) any { return e.(*Comment).Body }, Check: store.NonBlank()},
		{Field: "authorId", Get: func(e store.Entity) any { return e.(*Comment).AuthorID }, Check: store.PositiveInt()},
		{Field: "createdAt", Get: func(e store.Entity) any { return e.(*Comment).CreatedAt }, Check: store.NonZeroTime()},
	}})

	r.Register(store.Relationship{ParentKind: KindUser, ChildKind: KindPhoto})
	r.Register(store.Relationship{ParentKind: KindUser, ChildKind: KindPost})
	r.Register(store.Relationship{ParentKind: KindPhoto, ChildKind: KindComment})
	r.Register(store.Relationship{ParentKind: KindPost, ChildKind: KindComment})

	return r
}

// Package actorctx carries the authenticated caller through a request's
// context so layers without access to gin can still see who is acting.
package actorctx

import "context"

type ctxKey struct{}

type actor struct {
	id    string
	email string
}

func WithActor(ctx context.Context, userID, email string) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor{id: userID, email: email})
}

func UserIDFrom(ctx context.Context) (string, bool) {
	a, ok := ctx.Value(ctxKey{}).(actor)

	return a.id, ok && a.id != ""
}

func EmailFrom(ctx context.Context) (string, bool) {
	a, ok := ctx.Value(ctxKey{}).(actor)

	return a.email, ok && a.email != ""
}

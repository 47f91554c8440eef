package auth

import (
	"context"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Actor is the authenticated user a request runs as
type Actor struct {
	UserID types.UserID
	Role   types.Role
}

// System is used for seeding and CLI operations that have no human actor
var System = &Actor{UserID: "system", Role: types.RoleAdmin}

type ctxActorKey struct{}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ctxActorKey{}, actor)
}

// ActorFromContext returns the actor bound to ctx, or nil.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(ctxActorKey{}).(*Actor)
	return actor
}

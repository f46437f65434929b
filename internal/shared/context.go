package shared

import (
	"context"

	"github.com/google/uuid"
)

// Identity describes the authenticated caller for the current request.
// The Role field is the role name carried by the session token, a snapshot
// taken at issuance.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

type identityContextKey struct{}

// ContextWithIdentity stores the caller identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the caller identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

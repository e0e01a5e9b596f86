// Package access holds the per-request caller identity and the row and
// field level rules derived from it.
package access

import (
	"context"
	"errors"
)

var ErrNoIdentity = errors.New("no authenticated identity")

// Identity is built once per request from a validated access token.
type Identity struct {
	UserID  uint
	IsAdmin bool
	Name    string
	Email   string
}

// Owns reports whether the caller may act on a row owned by ownerID.
func (i Identity) Owns(ownerID uint) bool {
	return i.IsAdmin || (i.UserID != 0 && i.UserID == ownerID)
}

// OwnerScope returns the user id lists must be restricted to, or 0 for admins.
func (i Identity) OwnerScope() uint {
	if i.IsAdmin {
		return 0
	}
	return i.UserID
}

type ctxKey struct{}

func IntoContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

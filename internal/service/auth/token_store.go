package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenStore issues opaque bearer tokens and maps them back to users.
type TokenStore interface {
	// Issue creates a new random token bound to userID.
	Issue(ctx context.Context, userID uuid.UUID) (string, error)

	// Resolve returns the user a token was issued to. The boolean is false
	// for unknown tokens.
	Resolve(ctx context.Context, token string) (uuid.UUID, bool)
}

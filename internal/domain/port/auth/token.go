package auth

import (
	"github.com/shoppro/storefront/internal/domain/entity"
)

// Claims are the identity facts carried inside a session token.
// Role is informational only; authorization always reloads the user
// from the store rather than trusting the token's role claim.
type Claims struct {
	UserID   uint64
	Username string
	Role     entity.Role
}

// TokenIssuer issues and verifies server-side session tokens
type TokenIssuer interface {
	// Issue creates a signed session token for the user
	Issue(user *entity.User) (string, error)

	// Verify parses and validates a token, returning its claims
	//
	// Possible errors:
	// - ErrInvalidToken: If the token is malformed, expired, or forged
	Verify(token string) (*Claims, error)
}

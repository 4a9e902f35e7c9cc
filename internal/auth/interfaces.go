package auth

import (
	"context"

	"github.com/markitup/markitup-api/internal/user"
)

// UserStore is the identity store the service depends on. The mongo-backed
// implementation lives in internal/user; tests substitute an in-memory one.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id user.ID) (*user.User, error)
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
}

// TokenService defines the interface for token issuance and verification.
// The production implementation is JWTService (HS256).
type TokenService interface {
	Issue(userID user.ID) (string, error)
	Verify(tokenString string) (user.ID, error)
}

// Hasher performs one-way password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, candidate string) bool
}

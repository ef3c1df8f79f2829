package ports

import "github.com/hopebloom/auth-service/internal/core/domain"

// PasswordHasher is a one-way salted password hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify returns false without error on mismatch; an error means the
	// stored hash itself is unusable.
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer signs bearer tokens for an identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// TokenVerifier checks a bearer token and returns the identity it carries.
// Failures are domain.ErrTokenExpired or domain.ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hopebloom/auth-service/internal/core/domain"
)

// DefaultTokenTTL is how long issued tokens stay valid unless configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("jwt secret is required")

// tokenClaims is the JWT payload: {id, role, exp, iat}.
type tokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 bearer tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL reports the lifetime applied by Issue.
func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for identity with the configured TTL.
func (m *JWTManager) Issue(identity domain.Identity) (string, error) {
	return m.IssueWithTTL(identity, m.ttl)
}

// IssueWithTTL signs a token expiring ttl from now. A non-positive ttl
// produces a token that is already expired.
func (m *JWTManager) IssueWithTTL(identity domain.Identity, ttl time.Duration) (string, error) {
	now := m.now()
	claims := tokenClaims{
		ID:   identity.ID,
		Role: identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (m *JWTManager) Verify(token string) (domain.Identity, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok || claims.ID == "" {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	return domain.Identity{ID: claims.ID, Role: role}, nil
}

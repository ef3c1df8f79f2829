package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hopebloom/auth-service/internal/core/domain"
)

func newManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestNewJWTManager_DefaultTTL(t *testing.T) {
	m, err := NewJWTManager("secret", 0)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	if m.TTL() != DefaultTokenTTL {
		t.Fatalf("expected %s, got %s", DefaultTokenTTL, m.TTL())
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newManager(t)
	want := domain.Identity{ID: "65f0c0ffee", Role: domain.RoleDoctor}

	token, err := m.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestJWTManager_ClaimSet(t *testing.T) {
	m := newManager(t)
	token, _ := m.Issue(domain.Identity{ID: "u1", Role: domain.RoleUser})

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, key := range []string{"id", "role", "exp", "iat"} {
		if _, ok := claims[key]; !ok {
			t.Fatalf("claim %q missing from %v", key, claims)
		}
	}
	if exp, _ := claims.GetExpirationTime(); exp == nil || time.Until(exp.Time) > time.Hour {
		t.Fatalf("unexpected exp: %v", exp)
	}
}

func TestJWTManager_ZeroTTLIsExpired(t *testing.T) {
	m := newManager(t)

	token, err := m.IssueWithTTL(domain.Identity{ID: "u1", Role: domain.RoleUser}, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManager_ExpiredAfterTTL(t *testing.T) {
	m := newManager(t)
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	token, _ := m.Issue(domain.Identity{ID: "u1", Role: domain.RoleAdmin})

	m.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	if _, err := m.Verify(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	m.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	if _, err := m.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManager_Invalid(t *testing.T) {
	m := newManager(t)
	valid, _ := m.Issue(domain.Identity{ID: "u1", Role: domain.RoleUser})

	other, _ := NewJWTManager("other-secret", time.Hour)
	foreign, _ := other.Issue(domain.Identity{ID: "u1", Role: domain.RoleUser})

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": "u1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	unknownRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "u1", "role": "root", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "u1", "role": "user",
	}).SignedString([]byte("secret"))

	cases := map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"wrong secret": foreign,
		"tampered":     tampered,
		"alg none":     none,
		"unknown role": unknownRole,
		"no exp":       noExp,
	}
	for name, token := range cases {
		if _, err := m.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}

package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hopebloom/auth-service/internal/api/apierr"
	"github.com/hopebloom/auth-service/internal/api/metrics"
	"github.com/hopebloom/auth-service/internal/core/domain"
	"github.com/hopebloom/auth-service/internal/core/ports"
)

const identityKey = "identity"

const bearerPrefix = "Bearer "

// Authenticate reads a bearer token from an Authorization header value and
// verifies it. The scheme is matched exactly ("Bearer "); anything else,
// including an empty token, yields domain.ErrMissingToken.
func Authenticate(header string, verifier ports.TokenVerifier) (domain.Identity, error) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return verifier.Verify(token)
}

// Auth validates the bearer token and injects the identity into context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := Authenticate(c.Request().Header.Get(echo.HeaderAuthorization), verifier)
			if err != nil {
				return reject(err)
			}
			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity stores the verified identity on the request context.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the identity injected by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok && identity.ID != ""
}

func reject(err error) error {
	reason := "invalid"
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		reason = "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		reason = "expired"
	case errors.Is(err, domain.ErrAccessDenied):
		reason = "forbidden"
	case !errors.Is(err, domain.ErrTokenInvalid):
		// Verifiers only report the two token errors; anything else is
		// treated as an invalid token rather than a server fault.
		err = domain.ErrTokenInvalid
	}
	metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	return apierr.HTTP(err)
}

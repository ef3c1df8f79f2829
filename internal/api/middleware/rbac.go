package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/hopebloom/auth-service/internal/core/domain"
	"github.com/hopebloom/auth-service/internal/core/ports"
)

// Authorize checks identity against an allow-list. An empty list admits any
// authenticated identity.
func Authorize(identity domain.Identity, allowed []domain.Role) error {
	if len(allowed) == 0 || identity.Role.In(allowed) {
		return nil
	}
	return domain.ErrAccessDenied
}

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return reject(domain.ErrMissingToken)
			}
			if err := Authorize(identity, allowedRoles); err != nil {
				return reject(err)
			}
			return next(c)
		}
	}
}

// Protect gates a route on a valid token and, when roles are given, on the
// caller's role.
func Protect(verifier ports.TokenVerifier, roles ...domain.Role) echo.MiddlewareFunc {
	auth := Auth(verifier)
	rbac := RBAC(roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(rbac(next))
	}
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hopebloom/auth-service/internal/api/apierr"
	"github.com/hopebloom/auth-service/internal/api/middleware"
	"github.com/hopebloom/auth-service/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. Its
// absence means the route was wired without Auth; reject rather than guess.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, apierr.HTTP(domain.ErrMissingToken)
	}
	return identity, nil
}

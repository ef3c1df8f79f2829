// Package apierr maps domain errors to HTTP status codes and the messages
// clients see.
package apierr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hopebloom/auth-service/internal/core/domain"
)

const (
	MsgNoToken            = "No token, authorization denied"
	MsgTokenExpired       = "Token expired"
	MsgTokenInvalid       = "Token is not valid"
	MsgAccessDenied       = "Access denied"
	MsgUsernameTaken      = "Username already registered"
	MsgInvalidCredentials = "Invalid username or password"
	MsgUserNotFound       = "User not found"
	MsgTooManyAttempts    = "Too many login attempts. Please try again later."
	MsgInvalidBody        = "Invalid request body"
	MsgRouteNotFound      = "Route not found"
	MsgInternal           = "Internal server error"
)

type mapping struct {
	err    error
	status int
	msg    string
}

var table = []mapping{
	{domain.ErrMissingToken, http.StatusUnauthorized, MsgNoToken},
	{domain.ErrTokenExpired, http.StatusUnauthorized, MsgTokenExpired},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, MsgTokenInvalid},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
	{domain.ErrAccessDenied, http.StatusForbidden, MsgAccessDenied},
	{domain.ErrUserNotFound, http.StatusNotFound, MsgUserNotFound},
	{domain.ErrUsernameTaken, http.StatusBadRequest, MsgUsernameTaken},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests, MsgTooManyAttempts},
}

// Resolve returns the status and message for a known domain error.
func Resolve(err error) (int, string, bool) {
	for _, m := range table {
		if errors.Is(err, m.err) {
			return m.status, m.msg, true
		}
	}
	return 0, "", false
}

// HTTP converts a known domain error into an *echo.HTTPError carrying the
// original error as Internal. Unknown errors become a bare 500.
func HTTP(err error) *echo.HTTPError {
	status, msg, ok := Resolve(err)
	if !ok {
		status, msg = http.StatusInternalServerError, MsgInternal
	}
	return echo.NewHTTPError(status, msg).SetInternal(err)
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hopebloom/auth-service/internal/api/apierr"
	"github.com/hopebloom/auth-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes and client messages.
//   - Logs unexpected errors and reports them to Sentry when a hub is bound.
//   - Renders {"success": false, "message": "..."} for every failure.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Message: ve.Error(), Errors: ve.Errors}
	}

	if code, msg, ok := apierr.Resolve(err); ok {
		return code, errorResponse{Message: msg}
	}

	// Echo's own errors (bind failures, 404 from router) and handler 500s.
	// HTTPError unwraps to Internal, so wrapped domain errors matched above.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch {
		case he.Code == http.StatusNotFound && he.Internal == nil:
			return he.Code, errorResponse{Message: apierr.MsgRouteNotFound}
		case he.Code >= http.StatusInternalServerError:
			report(err, log, c)
		}
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	report(err, log, c)
	return http.StatusInternalServerError, errorResponse{Message: apierr.MsgInternal}
}

func report(err error, log zerolog.Logger, c echo.Context) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

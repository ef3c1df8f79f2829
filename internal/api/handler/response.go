package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hopebloom/auth-service/internal/api/apierr"
	"github.com/hopebloom/auth-service/internal/core/domain"
)

const (
	msgRegistered     = "User registered successfully"
	msgLoggedIn       = "Login successful"
	msgProfile        = "Welcome to your profile"
	msgAdminGranted   = "Admin access granted"
	msgRoleAssigned   = "Admin role assigned successfully"
	msgUsersListed    = "Users retrieved successfully"
	msgAPIRunning     = "HopeBloom API is running"
	msgRegisterFailed = "Registration failed. Please try again."
	msgLoginFailed    = "Login failed. Please try again."
	msgProfileFailed  = "Failed to load profile"
	msgAssignFailed   = "Failed to assign admin role"
	msgListFailed     = "Failed to list users"
)

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// loginUser is the minimal projection returned on login.
type loginUser struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type identityResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    domain.Identity `json:"user"`
}

type usersResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Users   []*domain.User `json:"users"`
}

// operationFailed passes business errors through untouched and turns any
// other failure into a 500 with a per-operation message. The cause stays in
// Internal for the error handler to log.
func operationFailed(err error, msg string) error {
	if domain.IsClientError(err) {
		return err
	}
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

func resultLabel(err error, known map[error]string) string {
	if err == nil {
		return "success"
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "invalid"
	}
	for target, label := range known {
		if errors.Is(err, target) {
			return label
		}
	}
	return "error"
}

// bindBody decodes the request into req. A field of the wrong JSON type is
// left empty rather than failing the request, so input validation reports
// it as missing together with every other failing field.
func bindBody(c echo.Context, req any) error {
	err := c.Bind(req)
	if err == nil {
		return nil
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return nil
	}
	return echo.NewHTTPError(http.StatusBadRequest, apierr.MsgInvalidBody).SetInternal(err)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hopebloom/auth-service/internal/api/metrics"
	"github.com/hopebloom/auth-service/internal/core/domain"
	"github.com/hopebloom/auth-service/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Role           string `json:"role,omitempty"`
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type assignAdminRequest struct {
	TargetUserID string `json:"targetUserId"`
}

var (
	registerLabels = map[error]string{domain.ErrUsernameTaken: "duplicate"}
	loginLabels    = map[error]string{
		domain.ErrInvalidCredentials: "bad_credentials",
		domain.ErrTooManyAttempts:    "throttled",
	}
)

// Register creates a new account and returns its first token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      500   {object}  api.errorResponse
// @Router       /auth/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	res, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Username:       req.Username,
		Password:       req.Password,
		Role:           req.Role,
		Name:           req.Name,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	})
	metrics.RegistrationsTotal.WithLabelValues(resultLabel(err, registerLabels)).Inc()
	if err != nil {
		return operationFailed(err, msgRegisterFailed)
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: msgRegistered,
		Token:   res.Token,
		User:    res.User,
	})
}

// Login authenticates a user and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      429   {object}  api.errorResponse
// @Router       /auth/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	res, err := h.users.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.RealIP(),
	})
	metrics.LoginsTotal.WithLabelValues(resultLabel(err, loginLabels)).Inc()
	if err != nil {
		return operationFailed(err, msgLoginFailed)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: msgLoggedIn,
		Token:   res.Token,
		User: loginUser{
			ID:       res.User.ID,
			Username: res.User.Username,
			Role:     res.User.Role,
		},
	})
}

// Profile returns the caller's account.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /auth/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), identity)
	if err != nil {
		return operationFailed(err, msgProfileFailed)
	}

	return c.JSON(http.StatusOK, userResponse{Success: true, Message: msgProfile, User: user})
}

// Admin echoes the verified identity of an admin caller.
//
// @Summary      Admin check
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  api.errorResponse
// @Failure      403  {object}  api.errorResponse
// @Router       /auth/admin [get]
func (h *UserHandler) Admin(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{Success: true, Message: msgAdminGranted, User: identity})
}

// AssignAdmin promotes another account to admin. Superuser only.
//
// @Summary      Assign admin role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignAdminRequest  true  "Target user"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      403   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Router       /auth/assign-admin [post]
func (h *UserHandler) AssignAdmin(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req assignAdminRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.AssignAdminRole(c.Request().Context(), identity, req.TargetUserID)
	if err != nil {
		return operationFailed(err, msgAssignFailed)
	}
	metrics.RoleAssignmentsTotal.Inc()

	return c.JSON(http.StatusOK, userResponse{Success: true, Message: msgRoleAssigned, User: user})
}

// ListUsers returns every account without password hashes. Superuser only.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  api.errorResponse
// @Failure      403  {object}  api.errorResponse
// @Router       /auth/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.users.ListUsers(c.Request().Context(), identity)
	if err != nil {
		return operationFailed(err, msgListFailed)
	}

	return c.JSON(http.StatusOK, usersResponse{Success: true, Message: msgUsersListed, Users: users})
}

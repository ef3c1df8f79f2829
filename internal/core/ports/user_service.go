package ports

import (
	"context"

	"github.com/hopebloom/auth-service/internal/core/domain"
)

// RegisterInput carries the raw registration fields as received.
type RegisterInput struct {
	Username       string
	Password       string
	Role           string
	Name           string
	Phone          string
	Specialization string
	LicenseNumber  string
}

// LoginInput carries raw login credentials. ClientIP scopes failed-login
// throttling; it may be empty.
type LoginInput struct {
	Username string
	Password string
	ClientIP string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// UserService defines the account use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Profile(ctx context.Context, identity domain.Identity) (*domain.User, error)
	AssignAdminRole(ctx context.Context, actor domain.Identity, targetUserID string) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Identity) ([]*domain.User, error)
}

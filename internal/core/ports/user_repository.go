package ports

import (
	"context"

	"github.com/hopebloom/auth-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts user and returns the stored record. A username collision
	// detected by the store yields domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername looks up a normalised username. The password hash is only
	// populated when withPassword is true.
	FindByUsername(ctx context.Context, username string, withPassword bool) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

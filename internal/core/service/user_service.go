package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hopebloom/auth-service/internal/core/domain"
	"github.com/hopebloom/auth-service/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis). Keys come from
// ThrottleKey.
type LoginThrottle interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// UserService implements registration, login, profile and role management.
type UserService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle LoginThrottle
	log      zerolog.Logger
}

// NewUserService wires the service. throttle may be nil, which disables
// failed-login throttling.
func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	throttle LoginThrottle,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		log:      log,
	}
}

// NormalizeUsername trims and lowercases a username the way it is stored.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ThrottleKey scopes failed-login counting to a username and client address,
// so failures from one address cannot lock the account for every other one.
func ThrottleKey(username, clientIP string) string {
	if clientIP == "" {
		return username
	}
	return username + "|" + clientIP
}

// Register validates the input, creates the account and issues its first token.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	form := registerForm{
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
		Role:     strings.TrimSpace(in.Role),
	}
	if err := check(form); err != nil {
		return nil, err
	}

	username := NormalizeUsername(in.Username)
	role := domain.RoleUser
	if r, ok := domain.ParseRole(form.Role); ok && r.In(domain.SelfServiceRoles) {
		role = r
	}

	// Fast path only; the unique index decides.
	_, err := s.repo.FindByUsername(ctx, username, false)
	switch {
	case err == nil:
		return nil, domain.ErrUsernameTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup username: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:       username,
		PasswordHash:   hash,
		Role:           role,
		Name:           strings.TrimSpace(in.Name),
		Phone:          strings.TrimSpace(in.Phone),
		Specialization: strings.TrimSpace(in.Specialization),
		LicenseNumber:  strings.TrimSpace(in.LicenseNumber),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.log.Debug().Str("username", username).Msg("username taken at insert")
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	token, err := s.tokens.Issue(created.Identity())
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")
	return &ports.AuthResult{Token: token, User: withoutHash(created)}, nil
}

// Login checks credentials and issues a token. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	form := loginForm{
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
	}
	if err := check(form); err != nil {
		return nil, err
	}
	username := NormalizeUsername(in.Username)
	throttleKey := ThrottleKey(username, in.ClientIP)

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, throttleKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username, true)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, username, throttleKey)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: verify password: %w", err)
	}
	if !ok {
		s.loginFailed(ctx, username, throttleKey)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, throttleKey); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: withoutHash(user)}, nil
}

func (s *UserService) loginFailed(ctx context.Context, username, throttleKey string) {
	s.log.Info().Str("username", username).Msg("login failed")
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, throttleKey); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

// Profile returns the account behind a verified identity.
func (s *UserService) Profile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return withoutHash(user), nil
}

// AssignAdminRole promotes the target account to admin. Only a superuser may
// call it; promoting an existing admin again succeeds.
func (s *UserService) AssignAdminRole(ctx context.Context, actor domain.Identity, targetUserID string) (*domain.User, error) {
	if actor.Role != domain.RoleSuperuser {
		return nil, domain.ErrAccessDenied
	}
	form := assignAdminForm{TargetUserID: strings.TrimSpace(targetUserID)}
	if err := check(form); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateRole(ctx, form.TargetUserID, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("assign admin role: %w", err)
	}

	s.log.Info().Str("actor_id", actor.ID).Str("user_id", user.ID).Msg("admin role assigned")
	return withoutHash(user), nil
}

// ListUsers returns every account. Superuser only.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Identity) ([]*domain.User, error) {
	if actor.Role != domain.RoleSuperuser {
		return nil, domain.ErrAccessDenied
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, withoutHash(u))
	}
	return out, nil
}

func withoutHash(u *domain.User) *domain.User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

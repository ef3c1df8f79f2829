package main

import (
	"context"
	"errors"
	"testing"

	"github.com/hopebloom/auth-service/internal/core/domain"
)

type memRepo struct {
	users map[string]*domain.User
	err   error
}

func (r *memRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	clone := *u
	clone.ID = "id-" + u.Username
	r.users[u.Username] = &clone
	return &clone, nil
}

func (r *memRepo) FindByUsername(_ context.Context, username string, _ bool) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *memRepo) UpdateRole(context.Context, string, domain.Role) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *memRepo) List(context.Context) ([]*domain.User, error) { return nil, nil }

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Verify(p, h string) (bool, error) { return h == "h:"+p, nil }

func TestSeed_CreatesThenSkips(t *testing.T) {
	repo := &memRepo{users: map[string]*domain.User{}}
	u := seedUser{username: " Admin@HopeBloom.org ", password: "admin123", role: domain.RoleAdmin}

	created, err := seed(context.Background(), repo, plainHasher{}, u)
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	stored := repo.users["admin@hopebloom.org"]
	if stored == nil || stored.Role != domain.RoleAdmin || stored.PasswordHash != "h:admin123" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}

	created, err = seed(context.Background(), repo, plainHasher{}, u)
	if err != nil || created {
		t.Fatalf("second seed: created=%v err=%v", created, err)
	}
}

func TestSeed_LookupFailure(t *testing.T) {
	repo := &memRepo{users: map[string]*domain.User{}, err: errors.New("no reachable servers")}
	if _, err := seed(context.Background(), repo, plainHasher{}, demoUsers[0]); err == nil {
		t.Fatal("expected lookup error")
	}
}

func TestDemoUsers(t *testing.T) {
	want := map[string]domain.Role{
		"user@hopebloom.org":   domain.RoleUser,
		"doctor@hopebloom.org": domain.RoleDoctor,
		"admin@hopebloom.org":  domain.RoleAdmin,
	}
	if len(demoUsers) != len(want) {
		t.Fatalf("expected %d demo users, got %d", len(want), len(demoUsers))
	}
	for _, u := range demoUsers {
		if want[u.username] != u.role {
			t.Fatalf("%s: expected role %s, got %s", u.username, want[u.username], u.role)
		}
	}
}

// Command seed inserts demo accounts, plus an optional superuser, into the
// users collection. Usernames that already exist are left untouched.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/hopebloom/auth-service/internal/core/domain"
	"github.com/hopebloom/auth-service/internal/core/ports"
	"github.com/hopebloom/auth-service/internal/core/service"
	"github.com/hopebloom/auth-service/internal/infrastructure/config"
	mongodb "github.com/hopebloom/auth-service/internal/infrastructure/db/mongo"
	"github.com/hopebloom/auth-service/internal/infrastructure/security"
	"github.com/hopebloom/auth-service/pkg/logger"
)

// seedConfig is the subset of config.Config the seeder needs; it does not
// require JWT_SECRET.
type seedConfig struct {
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Mongo    config.MongoConfig
	Seed     config.SeedConfig
}

type seedUser struct {
	username string
	password string
	role     domain.Role
	name     string
}

var demoUsers = []seedUser{
	{username: "user@hopebloom.org", password: "user123", role: domain.RoleUser, name: "Demo User"},
	{username: "doctor@hopebloom.org", password: "doctor123", role: domain.RoleDoctor, name: "Demo Doctor"},
	{username: "admin@hopebloom.org", password: "admin123", role: domain.RoleAdmin, name: "Demo Admin"},
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var cfg seedConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "seed: load config:", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "hopebloom-seed"})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(ctx context.Context, cfg seedConfig, log zerolog.Logger) error {
	store, err := mongodb.Open(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "hopebloom-seed",
	})
	if err != nil {
		return err
	}
	defer store.Close(context.Background())
	repo := store.Users

	users := demoUsers
	if s := cfg.Seed; s.SuperuserUsername != "" && s.SuperuserPassword != "" {
		users = append(users, seedUser{
			username: s.SuperuserUsername,
			password: s.SuperuserPassword,
			role:     domain.RoleSuperuser,
			name:     "Superuser",
		})
	}

	hasher := security.NewBcryptHasher(security.DefaultBcryptCost)
	var created int
	for _, u := range users {
		ok, err := seed(ctx, repo, hasher, u)
		if err != nil {
			return fmt.Errorf("seed %s: %w", u.username, err)
		}
		if ok {
			created++
			log.Info().Str("username", u.username).Str("role", u.role.String()).Msg("user created")
		} else {
			log.Info().Str("username", u.username).Msg("user exists, skipped")
		}
	}

	log.Info().Int("created", created).Int("total", len(users)).Msg("seed complete")
	return nil
}

// seed inserts u unless its username is taken. It reports whether a user
// was created.
func seed(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, u seedUser) (bool, error) {
	username := service.NormalizeUsername(u.username)
	_, err := repo.FindByUsername(ctx, username, false)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return false, err
	}

	hash, err := hasher.Hash(u.password)
	if err != nil {
		return false, err
	}
	_, err = repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         u.role,
		Name:         u.name,
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		return false, nil
	}
	return err == nil, err
}

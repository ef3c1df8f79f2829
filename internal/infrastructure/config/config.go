package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string   `env:"PORT,           default=5001"`
	Env       string   `env:"ENV,            default=development"`
	LogLevel  string   `env:"LOG_LEVEL,      default=info"`
	JWTSecret string   `env:"JWT_SECRET,     required"`
	TokenTTL  Duration `env:"JWT_EXPIRES_IN, default=7d"`
	SentryDSN string   `env:"SENTRY_DSN"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=hopebloom"`
}

// RedisConfig backs the failed-login limiter. An empty Addr disables it.
type RedisConfig struct {
	Addr             string   `env:"REDIS_ADDR"`
	Password         string   `env:"REDIS_PASSWORD"`
	DB               int      `env:"REDIS_DB,           default=0"`
	LoginMaxAttempts int      `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// RateLimitConfig is the per-IP request limit on the auth routes.
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,   default=10"`
	Burst int     `env:"RATE_LIMIT_BURST, default=20"`
}

// SeedConfig is only read by cmd/seed.
type SeedConfig struct {
	SuperuserUsername string `env:"SEED_SUPERUSER_USERNAME"`
	SuperuserPassword string `env:"SEED_SUPERUSER_PASSWORD"`
}

// Development reports whether the service runs in a local environment.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
// A missing JWT_SECRET or MONGO_URI is an error.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is blank")
	}
	return &cfg, nil
}

// Duration accepts Go duration strings plus a day suffix ("7d"), the format
// used by JWT_EXPIRES_IN.
type Duration time.Duration

func (d *Duration) EnvDecode(val string) error {
	val = strings.TrimSpace(val)
	if days, ok := strings.CutSuffix(val, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid duration %q", val)
		}
		*d = Duration(time.Duration(n) * 24 * time.Hour)
		return nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", val, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

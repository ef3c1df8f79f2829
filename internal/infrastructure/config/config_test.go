package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"MONGO_URI":  "mongodb://localhost:27017",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Port != "5001" {
		t.Fatalf("expected default port 5001, got %s", cfg.Port)
	}
	if cfg.TokenTTL.Std() != 7*24*time.Hour {
		t.Fatalf("expected 7d ttl, got %s", cfg.TokenTTL.Std())
	}
	if cfg.Mongo.Database != "hopebloom" {
		t.Fatalf("unexpected database: %s", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.LoginMaxAttempts != 5 || cfg.Redis.LoginWindow.Std() != 15*time.Minute {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.RateLimit.RPS != 10 || cfg.RateLimit.Burst != 20 {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if !cfg.Development() {
		t.Fatalf("expected development by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"MONGO_URI":      "mongodb://db:27017",
		"JWT_EXPIRES_IN": "90m",
		"PORT":           "8080",
		"ENV":            "production",
		"REDIS_ADDR":     "redis:6379",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.TokenTTL.Std() != 90*time.Minute {
		t.Fatalf("expected 90m ttl, got %s", cfg.TokenTTL.Std())
	}
	if cfg.Port != "8080" || cfg.Development() || cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFrom_RequiredValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {"MONGO_URI": "mongodb://localhost:27017"},
		"blank secret":   {"JWT_SECRET": "   ", "MONGO_URI": "mongodb://localhost:27017"},
		"missing mongo":  {"JWT_SECRET": "s3cret"},
	}
	for name, env := range cases {
		if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDuration_EnvDecode(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":  7 * 24 * time.Hour,
		"0d":  0,
		"12h": 12 * time.Hour,
		"30s": 30 * time.Second,
	}
	for in, want := range cases {
		var d Duration
		if err := d.EnvDecode(in); err != nil {
			t.Fatalf("EnvDecode(%q): %v", in, err)
		}
		if d.Std() != want {
			t.Fatalf("EnvDecode(%q) = %s, want %s", in, d.Std(), want)
		}
	}

	for _, bad := range []string{"xd", "-1d", "soon"} {
		var d Duration
		if err := d.EnvDecode(bad); err == nil {
			t.Fatalf("EnvDecode(%q): expected error", bad)
		}
	}
}

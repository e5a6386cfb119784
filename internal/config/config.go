package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DevSecretKey is used when SECRET_KEY is not set. Never run production with it.
const DevSecretKey = "development-insecure-secret-change-me"

// Config holds every option the server and the admin tool read from the environment.
type Config struct {
	Port             string        `env:"PORT, default=8008"`
	SecretKey        string        `env:"SECRET_KEY, default=development-insecure-secret-change-me"`
	DatabaseURL      string        `env:"DATABASE_URL, default=lms.db"`
	CoursesDir       string        `env:"COURSES_DIR, default=courses"`
	RegistrationOpen bool          `env:"REGISTRATION_OPEN, default=true"`
	SessionTTL       time.Duration `env:"SESSION_TTL, default=24h"`
	CookieSecure     bool          `env:"COOKIE_SECURE, default=false"`
	IdentityCacheTTL time.Duration `env:"IDENTITY_CACHE_TTL, default=30s"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves the configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("config: SECRET_KEY must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("config: SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// UsesDevSecret reports whether the built-in development secret is in effect.
func (c *Config) UsesDevSecret() bool {
	return c.SecretKey == DevSecretKey
}

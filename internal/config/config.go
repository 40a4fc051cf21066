package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"` // development, production

	// Database
	DatabaseURL string `env:"DATABASE_URL"`

	// Identity provider
	IdentityProviderURL string `env:"IDENTITY_PROVIDER_URL"`

	// Where the route gate sends unauthenticated browser sessions.
	SignInPath string `env:"SIGN_IN_PATH" envDefault:"/sign-in"`

	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"false"`

	// First admin, created on startup when the admins table is empty.
	// AuthID links the record to the identity provider account.
	SeedAdminEmail  string `env:"SEED_ADMIN_EMAIL"`
	SeedAdminAuthID string `env:"SEED_ADMIN_AUTH_ID"`
}

func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Flags override env vars for the values you change most when running locally.
	fs := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "Server port")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development, production)")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string")
	fs.StringVar(&cfg.IdentityProviderURL, "identity-url", cfg.IdentityProviderURL, "Identity provider base URL")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.IdentityProviderURL == "" {
		return fmt.Errorf("IDENTITY_PROVIDER_URL is required")
	}

	if c.SignInPath == "" || c.SignInPath[0] != '/' {
		return fmt.Errorf("SIGN_IN_PATH must be an absolute path")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

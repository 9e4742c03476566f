// Package config loads environment-driven settings, with an optional .env
// file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/omsp.db"`

	// SecretKey signs the session cookie. The default only exists so a
	// first local run works; any real deployment overrides it.
	SecretKey    string `env:"SECRET_KEY" envDefault:"omsp-dev-secret-change-me"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	Timezone string `env:"TIMEZONE" envDefault:"Asia/Manila"`

	// DefaultMonthlyBudget is the peso allocation a fresh ledger row opens
	// with.
	DefaultMonthlyBudget string `env:"DEFAULT_MONTHLY_BUDGET" envDefault:"70000"`

	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@omsp.gov.ph"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"change-me-now"`

	// SweepSchedule is the cron expression for the nightly rollup and
	// term-warning pass.
	SweepSchedule string `env:"SWEEP_SCHEDULE" envDefault:"0 1 * * *"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

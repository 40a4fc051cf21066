// Command migrate applies the embedded schema migrations and exits.
// Useful for running migrations out-of-band, e.g. in a deploy step.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/onemarketph/backoffice/migrations"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	u, err := url.Parse(dbURL)
	if err != nil {
		slog.Error("invalid DATABASE_URL", "err", err)
		os.Exit(1)
	}
	u.Scheme = "pgx5"

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		slog.Error("failed to load migrations", "err", err)
		os.Exit(1)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, u.String())
	if err != nil {
		slog.Error("failed to connect", "err", err)
		os.Exit(1)
	}
	defer m.Close()

	if len(os.Args) > 1 && os.Args[1] == "down" {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			slog.Error("migrate down failed", "err", err)
			os.Exit(1)
		}
		fmt.Println("rolled back")
		return
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		slog.Error("migrate up failed", "err", err)
		os.Exit(1)
	}
	fmt.Println("migrations complete")
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/onemarketph/backoffice/internal/config"
	"github.com/onemarketph/backoffice/internal/identity"
	"github.com/onemarketph/backoffice/internal/mailer"
	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
	"github.com/onemarketph/backoffice/internal/workflow"
	"github.com/onemarketph/backoffice/migrations"
)

type App struct {
	config   *config.Config
	logger   *slog.Logger
	db       *pgxpool.Pool
	identity *identity.Client
	mailer   *mailer.Mailer

	adminStore    *store.AdminStore
	riderStore    *store.RiderStore
	productStore  *store.ProductStore
	campaignStore *store.CampaignProductStore
	categoryStore *store.CategoryStore

	riders    *workflow.RiderService
	products  *workflow.ProductService
	campaigns *workflow.CampaignService
}

func (app *App) Close() {
	app.db.Close()
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	if err := runMigrations(cfg.DatabaseURL); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	adminStore := store.NewAdminStore(pool)
	riderStore := store.NewRiderStore(pool)
	productStore := store.NewProductStore(pool)
	campaignStore := store.NewCampaignProductStore(pool)
	categoryStore := store.NewCategoryStore(pool)

	seededAdmin, err := seedFirstAdmin(ctx, cfg, adminStore)
	if err != nil {
		logger.Warn("admin seed failed", "err", err)
	}

	m := mailer.New(nil)
	if seededAdmin != nil {
		m.Reconfigure(mailer.NewConfigFromAdmin(seededAdmin))
	}
	notifier := mailer.NewStatusNotifier(m)

	return &App{
		config:        cfg,
		logger:        logger,
		db:            pool,
		identity:      identity.NewClient(cfg.IdentityProviderURL),
		mailer:        m,
		adminStore:    adminStore,
		riderStore:    riderStore,
		productStore:  productStore,
		campaignStore: campaignStore,
		categoryStore: categoryStore,
		riders:        workflow.NewRiderService(riderStore, notifier, logger),
		products:      workflow.NewProductService(productStore, notifier, logger),
		campaigns:     workflow.NewCampaignService(campaignStore, logger),
	}, nil
}

func (app *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("server failed", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}

// seedFirstAdmin creates the configured admin when the table is empty, and
// returns whichever admin should configure the mailer (the existing record
// when one is already present).
func seedFirstAdmin(ctx context.Context, cfg *config.Config, admins *store.AdminStore) (*model.Admin, error) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminAuthID == "" {
		return nil, nil
	}

	n, err := admins.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		id := uuid.NewString()
		if err := admins.Create(ctx, id, cfg.SeedAdminEmail, cfg.SeedAdminAuthID); err != nil {
			return nil, err
		}
	}

	admin, err := admins.GetByAuthID(ctx, cfg.SeedAdminAuthID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return admin, err
}

func runMigrations(databaseURL string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	// The pgx migrate driver registers itself under the pgx5:// scheme.
	u, err := url.Parse(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	u.Scheme = "pgx5"

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, u.String())
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo

	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}

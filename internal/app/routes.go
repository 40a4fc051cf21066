package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/onemarketph/backoffice/internal/handler"
	"github.com/onemarketph/backoffice/internal/middleware"
)

// Paths reachable without a session. The sign-in page itself must stay
// public or the gate's redirect would loop.
var publicPrefixes = []string{
	"/sign-in",
	"/api/health",
}

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Health check
	r.Get("/api/health", handler.Health(app.db))

	// Sign-in lives with the identity provider; this stub keeps the gate's
	// redirect target resolvable when the service runs standalone.
	r.Get(app.config.SignInPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!doctype html><title>Sign in</title><p>Sign in with your 1 Market Philippines admin account.</p>"))
	})

	// Admin session endpoints authenticate themselves with a bearer token.
	adminHandler := handler.NewAdminHandler(app.logger, app.adminStore, app.identity)
	r.Get("/api/admin", adminHandler.Get)
	r.Post("/api/admin/sign-out", adminHandler.SignOut)

	// Everything else requires a valid session cookie.
	gate := middleware.NewGate(publicPrefixes, app.config.SignInPath, app.identity, app.adminStore)
	r.Group(func(r chi.Router) {
		r.Use(gate.Middleware)

		riderHandler := handler.NewRiderHandler(app.logger, app.riders, app.riderStore)
		r.Get("/api/riders", riderHandler.List)
		r.Patch("/api/riders/{id}/status", riderHandler.ChangeStatus)
		r.Delete("/api/riders/{id}", riderHandler.Delete)

		productHandler := handler.NewProductHandler(app.logger, app.products, app.productStore)
		r.Get("/api/products", productHandler.List)
		r.Get("/api/products/export", productHandler.Export)
		r.Patch("/api/products/{id}/status", productHandler.ChangeStatus)
		r.Delete("/api/products/{id}", productHandler.Delete)
		r.Post("/api/products/bulk/status", productHandler.BulkUpdateStatus)
		r.Post("/api/products/bulk/delete", productHandler.BulkDelete)

		campaignHandler := handler.NewCampaignHandler(app.logger, app.campaigns, app.campaignStore)
		r.Get("/api/campaign-products", campaignHandler.List)
		r.Patch("/api/campaign-products/{id}/status", campaignHandler.ChangeStatus)

		categoryHandler := handler.NewCategoryHandler(app.logger, app.categoryStore)
		r.Get("/api/categories", categoryHandler.List)
		r.Post("/api/categories", categoryHandler.Create)
		r.Patch("/api/categories/{id}", categoryHandler.Rename)
		r.Delete("/api/categories/{id}", categoryHandler.Delete)

		settingsHandler := handler.NewSettingsHandler(app.logger, app.adminStore, app.mailer)
		r.Patch("/api/admin/settings", settingsHandler.Update)
		r.Post("/api/admin/settings/test-email", settingsHandler.TestEmail)
	})

	return r
}

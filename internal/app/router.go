package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/velora-studio/velora/internal/appointments"
	"github.com/velora-studio/velora/internal/auth"
	"github.com/velora-studio/velora/internal/catalog"
	"github.com/velora-studio/velora/internal/customers"
	"github.com/velora-studio/velora/internal/insights"
	"github.com/velora-studio/velora/internal/media"
	"github.com/velora-studio/velora/internal/observability"
	"github.com/velora-studio/velora/internal/orders"
	"github.com/velora-studio/velora/internal/shared"
	"github.com/velora-studio/velora/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	AuthHandler        *auth.Handler
	CustomerHandler    *customers.Handler
	CatalogHandler     *catalog.Handler
	OrderHandler       *orders.Handler
	AppointmentHandler *appointments.Handler
	InsightsHandler    *insights.Handler
	MediaHandler       *media.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Velora defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Admin API. Everything below requires an authenticated session.
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Route("/customers", params.CustomerHandler.MountRoutes)
		r.Route("/catalog", params.CatalogHandler.MountRoutes)
		r.Route("/orders", params.OrderHandler.MountRoutes)
		r.Route("/appointments", params.AppointmentHandler.MountRoutes)
		r.Route("/insights", params.InsightsHandler.MountRoutes)
		r.Route("/media", params.MediaHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// Public marketing page plus static assets.
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.FileServer(http.FS(staticFS))
		r.Handle("/static/*", http.StripPrefix("/static/", staticCacheHandler(fileServer)))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFileFS(w, r, staticFS, "index.html")
		})
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

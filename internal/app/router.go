package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/noah-isme/sentinel/internal/audit"
	"github.com/noah-isme/sentinel/internal/auth"
	"github.com/noah-isme/sentinel/internal/rbac"
	"github.com/noah-isme/sentinel/internal/roles"
	"github.com/noah-isme/sentinel/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthHandler    *auth.Handler
	UsersHandler   *users.Handler
	RolesHandler   *roles.Handler
	AuditHandler   *audit.Handler
	RBACMiddleware rbac.Middleware
}

// NewRouter constructs the chi.Router with Sentinel defaults. Everything
// except /healthz and /auth/login sits behind the authentication gate;
// per-route role gates are mounted by the handlers themselves.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
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

	r.Group(func(r chi.Router) {
		r.Use(params.RBACMiddleware.Authenticate)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/logs", params.AuditHandler.MountRoutes)
		r.Get("/dashboard/stats", params.UsersHandler.DashboardStats)
	})

	return r
}

package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/posest/internal/auth"
	"github.com/erazemk/posest/internal/metrics"
	"github.com/erazemk/posest/internal/model"
	"github.com/erazemk/posest/internal/service"
	"github.com/erazemk/posest/internal/store"
)

// Options configures the router.
type Options struct {
	// BasePath prefixes every API route, e.g. "/api".
	BasePath string
	// Clock overrides the wall clock used for time-derived fields.
	Clock service.Clock
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, issuer *auth.Issuer, opts Options) http.Handler {
	mux := http.NewServeMux()
	base := strings.TrimRight(opts.BasePath, "/")

	itemStore := &store.ItemStore{DB: db}
	items := service.NewItemService(itemStore)
	checkups := service.NewCheckupService(&store.CheckupStore{DB: db})
	if opts.Clock != nil {
		items.Now = opts.Clock
		checkups.Now = opts.Clock
	}

	authHandler := &AuthHandler{DB: db, Issuer: issuer}
	usersHandler := &UsersHandler{DB: db, Items: itemStore}
	itemsHandler := &ItemsHandler{Items: items, Pictures: itemStore, BasePath: base}
	checkupsHandler := &CheckupsHandler{Checkups: checkups}

	authMW := AuthMiddleware(issuer, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	route := func(method, path string) string {
		return method + " " + base + path
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return authMW(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authMW(requireAdmin(h))
	}

	// Public.
	mux.HandleFunc(route("POST", "/auth/login"), authHandler.Login)
	mux.HandleFunc("GET /healthz", health(db))
	mux.Handle("GET /metrics", metrics.Handler())

	// Session.
	mux.Handle(route("POST", "/auth/logout"), authed(authHandler.Logout))
	mux.Handle(route("PUT", "/auth/password"), authed(authHandler.ChangePassword))

	// Users (admin only).
	mux.Handle(route("GET", "/users"), admin(usersHandler.List))
	mux.Handle(route("POST", "/users"), admin(usersHandler.Create))
	mux.Handle(route("DELETE", "/users/{id}"), admin(usersHandler.Delete))

	// Items, scoped to the current user.
	mux.Handle(route("GET", "/items"), authed(itemsHandler.List))
	mux.Handle(route("POST", "/items"), authed(itemsHandler.Create))
	mux.Handle(route("GET", "/items/{id}"), authed(itemsHandler.Get))
	mux.Handle(route("PUT", "/items/{id}"), authed(itemsHandler.Update))
	mux.Handle(route("DELETE", "/items/{id}"), authed(itemsHandler.Delete))
	mux.Handle(route("PUT", "/items/{id}/picture"), authed(itemsHandler.UploadPicture))
	mux.Handle(route("GET", "/items/{id}/picture"), authed(itemsHandler.GetPicture))

	// Checkups, scoped to the current user.
	mux.Handle(route("GET", "/checkups"), authed(checkupsHandler.List))
	mux.Handle(route("POST", "/checkups"), authed(checkupsHandler.Create))
	mux.Handle(route("GET", "/checkups/{id}"), authed(checkupsHandler.Get))
	mux.Handle(route("PUT", "/checkups/{id}/interval"), authed(checkupsHandler.UpdateInterval))
	mux.Handle(route("POST", "/checkups/{id}/complete"), authed(checkupsHandler.Complete))

	return LoggingMiddleware(mux)
}

func health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			jsonError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

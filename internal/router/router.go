package router

import (
	"net/http"

	"github.com/blogvolt/backend/internal/account"
	"github.com/blogvolt/backend/internal/admin"
	"github.com/blogvolt/backend/internal/auth"
	"github.com/blogvolt/backend/internal/generation"
	"github.com/blogvolt/backend/internal/history"
	"github.com/blogvolt/backend/internal/keywords"
	"github.com/blogvolt/backend/internal/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth       *auth.Handler
	Generation *generation.Handler
	Keywords   *keywords.Handler
	History    *history.Handler
	Account    *account.Handler
	Admin      *admin.Handler
}

// New returns an http.Handler serving the API under /api/v1. Everything past
// the auth endpoints requires a valid token; /generate additionally passes
// the daily-quota gate, and /admin requires the admin grade.
func New(h Handlers, tokens middleware.TokenValidator, users middleware.UserLookup) http.Handler {
	mux := http.NewServeMux()
	base := "/api/v1"

	authed := middleware.JWTAuth(tokens, users)

	mux.HandleFunc("POST "+base+"/auth/register", h.Auth.Register)
	mux.HandleFunc("POST "+base+"/auth/login", h.Auth.Login)

	mux.Handle("POST "+base+"/generate",
		authed(middleware.QuotaCheck(http.HandlerFunc(h.Generation.Generate))))

	mux.Handle("POST "+base+"/keywords/analyze", authed(http.HandlerFunc(h.Keywords.Analyze)))
	mux.Handle("POST "+base+"/keywords/density", authed(http.HandlerFunc(h.Keywords.Density)))

	mux.Handle("GET "+base+"/posts", authed(http.HandlerFunc(h.History.List)))
	mux.Handle("DELETE "+base+"/posts/{id}", authed(http.HandlerFunc(h.History.Delete)))
	mux.Handle("POST "+base+"/posts/delete-bulk", authed(http.HandlerFunc(h.History.DeleteBulk)))

	mux.Handle("GET "+base+"/account/me", authed(http.HandlerFunc(h.Account.GetMe)))
	mux.Handle("PATCH "+base+"/account/settings", authed(http.HandlerFunc(h.Account.UpdateSettings)))
	mux.Handle("GET "+base+"/volt-ledger", authed(http.HandlerFunc(h.Account.ListVoltLedger)))

	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(fn))
	}
	mux.Handle("GET "+base+"/admin/users", adminOnly(h.Admin.ListUsers))
	mux.Handle("PATCH "+base+"/admin/users/{id}/grade", adminOnly(h.Admin.SetGrade))
	mux.Handle("POST "+base+"/admin/users/{id}/volts", adminOnly(h.Admin.GrantVolts))
	mux.Handle("GET "+base+"/admin/generation-logs", adminOnly(h.Admin.ListLogs))

	return mux
}

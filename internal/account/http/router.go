// Package http exposes the account operations over HTTP: one route per
// operation, JSON in and out, the refresh token in an HttpOnly cookie and
// the access token as a Bearer header.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wishlane/accounts/internal/account/service"
	"github.com/wishlane/accounts/pkg/httpx"
	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/jwtx"
	"github.com/wishlane/accounts/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	Accounts *service.AccountService

	issuer *jwtx.Issuer
	bundle *i18nx.Bundle
	logger *slog.Logger

	// clientURL is where Activate redirects browsers after consuming a link.
	clientURL string

	// refreshTTL bounds the refresh cookie lifetime.
	refreshTTL time.Duration

	// secureCookies marks the refresh cookie Secure; off for local dev.
	secureCookies bool
}

func NewRouter(
	accounts *service.AccountService,
	issuer *jwtx.Issuer,
	bundle *i18nx.Bundle,
	logger *slog.Logger,
	clientURL string,
	refreshTTL time.Duration,
	secureCookies bool,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		Accounts:      accounts,
		issuer:        issuer,
		bundle:        bundle,
		logger:        logger,
		clientURL:     clientURL,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every handler on the mux.
func (rt *Router) ApplyRoutes() {
	authn := httpx.AuthnMiddleware(rt.issuer, rt.unauthorized)

	// Credential endpoints take the tightest rate limit.
	rt.Mux.Handle("POST /registration",
		httpx.Chain(http.HandlerFunc(rt.handleRegistration), httpx.RateLimitByIP(httpx.StrictLimit)))
	rt.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(rt.handleLogin), httpx.RateLimitByIP(httpx.StrictLimit)))
	rt.Mux.Handle("POST /google-auth",
		httpx.Chain(http.HandlerFunc(rt.handleGoogleAuth), httpx.RateLimitByIP(httpx.StrictLimit)))
	rt.Mux.Handle("PUT /forgot-password",
		httpx.Chain(http.HandlerFunc(rt.handleForgotPassword), httpx.RateLimitByIP(httpx.StrictLimit)))
	rt.Mux.Handle("PUT /change-forgotten-password",
		httpx.Chain(http.HandlerFunc(rt.handleChangeForgottenPassword), httpx.RateLimitByIP(httpx.StrictLimit)))

	rt.Mux.Handle("POST /logout", http.HandlerFunc(rt.handleLogout))
	rt.Mux.Handle("GET /refresh",
		httpx.Chain(http.HandlerFunc(rt.handleRefresh), httpx.RateLimitByIP(httpx.ModerateLimit)))

	rt.Mux.Handle("GET /activate/{link}", http.HandlerFunc(rt.handleActivate))
	rt.Mux.Handle("GET /get-activation-link/{userId}",
		httpx.Chain(http.HandlerFunc(rt.handleGetActivationLink), httpx.RateLimitByIP(httpx.ModerateLimit)))

	// Authenticated surface.
	rt.Mux.Handle("PUT /change-password",
		httpx.Chain(http.HandlerFunc(rt.handleChangePassword), authn))
	rt.Mux.Handle("PUT /lang",
		httpx.Chain(http.HandlerFunc(rt.handleChangeLang), authn))
	rt.Mux.Handle("POST /user/delete",
		httpx.Chain(http.HandlerFunc(rt.handleDeleteUser), authn))
	rt.Mux.Handle("GET /user",
		httpx.Chain(http.HandlerFunc(rt.handleGetUser), authn))
	rt.Mux.Handle("GET /users",
		httpx.Chain(http.HandlerFunc(rt.handleGetUsers), authn))

	rt.Mux.Handle("GET /all-users",
		httpx.Chain(http.HandlerFunc(rt.handleGetAllUsers), httpx.RateLimitByIP(httpx.LenientLimit)))
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/wishlane/accounts/pkg/jwtx"
	"github.com/wishlane/accounts/pkg/slogx"
)

// AuthnMiddleware validates the Bearer access token and injects the caller's
// identity into the request context. onUnauthorized renders the localized
// 401 body so this package stays free of translation concerns.
func AuthnMiddleware(issuer *jwtx.Issuer, onUnauthorized http.HandlerFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				unauthorized(w, r, onUnauthorized)
				return
			}

			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
			claims := issuer.ValidateAccess(raw)
			if claims == nil {
				log.Warn("access token validation failed")
				unauthorized(w, r, onUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CtxKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, CtxKeyEmail, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, onUnauthorized http.HandlerFunc) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	if onUnauthorized != nil {
		onUnauthorized(w, r)
		return
	}
	w.WriteHeader(http.StatusUnauthorized)
}

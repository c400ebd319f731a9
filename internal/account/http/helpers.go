package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wishlane/accounts/internal/account/apierr"
	"github.com/wishlane/accounts/pkg/httpx"
	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/slogx"
)

// refreshCookieName matches what the web client already stores.
const refreshCookieName = "refreshToken"

// translator resolves the request language from Accept-Language. The bundle
// falls back to the default language for anything it does not carry.
func (rt *Router) translator(r *http.Request) i18nx.Translator {
	return rt.bundle.Translator(r.Header.Get("Accept-Language"))
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps domain errors onto the wire: BadRequest→400,
// Unauthorized→401, everything else a logged 500 with a generic message.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr, ok := apierr.From(err); ok {
		httpx.WriteJSON(w, apiErr.Status, apiErr)
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	t := rt.translator(r)
	httpx.WriteJSON(w, http.StatusInternalServerError, apierr.Error{
		Message: t("unexpected_error", nil),
	})
}

// badRequest renders a 400 for malformed request bodies.
func (rt *Router) badRequest(w http.ResponseWriter, r *http.Request) {
	t := rt.translator(r)
	httpx.WriteJSON(w, http.StatusBadRequest, apierr.BadRequest(t("unexpected_error", nil)))
}

// unauthorized is the AuthnMiddleware failure callback.
func (rt *Router) unauthorized(w http.ResponseWriter, r *http.Request) {
	t := rt.translator(r)
	httpx.WriteJSON(w, http.StatusUnauthorized, apierr.Unauthorized(t("not_auth", nil)))
}

func (rt *Router) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(rt.refreshTTL / time.Second),
		HttpOnly: true,
		Secure:   rt.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (rt *Router) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   rt.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func refreshTokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

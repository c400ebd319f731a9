package http

import (
	"net/http"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/service"
	"github.com/wishlane/accounts/pkg/httpx"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
	Lang  string `json:"lang"`
}

func (rt *Router) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	email, err := rt.Accounts.ForgotPassword(r.Context(), rt.translator(r), service.ForgotPasswordRequest{
		Email: req.Email,
		Lang:  domain.ParseLang(req.Lang),
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"email": email})
}

type changeForgottenPasswordRequest struct {
	Link     string `json:"link"`
	Password string `json:"password"`
}

func (rt *Router) handleChangeForgottenPassword(w http.ResponseWriter, r *http.Request) {
	var req changeForgottenPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	err := rt.Accounts.ChangeForgottenPassword(r.Context(), rt.translator(r), service.ChangeForgottenPasswordRequest{
		ResetLink:   req.Link,
		NewPassword: req.Password,
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (rt *Router) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	err := rt.Accounts.ChangePassword(r.Context(), rt.translator(r), service.ChangePasswordRequest{
		UserID:       httpx.UserIDFromContext(r.Context()),
		OldPassword:  req.OldPassword,
		NewPassword:  req.NewPassword,
		RefreshToken: refreshTokenFromRequest(r),
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	// The session is revoked along with the old password.
	rt.clearRefreshCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type changeLangRequest struct {
	Lang string `json:"lang"`
}

func (rt *Router) handleChangeLang(w http.ResponseWriter, r *http.Request) {
	var req changeLangRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	dto, err := rt.Accounts.ChangeLang(r.Context(), rt.translator(r),
		httpx.UserIDFromContext(r.Context()), domain.ParseLang(req.Lang))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": dto})
}

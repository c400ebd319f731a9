package http

import (
	"net/http"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/service"
	"github.com/wishlane/accounts/pkg/httpx"
)

// authResponse is the session payload shared by registration, login, Google
// sign-in and refresh. The refresh token also travels in the cookie; it is
// repeated in the body for the mobile client, which has no cookie jar.
type authResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         domain.UserDTO `json:"user"`
}

type utmPayload struct {
	Source   string `json:"utmSource"`
	Medium   string `json:"utmMedium"`
	Campaign string `json:"utmCampaign"`
	Content  string `json:"utmContent"`
	Term     string `json:"utmTerm"`
}

func (p utmPayload) toDomain() domain.UTM {
	return domain.UTM{
		Source:   p.Source,
		Medium:   p.Medium,
		Campaign: p.Campaign,
		Content:  p.Content,
		Term:     p.Term,
	}
}

type registrationRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Lang      string `json:"lang"`
	utmPayload
}

func (rt *Router) handleRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	res, err := rt.Accounts.Register(r.Context(), rt.translator(r), service.RegisterRequest{
		FirstName: req.FirstName,
		Email:     req.Email,
		Password:  req.Password,
		Lang:      domain.ParseLang(req.Lang),
		UTM:       req.toDomain(),
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	rt.setRefreshCookie(w, res.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, authResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         res.User,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Lang     string `json:"lang"`
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	res, err := rt.Accounts.Login(r.Context(), rt.translator(r), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		Lang:     domain.ParseLang(req.Lang),
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	rt.setRefreshCookie(w, res.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, authResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         res.User,
	})
}

type googleAuthRequest struct {
	Email       string `json:"email"`
	Lang        string `json:"lang"`
	IsActivated bool   `json:"isActivated"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Avatar      string `json:"avatar"`
	GuestWishes string `json:"guestWishes"`
	utmPayload
}

type googleAuthResponse struct {
	authResponse
	Wishes []domain.Wish `json:"wishes,omitempty"`
}

func (rt *Router) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req googleAuthRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	res, err := rt.Accounts.GoogleAuthorization(r.Context(), rt.translator(r), service.GoogleAuthRequest{
		Email:       req.Email,
		Lang:        domain.ParseLang(req.Lang),
		IsActivated: req.IsActivated,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Avatar:      req.Avatar,
		GuestWishes: req.GuestWishes,
		UTM:         req.toDomain(),
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	rt.setRefreshCookie(w, res.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, googleAuthResponse{
		authResponse: authResponse{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
			User:         res.User,
		},
		Wishes: res.Wishes,
	})
}

func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if token != "" {
		if err := rt.Accounts.Logout(r.Context(), token); err != nil {
			rt.writeError(w, r, err)
			return
		}
	}

	rt.clearRefreshCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type refreshResponse struct {
	authResponse
	Stats *domain.AdminStats `json:"stats,omitempty"`
}

func (rt *Router) handleRefresh(w http.ResponseWriter, r *http.Request) {
	res, err := rt.Accounts.Refresh(r.Context(), rt.translator(r), refreshTokenFromRequest(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	rt.setRefreshCookie(w, res.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, refreshResponse{
		authResponse: authResponse{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
			User:         res.User,
		},
		Stats: res.Stats,
	})
}

package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	accounthttp "github.com/wishlane/accounts/internal/account/http"
	"github.com/wishlane/accounts/internal/account/mail"
	"github.com/wishlane/accounts/internal/account/service"
	"github.com/wishlane/accounts/internal/account/storage"
	"github.com/wishlane/accounts/internal/account/store/drivers/sqlite"
	"github.com/wishlane/accounts/pkg/cryptox"
	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

type env struct {
	router *accounthttp.Router
	codec  *cryptox.TransportCodec
}

func newEnv(t *testing.T) *env {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.DiscardHandler)
	issuer := jwtx.NewIssuer("access-secret", "refresh-secret")
	codec := cryptox.NewTransportCodec("transport-secret")
	bundle := i18nx.NewBundle()

	svc := &service.AccountService{
		Store:            s,
		Issuer:           issuer,
		Mailer:           mail.NewLogMailer(logger),
		Files:            storage.Noop{},
		Codec:            codec,
		LinkTTL:          24 * time.Hour,
		PasswordHashCost: 4,
		APIURL:           "https://api.example.com",
		ClientURL:        "https://app.example.com",
	}

	router := accounthttp.NewRouter(svc, issuer, bundle, logger,
		"https://app.example.com", 30*24*time.Hour, false)
	router.ApplyRoutes()

	return &env{router: router, codec: codec}
}

func (e *env) encode(t *testing.T, password string) string {
	t.Helper()
	enc, err := e.codec.Encode(password)
	require.NoError(t, err)
	return enc
}

func (e *env) do(t *testing.T, method, path string, body any, mod func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Accept-Language", "en")
	if mod != nil {
		mod(req)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *env) register(t *testing.T, email, password string) map[string]any {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/registration", map[string]string{
		"firstName": "Test",
		"email":     email,
		"password":  e.encode(t, password),
		"lang":      "en",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refreshToken" {
			return c
		}
	}
	t.Fatal("no refreshToken cookie in response")
	return nil
}

func TestRegistrationSetsSessionCookie(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/registration", map[string]string{
		"firstName": "Alice",
		"email":     "alice@example.com",
		"password":  e.encode(t, "s3cret"),
		"lang":      "en",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := refreshCookie(t, rec)
	require.True(t, c.HttpOnly)
	require.NotEmpty(t, c.Value)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out["accessToken"])
	require.Equal(t, c.Value, out["refreshToken"])

	user := out["user"].(map[string]any)
	require.Equal(t, "alice@example.com", user["email"])
	require.Equal(t, false, user["isActivated"])
}

func TestLoginWrongPasswordIsLocalized400(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice@example.com", "s3cret")

	rec := e.do(t, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": e.encode(t, "wrong"),
	}, func(r *http.Request) { r.Header.Set("Accept-Language", "ua") })
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "Невірний пароль.", out["message"])
}

func TestRefreshRotatesCookie(t *testing.T) {
	e := newEnv(t)
	out := e.register(t, "alice@example.com", "s3cret")
	oldToken := out["refreshToken"].(string)

	rec := e.do(t, http.MethodGet, "/refresh", nil, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "refreshToken", Value: oldToken})
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := refreshCookie(t, rec)
	require.NotEqual(t, oldToken, c.Value)

	// The rotated-out token is now rejected.
	rec = e.do(t, http.MethodGet, "/refresh", nil, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "refreshToken", Value: oldToken})
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/refresh", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteRequiresBearer(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/user", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "The user is not authorized.", out["message"])
}

func TestGetUserWithBearer(t *testing.T) {
	e := newEnv(t)
	out := e.register(t, "alice@example.com", "s3cret")
	access := out["accessToken"].(string)

	rec := e.do(t, http.MethodGet, "/user", nil, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+access)
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	user := body["user"].(map[string]any)
	require.Equal(t, "alice@example.com", user["email"])
}

func TestActivateRedirects(t *testing.T) {
	e := newEnv(t)
	out := e.register(t, "alice@example.com", "s3cret")
	userID := out["user"].(map[string]any)["id"].(string)

	// Fetch the pending link through the resend endpoint's side effects is
	// not possible over HTTP, so read it via a fresh login-level API: the
	// activation link is only in the store. Use the service directly.
	user, err := e.router.Accounts.Store.Users().GetUserByID(t.Context(), userID)
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/activate/"+user.ActivationLink, nil, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "https://app.example.com/en/main", rec.Header().Get("Location"))
}

func TestActivateUnknownLink(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/activate/definitely-not-a-link", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUserFlow(t *testing.T) {
	e := newEnv(t)
	out := e.register(t, "alice@example.com", "s3cret")
	access := out["accessToken"].(string)

	rec := e.do(t, http.MethodPost, "/user/delete", map[string]string{
		"email":    "alice@example.com",
		"password": e.encode(t, "s3cret"),
	}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+access)
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Logging in again now fails: the account is gone.
	rec = e.do(t, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": e.encode(t, "s3cret"),
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllUsersIsPublic(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice@example.com", "s3cret")
	e.register(t, "bob@example.com", "s3cret")

	rec := e.do(t, http.MethodGet, "/all-users?page=1&limit=10", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["users"], 2)
}

func TestChangeLang(t *testing.T) {
	e := newEnv(t)
	out := e.register(t, "alice@example.com", "s3cret")
	access := out["accessToken"].(string)

	rec := e.do(t, http.MethodPut, "/lang", map[string]string{"lang": "ru"},
		func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+access) })
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ru", body["user"].(map[string]any)["lang"])
}

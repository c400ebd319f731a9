// Package service implements the account session lifecycle: registration,
// activation, login and Google sign-in, token refresh and rotation, password
// management, language preference, account deletion and the paginated user
// listings. Handlers pass plain request structs in and get plain results or
// typed errors back; all user-facing text is resolved through the Translator
// supplied with the request.
package service

import (
	"context"
	"time"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/mail"
	"github.com/wishlane/accounts/internal/account/storage"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/jwtx"
)

const (
	// DefaultLinkTTL bounds activation and password-reset links.
	DefaultLinkTTL = 24 * time.Hour

	// DefaultPageLimit applies when a listing request carries no limit.
	DefaultPageLimit = 10
)

// AccountService orchestrates the account operations against the store and
// the external collaborators. Construct it with all fields set; none are
// optional except Files, which defaults to a no-op via storage.Noop in main.
type AccountService struct {
	Store  store.Store
	Issuer *jwtx.Issuer
	Mailer mail.Mailer
	Files  storage.ObjectStorage

	// Codec undoes the client-side password obfuscation before hashing.
	Codec PasswordCodec

	// LinkTTL is the lifetime of activation and password-reset links.
	LinkTTL time.Duration

	// PasswordHashCost is the bcrypt cost applied to new password hashes.
	PasswordHashCost int

	// APIURL and ClientURL are the public bases embedded into emails:
	// activation links point at the API, reset links at the client app.
	APIURL    string
	ClientURL string

	// FeaturedUserID is the promotional account spliced into listings.
	// Empty disables the splice.
	FeaturedUserID string

	// StatsOnRefresh controls whether Refresh returns the admin counters.
	StatsOnRefresh bool
}

// PasswordCodec reverses the transport obfuscation on inbound passwords.
type PasswordCodec interface {
	Decode(payload string) (string, error)
}

// AuthResult is the payload of every operation that establishes a session.
type AuthResult struct {
	Tokens jwtx.TokenPair
	User   domain.UserDTO
}

func (s *AccountService) linkTTL() time.Duration {
	if s.LinkTTL > 0 {
		return s.LinkTTL
	}
	return DefaultLinkTTL
}

// issueSession mints a fresh token pair and persists the refresh token,
// overwriting any previous session for the user.
func (s *AccountService) issueSession(ctx context.Context, u domain.User) (jwtx.TokenPair, error) {
	pair, err := s.Issuer.Issue(u.ID, u.Email)
	if err != nil {
		return jwtx.TokenPair{}, err
	}
	if err := s.Store.RefreshTokens().Save(ctx, u.ID, pair.RefreshToken); err != nil {
		return jwtx.TokenPair{}, err
	}
	return pair, nil
}

func (s *AccountService) activationURL(link string) string {
	return s.APIURL + "/activate/" + link
}

func (s *AccountService) passwordResetURL(lang domain.Lang, link string) string {
	return s.ClientURL + "/" + string(lang) + "/change-forgotten-password/" + link
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wishlane/accounts/internal/account/apierr"
	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/cryptox"
	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/jwtx"
	"github.com/wishlane/accounts/pkg/slogx"
)

type LoginRequest struct {
	Email    string
	Password string // transport-obfuscated
	Lang     domain.Lang
}

// Login verifies credentials, updates the stored language preference and
// opens a session. Unknown email and bad password are both client errors,
// not auth errors: the caller has no token yet.
func (s *AccountService) Login(ctx context.Context, t i18nx.Translator, req LoginRequest) (AuthResult, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, apierr.BadRequest(t("login.unknown_email", i18nx.Args{"email": req.Email}))
		}
		return AuthResult{}, err
	}

	password, err := s.Codec.Decode(req.Password)
	if err != nil {
		return AuthResult{}, apierr.BadRequest(t("unexpected_error", nil))
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return AuthResult{}, apierr.BadRequest(t("login.invalid_password", nil))
	}

	if req.Lang.Valid() && req.Lang != user.Lang {
		user.Lang = req.Lang
		if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
			return AuthResult{}, err
		}
	}

	tokens, err := s.issueSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user logged in", slog.String("user_id", user.ID))
	return AuthResult{Tokens: tokens, User: domain.NewUserDTO(user)}, nil
}

// Logout revokes the session holding the given refresh token. Idempotent:
// logging out an already-absent token succeeds.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	_, err := s.Store.RefreshTokens().Remove(ctx, refreshToken)
	return err
}

// RefreshResult carries the rotated session plus the admin counters the
// client dashboard reads on every refresh.
type RefreshResult struct {
	Tokens jwtx.TokenPair
	User   domain.UserDTO
	Stats  *domain.AdminStats
}

// Refresh rotates a session. The token must both carry a valid signature and
// still exist in the store: a well-formed token revoked by logout or password
// change is rejected. The old token becomes unfindable once the new pair is
// saved.
func (s *AccountService) Refresh(ctx context.Context, t i18nx.Translator, refreshToken string) (RefreshResult, error) {
	if refreshToken == "" {
		return RefreshResult{}, apierr.Unauthorized(t("not_auth", nil))
	}

	claims := s.Issuer.ValidateRefresh(refreshToken)
	if claims == nil {
		return RefreshResult{}, apierr.Unauthorized(t("not_auth", nil))
	}

	if _, err := s.Store.RefreshTokens().Find(ctx, refreshToken); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return RefreshResult{}, apierr.Unauthorized(t("not_auth", nil))
		}
		return RefreshResult{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Account deleted while the token was still live.
			return RefreshResult{}, apierr.Unauthorized(t("not_auth", nil))
		}
		return RefreshResult{}, err
	}

	tokens, err := s.issueSession(ctx, user)
	if err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{Tokens: tokens, User: domain.NewUserDTO(user)}

	if s.StatsOnRefresh {
		stats, err := s.adminStats(ctx)
		if err != nil {
			return RefreshResult{}, err
		}
		result.Stats = stats
	}

	return result, nil
}

func (s *AccountService) adminStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	var err error

	if stats.UsersCount, err = s.Store.Users().CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.NotActivatedUsersCount, err = s.Store.Users().CountNotActivated(ctx); err != nil {
		return nil, err
	}
	if stats.WishesCount, err = s.Store.Wishes().CountWishes(ctx); err != nil {
		return nil, err
	}
	if stats.ExecutedWishesCount, err = s.Store.Wishes().CountExecuted(ctx); err != nil {
		return nil, err
	}
	if stats.BookedWishesCount, err = s.Store.Wishes().CountBooked(ctx); err != nil {
		return nil, err
	}

	return &stats, nil
}

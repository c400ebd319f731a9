package service

import (
	"context"
	"errors"
	"time"

	"github.com/wishlane/accounts/internal/account/apierr"
	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/cryptox"
	"github.com/wishlane/accounts/pkg/i18nx"
)

type ForgotPasswordRequest struct {
	Email string
	Lang  domain.Lang
}

// ForgotPassword mints a password-reset link, stores it on the account along
// with the requested language, and emails it. Returns the email the link was
// sent to.
func (s *AccountService) ForgotPassword(ctx context.Context, t i18nx.Translator, req ForgotPasswordRequest) (string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.BadRequest(t("forgot_password.unknown_email", i18nx.Args{"email": req.Email}))
		}
		return "", err
	}

	link, err := cryptox.GenerateLink()
	if err != nil {
		return "", err
	}

	expires := time.Now().UTC().Add(s.linkTTL())
	user.PasswordResetLink = link
	user.PasswordResetLinkExpires = &expires
	if req.Lang.Valid() {
		user.Lang = req.Lang
	}

	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		return "", err
	}

	if err := s.Mailer.SendPasswordResetMail(ctx, user.Lang, user.Email, user.FirstName, s.passwordResetURL(user.Lang, link)); err != nil {
		return "", err
	}

	return user.Email, nil
}

type ChangeForgottenPasswordRequest struct {
	ResetLink   string
	NewPassword string // transport-obfuscated
}

// ChangeForgottenPassword consumes a reset link and sets the new password.
// The link is single-use: it is cleared in the same write.
func (s *AccountService) ChangeForgottenPassword(ctx context.Context, t i18nx.Translator, req ChangeForgottenPasswordRequest) error {
	user, err := s.Store.Users().GetUserByPasswordResetLink(ctx, req.ResetLink)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.BadRequest(t("reset.invalid_link", nil))
		}
		return err
	}

	if user.PasswordResetLinkExpires != nil && user.PasswordResetLinkExpires.Before(time.Now().UTC()) {
		return apierr.BadRequest(t("reset.expired_link", nil))
	}

	password, err := s.Codec.Decode(req.NewPassword)
	if err != nil {
		return apierr.BadRequest(t("unexpected_error", nil))
	}

	hash, err := cryptox.HashPassword(password, s.PasswordHashCost)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.PasswordResetLink = ""
	user.PasswordResetLinkExpires = nil

	return s.Store.Users().UpdateUser(ctx, user)
}

type ChangePasswordRequest struct {
	UserID       string
	OldPassword  string // transport-obfuscated
	NewPassword  string // transport-obfuscated
	RefreshToken string
}

// ChangePassword replaces the password of a logged-in user and revokes their
// session so they have to log back in. Accounts without a password (Google
// sign-in only) may set one without proving an old password.
func (s *AccountService) ChangePassword(ctx context.Context, t i18nx.Translator, req ChangePasswordRequest) error {
	user, err := s.Store.Users().GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.BadRequest(t("change_password.unknown_user", i18nx.Args{"id": req.UserID}))
		}
		return err
	}

	if user.HasPassword() {
		oldPassword, err := s.Codec.Decode(req.OldPassword)
		if err != nil {
			return apierr.BadRequest(t("unexpected_error", nil))
		}
		if err := cryptox.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
			return apierr.BadRequest(t("change_password.invalid_old_password", nil))
		}
	}

	newPassword, err := s.Codec.Decode(req.NewPassword)
	if err != nil {
		return apierr.BadRequest(t("unexpected_error", nil))
	}

	hash, err := cryptox.HashPassword(newPassword, s.PasswordHashCost)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		return err
	}

	// Force re-login with the new password.
	_, err = s.Store.RefreshTokens().Remove(ctx, req.RefreshToken)
	return err
}

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
	"github.com/wishlane/accounts/pkg/slogx"
)

type DeleteMyUserRequest struct {
	UserID   string
	Email    string
	Password string // transport-obfuscated, optional
}

// DeleteMyUser removes the caller's account and everything it owns. The
// email must resolve to the caller's own id, so a stolen access token alone
// cannot delete someone else's account. Password proof is required only when
// the account has one and the caller supplied one; Google-only accounts
// delete without it. Returns the deleted id.
func (s *AccountService) DeleteMyUser(ctx context.Context, t i18nx.Translator, req DeleteMyUserRequest) (string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.BadRequest(t("delete_user.unknown_email", i18nx.Args{"email": req.Email}))
		}
		return "", err
	}

	if user.ID != req.UserID {
		return "", apierr.BadRequest(t("delete_user.invalid_data", nil))
	}

	if user.HasPassword() && req.Password != "" {
		password, err := s.Codec.Decode(req.Password)
		if err != nil {
			return "", apierr.BadRequest(t("unexpected_error", nil))
		}
		if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
			return "", apierr.BadRequest(t("delete_user.invalid_password", nil))
		}
	}

	if err := s.deleteAccountCascade(ctx, t, user); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", user.ID))
	return user.ID, nil
}

// deleteAccountCascade removes the user and everything hanging off the
// record inside one transaction: wishes one by one, collections in bulk,
// uploaded files, and finally the row itself. The refresh token row goes
// with the user via the schema. A failure anywhere rolls the whole
// transaction back; the storage deletion itself cannot be rolled back, which
// is the accepted cost of keeping it inside the same failure domain.
func (s *AccountService) deleteAccountCascade(ctx context.Context, t i18nx.Translator, user domain.User) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		wishIDs, err := tx.Wishes().ListWishIDsByOwner(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, wishID := range wishIDs {
			if err := tx.Wishes().DeleteWish(ctx, wishID, user.ID); err != nil {
				return err
			}
		}

		if _, err := tx.Collections().DeleteByOwner(ctx, user.ID); err != nil {
			return err
		}

		if err := s.Files.RemoveUserObjects(ctx, user.ID); err != nil {
			return err
		}

		n, err := tx.Users().DeleteUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierr.BadRequest(t("delete_user.failed", i18nx.Args{"id": user.ID}))
		}
		return nil
	})
}

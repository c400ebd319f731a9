package service

import (
	"context"
	"errors"

	"github.com/wishlane/accounts/internal/account/apierr"
	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/i18nx"
)

// ChangeLang updates the stored language preference.
func (s *AccountService) ChangeLang(ctx context.Context, t i18nx.Translator, userID string, lang domain.Lang) (domain.UserDTO, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserDTO{}, apierr.BadRequest(t("change_lang.unknown_user", i18nx.Args{"id": userID}))
		}
		return domain.UserDTO{}, err
	}

	user.Lang = domain.ParseLang(string(lang))
	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		return domain.UserDTO{}, err
	}

	return domain.NewUserDTO(user), nil
}

// GetUser returns the projection of a single user. The requester must also
// resolve to an account, so tokens for deleted accounts cannot read profiles.
func (s *AccountService) GetUser(ctx context.Context, t i18nx.Translator, userID, requesterID string) (domain.UserDTO, error) {
	if _, err := s.Store.Users().GetUserByID(ctx, requesterID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserDTO{}, apierr.BadRequest(t("get_user.unknown_user", i18nx.Args{"id": requesterID}))
		}
		return domain.UserDTO{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserDTO{}, apierr.BadRequest(t("get_user.unknown_user", i18nx.Args{"id": userID}))
		}
		return domain.UserDTO{}, err
	}

	return domain.NewUserDTO(user), nil
}

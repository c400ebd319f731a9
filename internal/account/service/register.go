package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wishlane/accounts/internal/account/apierr"
	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/cryptox"
	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/idx"
	"github.com/wishlane/accounts/pkg/slogx"
)

type RegisterRequest struct {
	FirstName string
	Email     string
	Password  string // transport-obfuscated
	Lang      domain.Lang
	UTM       domain.UTM
}

// Register creates a new account in the pending-activation state, sends the
// activation email and opens a session. A mail delivery failure surfaces to
// the caller; the created account is left behind for the maintenance sweep
// to reap once its activation link expires.
func (s *AccountService) Register(ctx context.Context, t i18nx.Translator, req RegisterRequest) (AuthResult, error) {
	if _, err := s.Store.Users().GetUserByEmail(ctx, req.Email); err == nil {
		return AuthResult{}, apierr.BadRequest(t("register.email_taken", i18nx.Args{"email": req.Email}))
	} else if !errors.Is(err, store.ErrNotFound) {
		return AuthResult{}, err
	}

	password, err := s.Codec.Decode(req.Password)
	if err != nil {
		return AuthResult{}, apierr.BadRequest(t("unexpected_error", nil))
	}

	hash, err := cryptox.HashPassword(password, s.PasswordHashCost)
	if err != nil {
		return AuthResult{}, err
	}

	link, err := cryptox.GenerateLink()
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	expires := now.Add(s.linkTTL())

	user := domain.User{
		ID:                    idx.New().String(),
		Email:                 req.Email,
		PasswordHash:          hash,
		ActivationLink:        link,
		ActivationLinkExpires: &expires,
		Lang:                  req.Lang,
		FirstName:             req.FirstName,
		UTM:                   req.UTM,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, apierr.BadRequest(t("register.email_taken", i18nx.Args{"email": req.Email}))
		}
		return AuthResult{}, err
	}

	if err := s.Mailer.SendActivationMail(ctx, user.Lang, user.Email, user.FirstName, s.activationURL(link)); err != nil {
		return AuthResult{}, err
	}

	tokens, err := s.issueSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return AuthResult{Tokens: tokens, User: domain.NewUserDTO(user)}, nil
}

// ActivationResult tells the HTTP layer which client page to redirect to.
type ActivationResult struct {
	IsActivated bool
	Lang        domain.Lang
}

// Activate resolves an activation link. An expired link is not an error: the
// result carries IsActivated=false and the link stays on the record so a
// follow-up GenerateActivationLink call can reuse it.
func (s *AccountService) Activate(ctx context.Context, t i18nx.Translator, link string) (ActivationResult, error) {
	user, err := s.Store.Users().GetUserByActivationLink(ctx, link)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ActivationResult{}, apierr.BadRequest(t("activate.invalid_link", nil))
		}
		return ActivationResult{}, err
	}

	now := time.Now().UTC()
	if user.ActivationLinkExpires != nil && user.ActivationLinkExpires.Before(now) {
		user.IsActivated = false
		if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
			return ActivationResult{}, err
		}
		return ActivationResult{IsActivated: false, Lang: user.Lang}, nil
	}

	user.IsActivated = true
	user.ActivationLink = ""
	user.ActivationLinkExpires = nil
	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		return ActivationResult{}, err
	}

	slogx.FromContext(ctx).Info("user activated", slog.String("user_id", user.ID))
	return ActivationResult{IsActivated: true, Lang: user.Lang}, nil
}

// GenerateActivationLink re-sends the activation email. A pending link is
// reused with a fresh expiry rather than invalidated, so an earlier email
// keeps working. Returns the email the link was sent to.
func (s *AccountService) GenerateActivationLink(ctx context.Context, t i18nx.Translator, userID string) (string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.BadRequest(t("activation_link.unknown_user", i18nx.Args{"id": userID}))
		}
		return "", err
	}

	if user.IsActivated {
		return user.Email, nil
	}

	if user.ActivationLink == "" {
		link, err := cryptox.GenerateLink()
		if err != nil {
			return "", err
		}
		user.ActivationLink = link
	}

	expires := time.Now().UTC().Add(s.linkTTL())
	user.ActivationLinkExpires = &expires

	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		return "", err
	}

	if err := s.Mailer.SendActivationMail(ctx, user.Lang, user.Email, user.FirstName, s.activationURL(user.ActivationLink)); err != nil {
		return "", err
	}

	return user.Email, nil
}

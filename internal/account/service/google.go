package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/cryptox"
	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/idx"
	"github.com/wishlane/accounts/pkg/slogx"
)

// GoogleAuthRequest carries the identity attributes already verified
// upstream. IsActivated is trusted as-is: when Google confirmed the email,
// no activation flow is needed.
type GoogleAuthRequest struct {
	Email       string
	Lang        domain.Lang
	IsActivated bool
	FirstName   string
	LastName    string
	Avatar      string

	// GuestWishes is a JSON-encoded list of wishes the visitor collected
	// before signing up. Materialized for new accounts only.
	GuestWishes string

	UTM domain.UTM
}

// GoogleAuthResult is AuthResult plus any wishes materialized at signup.
type GoogleAuthResult struct {
	AuthResult
	Wishes []domain.Wish
}

// GoogleAuthorization signs a Google-verified identity in, creating the
// account on first contact. Existing accounts only get their language
// refreshed; profile attributes from Google never overwrite stored ones.
func (s *AccountService) GoogleAuthorization(ctx context.Context, t i18nx.Translator, req GoogleAuthRequest) (GoogleAuthResult, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if req.Lang.Valid() && req.Lang != user.Lang {
			user.Lang = req.Lang
			if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
				return GoogleAuthResult{}, err
			}
		}

		tokens, err := s.issueSession(ctx, user)
		if err != nil {
			return GoogleAuthResult{}, err
		}
		return GoogleAuthResult{AuthResult: AuthResult{Tokens: tokens, User: domain.NewUserDTO(user)}}, nil

	case errors.Is(err, store.ErrNotFound):
		return s.createGoogleUser(ctx, t, req)

	default:
		return GoogleAuthResult{}, err
	}
}

func (s *AccountService) createGoogleUser(ctx context.Context, t i18nx.Translator, req GoogleAuthRequest) (GoogleAuthResult, error) {
	firstName := req.FirstName
	if firstName == "" {
		firstName = t("google.default_first_name", nil)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:          idx.New().String(),
		Email:       req.Email,
		IsActivated: req.IsActivated,
		Lang:        req.Lang,
		FirstName:   firstName,
		LastName:    req.LastName,
		Avatar:      req.Avatar,
		UTM:         req.UTM,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !user.Lang.Valid() {
		user.Lang = domain.DefaultLang
	}

	if !user.IsActivated {
		link, err := cryptox.GenerateLink()
		if err != nil {
			return GoogleAuthResult{}, err
		}
		expires := now.Add(s.linkTTL())
		user.ActivationLink = link
		user.ActivationLinkExpires = &expires
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return GoogleAuthResult{}, err
	}

	if !user.IsActivated {
		err := s.Mailer.SendActivationMail(ctx, user.Lang, user.Email, user.FirstName, s.activationURL(user.ActivationLink))
		if err != nil {
			return GoogleAuthResult{}, err
		}
	}

	wishes, err := s.materializeGuestWishes(ctx, user.ID, req.GuestWishes)
	if err != nil {
		return GoogleAuthResult{}, err
	}

	tokens, err := s.issueSession(ctx, user)
	if err != nil {
		return GoogleAuthResult{}, err
	}

	slogx.FromContext(ctx).Info("google user created",
		slog.String("user_id", user.ID),
		slog.Int("guest_wishes", len(wishes)),
	)

	return GoogleAuthResult{
		AuthResult: AuthResult{Tokens: tokens, User: domain.NewUserDTO(user)},
		Wishes:     wishes,
	}, nil
}

func (s *AccountService) materializeGuestWishes(ctx context.Context, ownerID, encoded string) ([]domain.Wish, error) {
	if encoded == "" {
		return nil, nil
	}

	var guests []domain.GuestWish
	if err := json.Unmarshal([]byte(encoded), &guests); err != nil {
		// Guest wishes are best-effort carry-over, not worth failing signup.
		slogx.FromContext(ctx).Warn("ignoring malformed guest wishes", slog.String("user_id", ownerID))
		return nil, nil
	}

	wishes := make([]domain.Wish, 0, len(guests))
	for _, g := range guests {
		if g.Title == "" {
			continue
		}
		w := domain.Wish{
			ID:        idx.New().String(),
			UserID:    ownerID,
			Title:     g.Title,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Store.Wishes().CreateWish(ctx, w); err != nil {
			return nil, err
		}
		wishes = append(wishes, w)
	}
	return wishes, nil
}

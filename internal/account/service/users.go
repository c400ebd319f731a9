package service

import (
	"context"
	"errors"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
)

// UsersQuery shapes the authenticated listing. Filter and Search are
// mutually exclusive; handlers pass Search only when Filter is FilterAll.
type UsersQuery struct {
	RequesterID string
	Page        int
	Limit       int
	Filter      store.UserFilter
	Search      string
}

// UsersPage is one page of the listing plus the requester's follower count.
type UsersPage struct {
	Users           []domain.UserDTO `json:"users"`
	FollowFromCount int64            `json:"followFromCount"`
}

// GetUsers lists accounts for the authenticated directory view: newest
// updated first, requester and featured account excluded, with the featured
// account spliced back into the top of page 1 when no search is active.
func (s *AccountService) GetUsers(ctx context.Context, q UsersQuery) (UsersPage, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	users, err := s.Store.Users().ListUsers(ctx, store.ListQuery{
		RequesterID: q.RequesterID,
		Filter:      q.Filter,
		Search:      q.Search,
		ExcludeIDs:  s.listExclusions(q.RequesterID),
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		return UsersPage{}, err
	}

	dtos := make([]domain.UserDTO, 0, len(users)+1)
	for _, u := range users {
		dtos = append(dtos, domain.NewUserDTO(u))
	}

	if page == 1 && q.Search == "" {
		dtos, err = s.spliceFeatured(ctx, dtos)
		if err != nil {
			return UsersPage{}, err
		}
	}

	followers, err := s.Store.Users().CountFollowers(ctx, q.RequesterID)
	if err != nil {
		return UsersPage{}, err
	}

	return UsersPage{Users: dtos, FollowFromCount: followers}, nil
}

// AllUsersQuery shapes the open listing: no requester, no relation filters.
type AllUsersQuery struct {
	Page   int
	Limit  int
	Search string
}

// GetAllUsers is the unauthenticated listing with the same search,
// pagination and featured-splice rules as GetUsers.
func (s *AccountService) GetAllUsers(ctx context.Context, q AllUsersQuery) ([]domain.UserDTO, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	users, err := s.Store.Users().ListUsers(ctx, store.ListQuery{
		Filter:     store.FilterAll,
		Search:     q.Search,
		ExcludeIDs: s.listExclusions(""),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.UserDTO, 0, len(users)+1)
	for _, u := range users {
		dtos = append(dtos, domain.NewUserDTO(u))
	}

	if page == 1 && q.Search == "" {
		dtos, err = s.spliceFeatured(ctx, dtos)
		if err != nil {
			return nil, err
		}
	}

	return dtos, nil
}

func (s *AccountService) listExclusions(requesterID string) []string {
	var ids []string
	if requesterID != "" {
		ids = append(ids, requesterID)
	}
	if s.FeaturedUserID != "" {
		ids = append(ids, s.FeaturedUserID)
	}
	return ids
}

// spliceFeatured inserts the promotional account at index 2 of the page, on
// top of the page limit. Kept apart from the query so the merchandising rule
// can be switched off by leaving FeaturedUserID empty.
func (s *AccountService) spliceFeatured(ctx context.Context, dtos []domain.UserDTO) ([]domain.UserDTO, error) {
	if s.FeaturedUserID == "" {
		return dtos, nil
	}

	featured, err := s.Store.Users().GetUserByID(ctx, s.FeaturedUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dtos, nil
		}
		return nil, err
	}

	at := 2
	if at > len(dtos) {
		at = len(dtos)
	}

	out := make([]domain.UserDTO, 0, len(dtos)+1)
	out = append(out, dtos[:at]...)
	out = append(out, domain.NewUserDTO(featured))
	out = append(out, dtos[at:]...)
	return out, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return page, limit
}

package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/internal/account/store/drivers/sqlite"
	"github.com/wishlane/accounts/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(email string, at time.Time) domain.User {
	return domain.User{
		ID:        idx.New().String(),
		Email:     email,
		Lang:      domain.DefaultLang,
		FirstName: "Test",
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestUsersCreateGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	expires := now.Add(24 * time.Hour)
	u := newUser("alice@example.com", now)
	u.PasswordHash = "$2a$04$hash"
	u.ActivationLink = "link-123"
	u.ActivationLinkExpires = &expires
	u.UTM = domain.UTM{Source: "newsletter", Campaign: "spring"}

	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, u.PasswordHash, got.PasswordHash)
	require.False(t, got.IsActivated)
	require.Equal(t, "link-123", got.ActivationLink)
	require.NotNil(t, got.ActivationLinkExpires)
	require.Equal(t, "newsletter", got.UTM.Source)
	require.Empty(t, got.UTM.Medium)

	byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byLink, err := s.Users().GetUserByActivationLink(ctx, "link-123")
	require.NoError(t, err)
	require.Equal(t, u.ID, byLink.ID)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersCreateDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Users().CreateUser(ctx, newUser("dup@example.com", now)))

	err := s.Users().CreateUser(ctx, newUser("dup@example.com", now))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsersUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Add(-time.Hour)

	u := newUser("bob@example.com", now)
	u.ActivationLink = "pending"
	expires := now.Add(time.Hour)
	u.ActivationLinkExpires = &expires
	require.NoError(t, s.Users().CreateUser(ctx, u))

	u.IsActivated = true
	u.ActivationLink = ""
	u.ActivationLinkExpires = nil
	u.Lang = domain.LangEN
	require.NoError(t, s.Users().UpdateUser(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.IsActivated)
	require.Empty(t, got.ActivationLink)
	require.Nil(t, got.ActivationLinkExpires)
	require.Equal(t, domain.LangEN, got.Lang)
	require.True(t, got.UpdatedAt.After(now))

	missing := newUser("ghost@example.com", now)
	require.ErrorIs(t, s.Users().UpdateUser(ctx, missing), store.ErrNotFound)
}

func TestUsersDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser("gone@example.com", time.Now().UTC())
	require.NoError(t, s.Users().CreateUser(ctx, u))

	n, err := s.Users().DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = s.Users().DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestUsersList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	requester := newUser("me@example.com", base)
	friend := newUser("friend@example.com", base.Add(time.Minute))
	friend.FirstName = "Olena"
	followed := newUser("followed@example.com", base.Add(2*time.Minute))
	follower := newUser("follower@example.com", base.Add(3*time.Minute))
	stranger := newUser("stranger@example.com", base.Add(4*time.Minute))
	stranger.LastName = "Kovalenko"

	for _, u := range []domain.User{requester, friend, followed, follower, stranger} {
		require.NoError(t, s.Users().CreateUser(ctx, u))
	}

	// friend has the requester in their friend list
	require.NoError(t, s.Users().AddFriend(ctx, friend.ID, requester.ID))
	// requester follows followed; follower follows requester
	require.NoError(t, s.Users().AddFollow(ctx, requester.ID, followed.ID))
	require.NoError(t, s.Users().AddFollow(ctx, follower.ID, requester.ID))

	all, err := s.Users().ListUsers(ctx, store.ListQuery{
		RequesterID: requester.ID,
		Filter:      store.FilterAll,
		ExcludeIDs:  []string{requester.ID},
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, all, 4)
	// newest updated first
	require.Equal(t, stranger.ID, all[0].ID)
	require.Equal(t, friend.ID, all[3].ID)

	friends, err := s.Users().ListUsers(ctx, store.ListQuery{
		RequesterID: requester.ID,
		Filter:      store.FilterFriends,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.Equal(t, friend.ID, friends[0].ID)

	followTo, err := s.Users().ListUsers(ctx, store.ListQuery{
		RequesterID: requester.ID,
		Filter:      store.FilterFollowTo,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, followTo, 1)
	require.Equal(t, followed.ID, followTo[0].ID)

	followFrom, err := s.Users().ListUsers(ctx, store.ListQuery{
		RequesterID: requester.ID,
		Filter:      store.FilterFollowFrom,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, followFrom, 1)
	require.Equal(t, follower.ID, followFrom[0].ID)

	search, err := s.Users().ListUsers(ctx, store.ListQuery{
		RequesterID: requester.ID,
		Search:      "KOVAL",
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, search, 1)
	require.Equal(t, stranger.ID, search[0].ID)

	paged, err := s.Users().ListUsers(ctx, store.ListQuery{
		RequesterID: requester.ID,
		ExcludeIDs:  []string{requester.ID},
		Limit:       2,
		Offset:      2,
	})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	require.Equal(t, followed.ID, paged[0].ID)
	require.Equal(t, friend.ID, paged[1].ID)
}

func TestUsersExpirySweepQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	stale := newUser("stale@example.com", past)
	stale.ActivationLink = "stale-link"
	stale.ActivationLinkExpires = &past

	fresh := newUser("fresh@example.com", past)
	fresh.ActivationLink = "fresh-link"
	fresh.ActivationLinkExpires = &future

	activated := newUser("done@example.com", past)
	activated.IsActivated = true

	resetStale := newUser("reset@example.com", past)
	resetStale.IsActivated = true
	resetStale.PasswordResetLink = "reset-link"
	resetStale.PasswordResetLinkExpires = &past

	for _, u := range []domain.User{stale, fresh, activated, resetStale} {
		require.NoError(t, s.Users().CreateUser(ctx, u))
	}

	inactive, err := s.Users().ListInactiveExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	require.Equal(t, stale.ID, inactive[0].ID)

	resets, err := s.Users().ListExpiredPasswordReset(ctx, now)
	require.NoError(t, err)
	require.Len(t, resets, 1)
	require.Equal(t, resetStale.ID, resets[0].ID)
}

func TestUsersCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	a := newUser("a@example.com", now)
	a.IsActivated = true
	b := newUser("b@example.com", now)
	c := newUser("c@example.com", now)

	for _, u := range []domain.User{a, b, c} {
		require.NoError(t, s.Users().CreateUser(ctx, u))
	}

	total, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	inactive, err := s.Users().CountNotActivated(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, inactive)

	require.NoError(t, s.Users().AddFollow(ctx, b.ID, a.ID))
	require.NoError(t, s.Users().AddFollow(ctx, c.ID, a.ID))

	followers, err := s.Users().CountFollowers(ctx, a.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, followers)
}

func TestRefreshTokensUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser("session@example.com", time.Now().UTC())
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.RefreshTokens().Save(ctx, u.ID, "token-one"))
	require.NoError(t, s.RefreshTokens().Save(ctx, u.ID, "token-two"))

	// The overwrite revoked the first token.
	_, err := s.RefreshTokens().Find(ctx, "token-one")
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.RefreshTokens().Find(ctx, "token-two")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)

	n, err := s.RefreshTokens().Remove(ctx, "token-two")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = s.RefreshTokens().Remove(ctx, "token-two")
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestRefreshTokensDeletedWithUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser("cascade@example.com", time.Now().UTC())
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.NoError(t, s.RefreshTokens().Save(ctx, u.ID, "token"))

	_, err := s.Users().DeleteUser(ctx, u.ID)
	require.NoError(t, err)

	_, err = s.RefreshTokens().Find(ctx, "token")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWishes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	u := newUser("wisher@example.com", now)
	other := newUser("other@example.com", now)
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.NoError(t, s.Users().CreateUser(ctx, other))

	w1 := domain.Wish{ID: idx.New().String(), UserID: u.ID, Title: "bike", CreatedAt: now}
	w2 := domain.Wish{ID: idx.New().String(), UserID: u.ID, Title: "trip", Executed: true, CreatedAt: now}
	w3 := domain.Wish{ID: idx.New().String(), UserID: other.ID, Title: "book", BookedBy: u.ID, CreatedAt: now}

	for _, w := range []domain.Wish{w1, w2, w3} {
		require.NoError(t, s.Wishes().CreateWish(ctx, w))
	}

	ids, err := s.Wishes().ListWishIDsByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{w1.ID, w2.ID}, ids)

	total, err := s.Wishes().CountWishes(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	executed, err := s.Wishes().CountExecuted(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, executed)

	booked, err := s.Wishes().CountBooked(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, booked)

	// ownership guard: deleting with the wrong owner is a no-op
	require.NoError(t, s.Wishes().DeleteWish(ctx, w1.ID, other.ID))
	ids, err = s.Wishes().ListWishIDsByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	require.NoError(t, s.Wishes().DeleteWish(ctx, w1.ID, u.ID))
	ids, err = s.Wishes().ListWishIDsByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{w2.ID}, ids)
}

func TestCollections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser("collector@example.com", time.Now().UTC())
	require.NoError(t, s.Users().CreateUser(ctx, u))

	for _, title := range []string{"birthday", "wedding"} {
		require.NoError(t, s.Collections().CreateCollection(ctx, domain.Collection{
			ID:     idx.New().String(),
			UserID: u.ID,
			Title:  title,
		}))
	}

	n, err := s.Collections().DeleteByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = s.Collections().DeleteByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestWithTxRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, newUser("txn@example.com", time.Now().UTC())); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "txn@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, newUser("committed@example.com", time.Now().UTC()))
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByEmail(ctx, "committed@example.com")
	require.NoError(t, err)
}

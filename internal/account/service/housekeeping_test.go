package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/wishlane/accounts/internal/account/service"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/i18nx"

	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweepsOnStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expired := f.register(t, "expired@example.com", "s3cret")
	user, err := f.store.Users().GetUserByID(ctx, expired.User.ID)
	require.NoError(t, err)
	past := time.Now().UTC().Add(-time.Hour)
	user.ActivationLinkExpires = &past
	require.NoError(t, f.store.Users().UpdateUser(ctx, user))

	hk := service.NewHousekeepingService(f.svc, i18nx.NewBundle(),
		slog.New(slog.DiscardHandler), time.Hour)

	hk.Start()
	hk.Stop() // blocks until the startup sweep finished

	_, err = f.store.Users().GetUserByID(ctx, expired.User.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

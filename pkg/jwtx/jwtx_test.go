package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestIssuer() *Issuer {
	return NewIssuer("access-secret", "refresh-secret")
}

func TestIssueProducesValidPair(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	pair, err := iss.Issue("user-1", "alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access := iss.ValidateAccess(pair.AccessToken)
	require.NotNil(t, access)
	require.Equal(t, "user-1", access.UserID)
	require.Equal(t, "alice@example.com", access.Email)

	refresh := iss.ValidateRefresh(pair.RefreshToken)
	require.NotNil(t, refresh)
	require.Equal(t, access.UserID, refresh.UserID)
	require.Equal(t, access.Email, refresh.Email)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	pair, err := iss.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	require.Nil(t, iss.ValidateAccess(pair.RefreshToken))
	require.Nil(t, iss.ValidateRefresh(pair.AccessToken))
}

func TestValidateReturnsNilOnGarbage(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	require.Nil(t, iss.ValidateAccess(""))
	require.Nil(t, iss.ValidateAccess("not.a.jwt"))
	require.Nil(t, iss.ValidateRefresh("not.a.jwt"))
}

func TestExpiredTokensAreRejected(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	iss.AccessTTL = -time.Minute
	iss.RefreshTTL = -time.Minute

	pair, err := iss.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	require.Nil(t, iss.ValidateAccess(pair.AccessToken))
	require.Nil(t, iss.ValidateRefresh(pair.RefreshToken))
}

func TestTokensFromAnotherIssuerAreRejected(t *testing.T) {
	t.Parallel()

	other := NewIssuer("other-access", "other-refresh")
	pair, err := other.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	iss := newTestIssuer()
	require.Nil(t, iss.ValidateAccess(pair.AccessToken))
	require.Nil(t, iss.ValidateRefresh(pair.RefreshToken))
}

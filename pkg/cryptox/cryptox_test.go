package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", digest)

	require.NoError(t, VerifyPassword("s3cret-pass", digest))
	require.ErrorIs(t, VerifyPassword("wrong-pass", digest), ErrPasswordMismatch)
}

func TestHashPasswordClampsLowCost(t *testing.T) {
	t.Parallel()

	// The legacy configuration used cost 3, below bcrypt's minimum.
	digest, err := HashPassword("legacy", 3)
	require.NoError(t, err)
	require.NoError(t, VerifyPassword("legacy", digest))
}

func TestTransportCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewTransportCodec("client-shared-secret")

	payload, err := codec.Encode("my password")
	require.NoError(t, err)

	plain, err := codec.Decode(payload)
	require.NoError(t, err)
	require.Equal(t, "my password", plain)
}

func TestTransportCodecRejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	codec := NewTransportCodec("client-shared-secret")

	t.Run("not base64", func(t *testing.T) {
		_, err := codec.Decode("%%%not-base64%%%")
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := codec.Decode("AAAA")
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewTransportCodec("a different secret")
		payload, err := other.Encode("my password")
		require.NoError(t, err)

		_, err = codec.Decode(payload)
		require.ErrorIs(t, err, ErrDecode)
	})
}

func TestGenerateLinkIsOpaqueAndUnique(t *testing.T) {
	t.Parallel()

	a := MustGenerateLink()
	b := MustGenerateLink()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

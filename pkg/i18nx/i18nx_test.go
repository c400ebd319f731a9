package i18nx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslatorSubstitutesArgs(t *testing.T) {
	t.Parallel()

	tr := NewBundle().Translator("en")
	msg := tr("register.email_taken", Args{"email": "a@b.c"})
	require.Contains(t, msg, "a@b.c")
	require.NotContains(t, msg, "{{email}}")
}

func TestUnknownLanguageFallsBackToDefault(t *testing.T) {
	t.Parallel()

	b := NewBundle()
	require.False(t, b.Supported("de"))

	tr := b.Translator("de")
	require.Equal(t, b.Translator("ua")("not_auth", nil), tr("not_auth", nil))
}

func TestAcceptLanguageHeadersAreNormalized(t *testing.T) {
	t.Parallel()

	b := NewBundle()
	require.True(t, b.Supported("EN"))
	require.True(t, b.Supported("en-US"))
	require.True(t, b.Supported("ru,uk;q=0.9"))
}

func TestMissingKeyReturnsKey(t *testing.T) {
	t.Parallel()

	tr := NewBundle().Translator("en")
	require.Equal(t, "no.such.key", tr("no.such.key", nil))
}

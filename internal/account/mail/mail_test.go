package mail

import (
	"context"
	"log/slog"
	"net/smtp"
	"testing"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/pkg/i18nx"

	"github.com/stretchr/testify/require"
)

func TestSMTPMailerRendersLocalizedMessage(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
	)

	m := NewSMTPMailer(SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
	}, i18nx.NewBundle(), slog.New(slog.DiscardHandler))

	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err := m.SendActivationMail(context.Background(), domain.LangEN,
		"alice@example.com", "Alice", "https://app.example.com/activate/abc")
	require.NoError(t, err)

	require.Equal(t, "smtp.example.com:587", gotAddr)
	require.Equal(t, "noreply@example.com", gotFrom)
	require.Equal(t, []string{"alice@example.com"}, gotTo)
	require.Contains(t, gotMsg, "Subject: Activate your account")
	require.Contains(t, gotMsg, "Hi Alice!")
	require.Contains(t, gotMsg, "https://app.example.com/activate/abc")
}

func TestSMTPMailerFallsBackToDefaultLanguage(t *testing.T) {
	var gotMsg string

	m := NewSMTPMailer(SMTPConfig{Host: "h", Port: 25, From: "f@example.com"},
		i18nx.NewBundle(), slog.New(slog.DiscardHandler))
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	err := m.SendPasswordResetMail(context.Background(), domain.Lang("xx"),
		"bob@example.com", "Bob", "https://app.example.com/reset/def")
	require.NoError(t, err)
	require.Contains(t, gotMsg, "https://app.example.com/reset/def")
}

package mail

import (
	"context"
	"log/slog"

	"github.com/wishlane/accounts/internal/account/domain"
)

// LogMailer writes would-be emails to the log instead of sending them.
// Used in development when no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendActivationMail(ctx context.Context, lang domain.Lang, to, name, url string) error {
	m.logger.InfoContext(ctx, "activation mail (not sent)", "to", to, "lang", string(lang), "url", url)
	return nil
}

func (m *LogMailer) SendPasswordResetMail(ctx context.Context, lang domain.Lang, to, name, url string) error {
	m.logger.InfoContext(ctx, "password reset mail (not sent)", "to", to, "lang", string(lang), "url", url)
	return nil
}

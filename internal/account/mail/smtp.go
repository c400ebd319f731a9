package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/pkg/i18nx"
)

// SMTPConfig holds the delivery settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer renders localized account emails and hands them to an SMTP
// relay. Rendering goes through the shared message bundle so mail copy stays
// next to the rest of the UI strings.
type SMTPMailer struct {
	cfg    SMTPConfig
	bundle *i18nx.Bundle
	logger *slog.Logger

	// send is swappable in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig, bundle *i18nx.Bundle, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		bundle: bundle,
		logger: logger,
		send:   smtp.SendMail,
	}
}

func (m *SMTPMailer) SendActivationMail(ctx context.Context, lang domain.Lang, to, name, url string) error {
	return m.deliver(ctx, lang, to, "mail.activation.subject", "mail.activation.body", name, url)
}

func (m *SMTPMailer) SendPasswordResetMail(ctx context.Context, lang domain.Lang, to, name, url string) error {
	return m.deliver(ctx, lang, to, "mail.reset.subject", "mail.reset.body", name, url)
}

func (m *SMTPMailer) deliver(ctx context.Context, lang domain.Lang, to, subjectKey, bodyKey, name, url string) error {
	t := m.bundle.Translator(string(lang))
	msg := Message{
		To:      to,
		Subject: t(subjectKey, nil),
		Body:    t(bodyKey, i18nx.Args{"name": name, "url": url}),
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{msg.To}, encode(m.cfg.From, msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.logger.InfoContext(ctx, "mail sent", "to", to, "subject", msg.Subject)
	return nil
}

func encode(from string, msg Message) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + msg.To + "\r\n")
	sb.WriteString("Subject: " + msg.Subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(msg.Body)
	sb.WriteString("\r\n")
	return []byte(sb.String())
}

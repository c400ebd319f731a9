// Package mail sends the transactional account emails. The service depends
// on the Mailer interface only; main wires the SMTP implementation, tests
// use a recording fake.
package mail

import (
	"context"

	"github.com/wishlane/accounts/internal/account/domain"
)

// Message is a fully rendered outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers account lifecycle emails in the recipient's language.
type Mailer interface {
	// SendActivationMail sends the activation link issued at registration.
	SendActivationMail(ctx context.Context, lang domain.Lang, to, name, url string) error

	// SendPasswordResetMail sends the forgot-password link.
	SendPasswordResetMail(ctx context.Context, lang domain.Lang, to, name, url string) error
}

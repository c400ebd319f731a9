package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/slogx"
)

// HousekeepingService periodically reaps accounts that never activated
// before their link expired and clears stale password-reset links.
type HousekeepingService struct {
	Accounts *AccountService
	Bundle   *i18nx.Bundle
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 24 hours.
func NewHousekeepingService(accounts *AccountService, bundle *i18nx.Bundle, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	return &HousekeepingService{
		Accounts: accounts,
		Bundle:   bundle,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop() to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the background worker, blocking until any in-progress
// sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep runs both cleanup passes. Each is independent: a failure in one does
// not stop the other.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	s.Logger.Info("starting housekeeping sweep")

	reaped, err := s.Accounts.DeleteInactiveAccounts(ctx, s.Bundle.Translator(""))
	if err != nil {
		s.Logger.Error("failed to reap inactive accounts", "error", err)
	}

	cleared, err := s.Accounts.DeleteExpiredPasswordResetLinks(ctx)
	if err != nil {
		s.Logger.Error("failed to clear expired password reset links", "error", err)
	}

	s.Logger.Info("housekeeping sweep completed",
		"accounts_reaped", reaped,
		"reset_links_cleared", cleared,
	)
}

// DeleteInactiveAccounts removes every unactivated account whose activation
// link expired, running the full deletion cascade per account. A failure on
// one account is logged and the sweep moves on.
func (s *AccountService) DeleteInactiveAccounts(ctx context.Context, t i18nx.Translator) (int, error) {
	users, err := s.Store.Users().ListInactiveExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	l := slogx.FromContext(ctx)

	var reaped int
	for _, user := range users {
		if err := s.deleteAccountCascade(ctx, t, user); err != nil {
			l.Error("failed to reap inactive account",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			continue
		}
		reaped++
	}
	return reaped, nil
}

// DeleteExpiredPasswordResetLinks clears the reset link pair on every
// account whose link expired. Each account is written independently.
func (s *AccountService) DeleteExpiredPasswordResetLinks(ctx context.Context) (int, error) {
	users, err := s.Store.Users().ListExpiredPasswordReset(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	l := slogx.FromContext(ctx)

	var cleared int
	for _, user := range users {
		user.PasswordResetLink = ""
		user.PasswordResetLinkExpires = nil
		if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
			l.Error("failed to clear expired password reset link",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			continue
		}
		cleared++
	}
	return cleared, nil
}

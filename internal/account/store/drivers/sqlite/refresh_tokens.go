package sqlite

import (
	"context"

	"github.com/wishlane/accounts/internal/account/domain"
)

type refreshTokensRepo struct {
	q dbtx
}

// Save upserts the session row, so each user holds at most one refresh
// token at a time. Logging in again replaces the previous session.
func (r *refreshTokensRepo) Save(ctx context.Context, userID, refreshToken string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, refresh_token) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET refresh_token = excluded.refresh_token`,
		userID, refreshToken)
	return err
}

func (r *refreshTokensRepo) Find(ctx context.Context, refreshToken string) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.q.QueryRowContext(ctx,
		`SELECT user_id, refresh_token FROM refresh_tokens WHERE refresh_token = ?`,
		refreshToken).Scan(&t.UserID, &t.RefreshToken)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *refreshTokensRepo) Remove(ctx context.Context, refreshToken string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE refresh_token = ?`, refreshToken)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

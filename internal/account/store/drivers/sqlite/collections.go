package sqlite

import (
	"context"

	"github.com/wishlane/accounts/internal/account/domain"
)

type collectionsRepo struct {
	q dbtx
}

func (r *collectionsRepo) CreateCollection(ctx context.Context, c domain.Collection) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO collections (id, user_id, title) VALUES (?, ?, ?)`,
		c.ID, c.UserID, c.Title)
	return mapConflict(err)
}

func (r *collectionsRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM collections WHERE user_id = ?`, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

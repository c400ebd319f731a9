package sqlite

import (
	"context"

	"github.com/wishlane/accounts/internal/account/domain"
)

type wishesRepo struct {
	q dbtx
}

func (r *wishesRepo) CreateWish(ctx context.Context, w domain.Wish) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO wishes (id, user_id, title, executed, booked_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.Title, w.Executed, mapStringNull(w.BookedBy), w.CreatedAt)
	return mapConflict(err)
}

func (r *wishesRepo) ListWishIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id FROM wishes WHERE user_id = ?`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *wishesRepo) DeleteWish(ctx context.Context, wishID, ownerID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM wishes WHERE id = ? AND user_id = ?`, wishID, ownerID)
	return err
}

func (r *wishesRepo) CountWishes(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM wishes`).Scan(&count)
	return count, err
}

func (r *wishesRepo) CountExecuted(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishes WHERE executed = 1`).Scan(&count)
	return count, err
}

func (r *wishesRepo) CountBooked(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishes WHERE booked_by IS NOT NULL`).Scan(&count)
	return count, err
}

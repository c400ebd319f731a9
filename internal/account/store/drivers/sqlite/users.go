package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/wishlane/accounts/internal/account/domain"
	"github.com/wishlane/accounts/internal/account/store"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, email, password_hash, is_activated,
	activation_link, activation_link_expires,
	password_reset_link, password_reset_link_expires,
	lang, first_name, last_name, avatar, birthday,
	utm_source, utm_medium, utm_campaign, utm_content, utm_term,
	created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) GetUserByActivationLink(ctx context.Context, link string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE activation_link = ?`, link)
	return scanUser(row)
}

func (r *usersRepo) GetUserByPasswordResetLink(ctx context.Context, link string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE password_reset_link = ?`, link)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, is_activated,
			activation_link, activation_link_expires,
			password_reset_link, password_reset_link_expires,
			lang, first_name, last_name, avatar, birthday,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, mapStringNull(u.PasswordHash), u.IsActivated,
		mapStringNull(u.ActivationLink), mapOptionalTime(u.ActivationLinkExpires),
		mapStringNull(u.PasswordResetLink), mapOptionalTime(u.PasswordResetLinkExpires),
		string(u.Lang), u.FirstName, mapStringNull(u.LastName), mapStringNull(u.Avatar),
		mapOptionalTime(u.Birthday),
		mapStringNull(u.UTM.Source), mapStringNull(u.UTM.Medium), mapStringNull(u.UTM.Campaign),
		mapStringNull(u.UTM.Content), mapStringNull(u.UTM.Term),
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

// UpdateUser writes every mutable field back in one statement. Identity
// (id, email) and created_at never change; updated_at is bumped here so every
// mutating save refreshes it.
func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET
			password_hash = ?, is_activated = ?,
			activation_link = ?, activation_link_expires = ?,
			password_reset_link = ?, password_reset_link_expires = ?,
			lang = ?, first_name = ?, last_name = ?, avatar = ?, birthday = ?,
			updated_at = ?
		WHERE id = ?`,
		mapStringNull(u.PasswordHash), u.IsActivated,
		mapStringNull(u.ActivationLink), mapOptionalTime(u.ActivationLinkExpires),
		mapStringNull(u.PasswordResetLink), mapOptionalTime(u.PasswordResetLinkExpires),
		string(u.Lang), u.FirstName, mapStringNull(u.LastName), mapStringNull(u.Avatar),
		mapOptionalTime(u.Birthday),
		time.Now().UTC(),
		u.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) ListUsers(ctx context.Context, q store.ListQuery) ([]domain.User, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT ` + userColumns + ` FROM users u WHERE 1=1`)

	switch q.Filter {
	case store.FilterFriends:
		sb.WriteString(` AND EXISTS (
			SELECT 1 FROM user_friends f WHERE f.user_id = u.id AND f.friend_id = ?)`)
		args = append(args, q.RequesterID)
	case store.FilterFollowTo:
		sb.WriteString(` AND EXISTS (
			SELECT 1 FROM user_follows fo WHERE fo.follower_id = ? AND fo.followee_id = u.id)`)
		args = append(args, q.RequesterID)
	case store.FilterFollowFrom:
		sb.WriteString(` AND EXISTS (
			SELECT 1 FROM user_follows fo WHERE fo.follower_id = u.id AND fo.followee_id = ?)`)
		args = append(args, q.RequesterID)
	}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		sb.WriteString(` AND (LOWER(u.first_name) LIKE ?
			OR LOWER(COALESCE(u.last_name, '')) LIKE ?
			OR LOWER(u.email) LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}

	for _, id := range q.ExcludeIDs {
		sb.WriteString(` AND u.id <> ?`)
		args = append(args, id)
	}

	sb.WriteString(` ORDER BY u.updated_at DESC LIMIT ? OFFSET ?`)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.q.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *usersRepo) ListInactiveExpired(ctx context.Context, now time.Time) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE is_activated = 0
		  AND activation_link_expires IS NOT NULL
		  AND activation_link_expires < ?`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *usersRepo) ListExpiredPasswordReset(ctx context.Context, now time.Time) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE password_reset_link_expires IS NOT NULL
		  AND password_reset_link_expires < ?`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *usersRepo) CountNotActivated(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE is_activated = 0`).Scan(&count)
	return count, err
}

func (r *usersRepo) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_follows WHERE followee_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *usersRepo) AddFriend(ctx context.Context, userID, friendID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_friends (user_id, friend_id) VALUES (?, ?)`, userID, friendID)
	return mapConflict(err)
}

func (r *usersRepo) AddFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_follows (follower_id, followee_id) VALUES (?, ?)`, followerID, followeeID)
	return mapConflict(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                        domain.User
		passwordHash             sql.NullString
		activationLink           sql.NullString
		activationLinkExpires    sql.NullTime
		passwordResetLink        sql.NullString
		passwordResetLinkExpires sql.NullTime
		lang                     string
		lastName, avatar         sql.NullString
		birthday                 sql.NullTime
		utmSource, utmMedium     sql.NullString
		utmCampaign, utmContent  sql.NullString
		utmTerm                  sql.NullString
	)

	err := row.Scan(
		&u.ID, &u.Email, &passwordHash, &u.IsActivated,
		&activationLink, &activationLinkExpires,
		&passwordResetLink, &passwordResetLinkExpires,
		&lang, &u.FirstName, &lastName, &avatar, &birthday,
		&utmSource, &utmMedium, &utmCampaign, &utmContent, &utmTerm,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.PasswordHash = mapNullString(passwordHash)
	u.ActivationLink = mapNullString(activationLink)
	u.ActivationLinkExpires = mapNullTimePtr(activationLinkExpires)
	u.PasswordResetLink = mapNullString(passwordResetLink)
	u.PasswordResetLinkExpires = mapNullTimePtr(passwordResetLinkExpires)
	u.Lang = domain.Lang(lang)
	u.LastName = mapNullString(lastName)
	u.Avatar = mapNullString(avatar)
	u.Birthday = mapNullTimePtr(birthday)
	u.UTM = domain.UTM{
		Source:   mapNullString(utmSource),
		Medium:   mapNullString(utmMedium),
		Campaign: mapNullString(utmCampaign),
		Content:  mapNullString(utmContent),
		Term:     mapNullString(utmTerm),
	}

	return u, nil
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

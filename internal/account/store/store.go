package store

import (
	"context"
	"errors"
	"time"

	"github.com/wishlane/accounts/internal/account/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// UserFilter selects which relationship slice of the user base a listing
// returns. Filters are mutually exclusive with free-text search.
type UserFilter string

const (
	FilterAll        UserFilter = "all"
	FilterFriends    UserFilter = "friends"
	FilterFollowTo   UserFilter = "followTo"   // users the requester follows
	FilterFollowFrom UserFilter = "followFrom" // users following the requester
)

// ListQuery shapes a paginated user listing. ExcludeIDs always removes the
// requester and the featured account from the result; Search is a
// case-insensitive substring match over first name, last name and email.
type ListQuery struct {
	RequesterID string
	Filter      UserFilter
	Search      string
	ExcludeIDs  []string
	Limit       int
	Offset      int
}

// Store is the root data access interface. The sqlite driver implements it.
// Sub-repositories keep concerns tidy; multi-step operations that must be
// atomic (the account deletion cascade) go through WithTx.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Wishes() Wishes
	Collections() Collections

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rollback on error, commit on
	// nil. Preferred over Tx for new code.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByActivationLink resolves a pending activation link.
	GetUserByActivationLink(ctx context.Context, link string) (domain.User, error)

	// GetUserByPasswordResetLink resolves a pending reset link.
	GetUserByPasswordResetLink(ctx context.Context, link string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser overwrites all mutable fields of the record in one
	// statement and bumps updated_at. Callers read, transform the record as
	// a value, then write it back here.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the record, reporting how many rows went away so
	// callers can detect a lost race.
	DeleteUser(ctx context.Context, id string) (int64, error)

	// ListUsers runs the paginated listing, newest-updated first.
	ListUsers(ctx context.Context, q ListQuery) ([]domain.User, error)

	// ListInactiveExpired returns unactivated users whose activation link
	// expired before now. Consumed by the maintenance sweep.
	ListInactiveExpired(ctx context.Context, now time.Time) ([]domain.User, error)

	// ListExpiredPasswordReset returns users whose reset link expired
	// before now.
	ListExpiredPasswordReset(ctx context.Context, now time.Time) ([]domain.User, error)

	CountUsers(ctx context.Context) (int64, error)
	CountNotActivated(ctx context.Context) (int64, error)

	// CountFollowers counts users following the given user.
	CountFollowers(ctx context.Context, userID string) (int64, error)

	// AddFriend and AddFollow write relationship rows. The rows are owned
	// by the social collaborators; the account service only reads them in
	// listings, but the store carries the writers for those collaborators
	// and for tests.
	AddFriend(ctx context.Context, userID, friendID string) error
	AddFollow(ctx context.Context, followerID, followeeID string) error
}

type RefreshTokens interface {
	// Save upserts the single refresh-token row for a user: overwrite when
	// present, insert otherwise. Guarantees at most one live token per user.
	Save(ctx context.Context, userID, refreshToken string) error

	// Find returns the record holding the given token value.
	Find(ctx context.Context, refreshToken string) (domain.RefreshToken, error)

	// Remove deletes by token value and reports the number of rows deleted
	// (0 or 1). Removing an absent token is not an error.
	Remove(ctx context.Context, refreshToken string) (int64, error)
}

type Wishes interface {
	CreateWish(ctx context.Context, w domain.Wish) error

	// ListWishIDsByOwner feeds the deletion cascade, which removes wishes
	// one at a time the way the wish collaborator expects.
	ListWishIDsByOwner(ctx context.Context, userID string) ([]string, error)

	// DeleteWish removes a single wish owned by ownerID.
	DeleteWish(ctx context.Context, wishID, ownerID string) error

	CountWishes(ctx context.Context) (int64, error)
	CountExecuted(ctx context.Context) (int64, error)
	CountBooked(ctx context.Context) (int64, error)
}

type Collections interface {
	CreateCollection(ctx context.Context, c domain.Collection) error

	// DeleteByOwner bulk-deletes a user's collections during the cascade.
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}

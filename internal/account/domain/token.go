package domain

// RefreshToken is the persisted session credential. At most one row exists
// per user: saves overwrite, so an older token becomes unfindable and is
// thereby revoked.
type RefreshToken struct {
	UserID       string
	RefreshToken string
}

// AdminStats are the aggregate counters returned from the refresh operation.
type AdminStats struct {
	UsersCount             int64 `json:"usersCount"`
	NotActivatedUsersCount int64 `json:"notActivatedUsersCount"`
	WishesCount            int64 `json:"wishesCount"`
	ExecutedWishesCount    int64 `json:"executedWishesCount"`
	BookedWishesCount      int64 `json:"bookedWishesCount"`
}

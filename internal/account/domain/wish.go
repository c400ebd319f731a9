package domain

import "time"

// Wish is the slice of the wish domain the account service touches: enough
// to materialize guest wishes at signup, count them for the admin payload and
// cascade-delete them with the account. Everything else about wishes lives in
// its own service.
type Wish struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Executed  bool      `json:"executed"`
	BookedBy  string    `json:"bookedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GuestWish is a wish captured client-side before the visitor had an
// account, submitted as a JSON list during Google sign-up.
type GuestWish struct {
	Title string `json:"title"`
}

// Collection groups wishes; the account service only bulk-deletes them by
// owner during the account deletion cascade.
type Collection struct {
	ID     string
	UserID string
	Title  string
}

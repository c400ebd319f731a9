// Package storage removes a user's uploaded files (avatars, wish images)
// from object storage when the account is deleted.
package storage

import "context"

// ObjectStorage is the slice of the blob store the account service needs.
type ObjectStorage interface {
	// RemoveUserObjects deletes every object stored under the user's prefix.
	// Missing objects are not an error; the cascade must be idempotent.
	RemoveUserObjects(ctx context.Context, userID string) error
}

// Noop satisfies ObjectStorage when no object store is configured.
type Noop struct{}

func (Noop) RemoveUserObjects(ctx context.Context, userID string) error { return nil }

package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrItemNotFound indicates that sync queue item was not found
	ErrItemNotFound = errors.New("sync queue item not found")

	// ErrMealNotFound indicates that local meal record was not found
	ErrMealNotFound = errors.New("meal record not found")

	// ErrThumbnailNotFound indicates that thumbnail record was not found
	ErrThumbnailNotFound = errors.New("thumbnail record not found")

	// ErrDuplicateOperation indicates an insert with an operation_id
	// that already has a live queue item
	ErrDuplicateOperation = errors.New("queue item with this operation_id already exists")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

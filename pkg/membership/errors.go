package membership

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrUnknownCollection is returned by stores asked for a collection
	// they do not manage.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrFailedToApplyMigrations is returned when the tenancy schema
	// cannot be brought up to date.
	ErrFailedToApplyMigrations = errors.New("failed to apply tenancy migrations")
)

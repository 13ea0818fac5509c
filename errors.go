package tenantguard

import "errors"

var (
	// ErrNoCollections is returned when the plugin is created without any
	// collection to scope.
	ErrNoCollections = errors.New("tenantguard: no collections configured")

	// ErrInvalidCollectionsYAML is returned when a declarative collection
	// list cannot be parsed.
	ErrInvalidCollectionsYAML = errors.New("tenantguard: invalid collections yaml")
)

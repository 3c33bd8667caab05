package scheduler

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("scheduler: invalid configuration")

	// ErrSyncInProgress is returned when a site is already being refreshed
	ErrSyncInProgress = errors.New("scheduler: sync already in progress for this site")

	// ErrNotWooCommerceSite is returned when triggering a site without WooCommerce
	ErrNotWooCommerceSite = errors.New("scheduler: site does not have WooCommerce")
)

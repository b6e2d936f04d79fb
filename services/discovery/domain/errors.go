package domain

import "errors"

// Sentinel errors for the discovery (AI/recipe provider) adapter.
var (
	// ErrNotConfigured indicates the feature's API key is unset; the
	// upstream call is never attempted.
	ErrNotConfigured = errors.New("feature not configured")

	// ErrUpstream indicates the external provider call failed or timed out.
	ErrUpstream = errors.New("upstream provider error")

	// ErrEmptyInventory indicates a suggestion was requested with nothing
	// in inventory to base it on.
	ErrEmptyInventory = errors.New("no items in inventory")
)

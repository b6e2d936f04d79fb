package domain

import "errors"

// Sentinel errors for the recipe domain. Use errors.Is() to check these.
var (
	// ErrRecipeNotFound indicates the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrInvalidRecipe indicates the recipe violates domain constraints.
	ErrInvalidRecipe = errors.New("invalid recipe")
)

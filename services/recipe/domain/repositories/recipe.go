package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/homestock/services/recipe/domain/models"
)

// RecipeRepository persists Recipe aggregates including their ordered
// ingredient and step lists. Implementations return domain.ErrRecipeNotFound
// when the id does not resolve.
type RecipeRepository interface {
	// Save persists a new recipe with all its children in one transaction.
	Save(ctx context.Context, recipe *models.Recipe) error

	// GetByID loads a recipe with ingredients and steps in stored order.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)

	// FindAll returns recipes newest first, optionally favorites only.
	FindAll(ctx context.Context, favoritesOnly bool) ([]*models.Recipe, error)

	// Update writes the recipe row and replaces its ingredient and step
	// lists wholesale in one transaction.
	Update(ctx context.Context, recipe *models.Recipe) error

	// Delete removes the recipe; children go with it via cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

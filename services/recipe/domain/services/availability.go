package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/homestock/services/recipe/domain/models"
)

// IngredientStatus reports whether one ingredient is currently in inventory.
type IngredientStatus struct {
	Ingredient  models.Ingredient
	InInventory bool
}

// Availability is the can-make report for a recipe: which ingredients are
// present against current inventory names and what fraction that covers.
type Availability struct {
	RecipeID    uuid.UUID
	Total       int
	Present     int
	Coverage    float64
	CanMake     bool
	Ingredients []IngredientStatus
}

// ComputeAvailability matches a recipe's ingredients against inventory item
// names. Matching is exact and case-insensitive; no fuzzy matching or unit
// conversion. A recipe with no ingredients is trivially makeable.
func ComputeAvailability(recipe *models.Recipe, inventoryNames []string) Availability {
	names := make(map[string]struct{}, len(inventoryNames))
	for _, n := range inventoryNames {
		names[normalizeName(n)] = struct{}{}
	}

	result := Availability{
		RecipeID:    recipe.ID,
		Total:       len(recipe.Ingredients),
		Ingredients: make([]IngredientStatus, 0, len(recipe.Ingredients)),
	}
	for _, ing := range recipe.Ingredients {
		_, present := names[normalizeName(ing.Name)]
		if present {
			result.Present++
		}
		result.Ingredients = append(result.Ingredients, IngredientStatus{
			Ingredient:  ing,
			InInventory: present,
		})
	}

	if result.Total == 0 {
		result.Coverage = 1.0
	} else {
		result.Coverage = float64(result.Present) / float64(result.Total)
	}
	result.CanMake = result.Present == result.Total
	return result
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

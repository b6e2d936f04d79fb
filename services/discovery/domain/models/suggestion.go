package models

// SuggestedIngredient is one ingredient in a generated recipe suggestion.
type SuggestedIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes,omitempty"`
}

// SuggestedStep is one instruction in a generated recipe suggestion.
type SuggestedStep struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

// RecipeSuggestion is one generated recipe idea.
type RecipeSuggestion struct {
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Servings        int                   `json:"servings"`
	PrepTimeMinutes int                   `json:"prep_time_minutes"`
	CookTimeMinutes int                   `json:"cook_time_minutes"`
	Ingredients     []SuggestedIngredient `json:"ingredients"`
	Steps           []SuggestedStep       `json:"steps"`
}

// RecipeSuggestions is the full generated-recipe response: the ideas plus
// which inventory items they draw on.
type RecipeSuggestions struct {
	Suggestions   []RecipeSuggestion `json:"suggestions"`
	InventoryUsed []string           `json:"inventory_used"`
}

// GrocerySuggestion is one generated shopping-list entry with its rationale.
type GrocerySuggestion struct {
	ItemName string `json:"item_name"`
	Reason   string `json:"reason"`
}

// GrocerySuggestions is the full generated shopping-list response.
type GrocerySuggestions struct {
	Suggestions      []GrocerySuggestion `json:"suggestions"`
	BasedOnRecipes   []string            `json:"based_on_recipes"`
	CurrentInventory []string            `json:"current_inventory"`
}

// FavoriteRecipe is the slice of the recipe context the grocery prompt
// needs: a name and its ingredient names.
type FavoriteRecipe struct {
	Name        string
	Ingredients []string
}

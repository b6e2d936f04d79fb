package models

// DiscoveredRecipe is one hit from an ingredient-based recipe search.
type DiscoveredRecipe struct {
	ExternalID            int64    `json:"external_id"`
	Title                 string   `json:"title"`
	ImageURL              string   `json:"image_url"`
	UsedIngredientCount   int      `json:"used_ingredient_count"`
	MissedIngredientCount int      `json:"missed_ingredient_count"`
	MissedIngredients     []string `json:"missed_ingredients"`
}

// ExternalIngredient is one ingredient of an upstream recipe payload.
type ExternalIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes,omitempty"`
}

// ExternalStep is one instruction of an upstream recipe payload.
type ExternalStep struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

// ExternalRecipe is an upstream recipe converted to the local shape,
// ready to present or import.
type ExternalRecipe struct {
	ExternalID      int64                `json:"external_id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Servings        int                  `json:"servings"`
	PrepTimeMinutes int                  `json:"prep_time_minutes"`
	CookTimeMinutes int                  `json:"cook_time_minutes"`
	SourceURL       string               `json:"source_url"`
	ImageURL        string               `json:"image_url"`
	Ingredients     []ExternalIngredient `json:"ingredients"`
	Steps           []ExternalStep       `json:"steps"`
}

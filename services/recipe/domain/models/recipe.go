package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/homestock/services/recipe/domain"
)

// Ingredient is one entry in a recipe's ordered ingredient list.
// Amount and unit are free-form strings; no unit conversion is attempted.
type Ingredient struct {
	ID     uuid.UUID
	Name   string
	Amount string
	Unit   string
	Notes  string
}

// Step is one entry in a recipe's ordered instruction list.
type Step struct {
	ID          uuid.UUID
	StepNumber  int
	Instruction string
}

// Source records where an imported recipe came from. Zero value means
// manual entry.
type Source struct {
	URL        string
	ImageURL   string
	ExternalID int64 // provider-side recipe id, 0 if none
}

// Recipe is the aggregate for the recipe context: a named collection of
// ordered ingredients and steps, optionally favorited.
type Recipe struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Servings        int
	PrepTimeMinutes int
	CookTimeMinutes int
	IsFavorite      bool
	Source          Source
	Ingredients     []Ingredient
	Steps           []Step
	CreatedAt       time.Time
}

// NewRecipe constructs a Recipe with generated IDs and current timestamp.
// Ingredient and step order follows the given slices.
func NewRecipe(name string, ingredients []Ingredient, steps []Step) (*Recipe, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidRecipe)
	}
	r := &Recipe{
		ID:          uuid.New(),
		Name:        name,
		Servings:    4,
		Ingredients: ingredients,
		Steps:       steps,
		CreatedAt:   time.Now().UTC(),
	}
	r.assignIDs()
	return r, nil
}

// ReplaceIngredients swaps the full ingredient list, preserving order.
func (r *Recipe) ReplaceIngredients(ingredients []Ingredient) {
	r.Ingredients = ingredients
	r.assignIDs()
}

// ReplaceSteps swaps the full step list, preserving order.
func (r *Recipe) ReplaceSteps(steps []Step) {
	r.Steps = steps
	r.assignIDs()
}

// ToggleFavorite flips the favorite flag.
func (r *Recipe) ToggleFavorite() {
	r.IsFavorite = !r.IsFavorite
}

// TotalTimeMinutes returns prep plus cook time.
func (r *Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// assignIDs fills in missing child row ids and step numbers.
func (r *Recipe) assignIDs() {
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == uuid.Nil {
			r.Ingredients[i].ID = uuid.New()
		}
	}
	for i := range r.Steps {
		if r.Steps[i].ID == uuid.Nil {
			r.Steps[i].ID = uuid.New()
		}
		if r.Steps[i].StepNumber == 0 {
			r.Steps[i].StepNumber = i + 1
		}
	}
}

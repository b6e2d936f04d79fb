package handlers

import (
	"time"

	"github.com/google/uuid"

	appsvcs "github.com/ghuser/homestock/services/recipe/application/services"
	"github.com/ghuser/homestock/services/recipe/domain/models"
	domainsvcs "github.com/ghuser/homestock/services/recipe/domain/services"
)

// IngredientRequest is one ingredient in a create or replace body.
type IngredientRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=255"`
	Amount string `json:"amount" validate:"omitempty,max=64"`
	Unit   string `json:"unit" validate:"omitempty,max=64"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
}

// StepRequest is one instruction in a create or replace body. Step numbers
// are assigned from slice order.
type StepRequest struct {
	Instruction string `json:"instruction" validate:"required,min=1"`
}

// RecipeRequest is the request body for POST /recipes and PUT /recipes/{id}.
type RecipeRequest struct {
	Name            string              `json:"name" validate:"required,min=1,max=255"`
	Description     string              `json:"description" validate:"omitempty,max=2000"`
	Servings        int                 `json:"servings" validate:"omitempty,min=1,max=100"`
	PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"omitempty,min=0"`
	CookTimeMinutes int                 `json:"cook_time_minutes" validate:"omitempty,min=0"`
	SourceURL       string              `json:"source_url" validate:"omitempty,url"`
	ImageURL        string              `json:"image_url" validate:"omitempty,url"`
	Ingredients     []IngredientRequest `json:"ingredients" validate:"dive"`
	Steps           []StepRequest       `json:"steps" validate:"dive"`
}

// UpdateRecipeRequest is the request body for PATCH /recipes/{id}.
// Metadata only; nil fields are left untouched.
type UpdateRecipeRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	Servings        *int    `json:"servings" validate:"omitempty,min=1,max=100"`
	PrepTimeMinutes *int    `json:"prep_time_minutes" validate:"omitempty,min=0"`
	CookTimeMinutes *int    `json:"cook_time_minutes" validate:"omitempty,min=0"`
}

// IngredientResponse is the wire representation of one ingredient.
type IngredientResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount string    `json:"amount"`
	Unit   string    `json:"unit"`
	Notes  string    `json:"notes,omitempty"`
}

// StepResponse is the wire representation of one step.
type StepResponse struct {
	ID          uuid.UUID `json:"id"`
	StepNumber  int       `json:"step_number"`
	Instruction string    `json:"instruction"`
}

// RecipeResponse is the wire representation of a recipe.
type RecipeResponse struct {
	ID               uuid.UUID            `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	Servings         int                  `json:"servings"`
	PrepTimeMinutes  int                  `json:"prep_time_minutes"`
	CookTimeMinutes  int                  `json:"cook_time_minutes"`
	TotalTimeMinutes int                  `json:"total_time_minutes"`
	IsFavorite       bool                 `json:"is_favorite"`
	SourceURL        string               `json:"source_url,omitempty"`
	ImageURL         string               `json:"image_url,omitempty"`
	Ingredients      []IngredientResponse `json:"ingredients"`
	Steps            []StepResponse       `json:"steps"`
	CreatedAt        time.Time            `json:"created_at"`
}

// IngredientAvailabilityResponse is one row of the can-make report.
type IngredientAvailabilityResponse struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Unit        string `json:"unit"`
	InInventory bool   `json:"in_inventory"`
}

// AvailabilityResponse is the can-make report for one recipe.
type AvailabilityResponse struct {
	RecipeID    uuid.UUID                        `json:"recipe_id"`
	Total       int                              `json:"total"`
	Present     int                              `json:"present"`
	Coverage    float64                          `json:"coverage"`
	CanMake     bool                             `json:"can_make"`
	Ingredients []IngredientAvailabilityResponse `json:"ingredients"`
}

func toRecipeInput(req *RecipeRequest) appsvcs.RecipeInput {
	in := appsvcs.RecipeInput{
		Name:            req.Name,
		Description:     req.Description,
		Servings:        req.Servings,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		SourceURL:       req.SourceURL,
		ImageURL:        req.ImageURL,
	}
	for _, ing := range req.Ingredients {
		in.Ingredients = append(in.Ingredients, appsvcs.IngredientInput{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Notes:  ing.Notes,
		})
	}
	for _, step := range req.Steps {
		in.Steps = append(in.Steps, appsvcs.StepInput{Instruction: step.Instruction})
	}
	return in
}

// ToRecipeResponse maps a recipe aggregate to its wire shape. Exported for
// endpoints in other contexts that return locally saved recipes.
func ToRecipeResponse(recipe *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:               recipe.ID,
		Name:             recipe.Name,
		Description:      recipe.Description,
		Servings:         recipe.Servings,
		PrepTimeMinutes:  recipe.PrepTimeMinutes,
		CookTimeMinutes:  recipe.CookTimeMinutes,
		TotalTimeMinutes: recipe.TotalTimeMinutes(),
		IsFavorite:       recipe.IsFavorite,
		SourceURL:        recipe.Source.URL,
		ImageURL:         recipe.Source.ImageURL,
		Ingredients:      make([]IngredientResponse, len(recipe.Ingredients)),
		Steps:            make([]StepResponse, len(recipe.Steps)),
		CreatedAt:        recipe.CreatedAt,
	}
	for i, ing := range recipe.Ingredients {
		resp.Ingredients[i] = IngredientResponse{
			ID: ing.ID, Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit, Notes: ing.Notes,
		}
	}
	for i, step := range recipe.Steps {
		resp.Steps[i] = StepResponse{
			ID: step.ID, StepNumber: step.StepNumber, Instruction: step.Instruction,
		}
	}
	return resp
}

func toRecipeResponses(recipes []*models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, len(recipes))
	for i, recipe := range recipes {
		out[i] = ToRecipeResponse(recipe)
	}
	return out
}

func toAvailabilityResponse(a *domainsvcs.Availability) AvailabilityResponse {
	resp := AvailabilityResponse{
		RecipeID:    a.RecipeID,
		Total:       a.Total,
		Present:     a.Present,
		Coverage:    a.Coverage,
		CanMake:     a.CanMake,
		Ingredients: make([]IngredientAvailabilityResponse, len(a.Ingredients)),
	}
	for i, status := range a.Ingredients {
		resp.Ingredients[i] = IngredientAvailabilityResponse{
			Name:        status.Ingredient.Name,
			Amount:      status.Ingredient.Amount,
			Unit:        status.Ingredient.Unit,
			InInventory: status.InInventory,
		}
	}
	return resp
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	recdomain "github.com/ghuser/homestock/services/recipe/domain"
	"github.com/ghuser/homestock/services/recipe/domain/models"
	"github.com/ghuser/homestock/services/recipe/domain/repositories"
	domainsvcs "github.com/ghuser/homestock/services/recipe/domain/services"
)

// InventoryReader is the read-side the recipe context needs from the
// inventory context: the names of items currently at home.
type InventoryReader interface {
	InventoryNames(ctx context.Context) ([]string, error)
}

// IngredientInput is one ingredient in a create or replace request.
type IngredientInput struct {
	Name   string
	Amount string
	Unit   string
	Notes  string
}

// StepInput is one instruction in a create or replace request. Steps are
// numbered by their position in the slice.
type StepInput struct {
	Instruction string
}

// RecipeInput carries the full recipe shape for create and replace.
type RecipeInput struct {
	Name            string
	Description     string
	Servings        int
	PrepTimeMinutes int
	CookTimeMinutes int
	SourceURL       string
	ImageURL        string
	ExternalID      int64
	Ingredients     []IngredientInput
	Steps           []StepInput
}

// MetadataPatch carries partial recipe metadata edits. Nil fields are left
// untouched; ingredient and step lists are never changed by a patch.
type MetadataPatch struct {
	Name            *string
	Description     *string
	Servings        *int
	PrepTimeMinutes *int
	CookTimeMinutes *int
}

// RecipeService orchestrates recipe CRUD and can-make availability
// against current inventory.
type RecipeService struct {
	repo      repositories.RecipeRepository
	inventory InventoryReader
}

// NewRecipeService returns a RecipeService wired with the given repository
// and inventory reader.
func NewRecipeService(repo repositories.RecipeRepository, inventory InventoryReader) *RecipeService {
	return &RecipeService{repo: repo, inventory: inventory}
}

// Create validates and persists a new recipe.
func (s *RecipeService) Create(ctx context.Context, in RecipeInput) (*models.Recipe, error) {
	recipe, err := buildRecipe(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("save recipe: %w", err)
	}
	return recipe, nil
}

// Get retrieves a recipe with its ingredients and steps.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// List returns recipes newest first, optionally favorites only.
func (s *RecipeService) List(ctx context.Context, favoritesOnly bool) ([]*models.Recipe, error) {
	recipes, err := s.repo.FindAll(ctx, favoritesOnly)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Replace overwrites the whole recipe: metadata plus both child lists.
// The recipe keeps its id, favorite flag, and creation time.
func (s *RecipeService) Replace(ctx context.Context, id uuid.UUID, in RecipeInput) (*models.Recipe, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	next, err := buildRecipe(in)
	if err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.IsFavorite = current.IsFavorite
	next.CreatedAt = current.CreatedAt
	for i := range next.Ingredients {
		next.Ingredients[i].ID = uuid.New()
	}
	for i := range next.Steps {
		next.Steps[i].ID = uuid.New()
	}

	if err := s.repo.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("replace recipe: %w", err)
	}
	return next, nil
}

// UpdateMetadata applies a partial metadata edit.
func (s *RecipeService) UpdateMetadata(ctx context.Context, id uuid.UUID, patch MetadataPatch) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", recdomain.ErrInvalidRecipe)
		}
		recipe.Name = *patch.Name
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Servings != nil {
		recipe.Servings = *patch.Servings
	}
	if patch.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *patch.PrepTimeMinutes
	}
	if patch.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *patch.CookTimeMinutes
	}

	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return recipe, nil
}

// ToggleFavorite flips the favorite flag and returns the updated recipe.
func (s *RecipeService) ToggleFavorite(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	recipe.ToggleFavorite()
	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return recipe, nil
}

// Delete removes a recipe with its ingredients and steps.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// Availability computes the can-make report for one recipe against the
// names currently in inventory.
func (s *RecipeService) Availability(ctx context.Context, id uuid.UUID) (*domainsvcs.Availability, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	names, err := s.inventory.InventoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	availability := domainsvcs.ComputeAvailability(recipe, names)
	return &availability, nil
}

func buildRecipe(in RecipeInput) (*models.Recipe, error) {
	ingredients := make([]models.Ingredient, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		if ing.Name == "" {
			return nil, fmt.Errorf("%w: ingredient %d has no name", recdomain.ErrInvalidRecipe, i+1)
		}
		ingredients[i] = models.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Notes:  ing.Notes,
		}
	}
	steps := make([]models.Step, len(in.Steps))
	for i, step := range in.Steps {
		if step.Instruction == "" {
			return nil, fmt.Errorf("%w: step %d has no instruction", recdomain.ErrInvalidRecipe, i+1)
		}
		steps[i] = models.Step{StepNumber: i + 1, Instruction: step.Instruction}
	}

	recipe, err := models.NewRecipe(in.Name, ingredients, steps)
	if err != nil {
		return nil, err
	}
	recipe.Description = in.Description
	if in.Servings > 0 {
		recipe.Servings = in.Servings
	}
	recipe.PrepTimeMinutes = in.PrepTimeMinutes
	recipe.CookTimeMinutes = in.CookTimeMinutes
	recipe.Source = models.Source{
		URL:        in.SourceURL,
		ImageURL:   in.ImageURL,
		ExternalID: in.ExternalID,
	}
	return recipe, nil
}

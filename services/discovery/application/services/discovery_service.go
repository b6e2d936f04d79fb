package services

import (
	"context"
	"fmt"

	discdomain "github.com/ghuser/homestock/services/discovery/domain"
	"github.com/ghuser/homestock/services/discovery/domain/models"
	recsvcs "github.com/ghuser/homestock/services/recipe/application/services"
	recmodels "github.com/ghuser/homestock/services/recipe/domain/models"
)

// GeminiClient generates structured suggestions from prompts.
type GeminiClient interface {
	SuggestRecipes(ctx context.Context, inventory []string, query string) (*models.RecipeSuggestions, error)
	SuggestGroceries(ctx context.Context, inventory []string, favorites []models.FavoriteRecipe, preferences string) (*models.GrocerySuggestions, error)
}

// SpoonacularClient searches and fetches recipes from the external catalog.
type SpoonacularClient interface {
	FindByIngredients(ctx context.Context, ingredients []string, number int) ([]models.DiscoveredRecipe, error)
	GetRecipe(ctx context.Context, id int64) (*models.ExternalRecipe, error)
	ExtractFromURL(ctx context.Context, url string) (*models.ExternalRecipe, error)
}

// InventoryReader is the read-side this context needs from the inventory
// context: the names of items currently at home.
type InventoryReader interface {
	InventoryNames(ctx context.Context) ([]string, error)
}

// RecipeCatalog is the slice of the recipe context used for grocery
// suggestions (favorites) and for importing discovered recipes.
type RecipeCatalog interface {
	List(ctx context.Context, favoritesOnly bool) ([]*recmodels.Recipe, error)
	Create(ctx context.Context, in recsvcs.RecipeInput) (*recmodels.Recipe, error)
}

// DiscoverResult is an ingredient-based search outcome plus the inventory
// names it was based on.
type DiscoverResult struct {
	Recipes         []models.DiscoveredRecipe `json:"recipes"`
	IngredientsUsed []string                  `json:"ingredients_used"`
}

// DiscoveryService fronts the external AI and recipe-catalog providers.
// A nil client means the corresponding API key is unset; those operations
// fail fast with ErrNotConfigured and never call upstream.
type DiscoveryService struct {
	gemini      GeminiClient
	spoonacular SpoonacularClient
	inventory   InventoryReader
	recipes     RecipeCatalog
}

// NewDiscoveryService wires the discovery service. gemini and spoonacular
// may be nil when unconfigured.
func NewDiscoveryService(
	gemini GeminiClient,
	spoonacular SpoonacularClient,
	inventory InventoryReader,
	recipes RecipeCatalog,
) *DiscoveryService {
	return &DiscoveryService{
		gemini:      gemini,
		spoonacular: spoonacular,
		inventory:   inventory,
		recipes:     recipes,
	}
}

// SuggestRecipes generates recipe ideas from current inventory, optionally
// steered by a query. Requires a non-empty inventory.
func (s *DiscoveryService) SuggestRecipes(ctx context.Context, query string) (*models.RecipeSuggestions, error) {
	if s.gemini == nil {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY", discdomain.ErrNotConfigured)
	}
	names, err := s.inventory.InventoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	if len(names) == 0 {
		return nil, discdomain.ErrEmptyInventory
	}
	return s.gemini.SuggestRecipes(ctx, names, query)
}

// SuggestGroceries generates shopping-list entries from current inventory
// and favorited recipes. An empty inventory is fine here: everything is
// missing.
func (s *DiscoveryService) SuggestGroceries(ctx context.Context, preferences string) (*models.GrocerySuggestions, error) {
	if s.gemini == nil {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY", discdomain.ErrNotConfigured)
	}
	names, err := s.inventory.InventoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	recipes, err := s.recipes.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	favorites := make([]models.FavoriteRecipe, len(recipes))
	for i, recipe := range recipes {
		fav := models.FavoriteRecipe{Name: recipe.Name}
		for _, ing := range recipe.Ingredients {
			fav.Ingredients = append(fav.Ingredients, ing.Name)
		}
		favorites[i] = fav
	}

	return s.gemini.SuggestGroceries(ctx, names, favorites, preferences)
}

// Discover searches the external catalog for recipes makeable from current
// inventory. Requires a non-empty inventory.
func (s *DiscoveryService) Discover(ctx context.Context, number int) (*DiscoverResult, error) {
	if s.spoonacular == nil {
		return nil, fmt.Errorf("%w: set SPOONACULAR_API_KEY", discdomain.ErrNotConfigured)
	}
	names, err := s.inventory.InventoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	if len(names) == 0 {
		return nil, discdomain.ErrEmptyInventory
	}

	recipes, err := s.spoonacular.FindByIngredients(ctx, names, number)
	if err != nil {
		return nil, err
	}
	return &DiscoverResult{Recipes: recipes, IngredientsUsed: names}, nil
}

// GetExternalRecipe fetches one catalog recipe in the local shape without
// persisting it.
func (s *DiscoveryService) GetExternalRecipe(ctx context.Context, id int64) (*models.ExternalRecipe, error) {
	if s.spoonacular == nil {
		return nil, fmt.Errorf("%w: set SPOONACULAR_API_KEY", discdomain.ErrNotConfigured)
	}
	return s.spoonacular.GetRecipe(ctx, id)
}

// ExtractRecipe scrapes a recipe page through the catalog provider and
// returns the converted result without persisting it.
func (s *DiscoveryService) ExtractRecipe(ctx context.Context, url string) (*models.ExternalRecipe, error) {
	if s.spoonacular == nil {
		return nil, fmt.Errorf("%w: set SPOONACULAR_API_KEY", discdomain.ErrNotConfigured)
	}
	return s.spoonacular.ExtractFromURL(ctx, url)
}

// ImportRecipe fetches a catalog recipe and saves it as a local recipe.
func (s *DiscoveryService) ImportRecipe(ctx context.Context, id int64) (*recmodels.Recipe, error) {
	external, err := s.GetExternalRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	in := recsvcs.RecipeInput{
		Name:            external.Name,
		Description:     external.Description,
		Servings:        external.Servings,
		PrepTimeMinutes: external.PrepTimeMinutes,
		CookTimeMinutes: external.CookTimeMinutes,
		SourceURL:       external.SourceURL,
		ImageURL:        external.ImageURL,
		ExternalID:      external.ExternalID,
	}
	for _, ing := range external.Ingredients {
		in.Ingredients = append(in.Ingredients, recsvcs.IngredientInput{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Notes:  ing.Notes,
		})
	}
	for _, step := range external.Steps {
		in.Steps = append(in.Steps, recsvcs.StepInput{Instruction: step.Instruction})
	}

	recipe, err := s.recipes.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("import recipe: %w", err)
	}
	return recipe, nil
}

package services

import (
	"context"
	"errors"
	"testing"

	discdomain "github.com/ghuser/homestock/services/discovery/domain"
	"github.com/ghuser/homestock/services/discovery/domain/models"
	recsvcs "github.com/ghuser/homestock/services/recipe/application/services"
	recmodels "github.com/ghuser/homestock/services/recipe/domain/models"
)

type fakeInventory struct {
	names []string
	err   error
}

func (f *fakeInventory) InventoryNames(context.Context) ([]string, error) {
	return f.names, f.err
}

type fakeGemini struct {
	recipes   *models.RecipeSuggestions
	groceries *models.GrocerySuggestions

	lastInventory []string
	lastQuery     string
	lastFavorites []models.FavoriteRecipe
}

func (f *fakeGemini) SuggestRecipes(_ context.Context, inventory []string, query string) (*models.RecipeSuggestions, error) {
	f.lastInventory = inventory
	f.lastQuery = query
	return f.recipes, nil
}

func (f *fakeGemini) SuggestGroceries(_ context.Context, inventory []string, favorites []models.FavoriteRecipe, _ string) (*models.GrocerySuggestions, error) {
	f.lastInventory = inventory
	f.lastFavorites = favorites
	return f.groceries, nil
}

type fakeSpoonacular struct {
	discovered []models.DiscoveredRecipe
	recipe     *models.ExternalRecipe
	err        error

	lastNumber int
}

func (f *fakeSpoonacular) FindByIngredients(_ context.Context, _ []string, number int) ([]models.DiscoveredRecipe, error) {
	f.lastNumber = number
	return f.discovered, f.err
}

func (f *fakeSpoonacular) GetRecipe(context.Context, int64) (*models.ExternalRecipe, error) {
	return f.recipe, f.err
}

func (f *fakeSpoonacular) ExtractFromURL(context.Context, string) (*models.ExternalRecipe, error) {
	return f.recipe, f.err
}

type fakeCatalog struct {
	favorites []*recmodels.Recipe
	created   *recsvcs.RecipeInput
}

func (f *fakeCatalog) List(_ context.Context, favoritesOnly bool) ([]*recmodels.Recipe, error) {
	if favoritesOnly {
		return f.favorites, nil
	}
	return nil, nil
}

func (f *fakeCatalog) Create(_ context.Context, in recsvcs.RecipeInput) (*recmodels.Recipe, error) {
	f.created = &in
	return recmodels.NewRecipe(in.Name, nil, nil)
}

func TestSuggestRecipes(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured provider", func(t *testing.T) {
		svc := NewDiscoveryService(nil, nil, &fakeInventory{names: []string{"eggs"}}, &fakeCatalog{})
		_, err := svc.SuggestRecipes(ctx, "")
		if !errors.Is(err, discdomain.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("empty inventory", func(t *testing.T) {
		svc := NewDiscoveryService(&fakeGemini{}, nil, &fakeInventory{}, &fakeCatalog{})
		_, err := svc.SuggestRecipes(ctx, "")
		if !errors.Is(err, discdomain.ErrEmptyInventory) {
			t.Fatalf("expected ErrEmptyInventory, got %v", err)
		}
	})

	t.Run("passes inventory and query through", func(t *testing.T) {
		gemini := &fakeGemini{recipes: &models.RecipeSuggestions{}}
		svc := NewDiscoveryService(gemini, nil, &fakeInventory{names: []string{"eggs", "milk"}}, &fakeCatalog{})

		if _, err := svc.SuggestRecipes(ctx, "something quick"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gemini.lastInventory) != 2 {
			t.Errorf("inventory not forwarded: %v", gemini.lastInventory)
		}
		if gemini.lastQuery != "something quick" {
			t.Errorf("query not forwarded: %q", gemini.lastQuery)
		}
	})
}

func TestSuggestGroceries(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured provider", func(t *testing.T) {
		svc := NewDiscoveryService(nil, nil, &fakeInventory{}, &fakeCatalog{})
		_, err := svc.SuggestGroceries(ctx, "")
		if !errors.Is(err, discdomain.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("empty inventory is allowed", func(t *testing.T) {
		gemini := &fakeGemini{groceries: &models.GrocerySuggestions{}}
		svc := NewDiscoveryService(gemini, nil, &fakeInventory{}, &fakeCatalog{})
		if _, err := svc.SuggestGroceries(ctx, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("favorites are flattened for the prompt", func(t *testing.T) {
		pasta, _ := recmodels.NewRecipe("Pasta",
			[]recmodels.Ingredient{{Name: "spaghetti"}, {Name: "tomatoes"}}, nil)
		gemini := &fakeGemini{groceries: &models.GrocerySuggestions{}}
		svc := NewDiscoveryService(gemini, nil,
			&fakeInventory{names: []string{"salt"}},
			&fakeCatalog{favorites: []*recmodels.Recipe{pasta}},
		)

		if _, err := svc.SuggestGroceries(ctx, "vegetarian"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gemini.lastFavorites) != 1 {
			t.Fatalf("expected 1 favorite, got %d", len(gemini.lastFavorites))
		}
		fav := gemini.lastFavorites[0]
		if fav.Name != "Pasta" || len(fav.Ingredients) != 2 {
			t.Errorf("unexpected favorite shape: %+v", fav)
		}
	})
}

func TestDiscover(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured provider", func(t *testing.T) {
		svc := NewDiscoveryService(nil, nil, &fakeInventory{names: []string{"eggs"}}, &fakeCatalog{})
		_, err := svc.Discover(ctx, 10)
		if !errors.Is(err, discdomain.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("empty inventory", func(t *testing.T) {
		svc := NewDiscoveryService(nil, &fakeSpoonacular{}, &fakeInventory{}, &fakeCatalog{})
		_, err := svc.Discover(ctx, 10)
		if !errors.Is(err, discdomain.ErrEmptyInventory) {
			t.Fatalf("expected ErrEmptyInventory, got %v", err)
		}
	})

	t.Run("echoes inventory used", func(t *testing.T) {
		spoon := &fakeSpoonacular{discovered: []models.DiscoveredRecipe{{ExternalID: 1, Title: "Frittata"}}}
		svc := NewDiscoveryService(nil, spoon, &fakeInventory{names: []string{"eggs", "cheese"}}, &fakeCatalog{})

		result, err := svc.Discover(ctx, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spoon.lastNumber != 5 {
			t.Errorf("number not forwarded: %d", spoon.lastNumber)
		}
		if len(result.Recipes) != 1 {
			t.Fatalf("expected 1 recipe, got %d", len(result.Recipes))
		}
		if len(result.IngredientsUsed) != 2 {
			t.Errorf("IngredientsUsed: got %v", result.IngredientsUsed)
		}
	})
}

func TestImportRecipe(t *testing.T) {
	ctx := context.Background()

	external := &models.ExternalRecipe{
		ExternalID:      716429,
		Name:            "Pasta with Garlic",
		Description:     "A quick weeknight pasta.",
		Servings:        2,
		CookTimeMinutes: 25,
		SourceURL:       "https://example.com/pasta",
		ImageURL:        "https://example.com/pasta.jpg",
		Ingredients: []models.ExternalIngredient{
			{Name: "pasta", Amount: "8", Unit: "oz"},
			{Name: "garlic", Amount: "3", Unit: "cloves"},
		},
		Steps: []models.ExternalStep{
			{Instruction: "Boil the pasta."},
			{Instruction: "Saute the garlic."},
		},
	}

	t.Run("unconfigured provider", func(t *testing.T) {
		svc := NewDiscoveryService(nil, nil, &fakeInventory{}, &fakeCatalog{})
		_, err := svc.ImportRecipe(ctx, 716429)
		if !errors.Is(err, discdomain.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("converts and saves", func(t *testing.T) {
		catalog := &fakeCatalog{}
		svc := NewDiscoveryService(nil, &fakeSpoonacular{recipe: external}, &fakeInventory{}, catalog)

		recipe, err := svc.ImportRecipe(ctx, 716429)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if recipe == nil {
			t.Fatal("expected saved recipe")
		}
		if catalog.created == nil {
			t.Fatal("expected Create to be called")
		}
		in := catalog.created
		if in.Name != "Pasta with Garlic" || in.ExternalID != 716429 {
			t.Errorf("unexpected input: %+v", in)
		}
		if len(in.Ingredients) != 2 || in.Ingredients[1].Name != "garlic" {
			t.Errorf("ingredients not converted: %+v", in.Ingredients)
		}
		if len(in.Steps) != 2 {
			t.Errorf("steps not converted: %+v", in.Steps)
		}
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		spoon := &fakeSpoonacular{err: discdomain.ErrUpstream}
		svc := NewDiscoveryService(nil, spoon, &fakeInventory{}, &fakeCatalog{})
		if _, err := svc.ImportRecipe(ctx, 716429); !errors.Is(err, discdomain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})
}

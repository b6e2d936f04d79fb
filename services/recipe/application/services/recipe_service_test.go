package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	recdomain "github.com/ghuser/homestock/services/recipe/domain"
	"github.com/ghuser/homestock/services/recipe/domain/models"
)

type fakeRecipeRepo struct {
	recipes map[uuid.UUID]*models.Recipe
	order   []uuid.UUID
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[uuid.UUID]*models.Recipe{}}
}

func (f *fakeRecipeRepo) Save(_ context.Context, recipe *models.Recipe) error {
	clone := *recipe
	f.recipes[recipe.ID] = &clone
	f.order = append(f.order, recipe.ID)
	return nil
}

func (f *fakeRecipeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, recdomain.ErrRecipeNotFound
	}
	clone := *recipe
	return &clone, nil
}

func (f *fakeRecipeRepo) FindAll(_ context.Context, favoritesOnly bool) ([]*models.Recipe, error) {
	var out []*models.Recipe
	for _, id := range f.order {
		recipe := f.recipes[id]
		if favoritesOnly && !recipe.IsFavorite {
			continue
		}
		clone := *recipe
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, recipe *models.Recipe) error {
	if _, ok := f.recipes[recipe.ID]; !ok {
		return recdomain.ErrRecipeNotFound
	}
	clone := *recipe
	f.recipes[recipe.ID] = &clone
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.recipes[id]; !ok {
		return recdomain.ErrRecipeNotFound
	}
	delete(f.recipes, id)
	return nil
}

type staticInventory []string

func (s staticInventory) InventoryNames(context.Context) ([]string, error) {
	return s, nil
}

func pancakeInput() RecipeInput {
	return RecipeInput{
		Name:     "Pancakes",
		Servings: 2,
		Ingredients: []IngredientInput{
			{Name: "flour", Amount: "2", Unit: "cups"},
			{Name: "eggs", Amount: "2"},
			{Name: "milk", Amount: "1.5", Unit: "cups"},
		},
		Steps: []StepInput{
			{Instruction: "Mix the batter."},
			{Instruction: "Fry until golden."},
		},
	}
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newFakeRecipeRepo(), staticInventory(nil))

	t.Run("valid input", func(t *testing.T) {
		recipe, err := svc.Create(ctx, pancakeInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if recipe.Servings != 2 {
			t.Errorf("servings: got %d", recipe.Servings)
		}
		if len(recipe.Ingredients) != 3 || len(recipe.Steps) != 2 {
			t.Errorf("children: %d ingredients, %d steps", len(recipe.Ingredients), len(recipe.Steps))
		}
		if recipe.Steps[1].StepNumber != 2 {
			t.Errorf("step numbering: %+v", recipe.Steps)
		}
	})

	t.Run("nameless ingredient rejected", func(t *testing.T) {
		in := pancakeInput()
		in.Ingredients[1].Name = ""
		if _, err := svc.Create(ctx, in); !errors.Is(err, recdomain.ErrInvalidRecipe) {
			t.Fatalf("expected ErrInvalidRecipe, got %v", err)
		}
	})

	t.Run("empty instruction rejected", func(t *testing.T) {
		in := pancakeInput()
		in.Steps[0].Instruction = ""
		if _, err := svc.Create(ctx, in); !errors.Is(err, recdomain.ErrInvalidRecipe) {
			t.Fatalf("expected ErrInvalidRecipe, got %v", err)
		}
	})
}

func TestRecipeService_Replace(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, staticInventory(nil))

	created, err := svc.Create(ctx, pancakeInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ToggleFavorite(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replacement := RecipeInput{
		Name:        "Crepes",
		Ingredients: []IngredientInput{{Name: "flour"}, {Name: "eggs"}},
		Steps:       []StepInput{{Instruction: "Make a thin batter."}},
	}
	replaced, err := svc.Replace(ctx, created.ID, replacement)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if replaced.ID != created.ID {
		t.Errorf("ID changed on replace: %v != %v", replaced.ID, created.ID)
	}
	if !replaced.IsFavorite {
		t.Error("favorite flag lost on replace")
	}
	if !replaced.CreatedAt.Equal(created.CreatedAt) {
		t.Error("creation time changed on replace")
	}
	if replaced.Name != "Crepes" || len(replaced.Ingredients) != 2 || len(replaced.Steps) != 1 {
		t.Errorf("replacement content: %+v", replaced)
	}

	t.Run("missing recipe", func(t *testing.T) {
		if _, err := svc.Replace(ctx, uuid.New(), replacement); !errors.Is(err, recdomain.ErrRecipeNotFound) {
			t.Fatalf("expected ErrRecipeNotFound, got %v", err)
		}
	})
}

func TestRecipeService_UpdateMetadata(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newFakeRecipeRepo(), staticInventory(nil))

	created, _ := svc.Create(ctx, pancakeInput())

	t.Run("partial patch", func(t *testing.T) {
		servings := 6
		updated, err := svc.UpdateMetadata(ctx, created.ID, MetadataPatch{Servings: &servings})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Servings != 6 {
			t.Errorf("servings: got %d", updated.Servings)
		}
		if updated.Name != "Pancakes" {
			t.Errorf("name changed unexpectedly: %q", updated.Name)
		}
		if len(updated.Ingredients) != 3 {
			t.Errorf("patch must not touch ingredients: %+v", updated.Ingredients)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		empty := ""
		if _, err := svc.UpdateMetadata(ctx, created.ID, MetadataPatch{Name: &empty}); !errors.Is(err, recdomain.ErrInvalidRecipe) {
			t.Fatalf("expected ErrInvalidRecipe, got %v", err)
		}
	})
}

func TestRecipeService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newFakeRecipeRepo(), staticInventory(nil))

	pancakes, _ := svc.Create(ctx, pancakeInput())
	soup := pancakeInput()
	soup.Name = "Soup"
	_, _ = svc.Create(ctx, soup)
	_, _ = svc.ToggleFavorite(ctx, pancakes.ID)

	all, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(all))
	}

	favorites, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(favorites) != 1 || favorites[0].Name != "Pancakes" {
		t.Fatalf("favorites filter: %+v", favorites)
	}
}

func TestRecipeService_Availability(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newFakeRecipeRepo(), staticInventory([]string{"Flour", "Eggs"}))

	created, _ := svc.Create(ctx, pancakeInput())

	availability, err := svc.Availability(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if availability.Total != 3 || availability.Present != 2 {
		t.Fatalf("unexpected counts: %+v", availability)
	}
	if availability.CanMake {
		t.Error("milk is missing; recipe should not be makeable")
	}
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newFakeRecipeRepo(), staticInventory(nil))

	created, _ := svc.Create(ctx, pancakeInput())

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, recdomain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, recdomain.ErrRecipeNotFound) {
		t.Fatalf("repeat delete: expected ErrRecipeNotFound, got %v", err)
	}
}

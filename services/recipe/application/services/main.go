package services

import (
	"github.com/ghuser/homestock/pkg/app"
	invsvcs "github.com/ghuser/homestock/services/inventory/application/services"
	"github.com/ghuser/homestock/services/recipe/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Recipe *RecipeService
}

// New wires the recipe service with its repository and the inventory
// context's read side.
func New(a *app.Application) *Services {
	repo := postgres.NewRecipeRepository(a.Db)
	inventory := invsvcs.New(a).Inventory
	return &Services{
		Recipe: NewRecipeService(repo, inventory),
	}
}

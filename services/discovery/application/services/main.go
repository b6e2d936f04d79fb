package services

import (
	"github.com/ghuser/homestock/pkg/app"
	"github.com/ghuser/homestock/services/discovery/infrastructure/gemini"
	"github.com/ghuser/homestock/services/discovery/infrastructure/spoonacular"
	invsvcs "github.com/ghuser/homestock/services/inventory/application/services"
	recsvcs "github.com/ghuser/homestock/services/recipe/application/services"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Discovery *DiscoveryService
}

// New wires the discovery service. Provider clients are only constructed
// when their API key is configured; otherwise the service reports the
// feature as unavailable without calling upstream.
func New(a *app.Application) *Services {
	var geminiClient GeminiClient
	if a.Config.GeminiConfigured() {
		geminiClient = gemini.NewClient(a.Config.GeminiAPIKey, a.Config.GeminiModel)
	}
	var spoonacularClient SpoonacularClient
	if a.Config.SpoonacularConfigured() {
		spoonacularClient = spoonacular.NewClient(a.Config.SpoonacularAPIKey)
	}

	inventory := invsvcs.New(a).Inventory
	recipes := recsvcs.New(a).Recipe

	return &Services{
		Discovery: NewDiscoveryService(geminiClient, spoonacularClient, inventory, recipes),
	}
}

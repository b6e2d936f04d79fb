package services

import (
	"github.com/ghuser/homestock/pkg/app"
	"github.com/ghuser/homestock/pkg/cache"
	"github.com/ghuser/homestock/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Inventory *InventoryService
}

// New wires all inventory application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.EventBus)
	barcodeCache := cache.NewBarcodeCache(a.Redis)
	return &Services{
		Inventory: NewInventoryService(repo, barcodeCache),
	}
}

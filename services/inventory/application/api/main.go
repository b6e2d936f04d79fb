package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/homestock/pkg/app"
	"github.com/ghuser/homestock/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/homestock/services/inventory/application/services"
)

// InventoryRoutes registers item, barcode, and search endpoints on the
// provided chi router.
func InventoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	items := handlers.NewItemHandler(svcs.Inventory)
	barcodes := handlers.NewBarcodeHandler(svcs.Inventory)

	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", items.Get)
				r.Patch("/", items.Update)
				r.Delete("/", items.Delete)
				r.Post("/to-inventory", items.MoveToInventory)
				r.Post("/to-grocery", items.MoveToGrocery)
				r.Post("/archive", items.Archive)
			})
		})

		r.Route("/barcode", func(r chi.Router) {
			r.Post("/associate", barcodes.Associate)
			r.Get("/{code}", barcodes.Lookup)
		})

		r.Get("/search", items.Search)
		r.Get("/inventory", items.Inventory)
		r.Get("/grocery", items.Grocery)
	})
}

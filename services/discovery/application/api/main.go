package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/homestock/pkg/app"
	"github.com/ghuser/homestock/services/discovery/application/handlers"
	appsvcs "github.com/ghuser/homestock/services/discovery/application/services"
)

// DiscoveryRoutes registers AI suggestion and external catalog endpoints on
// the provided chi router.
func DiscoveryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	discovery := handlers.NewDiscoveryHandler(svcs.Discovery)

	r.Group(func(r chi.Router) {
		r.Route("/ai", func(r chi.Router) {
			r.Post("/recipe-suggestions", discovery.SuggestRecipes)
			r.Post("/grocery-suggestions", discovery.SuggestGroceries)
		})

		r.Route("/spoonacular", func(r chi.Router) {
			r.Post("/discover", discovery.Discover)
			r.Post("/extract", discovery.Extract)
			r.Get("/recipe/{id}", discovery.GetRecipe)
			r.Post("/import/{id}", discovery.Import)
		})
	})
}

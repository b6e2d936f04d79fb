package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/homestock/pkg/app"
	"github.com/ghuser/homestock/services/recipe/application/handlers"
	appsvcs "github.com/ghuser/homestock/services/recipe/application/services"
)

// RecipeRoutes registers recipe endpoints on the provided chi router.
func RecipeRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	recipes := handlers.NewRecipeHandler(svcs.Recipe)

	r.Group(func(r chi.Router) {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.List)
			r.Post("/", recipes.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", recipes.Get)
				r.Put("/", recipes.Replace)
				r.Patch("/", recipes.Update)
				r.Delete("/", recipes.Delete)
				r.Post("/favorite", recipes.ToggleFavorite)
				r.Get("/availability", recipes.Availability)
			})
		})
	})
}

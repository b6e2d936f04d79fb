package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/homestock/pkg/errhttp"
	"github.com/ghuser/homestock/pkg/httpx"
	pkgvalidator "github.com/ghuser/homestock/pkg/validator"
	appsvcs "github.com/ghuser/homestock/services/recipe/application/services"
)

// RecipeHandler serves the recipe CRUD, favorite, and availability endpoints.
type RecipeHandler struct {
	svc *appsvcs.RecipeService
}

// NewRecipeHandler returns a RecipeHandler backed by the given service.
func NewRecipeHandler(svc *appsvcs.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

// List handles GET /recipes, newest first. ?favorites_only=true filters
// to favorited recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	favoritesOnly := r.URL.Query().Get("favorites_only") == "true"

	recipes, err := h.svc.List(r.Context(), favoritesOnly)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toRecipeResponses(recipes))
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RecipeRequest](w, r)
	if !ok {
		return
	}

	recipe, err := h.svc.Create(r.Context(), toRecipeInput(req))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ToRecipeResponse(recipe))
}

// Get handles GET /recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	recipe, err := h.svc.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToRecipeResponse(recipe))
}

// Replace handles PUT /recipes/{id}: full overwrite including ingredient
// and step lists. The favorite flag and creation time are preserved.
func (h *RecipeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RecipeRequest](w, r)
	if !ok {
		return
	}

	recipe, err := h.svc.Replace(r.Context(), id, toRecipeInput(req))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToRecipeResponse(recipe))
}

// Update handles PATCH /recipes/{id}: metadata edits only.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateRecipeRequest](w, r)
	if !ok {
		return
	}

	recipe, err := h.svc.UpdateMetadata(r.Context(), id, appsvcs.MetadataPatch{
		Name:            req.Name,
		Description:     req.Description,
		Servings:        req.Servings,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToRecipeResponse(recipe))
}

// Delete handles DELETE /recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// ToggleFavorite handles POST /recipes/{id}/favorite.
func (h *RecipeHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	recipe, err := h.svc.ToggleFavorite(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToRecipeResponse(recipe))
}

// Availability handles GET /recipes/{id}/availability: the can-make report
// against current inventory.
func (h *RecipeHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	availability, err := h.svc.Availability(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toAvailabilityResponse(availability))
}

func recipeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid recipe id")
		return uuid.Nil, false
	}
	return id, true
}

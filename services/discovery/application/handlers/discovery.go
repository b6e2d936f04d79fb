package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/homestock/pkg/errhttp"
	"github.com/ghuser/homestock/pkg/httpx"
	pkgvalidator "github.com/ghuser/homestock/pkg/validator"
	appsvcs "github.com/ghuser/homestock/services/discovery/application/services"
	rechandlers "github.com/ghuser/homestock/services/recipe/application/handlers"
)

// RecipeSuggestionsRequest is the request body for POST /ai/recipe-suggestions.
type RecipeSuggestionsRequest struct {
	Query string `json:"query" validate:"omitempty,max=200"`
}

// GrocerySuggestionsRequest is the request body for POST /ai/grocery-suggestions.
type GrocerySuggestionsRequest struct {
	Preferences string `json:"preferences" validate:"omitempty,max=500"`
}

// DiscoverRequest is the request body for POST /spoonacular/discover.
type DiscoverRequest struct {
	Number int `json:"number" validate:"omitempty,min=1,max=100"`
}

// ExtractRequest is the request body for POST /spoonacular/extract.
type ExtractRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// DiscoveryHandler serves the AI suggestion and external catalog endpoints.
type DiscoveryHandler struct {
	svc *appsvcs.DiscoveryService
}

// NewDiscoveryHandler returns a DiscoveryHandler backed by the given service.
func NewDiscoveryHandler(svc *appsvcs.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{svc: svc}
}

// SuggestRecipes handles POST /ai/recipe-suggestions. An empty body is
// allowed; the query just steers the ideas.
func (h *DiscoveryHandler) SuggestRecipes(w http.ResponseWriter, r *http.Request) {
	var query string
	if r.ContentLength > 0 {
		req, ok := pkgvalidator.ValidateRequest[RecipeSuggestionsRequest](w, r)
		if !ok {
			return
		}
		query = req.Query
	}

	suggestions, err := h.svc.SuggestRecipes(r.Context(), query)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, suggestions)
}

// SuggestGroceries handles POST /ai/grocery-suggestions.
func (h *DiscoveryHandler) SuggestGroceries(w http.ResponseWriter, r *http.Request) {
	var preferences string
	if r.ContentLength > 0 {
		req, ok := pkgvalidator.ValidateRequest[GrocerySuggestionsRequest](w, r)
		if !ok {
			return
		}
		preferences = req.Preferences
	}

	suggestions, err := h.svc.SuggestGroceries(r.Context(), preferences)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, suggestions)
}

// Discover handles POST /spoonacular/discover: ingredient-based catalog
// search from current inventory.
func (h *DiscoveryHandler) Discover(w http.ResponseWriter, r *http.Request) {
	number := 10
	if r.ContentLength > 0 {
		req, ok := pkgvalidator.ValidateRequest[DiscoverRequest](w, r)
		if !ok {
			return
		}
		if req.Number > 0 {
			number = req.Number
		}
	}

	result, err := h.svc.Discover(r.Context(), number)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// GetRecipe handles GET /spoonacular/recipe/{id}.
func (h *DiscoveryHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := externalID(w, r)
	if !ok {
		return
	}
	recipe, err := h.svc.GetExternalRecipe(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recipe)
}

// Extract handles POST /spoonacular/extract: scrape a recipe page into the
// local shape without saving it.
func (h *DiscoveryHandler) Extract(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ExtractRequest](w, r)
	if !ok {
		return
	}

	recipe, err := h.svc.ExtractRecipe(r.Context(), req.URL)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recipe)
}

// Import handles POST /spoonacular/import/{id}: fetch a catalog recipe and
// save it locally.
func (h *DiscoveryHandler) Import(w http.ResponseWriter, r *http.Request) {
	id, ok := externalID(w, r)
	if !ok {
		return
	}
	recipe, err := h.svc.ImportRecipe(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rechandlers.ToRecipeResponse(recipe))
}

func externalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid recipe id")
		return 0, false
	}
	return id, true
}

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/homestock/pkg/errhttp"
	"github.com/ghuser/homestock/pkg/httpx"
	pkgvalidator "github.com/ghuser/homestock/pkg/validator"
	appsvcs "github.com/ghuser/homestock/services/inventory/application/services"
	"github.com/ghuser/homestock/services/inventory/domain/models"
)

// CreateItemRequest is the request body for POST /items.
// Location defaults to "archived" when omitted; an optional barcode is
// bound to the item on creation.
type CreateItemRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Location string `json:"location" validate:"omitempty,oneof=inventory grocery archived"`
	Barcode  string `json:"barcode" validate:"omitempty,max=64"`
}

// UpdateItemRequest is the request body for PATCH /items/{id}.
// Nil fields are left untouched.
type UpdateItemRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Location *string `json:"location" validate:"omitempty,oneof=inventory grocery archived"`
}

// ItemHandler serves the item CRUD, location-transition, and search endpoints.
type ItemHandler struct {
	svc *appsvcs.InventoryService
}

// NewItemHandler returns an ItemHandler backed by the given service.
func NewItemHandler(svc *appsvcs.InventoryService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// List handles GET /items with an optional ?location= filter.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var location *models.Location
	if q := r.URL.Query().Get("location"); q != "" {
		loc, err := models.ParseLocation(q)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		location = &loc
	}

	items, err := h.svc.ListItems(r.Context(), location)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	location := req.Location
	if location == "" {
		location = models.LocationArchived.String()
	}

	item, err := h.svc.CreateItem(r.Context(), req.Name, location, req.Barcode)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

// Get handles GET /items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// Update handles PATCH /items/{id} for name and location edits.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, req.Name, req.Location)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// Delete handles DELETE /items/{id}. Removes the item and all its barcodes.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// MoveToInventory handles POST /items/{id}/to-inventory.
func (h *ItemHandler) MoveToInventory(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.svc.MoveToInventory)
}

// MoveToGrocery handles POST /items/{id}/to-grocery.
func (h *ItemHandler) MoveToGrocery(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.svc.MoveToGrocery)
}

// Archive handles POST /items/{id}/archive. The item leaves both lists but
// is retained so its barcodes keep resolving.
func (h *ItemHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.svc.Archive)
}

// Search handles GET /search?q=. Exact matches rank before partial matches.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httpx.JSONError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	items, err := h.svc.Search(r.Context(), query)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}

// Inventory handles GET /inventory: all items currently at home.
func (h *ItemHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	h.listByLocation(w, r, models.LocationInventory)
}

// Grocery handles GET /grocery: all items needing restocking.
func (h *ItemHandler) Grocery(w http.ResponseWriter, r *http.Request) {
	h.listByLocation(w, r, models.LocationGrocery)
}

func (h *ItemHandler) listByLocation(w http.ResponseWriter, r *http.Request, loc models.Location) {
	items, err := h.svc.ListItems(r.Context(), &loc)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemListResponse{
		Count: len(items),
		Items: toItemResponses(items),
	})
}

func (h *ItemHandler) move(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (*models.Item, error),
) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	item, err := op(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// itemID parses the {id} URL parameter, writing a 400 on malformed input.
func itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return uuid.Nil, false
	}
	return id, true
}

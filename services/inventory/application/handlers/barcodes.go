package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/homestock/pkg/errhttp"
	"github.com/ghuser/homestock/pkg/httpx"
	pkgvalidator "github.com/ghuser/homestock/pkg/validator"
	appsvcs "github.com/ghuser/homestock/services/inventory/application/services"
)

// AssociateBarcodeRequest is the request body for POST /barcode/associate.
type AssociateBarcodeRequest struct {
	Barcode string    `json:"barcode" validate:"required,max=64"`
	ItemID  uuid.UUID `json:"item_id" validate:"required"`
}

// BarcodeLookupResponse is the result of scanning a code. Found is false and
// Item is nil when nothing is bound to the code yet.
type BarcodeLookupResponse struct {
	Barcode string        `json:"barcode"`
	Found   bool          `json:"found"`
	Item    *ItemResponse `json:"item"`
}

// BarcodeHandler serves the scan-driven endpoints.
type BarcodeHandler struct {
	svc *appsvcs.InventoryService
}

// NewBarcodeHandler returns a BarcodeHandler backed by the given service.
func NewBarcodeHandler(svc *appsvcs.InventoryService) *BarcodeHandler {
	return &BarcodeHandler{svc: svc}
}

// Lookup handles GET /barcode/{code}. An unknown code is a 200 with
// found=false so scanners can branch into item creation.
func (h *BarcodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	result, err := h.svc.LookupBarcode(r.Context(), code)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := BarcodeLookupResponse{Barcode: result.Code, Found: result.Found}
	if result.Item != nil {
		item := toItemResponse(result.Item)
		resp.Item = &item
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Associate handles POST /barcode/associate, binding a code to an existing
// item. Re-binding to the same item is a no-op; a code owned by another item
// is a conflict.
func (h *BarcodeHandler) Associate(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AssociateBarcodeRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.AssociateBarcode(r.Context(), req.Barcode, req.ItemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

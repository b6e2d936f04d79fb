package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/homestock/services/inventory/domain/models"
)

// BarcodeResponse is the wire representation of a barcode binding.
type BarcodeResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	ItemID uuid.UUID `json:"item_id"`
}

// ItemResponse is the wire representation of an item with its barcodes.
type ItemResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Location  string            `json:"location"`
	Barcodes  []BarcodeResponse `json:"barcodes"`
	CreatedAt time.Time         `json:"created_at"`
}

// ItemListResponse wraps a list of items with a count, shaped for
// Home Assistant REST sensors.
type ItemListResponse struct {
	Count int            `json:"count"`
	Items []ItemResponse `json:"items"`
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toItemResponse(item *models.Item) ItemResponse {
	barcodes := make([]BarcodeResponse, len(item.Barcodes))
	for i, b := range item.Barcodes {
		barcodes[i] = BarcodeResponse{ID: b.ID, Code: b.Code, ItemID: b.ItemID}
	}
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name.String(),
		Location:  item.Location.String(),
		Barcodes:  barcodes,
		CreatedAt: item.CreatedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

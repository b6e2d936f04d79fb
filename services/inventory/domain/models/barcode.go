package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxBarcodeLength = 64

// Barcode is a scanned code (UPC, EAN, QR payload) bound to exactly one item.
// The code is globally unique and never mutated; barcodes are deleted only
// when their owning item is hard-deleted.
type Barcode struct {
	ID        uuid.UUID
	Code      string
	ItemID    uuid.UUID
	CreatedAt time.Time
}

// NewBarcode constructs a Barcode bound to the given item.
func NewBarcode(code string, itemID uuid.UUID) (*Barcode, error) {
	normalized, err := NormalizeBarcode(code)
	if err != nil {
		return nil, err
	}
	return &Barcode{
		ID:        uuid.New(),
		Code:      normalized,
		ItemID:    itemID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NormalizeBarcode trims whitespace and validates the code value.
// Scanners occasionally emit trailing newlines; comparing unnormalized codes
// would break the uniqueness invariant.
func NormalizeBarcode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("barcode must not be empty")
	}
	if len(code) > maxBarcodeLength {
		return "", fmt.Errorf("barcode must not exceed %d characters", maxBarcodeLength)
	}
	return code, nil
}

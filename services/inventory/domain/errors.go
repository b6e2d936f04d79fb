package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemNameTaken indicates another item already uses the requested name.
	ErrItemNameTaken = errors.New("item name already in use")

	// ErrBarcodeTaken indicates the barcode is already bound to a different item.
	ErrBarcodeTaken = errors.New("barcode already associated with another item")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidBarcode indicates the barcode value violates domain constraints.
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrInvalidLocation indicates the location is not one of the known enum values.
	ErrInvalidLocation = errors.New("invalid location")
)

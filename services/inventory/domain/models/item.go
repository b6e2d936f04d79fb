package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is the core aggregate for this bounded context: a trackable
// household good with a name and a location state. One item can own
// multiple barcodes (different package sizes of the same product).
type Item struct {
	ID        uuid.UUID
	Name      ItemName
	Location  Location
	Barcodes  []Barcode
	CreatedAt time.Time
}

// NewItem constructs a valid Item aggregate with generated ID and current timestamp.
func NewItem(name ItemName, location Location) *Item {
	return &Item{
		ID:        uuid.New(),
		Name:      name,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}
}

// MoveTo sets the item's location. Transitions are total and idempotent:
// every location is reachable from every other, including itself.
func (i *Item) MoveTo(loc Location) {
	i.Location = loc
}

// OwnsBarcode reports whether the item already owns the given code.
func (i *Item) OwnsBarcode(code string) bool {
	for _, b := range i.Barcodes {
		if b.Code == code {
			return true
		}
	}
	return false
}

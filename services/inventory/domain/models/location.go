package models

import (
	"fmt"

	domain "github.com/ghuser/homestock/services/inventory/domain"
)

// Location is where an item currently resides. The transition function is
// total: any location may be set from any other, with no guard conditions.
type Location string

const (
	// LocationInventory means the item is at home.
	LocationInventory Location = "inventory"
	// LocationGrocery means the item needs restocking.
	LocationGrocery Location = "grocery"
	// LocationArchived means the item is off both lists but kept so its
	// barcodes still resolve on future scans.
	LocationArchived Location = "archived"
)

// ParseLocation validates s against the known enum values.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationInventory, LocationGrocery, LocationArchived:
		return Location(s), nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidLocation, s)
}

// String returns the wire representation.
func (l Location) String() string {
	return string(l)
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/homestock/services/inventory/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Uniqueness is enforced by database constraints: implementations map a
// violation on the item name to ErrItemNameTaken and on the barcode code
// to ErrBarcodeTaken.
type ItemRepository interface {
	// Save persists a new Item together with any initial barcodes.
	Save(ctx context.Context, item *models.Item) error

	// GetByID retrieves an Item with its barcodes. Returns ErrItemNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// FindByLocation lists items in name order. A nil location means all items.
	FindByLocation(ctx context.Context, location *models.Location) ([]*models.Item, error)

	// SearchByName performs a case-insensitive substring match over item
	// names. Results are ranked: exact name match, then name-prefix match,
	// then remaining substring matches, ties broken by insertion order.
	SearchByName(ctx context.Context, query string) ([]*models.Item, error)

	// FindByBarcode resolves a scanned code to its owning item (with all
	// barcodes loaded). Returns ErrItemNotFound for an unknown code.
	FindByBarcode(ctx context.Context, code string) (*models.Item, error)

	// Update persists name and location changes to an existing Item.
	Update(ctx context.Context, item *models.Item) error

	// AddBarcode binds a new code to an existing item.
	AddBarcode(ctx context.Context, barcode *models.Barcode) error

	// Delete removes an item; barcodes go with it via ON DELETE CASCADE.
	Delete(ctx context.Context, id uuid.UUID) error
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/homestock/pkg/cache"
	invdomain "github.com/ghuser/homestock/services/inventory/domain"
	"github.com/ghuser/homestock/services/inventory/domain/models"
	"github.com/ghuser/homestock/services/inventory/domain/repositories"
)

// LookupResult is the outcome of resolving a scanned barcode. An unknown
// code is not an error: Found is false and Item is nil so the caller can
// prompt for item creation.
type LookupResult struct {
	Code  string
	Found bool
	Item  *models.Item
}

// InventoryService orchestrates barcode resolution and item state
// transitions. Event publishing is handled by the repository layer (outbox
// pattern). Scans are served from the Redis barcode cache when available.
type InventoryService struct {
	repo  repositories.ItemRepository
	cache *pkgcache.BarcodeCache
}

// NewInventoryService returns an InventoryService wired with the given
// repository and cache. The cache may be nil (e.g. in tests).
func NewInventoryService(repo repositories.ItemRepository, barcodeCache *pkgcache.BarcodeCache) *InventoryService {
	return &InventoryService{repo: repo, cache: barcodeCache}
}

// LookupBarcode resolves a scanned code using a read-through cache:
//  1. Check the Redis barcode cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// An unknown code yields Found=false, not an error.
func (s *InventoryService) LookupBarcode(ctx context.Context, code string) (*LookupResult, error) {
	normalized, err := models.NormalizeBarcode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidBarcode, err)
	}

	// Cache miss and cache failure both fall through to Postgres.
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, normalized); err == nil {
			return &LookupResult{Code: normalized, Found: true, Item: cachedToItem(cached)}, nil
		}
	}

	item, err := s.repo.FindByBarcode(ctx, normalized)
	if err != nil {
		if errors.Is(err, invdomain.ErrItemNotFound) {
			return &LookupResult{Code: normalized, Found: false}, nil
		}
		return nil, fmt.Errorf("lookup barcode: %w", err)
	}

	s.warmCache(item)
	return &LookupResult{Code: normalized, Found: true, Item: item}, nil
}

// AssociateBarcode binds a code to an existing item. Binding a code that is
// already bound to the same item is an idempotent no-op returning the owner;
// a code bound to a different item yields ErrBarcodeTaken. Races between
// concurrent associations are settled by the unique constraint on the code.
func (s *InventoryService) AssociateBarcode(ctx context.Context, code string, itemID uuid.UUID) (*models.Item, error) {
	normalized, err := models.NormalizeBarcode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidBarcode, err)
	}

	owner, err := s.repo.FindByBarcode(ctx, normalized)
	switch {
	case err == nil:
		if owner.ID == itemID {
			return owner, nil
		}
		return nil, fmt.Errorf("%w: %s", invdomain.ErrBarcodeTaken, owner.Name)
	case !errors.Is(err, invdomain.ErrItemNotFound):
		return nil, fmt.Errorf("check barcode: %w", err)
	}

	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	barcode, err := models.NewBarcode(normalized, item.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidBarcode, err)
	}
	if err := s.repo.AddBarcode(ctx, barcode); err != nil {
		return nil, fmt.Errorf("add barcode: %w", err)
	}
	item.Barcodes = append(item.Barcodes, *barcode)

	s.invalidateCache(item)
	return item, nil
}

// CreateItem validates and persists a new Item, optionally bound to an
// initial barcode. The repository publishes ItemCreatedEvent.
func (s *InventoryService) CreateItem(ctx context.Context, name, location, barcode string) (*models.Item, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidItemName, err)
	}
	loc, err := models.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	item := models.NewItem(itemName, loc)
	if barcode != "" {
		b, err := models.NewBarcode(barcode, item.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidBarcode, err)
		}
		item.Barcodes = append(item.Barcodes, *b)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// GetItem retrieves an Item by ID with its barcodes.
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListItems returns items in name order, optionally filtered by location.
func (s *InventoryService) ListItems(ctx context.Context, location *models.Location) ([]*models.Item, error) {
	items, err := s.repo.FindByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Search performs a ranked, case-insensitive substring match over item names.
func (s *InventoryService) Search(ctx context.Context, query string) ([]*models.Item, error) {
	items, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// UpdateItem applies name and/or location changes. Nil pointers leave the
// corresponding field untouched.
func (s *InventoryService) UpdateItem(ctx context.Context, id uuid.UUID, name, location *string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if name != nil {
		itemName, err := models.NewItemName(*name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidItemName, err)
		}
		item.Name = itemName
	}
	if location != nil {
		loc, err := models.ParseLocation(*location)
		if err != nil {
			return nil, err
		}
		item.MoveTo(loc)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.invalidateCache(item)
	return item, nil
}

// MoveToInventory marks the item as at home. Idempotent.
func (s *InventoryService) MoveToInventory(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.move(ctx, id, models.LocationInventory)
}

// MoveToGrocery marks the item as needing restocking. Idempotent.
func (s *InventoryService) MoveToGrocery(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.move(ctx, id, models.LocationGrocery)
}

// Archive takes the item off both lists while keeping it (and its barcodes)
// for future scans. Idempotent.
func (s *InventoryService) Archive(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.move(ctx, id, models.LocationArchived)
}

// move sets the item's location unconditionally: the transition function is
// total, so no current-state check is needed.
func (s *InventoryService) move(ctx context.Context, id uuid.UUID, loc models.Location) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	item.MoveTo(loc)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("move item: %w", err)
	}

	s.invalidateCache(item)
	return item, nil
}

// DeleteItem removes an item and, via cascade, all its barcodes.
func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.invalidateCache(item)
	return nil
}

// InventoryNames returns the names of all items currently in Inventory.
// Used by the recipe and discovery contexts for availability checks.
func (s *InventoryService) InventoryNames(ctx context.Context) ([]string, error) {
	loc := models.LocationInventory
	items, err := s.repo.FindByLocation(ctx, &loc)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name.String()
	}
	return names, nil
}

func (s *InventoryService) warmCache(item *models.Item) {
	if s.cache == nil || len(item.Barcodes) == 0 {
		return
	}
	entry := itemToCached(item)
	go func() {
		_ = s.cache.Set(context.Background(), entry)
	}()
}

func (s *InventoryService) invalidateCache(item *models.Item) {
	if s.cache == nil || len(item.Barcodes) == 0 {
		return
	}
	codes := make([]string, len(item.Barcodes))
	for i, b := range item.Barcodes {
		codes[i] = b.Code
	}
	_ = s.cache.Delete(context.Background(), codes...)
}

func itemToCached(item *models.Item) *pkgcache.CachedLookup {
	codes := make([]string, len(item.Barcodes))
	for i, b := range item.Barcodes {
		codes[i] = b.Code
	}
	return &pkgcache.CachedLookup{
		ItemID:    item.ID,
		Name:      item.Name.String(),
		Location:  item.Location.String(),
		Codes:     codes,
		CreatedAt: item.CreatedAt,
	}
}

func cachedToItem(cached *pkgcache.CachedLookup) *models.Item {
	item := &models.Item{
		ID:        cached.ItemID,
		Name:      models.ItemName(cached.Name),
		Location:  models.Location(cached.Location),
		CreatedAt: cached.CreatedAt,
	}
	for _, code := range cached.Codes {
		item.Barcodes = append(item.Barcodes, models.Barcode{Code: code, ItemID: cached.ItemID})
	}
	return item
}

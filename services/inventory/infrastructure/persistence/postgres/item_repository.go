package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/homestock/pkg/database"
	"github.com/ghuser/homestock/pkg/events"
	invdomain "github.com/ghuser/homestock/services/inventory/domain"
	domainevents "github.com/ghuser/homestock/services/inventory/domain/events"
	"github.com/ghuser/homestock/services/inventory/domain/models"
)

const pgUniqueViolation = "23505"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Mutations run in a single transaction and publish domain events through
// the event bus's transactional publisher (outbox pattern).
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. The bus may be nil (e.g. in tests) to skip publishing.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Save persists a new Item and its initial barcodes, publishing an
// ItemCreatedEvent within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, name, location, created_at) VALUES ($1, $2, $3, $4)`,
			item.ID, item.Name.String(), item.Location.String(), item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", mapUniqueViolation(err))
		}

		for i := range item.Barcodes {
			b := &item.Barcodes[i]
			_, err := tx.ExecContext(ctx,
				`INSERT INTO barcodes (id, code, item_id, created_at) VALUES ($1, $2, $3, $4)`,
				b.ID, b.Code, b.ItemID, b.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert barcode: %w", mapUniqueViolation(err))
			}
		}

		return r.publish(tx, domainevents.TopicItemCreated, domainevents.ItemCreatedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     item.ID,
			Name:       item.Name.String(),
			Location:   item.Location.String(),
			Barcodes:   barcodeCodes(item),
			OccurredAt: item.CreatedAt,
		})
	})
}

// GetByID retrieves an Item with its barcodes. Returns ErrItemNotFound if absent.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, name, location, created_at FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadBarcodes(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// FindByLocation lists items in name order. A nil location means all items.
func (r *ItemRepository) FindByLocation(ctx context.Context, location *models.Location) ([]*models.Item, error) {
	query := `SELECT i.id, i.name, i.location, i.created_at,
	                 b.id, b.code, b.created_at
	          FROM items i
	          LEFT JOIN barcodes b ON b.item_id = i.id`
	var args []any
	if location != nil {
		query += ` WHERE i.location = $1`
		args = append(args, location.String())
	}
	query += ` ORDER BY i.name ASC, b.created_at ASC`

	return r.queryItems(ctx, query, args...)
}

// SearchByName performs a case-insensitive substring match over item names.
// Exact name matches rank first, then name-prefix matches, then the rest;
// ties are broken by insertion order.
func (r *ItemRepository) SearchByName(ctx context.Context, query string) ([]*models.Item, error) {
	pattern := escapeLike(query)
	return r.queryItems(ctx,
		`SELECT i.id, i.name, i.location, i.created_at,
		        b.id, b.code, b.created_at
		 FROM items i
		 LEFT JOIN barcodes b ON b.item_id = i.id
		 WHERE i.name ILIKE '%' || $1 || '%'
		 ORDER BY (lower(i.name) = lower($2)) DESC,
		          (i.name ILIKE $1 || '%') DESC,
		          i.created_at ASC,
		          b.created_at ASC`,
		pattern, query,
	)
}

// FindByBarcode resolves a scanned code to its owning item.
// Returns ErrItemNotFound for an unknown code.
func (r *ItemRepository) FindByBarcode(ctx context.Context, code string) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT i.id, i.name, i.location, i.created_at
		 FROM items i
		 JOIN barcodes b ON b.item_id = i.id
		 WHERE b.code = $1`, code)
	item, err := scanItem(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadBarcodes(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update persists name and location changes, publishing an ItemMovedEvent
// in the same transaction. Returns ErrItemNotFound if the item is gone and
// ErrItemNameTaken on a name collision.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE items SET name = $2, location = $3 WHERE id = $1`,
			item.ID, item.Name.String(), item.Location.String(),
		)
		if err != nil {
			return fmt.Errorf("update item: %w", mapUniqueViolation(err))
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return invdomain.ErrItemNotFound
		}

		return r.publish(tx, domainevents.TopicItemMoved, domainevents.ItemMovedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     item.ID,
			Name:       item.Name.String(),
			Location:   item.Location.String(),
			Barcodes:   barcodeCodes(item),
			OccurredAt: time.Now().UTC(),
		})
	})
}

// AddBarcode binds a new code to an existing item.
// Returns ErrBarcodeTaken if the code is already bound.
func (r *ItemRepository) AddBarcode(ctx context.Context, barcode *models.Barcode) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO barcodes (id, code, item_id, created_at) VALUES ($1, $2, $3, $4)`,
		barcode.ID, barcode.Code, barcode.ItemID, barcode.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert barcode: %w", mapUniqueViolation(err))
	}
	return nil
}

// Delete removes an item; its barcodes are removed by ON DELETE CASCADE.
// Publishes an ItemDeletedEvent carrying the removed codes so consumers can
// drop their cache entries.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT code FROM barcodes WHERE item_id = $1`, id)
		if err != nil {
			return fmt.Errorf("query barcodes: %w", err)
		}
		var codes []string
		for rows.Next() {
			var code string
			if err := rows.Scan(&code); err != nil {
				rows.Close()
				return fmt.Errorf("scan barcode: %w", err)
			}
			codes = append(codes, code)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate barcodes: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return invdomain.ErrItemNotFound
		}

		return r.publish(tx, domainevents.TopicItemDeleted, domainevents.ItemDeletedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     id,
			Barcodes:   codes,
			OccurredAt: time.Now().UTC(),
		})
	})
}

func (r *ItemRepository) publish(tx *sql.Tx, topic string, event any) error {
	if r.bus == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

func (r *ItemRepository) loadBarcodes(ctx context.Context, item *models.Item) error {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, code, created_at FROM barcodes WHERE item_id = $1 ORDER BY created_at ASC`,
		item.ID)
	if err != nil {
		return fmt.Errorf("query barcodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b := models.Barcode{ItemID: item.ID}
		if err := rows.Scan(&b.ID, &b.Code, &b.CreatedAt); err != nil {
			return fmt.Errorf("scan barcode: %w", err)
		}
		item.Barcodes = append(item.Barcodes, b)
	}
	return rows.Err()
}

// queryItems runs an item+barcode LEFT JOIN query and regroups the flat rows
// into Item aggregates, preserving the query's item ordering.
func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var (
		items []*models.Item
		byID  = map[uuid.UUID]*models.Item{}
	)
	for rows.Next() {
		var (
			id        uuid.UUID
			name      string
			location  string
			createdAt time.Time
			bID       sql.Null[uuid.UUID]
			bCode     sql.NullString
			bCreated  sql.NullTime
		)
		if err := rows.Scan(&id, &name, &location, &createdAt, &bID, &bCode, &bCreated); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}

		item, ok := byID[id]
		if !ok {
			item = &models.Item{
				ID:        id,
				Name:      models.ItemName(name),
				Location:  models.Location(location),
				CreatedAt: createdAt,
			}
			byID[id] = item
			items = append(items, item)
		}
		if bID.Valid {
			item.Barcodes = append(item.Barcodes, models.Barcode{
				ID:        bID.V,
				Code:      bCode.String,
				ItemID:    id,
				CreatedAt: bCreated.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// scanItem maps a single item row, translating sql.ErrNoRows to ErrItemNotFound.
func scanItem(row *sql.Row) (*models.Item, error) {
	var (
		id        uuid.UUID
		name      string
		location  string
		createdAt time.Time
	)
	if err := row.Scan(&id, &name, &location, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return &models.Item{
		ID:        id,
		Name:      models.ItemName(name),
		Location:  models.Location(location),
		CreatedAt: createdAt,
	}, nil
}

// mapUniqueViolation translates pg unique violations to domain sentinels
// using the violated constraint name.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "barcodes_code_key":
		return invdomain.ErrBarcodeTaken
	case "items_name_key":
		return invdomain.ErrItemNameTaken
	}
	return err
}

func barcodeCodes(item *models.Item) []string {
	codes := make([]string, len(item.Barcodes))
	for i, b := range item.Barcodes {
		codes[i] = b.Code
	}
	return codes
}

// escapeLike escapes LIKE wildcards in user-supplied search input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ghuser/homestock/pkg/config"
	"github.com/ghuser/homestock/pkg/database"
	"github.com/ghuser/homestock/pkg/logger"
	"github.com/ghuser/homestock/services/inventory/domain/models"
)

// Schema matching migrations/homestock, created on demand so the tests can
// run against a scratch database.
const testSchema = `
CREATE TABLE IF NOT EXISTS items (
    id uuid PRIMARY KEY,
    name text NOT NULL,
    location text NOT NULL DEFAULT 'archived',
    created_at timestamptz NOT NULL DEFAULT now(),
    CONSTRAINT items_name_key UNIQUE (name),
    CONSTRAINT items_location_check CHECK (location IN ('inventory', 'grocery', 'archived'))
);
CREATE TABLE IF NOT EXISTS barcodes (
    id uuid PRIMARY KEY,
    code text NOT NULL,
    item_id uuid NOT NULL REFERENCES items (id) ON DELETE CASCADE,
    created_at timestamptz NOT NULL DEFAULT now(),
    CONSTRAINT barcodes_code_key UNIQUE (code)
);`

// Integration tests — skipped unless DATABASE_URL is set.
func testRepository(t *testing.T) (*ItemRepository, *database.Database) {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	db, err := database.NewPool(ctx, dbURL, logger.New(&config.Config{}))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.DB().ExecContext(ctx, testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewItemRepository(db, nil), db
}

// seedItem inserts an item with a fixed creation time, replacing any row a
// previous failed run left behind.
func seedItem(t *testing.T, repo *ItemRepository, db *database.Database, name string, createdAt time.Time) *models.Item {
	t.Helper()
	ctx := context.Background()

	if _, err := db.DB().ExecContext(ctx, `DELETE FROM items WHERE name = $1`, name); err != nil {
		t.Fatalf("clear stale row: %v", err)
	}

	itemName, err := models.NewItemName(name)
	if err != nil {
		t.Fatalf("item name: %v", err)
	}
	item := models.NewItem(itemName, models.LocationInventory)
	item.CreatedAt = createdAt
	if err := repo.Save(ctx, item); err != nil {
		t.Fatalf("seed %q: %v", name, err)
	}
	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), item.ID)
	})
	return item
}

func searchNames(t *testing.T, repo *ItemRepository, query string) []string {
	t.Helper()
	items, err := repo.SearchByName(context.Background(), query)
	if err != nil {
		t.Fatalf("search %q: %v", query, err)
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name.String()
	}
	return names
}

func TestSearchByName_Ranking(t *testing.T) {
	repo, db := testRepository(t)

	// Insertion order is deliberately not the expected result order.
	base := time.Now().UTC().Truncate(time.Second)
	seedItem(t, repo, db, "Oat Milk", base)
	seedItem(t, repo, db, "milk powder", base.Add(1*time.Second))
	seedItem(t, repo, db, "Whole Milk", base.Add(2*time.Second))
	seedItem(t, repo, db, "Milk", base.Add(3*time.Second))
	seedItem(t, repo, db, "Eggs", base.Add(4*time.Second))

	t.Run("exact then prefix then substring", func(t *testing.T) {
		got := searchNames(t, repo, "milk")
		want := []string{"Milk", "milk powder", "Oat Milk", "Whole Milk"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("position %d: got %v, want %v", i, got, want)
			}
		}
	})

	t.Run("exact match is case-insensitive", func(t *testing.T) {
		got := searchNames(t, repo, "MILK")
		if len(got) == 0 || got[0] != "Milk" {
			t.Fatalf("expected Milk first, got %v", got)
		}
	})

	t.Run("substring ties break by insertion order", func(t *testing.T) {
		got := searchNames(t, repo, "milk")
		var substrings []string
		for _, name := range got {
			if name == "Oat Milk" || name == "Whole Milk" {
				substrings = append(substrings, name)
			}
		}
		want := []string{"Oat Milk", "Whole Milk"}
		if len(substrings) != 2 || substrings[0] != want[0] || substrings[1] != want[1] {
			t.Fatalf("substring order: got %v, want %v", substrings, want)
		}
	})

	t.Run("non-matches excluded", func(t *testing.T) {
		for _, name := range searchNames(t, repo, "milk") {
			if name == "Eggs" {
				t.Fatal("Eggs must not match a milk search")
			}
		}
	})
}

func TestSearchByName_EscapesWildcards(t *testing.T) {
	repo, db := testRepository(t)

	base := time.Now().UTC().Truncate(time.Second)
	seedItem(t, repo, db, "100% Juice", base)
	seedItem(t, repo, db, "Juices", base.Add(1*time.Second))

	got := searchNames(t, repo, "100%")
	if len(got) != 1 || got[0] != "100% Juice" {
		t.Fatalf("%% must match literally, got %v", got)
	}

	got = searchNames(t, repo, "J_ices")
	if len(got) != 0 {
		t.Fatalf("_ must match literally, got %v", got)
	}
}

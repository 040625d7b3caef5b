// Package testutil provides shared fixtures for tests that need a real
// pantry database.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/storage"
)

// TestDB wraps a migrated and seeded database living in a temp dir.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB opens a fresh database the same way the binary does:
// migrations applied and default food types seeded. It is closed when the
// test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	milk := db.NewItem("Milk").Quantity("2").Unit("L").Type("Dairy").MustCreate()
func SetupTestDB(t *testing.T, opts ...storage.Option) *TestDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "pantry.db")
	store, err := storage.Open(context.Background(), dbPath, opts...)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// MustFoodType returns the food type called name or fails the test.
func (db *TestDB) MustFoodType(name string) *model.FoodType {
	db.t.Helper()
	ft, err := db.Storage.Categories().GetByName(context.Background(), name)
	if err != nil {
		db.t.Fatalf("food type %q: %v", name, err)
	}
	return ft
}

// MustItems lists every stored item or fails the test.
func (db *TestDB) MustItems() []model.FoodItem {
	db.t.Helper()
	items, err := db.Storage.Inventory().ListAll(context.Background())
	if err != nil {
		db.t.Fatalf("failed to list items: %v", err)
	}
	return items
}

// FixedClock returns a clock frozen at the given date, midday UTC.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	at := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

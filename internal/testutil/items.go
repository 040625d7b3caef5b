package testutil

import (
	"context"

	"github.com/Veraticus/pantry/internal/model"
)

// ItemBuilder assembles an item with sensible defaults. Only the fields a
// test cares about need setting.
type ItemBuilder struct {
	db       *TestDB
	in       model.ItemInput
	typeName string
}

// NewItem starts an item called name: one piece of "Other", expiring
// 2030-01-01.
func (db *TestDB) NewItem(name string) *ItemBuilder {
	return &ItemBuilder{
		db: db,
		in: model.ItemInput{
			Name:           name,
			Quantity:       "1",
			Unit:           "piece",
			ExpirationDate: "2030-01-01",
		},
		typeName: model.SentinelFoodType,
	}
}

// Quantity sets the raw quantity text.
func (b *ItemBuilder) Quantity(q string) *ItemBuilder {
	b.in.Quantity = q
	return b
}

// Unit sets the unit.
func (b *ItemBuilder) Unit(u string) *ItemBuilder {
	b.in.Unit = u
	return b
}

// Type sets the food type by name.
func (b *ItemBuilder) Type(name string) *ItemBuilder {
	b.typeName = name
	return b
}

// Expires sets the expiration date.
func (b *ItemBuilder) Expires(date string) *ItemBuilder {
	b.in.ExpirationDate = date
	return b
}

// Input returns the item input with the food type resolved.
func (b *ItemBuilder) Input() model.ItemInput {
	b.db.t.Helper()
	in := b.in
	in.FoodTypeID = b.db.MustFoodType(b.typeName).ID
	return in
}

// MustCreate stores the item or fails the test.
func (b *ItemBuilder) MustCreate() *model.FoodItem {
	b.db.t.Helper()
	item, err := b.db.Storage.Inventory().Create(context.Background(), b.Input())
	if err != nil {
		b.db.t.Fatalf("failed to create item %q: %v", b.in.Name, err)
	}
	return item
}

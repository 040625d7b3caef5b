// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/pantry/internal/model"
)

// FoodTypeLookup resolves food types for referential checks.
type FoodTypeLookup interface {
	GetByID(ctx context.Context, id int64) (*model.FoodType, error)
}

// CategoryStore manages the reference table of food types.
type CategoryStore interface {
	FoodTypeLookup

	SeedDefaults(ctx context.Context) (int, error)
	SeedIfEmpty(ctx context.Context) (int, error)
	Create(ctx context.Context, name string) (*model.FoodType, error)
	ListAll(ctx context.Context) ([]model.FoodType, error)
	GetByName(ctx context.Context, name string) (*model.FoodType, error)
	Update(ctx context.Context, id int64, name string) (*model.FoodType, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// InventoryStore manages food storage items.
type InventoryStore interface {
	Create(ctx context.Context, in model.ItemInput) (*model.FoodItem, error)
	ListAll(ctx context.Context) ([]model.FoodItem, error)
	GetByID(ctx context.Context, id int64) (*model.FoodItem, error)
	Update(ctx context.Context, id int64, in model.ItemInput) (*model.FoodItem, error)
	Delete(ctx context.Context, id int64) error
}

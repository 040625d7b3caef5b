package model

import "time"

// SentinelFoodType is the default food type that can be neither renamed
// nor deleted. Items of a deleted food type are moved to it.
const SentinelFoodType = "Other"

// DefaultFoodTypes are seeded into an empty database, in this order.
var DefaultFoodTypes = []string{
	"Fruit",
	"Vegetable",
	"Grain",
	"Protein",
	"Dairy",
	"Beverage",
	"Snack",
	"Condiment",
	"Frozen",
	"Canned",
	"Baking",
	"Spice",
	SentinelFoodType,
}

// FoodType is a named grouping for inventory items.
type FoodType struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	ID        int64
}

// IsSentinel reports whether the food type is the protected default.
func (f FoodType) IsSentinel() bool {
	return f.Name == SentinelFoodType
}

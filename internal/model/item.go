// Package model defines the core domain types.
package model

import (
	"math"
	"time"
)

// DateLayout is the layout of expiration dates.
const DateLayout = "2006-01-02"

// FoodItem is a tracked quantity of a named food good.
type FoodItem struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Name           string
	Unit           string
	FoodTypeName   string
	ExpirationDate string
	Quantity       float64
	ID             int64
	FoodTypeID     int64
}

// ItemInput carries raw user input for creating or updating a FoodItem.
// Quantity is kept as text so that the store decides whether it is a number.
type ItemInput struct {
	Name           string
	Quantity       string
	Unit           string
	ExpirationDate string
	FoodTypeID     int64
}

// Expiry parses the expiration date.
func (f FoodItem) Expiry() (time.Time, error) {
	return time.Parse(DateLayout, f.ExpirationDate)
}

// DaysUntilExpiry returns the whole days between now's calendar date and
// the expiration date. Negative values mean the item has expired.
// ok is false when the stored date cannot be parsed.
func (f FoodItem) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	exp, err := f.Expiry()
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(exp.Sub(today).Hours() / 24)), true
}

// IsExpired reports whether the expiration date lies before now's date.
func (f FoodItem) IsExpired(now time.Time) bool {
	days, ok := f.DaysUntilExpiry(now)
	return ok && days < 0
}

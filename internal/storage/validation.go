// Package storage provides the data persistence layer for the pantry application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/service"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// normalizeFoodTypeName trims the name and rejects blanks.
func normalizeFoodTypeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.NewError(common.KindEmptyName, "food type name cannot be empty")
	}
	return name, nil
}

// validItem is an ItemInput that passed every check.
type validItem struct {
	name           string
	unit           string
	expirationDate string
	quantity       float64
	foodTypeID     int64
}

// validateItem trims the input and checks it in a fixed order, stopping at
// the first failure: name, quantity, unit, food type, expiration date.
func validateItem(ctx context.Context, types service.FoodTypeLookup, in model.ItemInput) (validItem, error) {
	v := validItem{
		name:           strings.TrimSpace(in.Name),
		unit:           strings.TrimSpace(in.Unit),
		expirationDate: strings.TrimSpace(in.ExpirationDate),
		foodTypeID:     in.FoodTypeID,
	}

	if v.name == "" {
		return validItem{}, common.NewError(common.KindEmptyName, "name cannot be empty")
	}

	quantity, err := parseQuantity(in.Quantity)
	if err != nil {
		return validItem{}, err
	}
	v.quantity = quantity

	if v.unit == "" {
		return validItem{}, common.NewError(common.KindEmptyUnit, "unit cannot be empty")
	}

	if _, err := types.GetByID(ctx, v.foodTypeID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return validItem{}, common.NewError(common.KindUnknownCategory, "food type with id %d does not exist", v.foodTypeID)
		}
		return validItem{}, fmt.Errorf("failed to look up food type: %w", err)
	}

	if err := validateDate(v.expirationDate); err != nil {
		return validItem{}, err
	}

	return v, nil
}

// quantityPattern matches a signed decimal number with an optional
// exponent. Single underscores may separate digits. Hex floats, inf and
// nan do not match.
var quantityPattern = regexp.MustCompile(
	`^[+-]?(?:\d(?:_?\d)*(?:\.(?:\d(?:_?\d)*)?)?|\.\d(?:_?\d)*)(?:[eE][+-]?\d(?:_?\d)*)?$`)

// parseQuantity accepts any finite, non-negative decimal number.
func parseQuantity(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if !quantityPattern.MatchString(raw) {
		return 0, common.NewError(common.KindInvalidQuantity, "quantity must be a number")
	}

	q, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, common.NewError(common.KindInvalidQuantity, "quantity must be a number")
	}
	if q < 0 {
		return 0, common.NewError(common.KindNegativeQuantity, "quantity cannot be negative")
	}
	return q, nil
}

// validateDate expects an already trimmed YYYY-MM-DD calendar date.
func validateDate(date string) error {
	if date == "" {
		return common.NewError(common.KindEmptyDate, "expiration date cannot be empty")
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return common.NewError(common.KindInvalidDateFormat, "expiration date must be in the format YYYY-MM-DD")
	}
	return nil
}

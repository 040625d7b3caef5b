package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/service"
)

// InventoryStore manages the food_storage table. Every write checks that
// the referenced food type exists through types.
type InventoryStore struct {
	db    *sqlx.DB
	types service.FoodTypeLookup
	now   clock
}

type foodItemRow struct {
	Name           string  `db:"name"`
	Unit           string  `db:"unit"`
	FoodTypeName   string  `db:"food_type_name"`
	ExpirationDate string  `db:"expiration_date"`
	CreatedAt      string  `db:"created_at"`
	UpdatedAt      string  `db:"updated_at"`
	Quantity       float64 `db:"quantity"`
	ID             int64   `db:"id"`
	FoodTypeID     int64   `db:"food_type_id"`
}

func (r foodItemRow) toModel() (*model.FoodItem, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &model.FoodItem{
		ID:             r.ID,
		Name:           r.Name,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		FoodTypeID:     r.FoodTypeID,
		FoodTypeName:   r.FoodTypeName,
		ExpirationDate: r.ExpirationDate,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// A LEFT JOIN keeps rows whose food type vanished outside this program.
const foodItemSelect = `
	SELECT i.id, i.name, i.quantity, i.unit, i.food_type_id,
		COALESCE(t.name, '') AS food_type_name,
		COALESCE(i.expiration_date, '') AS expiration_date,
		i.created_at, i.updated_at
	FROM food_storage i
	LEFT JOIN food_types t ON t.id = i.food_type_id`

// Create validates the input and stores a new item.
func (s *InventoryStore) Create(ctx context.Context, in model.ItemInput) (*model.FoodItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	v, err := validateItem(ctx, s.types, in)
	if err != nil {
		return nil, err
	}

	now := formatTime(s.now.stamp(timeZero))
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO food_storage (name, quantity, unit, food_type_id, expiration_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.name, v.quantity, v.unit, v.foodTypeID, v.expirationDate, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get food item ID: %w", err)
	}

	slog.Info("created food item", "id", id, "name", v.name, "food_type_id", v.foodTypeID)
	return s.GetByID(ctx, id)
}

// ListAll returns every item with its food type name, in insertion order.
func (s *InventoryStore) ListAll(ctx context.Context) ([]model.FoodItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var rows []foodItemRow
	if err := s.db.SelectContext(ctx, &rows, foodItemSelect+` ORDER BY i.id`); err != nil {
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}

	items := make([]model.FoodItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	slog.Debug("retrieved food items", "count", len(items))
	return items, nil
}

// GetByID returns the item with the given id.
func (s *InventoryStore) GetByID(ctx context.Context, id int64) (*model.FoodItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var row foodItemRow
	err := s.db.GetContext(ctx, &row, foodItemSelect+` WHERE i.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, itemNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query food item: %w", err)
	}
	return row.toModel()
}

// Update replaces every field of an existing item. The id and created_at
// are kept; updated_at moves forward.
func (s *InventoryStore) Update(ctx context.Context, id int64, in model.ItemInput) (*model.FoodItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v, err := validateItem(ctx, s.types, in)
	if err != nil {
		return nil, err
	}

	updatedAt := formatTime(s.now.stamp(current.UpdatedAt))
	if _, err := s.db.ExecContext(ctx, `
		UPDATE food_storage
		SET name = ?, quantity = ?, unit = ?, food_type_id = ?, expiration_date = ?, updated_at = ?
		WHERE id = ?`,
		v.name, v.quantity, v.unit, v.foodTypeID, v.expirationDate, updatedAt, id); err != nil {
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}

	slog.Info("updated food item", "id", id, "name", v.name)
	return s.GetByID(ctx, id)
}

// Delete removes the item with the given id.
func (s *InventoryStore) Delete(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM food_storage WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return itemNotFound(id)
	}

	slog.Info("deleted food item", "id", id)
	return nil
}

func itemNotFound(id int64) error {
	return common.NewError(common.KindNotFound, "food storage item with id %d does not exist", id)
}

var (
	_ service.CategoryStore  = (*CategoryStore)(nil)
	_ service.InventoryStore = (*InventoryStore)(nil)
)

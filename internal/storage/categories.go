package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
)

// CategoryStore manages the food_types reference table.
type CategoryStore struct {
	db  *sqlx.DB
	now clock
}

type foodTypeRow struct {
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
	ID        int64  `db:"id"`
}

func (r foodTypeRow) toModel() (*model.FoodType, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &model.FoodType{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

const foodTypeColumns = `id, name, created_at, updated_at`

// SeedDefaults inserts the default food types whose names are not taken yet.
// It returns how many rows were inserted and is safe to call repeatedly.
func (s *CategoryStore) SeedDefaults(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	inserted := 0
	for _, name := range model.DefaultFoodTypes {
		var exists int
		if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM food_types WHERE name = ?`, name); err != nil {
			return 0, fmt.Errorf("failed to check food type %q: %w", name, err)
		}
		if exists > 0 {
			continue
		}

		now := formatTime(s.now.stamp(timeZero))
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO food_types (name, created_at, updated_at) VALUES (?, ?, ?)`,
			name, now, now); err != nil {
			return 0, fmt.Errorf("failed to seed food type %q: %w", name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	if inserted > 0 {
		slog.Info("seeded default food types", "count", inserted)
	}
	return inserted, nil
}

// SeedIfEmpty seeds the defaults only when no food type exists yet.
func (s *CategoryStore) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return s.SeedDefaults(ctx)
}

// Count returns the number of food types.
func (s *CategoryStore) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM food_types`); err != nil {
		return 0, fmt.Errorf("failed to count food types: %w", err)
	}
	return count, nil
}

// Create inserts a food type with the trimmed name.
func (s *CategoryStore) Create(ctx context.Context, name string) (*model.FoodType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	name, err := normalizeFoodTypeName(name)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	now := formatTime(s.now.stamp(timeZero))
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO food_types (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateFoodType(name)
		}
		return nil, fmt.Errorf("failed to create food type: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get food type ID: %w", err)
	}

	slog.Info("created food type", "id", id, "name", name)
	return s.GetByID(ctx, id)
}

// ListAll returns every food type in insertion order.
func (s *CategoryStore) ListAll(ctx context.Context) ([]model.FoodType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var rows []foodTypeRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+foodTypeColumns+` FROM food_types ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to query food types: %w", err)
	}

	types := make([]model.FoodType, 0, len(rows))
	for _, row := range rows {
		ft, err := row.toModel()
		if err != nil {
			return nil, err
		}
		types = append(types, *ft)
	}

	slog.Debug("retrieved food types", "count", len(types))
	return types, nil
}

// GetByID returns the food type with the given id.
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*model.FoodType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getFoodTypeByID(ctx, s.db, id)
}

// GetByName returns the food type whose name matches the trimmed argument exactly.
func (s *CategoryStore) GetByName(ctx context.Context, name string) (*model.FoodType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getFoodTypeByName(ctx, s.db, strings.TrimSpace(name))
}

// Update renames a food type. The sentinel food type cannot be renamed,
// and renaming to a name that is already taken fails, even when the
// taken name is the food type's own.
func (s *CategoryStore) Update(ctx context.Context, id int64, name string) (*model.FoodType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.IsSentinel() {
		return nil, common.NewError(common.KindProtectedCategory, "cannot update the default food type %q", current.Name)
	}

	name, err = normalizeFoodTypeName(name)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	updatedAt := formatTime(s.now.stamp(current.UpdatedAt))
	if _, err := s.db.ExecContext(ctx,
		`UPDATE food_types SET name = ?, updated_at = ? WHERE id = ?`,
		name, updatedAt, id); err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateFoodType(name)
		}
		return nil, fmt.Errorf("failed to update food type: %w", err)
	}

	slog.Info("renamed food type", "id", id, "from", current.Name, "to", name)
	return s.GetByID(ctx, id)
}

// Delete removes a food type. Items that referenced it are moved to the
// sentinel food type in the same transaction; when the sentinel is missing
// and items still reference the food type, nothing is deleted.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	current, err := getFoodTypeByID(ctx, tx, id)
	if err != nil {
		return err
	}

	if current.IsSentinel() {
		return common.NewError(common.KindProtectedCategory, "cannot delete the default food type %q", current.Name)
	}

	var inUse int
	if err := tx.GetContext(ctx, &inUse,
		`SELECT COUNT(*) FROM food_storage WHERE food_type_id = ?`, id); err != nil {
		return fmt.Errorf("failed to count items of food type: %w", err)
	}

	if inUse > 0 {
		sentinel, err := getFoodTypeByName(ctx, tx, model.SentinelFoodType)
		if errors.Is(err, common.ErrNotFound) {
			return common.NewError(common.KindCategoryInUse,
				"food type %q is used by %d items and there is no %q food type to move them to",
				current.Name, inUse, model.SentinelFoodType)
		}
		if err != nil {
			return err
		}

		if err := s.reassignItems(ctx, tx, id, sentinel.ID); err != nil {
			return err
		}
		slog.Info("reassigned items to default food type",
			"from", current.Name, "to", sentinel.Name, "count", inUse)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM food_types WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete food type: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit food type deletion: %w", err)
	}

	slog.Info("deleted food type", "id", id, "name", current.Name)
	return nil
}

// reassignItems moves every item of food type from to food type to. Each
// row is stamped against its own updated_at so the value always advances.
func (s *CategoryStore) reassignItems(ctx context.Context, tx *sqlx.Tx, from, to int64) error {
	var rows []struct {
		UpdatedAt string `db:"updated_at"`
		ID        int64  `db:"id"`
	}
	if err := tx.SelectContext(ctx, &rows,
		`SELECT id, updated_at FROM food_storage WHERE food_type_id = ?`, from); err != nil {
		return fmt.Errorf("failed to list items to reassign: %w", err)
	}

	for _, row := range rows {
		prev, err := parseTime(row.UpdatedAt)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE food_storage SET food_type_id = ?, updated_at = ? WHERE id = ?`,
			to, formatTime(s.now.stamp(prev)), row.ID); err != nil {
			return fmt.Errorf("failed to reassign item %d: %w", row.ID, err)
		}
	}
	return nil
}

func (s *CategoryStore) ensureNameFree(ctx context.Context, name string) error {
	_, err := getFoodTypeByName(ctx, s.db, name)
	switch {
	case err == nil:
		return duplicateFoodType(name)
	case errors.Is(err, common.ErrNotFound):
		return nil
	default:
		return err
	}
}

func duplicateFoodType(name string) error {
	return common.NewError(common.KindDuplicateName, "a food type named %q already exists", name)
}

func getFoodTypeByID(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.FoodType, error) {
	var row foodTypeRow
	err := sqlx.GetContext(ctx, q, &row,
		`SELECT `+foodTypeColumns+` FROM food_types WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewError(common.KindNotFound, "food type with id %d does not exist", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query food type: %w", err)
	}
	return row.toModel()
}

func getFoodTypeByName(ctx context.Context, q sqlx.QueryerContext, name string) (*model.FoodType, error) {
	var row foodTypeRow
	err := sqlx.GetContext(ctx, q, &row,
		`SELECT `+foodTypeColumns+` FROM food_types WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewError(common.KindNotFound, "food type %q does not exist", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query food type: %w", err)
	}
	return row.toModel()
}

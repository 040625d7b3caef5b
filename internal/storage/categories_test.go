package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
)

func TestCategoryStore_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()
	cats := store.Categories()

	custom, err := cats.Create(ctx, "Leftovers")
	require.NoError(t, err)

	inserted, err := cats.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(model.DefaultFoodTypes), inserted)

	inserted, err = cats.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	all, err := cats.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(model.DefaultFoodTypes)+1)

	seen := make(map[string]int)
	for _, ft := range all {
		seen[ft.Name]++
	}
	for _, name := range model.DefaultFoodTypes {
		assert.Equal(t, 1, seen[name], "default %q should exist exactly once", name)
	}
	assert.Equal(t, 1, seen[custom.Name])
}

func TestCategoryStore_SeedDefaultsSkipsExistingNames(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()
	cats := store.Categories()

	_, err := cats.Create(ctx, "Dairy")
	require.NoError(t, err)

	inserted, err := cats.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(model.DefaultFoodTypes)-1, inserted)
}

func TestCategoryStore_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table is seeded", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		inserted, err := store.Categories().SeedIfEmpty(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(model.DefaultFoodTypes), inserted)
	})

	t.Run("non-empty table is left alone", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.Categories().Create(ctx, "Leftovers")
		require.NoError(t, err)

		inserted, err := store.Categories().SeedIfEmpty(ctx)
		require.NoError(t, err)
		assert.Zero(t, inserted)

		count, err := store.Categories().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestCategoryStore_Create(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()
	cats := store.Categories()

	created, err := cats.Create(ctx, "Valid Food Type")
	require.NoError(t, err)
	assert.Equal(t, "Valid Food Type", created.Name)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	trimmed, err := cats.Create(ctx, "    Valid Food  Type 2 ")
	require.NoError(t, err)
	assert.Equal(t, "Valid Food  Type 2", trimmed.Name)

	got, err := cats.GetByID(ctx, trimmed.ID)
	require.NoError(t, err)
	assert.Equal(t, *trimmed, *got)

	tests := []struct {
		name     string
		input    string
		wantKind common.ErrorKind
	}{
		{name: "duplicate", input: "Valid Food  Type 2", wantKind: common.KindDuplicateName},
		{name: "duplicate after trimming", input: "  Valid Food Type\t", wantKind: common.KindDuplicateName},
		{name: "empty", input: "", wantKind: common.KindEmptyName},
		{name: "single space", input: " ", wantKind: common.KindEmptyName},
		{name: "spaces", input: "   ", wantKind: common.KindEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cats.Create(ctx, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, common.KindOf(err))
		})
	}

	// Names are matched case-sensitively.
	_, err = cats.Create(ctx, "valid food type")
	assert.NoError(t, err)
}

func TestCategoryStore_ListAllOrdersByID(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()
	cats := store.Categories()

	for _, name := range []string{"Zucchini", "Apples", "Mango"} {
		_, err := cats.Create(ctx, name)
		require.NoError(t, err)
	}

	all, err := cats.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Zucchini", all[0].Name)
	assert.Equal(t, "Apples", all[1].Name)
	assert.Equal(t, "Mango", all[2].Name)
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Less(t, all[1].ID, all[2].ID)
}

func TestCategoryStore_GetByIDAndName(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()
	cats := store.Categories()

	_, err := cats.SeedDefaults(ctx)
	require.NoError(t, err)

	all, err := cats.ListAll(ctx)
	require.NoError(t, err)
	for _, ft := range all {
		byID, err := cats.GetByID(ctx, ft.ID)
		require.NoError(t, err)
		assert.Equal(t, ft, *byID)

		byName, err := cats.GetByName(ctx, ft.Name)
		require.NoError(t, err)
		assert.Equal(t, ft, *byName)
	}

	_, err = cats.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = cats.GetByName(ctx, "Invalid Food Type")
	assert.ErrorIs(t, err, common.ErrNotFound)

	byName, err := cats.GetByName(ctx, "  Dairy ")
	require.NoError(t, err)
	assert.Equal(t, "Dairy", byName.Name)
}

func TestCategoryStore_Update(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t, WithClock(newFakeClock().Now))
	defer cleanup()
	cats := store.Categories()

	_, err := cats.SeedDefaults(ctx)
	require.NoError(t, err)

	all, err := cats.ListAll(ctx)
	require.NoError(t, err)

	for _, ft := range all {
		updated, err := cats.Update(ctx, ft.ID, "Updated "+ft.Name)
		if ft.Name == model.SentinelFoodType {
			require.Error(t, err)
			assert.Equal(t, common.KindProtectedCategory, common.KindOf(err))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, "Updated "+ft.Name, updated.Name)
		assert.Equal(t, ft.ID, updated.ID)
		assert.Equal(t, ft.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(ft.UpdatedAt))
	}

	first := all[0]
	tests := []struct {
		name     string
		input    string
		id       int64
		wantKind common.ErrorKind
	}{
		{name: "unknown id", id: 9999, input: "Anything", wantKind: common.KindNotFound},
		{name: "empty", id: first.ID, input: "", wantKind: common.KindEmptyName},
		{name: "whitespace", id: first.ID, input: "  ", wantKind: common.KindEmptyName},
		{name: "own name", id: first.ID, input: "Updated " + first.Name, wantKind: common.KindDuplicateName},
		{name: "other's name", id: first.ID, input: "Updated " + all[1].Name, wantKind: common.KindDuplicateName},
		{name: "sentinel's name", id: first.ID, input: model.SentinelFoodType, wantKind: common.KindDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cats.Update(ctx, tt.id, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, common.KindOf(err))
		})
	}

	// Failed updates leave the row untouched.
	got, err := cats.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated "+first.Name, got.Name)
}

func TestCategoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()
	cats := store.Categories()

	_, err := cats.SeedDefaults(ctx)
	require.NoError(t, err)

	all, err := cats.ListAll(ctx)
	require.NoError(t, err)

	for _, ft := range all {
		err := cats.Delete(ctx, ft.ID)
		if ft.Name == model.SentinelFoodType {
			require.Error(t, err)
			assert.Equal(t, common.KindProtectedCategory, common.KindOf(err))
			continue
		}
		require.NoError(t, err)

		_, err = cats.GetByID(ctx, ft.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	}

	before, err := cats.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, before)

	err = cats.Delete(ctx, 9999)
	assert.ErrorIs(t, err, common.ErrNotFound)

	after, err := cats.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCategoryStore_DeleteReassignsItems(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t, WithClock(newFakeClock().Now))
	defer cleanup()
	cats := store.Categories()
	items := store.Inventory()

	_, err := cats.SeedDefaults(ctx)
	require.NoError(t, err)
	leftovers, err := cats.Create(ctx, "Leftovers")
	require.NoError(t, err)
	other, err := cats.GetByName(ctx, model.SentinelFoodType)
	require.NoError(t, err)

	pasta, err := items.Create(ctx, model.ItemInput{
		Name: "Pasta", Quantity: "2.5", Unit: "servings", FoodTypeID: leftovers.ID, ExpirationDate: "2024-06-01",
	})
	require.NoError(t, err)

	require.NoError(t, cats.Delete(ctx, leftovers.ID))

	moved, err := items.GetByID(ctx, pasta.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.FoodTypeID)
	assert.Equal(t, model.SentinelFoodType, moved.FoodTypeName)
	assert.Equal(t, pasta.CreatedAt, moved.CreatedAt)
	assert.True(t, moved.UpdatedAt.After(pasta.UpdatedAt))
}

func TestCategoryStore_DeleteReassignAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store, cleanup := createTestStorage(t, WithClock(func() time.Time { return now }))
	defer cleanup()
	cats := store.Categories()
	items := store.Inventory()

	_, err := cats.SeedDefaults(ctx)
	require.NoError(t, err)
	leftovers, err := cats.Create(ctx, "Leftovers")
	require.NoError(t, err)

	soup, err := items.Create(ctx, model.ItemInput{
		Name: "Soup", Quantity: "1", Unit: "L", FoodTypeID: leftovers.ID, ExpirationDate: "2024-06-03",
	})
	require.NoError(t, err)
	stew, err := items.Create(ctx, model.ItemInput{
		Name: "Stew", Quantity: "2", Unit: "L", FoodTypeID: leftovers.ID, ExpirationDate: "2024-06-04",
	})
	require.NoError(t, err)
	stew, err = items.Update(ctx, stew.ID, model.ItemInput{
		Name: "Stew", Quantity: "1.5", Unit: "L", FoodTypeID: leftovers.ID, ExpirationDate: "2024-06-04",
	})
	require.NoError(t, err)

	// The clock goes backwards before the delete.
	now = now.Add(-time.Hour)
	require.NoError(t, cats.Delete(ctx, leftovers.ID))

	for _, before := range []*model.FoodItem{soup, stew} {
		after, err := items.GetByID(ctx, before.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SentinelFoodType, after.FoodTypeName)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt),
			"%s: updated_at %v should be after %v", before.Name, after.UpdatedAt, before.UpdatedAt)
	}
}

func TestCategoryStore_DeleteBlockedWithoutSentinel(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()
	cats := store.Categories()

	// No seeding: the sentinel does not exist.
	leftovers, err := cats.Create(ctx, "Leftovers")
	require.NoError(t, err)
	_, err = store.Inventory().Create(ctx, model.ItemInput{
		Name: "Soup", Quantity: "1", Unit: "L", FoodTypeID: leftovers.ID, ExpirationDate: "2024-06-03",
	})
	require.NoError(t, err)

	err = cats.Delete(ctx, leftovers.ID)
	require.Error(t, err)
	assert.Equal(t, common.KindCategoryInUse, common.KindOf(err))

	_, err = cats.GetByID(ctx, leftovers.ID)
	assert.NoError(t, err, "food type must survive a blocked delete")

	// Without items the same food type can go.
	empty, err := cats.Create(ctx, "Empty")
	require.NoError(t, err)
	assert.NoError(t, cats.Delete(ctx, empty.ID))
}

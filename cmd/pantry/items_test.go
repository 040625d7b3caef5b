package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pantry/internal/common"
)

func addItem(env *testEnv, name, qty, unit, foodType, expires string) string {
	env.t.Helper()
	return env.mustRun("items", "add",
		"--name", name, "--quantity", qty, "--unit", unit, "--type", foodType, "--expires", expires)
}

func TestItemsAdd(t *testing.T) {
	env := newTestEnv(t)

	out := addItem(env, "Milk", "2", "L", "Dairy", "2024-06-03")
	assert.Contains(t, out, `Added "Milk" (ID: 1)`)

	// Food types can be given by ID too.
	out = addItem(env, "Rice", "1.5", "kg", "3", "2025-01-01")
	assert.Contains(t, out, `Added "Rice" (ID: 2)`)
	assert.Contains(t, env.mustRun("items", "show", "2"), "Food type: Grain")
}

func TestItemsAdd_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind common.ErrorKind
	}{
		{
			name: "empty name",
			args: []string{"--name", " ", "--quantity", "1", "--unit", "L", "--type", "Dairy", "--expires", "2024-06-03"},
			kind: common.KindEmptyName,
		},
		{
			name: "quantity not a number",
			args: []string{"--name", "Milk", "--quantity", "lots", "--unit", "L", "--type", "Dairy", "--expires", "2024-06-03"},
			kind: common.KindInvalidQuantity,
		},
		{
			name: "negative quantity",
			args: []string{"--name", "Milk", "--quantity", "-1", "--unit", "L", "--type", "Dairy", "--expires", "2024-06-03"},
			kind: common.KindNegativeQuantity,
		},
		{
			name: "unknown food type",
			args: []string{"--name", "Milk", "--quantity", "1", "--unit", "L", "--type", "Cheese", "--expires", "2024-06-03"},
			kind: common.KindUnknownCategory,
		},
		{
			name: "bad date",
			args: []string{"--name", "Milk", "--quantity", "1", "--unit", "L", "--type", "Dairy", "--expires", "06/03/2024"},
			kind: common.KindInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.run("", append([]string{"items", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.kind, common.KindOf(err))
		})
	}
}

func TestItemsAdd_UnknownFoodTypeNamesIt(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("", "items", "add", "--name", "Chips", "--quantity", "1", "--unit", "bag",
		"--type", "Snacks", "--expires", "2024-07-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Snacks"`)
}

func TestItemsUpdate_KeepsUnchangedFields(t *testing.T) {
	env := newTestEnv(t)
	addItem(env, "Milk", "2", "L", "Dairy", "2024-06-03")

	out := env.mustRun("items", "update", "1", "--quantity", "0.5")
	assert.Contains(t, out, `Updated "Milk" (ID: 1)`)

	show := env.mustRun("items", "show", "1")
	assert.Contains(t, show, "Quantity:  0.5 L")
	assert.Contains(t, show, "Food type: Dairy")
	assert.Contains(t, show, "Expires:   2024-06-03 (in 2 days)")

	env.mustRun("items", "update", "1", "--type", "Beverage", "--name", "Oat milk")
	show = env.mustRun("items", "show", "1")
	assert.Contains(t, show, "#1 Oat milk")
	assert.Contains(t, show, "Food type: Beverage")
}

func TestItemsUpdate_KeepsFoodTypeShadowedByNumericName(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("types", "add", "5")
	addItem(env, "Milk", "2", "L", "Dairy", "2024-06-03") // Dairy has ID 5

	env.mustRun("items", "update", "1", "--name", "Whole milk")

	show := env.mustRun("items", "show", "1")
	assert.Contains(t, show, "#1 Whole milk")
	assert.Contains(t, show, "Food type: Dairy")
}

func TestItemsUpdate_Errors(t *testing.T) {
	env := newTestEnv(t)
	addItem(env, "Milk", "2", "L", "Dairy", "2024-06-03")

	_, err := env.run("", "items", "update", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify at least one of")

	_, err = env.run("", "items", "update", "42", "--quantity", "1")
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	_, err = env.run("", "items", "update", "1", "--unit", "")
	require.Error(t, err)
	assert.Equal(t, common.KindEmptyUnit, common.KindOf(err))
}

func TestItemsList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("items", "list")
	assert.Contains(t, out, "No items found")

	addItem(env, "Yogurt", "4", "cup", "Dairy", "2024-05-30")
	addItem(env, "Milk", "2", "L", "Dairy", "2024-06-02")
	addItem(env, "Rice", "1", "kg", "Grain", "2025-01-01")

	out = env.mustRun("items", "list")
	assert.Contains(t, out, "2024-05-30 (expired)")
	assert.Contains(t, out, "2024-06-02 (tomorrow)")
	assert.Contains(t, out, "Rice")

	// Listed by ID.
	assert.Less(t, strings.Index(out, "Yogurt"), strings.Index(out, "Milk"))
	assert.Less(t, strings.Index(out, "Milk"), strings.Index(out, "Rice"))

	out = env.mustRun("items", "list", "--expiring")
	assert.Contains(t, out, "Yogurt")
	assert.Contains(t, out, "Milk")
	assert.NotContains(t, out, "Rice")
}

func TestItemsList_ExpiringDaysFromEnv(t *testing.T) {
	env := newTestEnv(t)
	addItem(env, "Milk", "2", "L", "Dairy", "2024-06-10")

	assert.Contains(t, env.mustRun("items", "list", "--expiring"), "No items found")

	t.Setenv("PANTRY_INVENTORY_EXPIRING_DAYS", "14")
	assert.Contains(t, env.mustRun("items", "list", "--expiring"), "Milk")
}

func TestItemsShow(t *testing.T) {
	env := newTestEnv(t)
	addItem(env, "Leftover pasta", "2.5", "servings", "Other", "2024-06-01")

	out := env.mustRun("items", "show", "1")
	assert.Contains(t, out, "#1 Leftover pasta")
	assert.Contains(t, out, "Quantity:  2.5 servings")
	assert.Contains(t, out, "2024-06-01 (today)")

	_, err := env.run("", "items", "show", "2")
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestItemsDelete(t *testing.T) {
	env := newTestEnv(t)
	addItem(env, "Milk", "2", "L", "Dairy", "2024-06-03")

	out, err := env.run("\n", "items", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete "Milk"? [y/N]`)
	assert.Contains(t, out, "Deletion canceled.")

	out, err = env.run("yes\n", "items", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "Milk"`)

	_, err = env.run("", "items", "delete", "--force", "1")
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestItemsImport(t *testing.T) {
	env := newTestEnv(t)

	csvPath := filepath.Join(env.dir, "groceries.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(`name,quantity,unit,food_type,expiration_date
Milk,2,L,Dairy,2024-06-03
Rice,1,kg,Grain,2025-01-01
Chips,1,bag,Snacks,2024-07-01
`), 0o600))

	out := env.mustRun("items", "import", "--quiet", csvPath)
	assert.Contains(t, out, `line 4`)
	assert.Contains(t, out, `"Snacks"`)
	assert.Contains(t, out, "Imported 2 of 3 rows from groceries.csv")
	assert.Contains(t, out, "1 rows skipped")

	list := env.mustRun("items", "list")
	assert.Contains(t, list, "Milk")
	assert.Contains(t, list, "Rice")
	assert.NotContains(t, list, "Chips")
}

func TestItemsImport_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("", "items", "import", filepath.Join(env.dir, "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

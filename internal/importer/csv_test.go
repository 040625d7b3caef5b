package importer

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/testutil"
)

func TestImport_MixedRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dairy := db.MustFoodType("Dairy")

	input := strings.Join([]string{
		"name,quantity,unit,food_type,expiration_date",
		"Milk,2,L,Dairy,2024-06-05",
		"Rice,1.5,kg,Grain,2025-01-01",
		",1,kg,Grain,2025-01-01",
		"Eggs,-3,piece,Protein,2024-06-10",
		"Cheese,0.25,kg,Snacks,2024-06-20",
		"Yogurt,4,cup,Dairy,06/01/2024",
	}, "\n")

	var progress bytes.Buffer
	result, err := New(db.Storage.Categories(), db.Storage.Inventory(), WithProgress(&progress)).
		Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 6, result.Rows)
	require.Len(t, result.Imported, 2)
	assert.Equal(t, "Milk", result.Imported[0].Name)
	assert.Equal(t, dairy.ID, result.Imported[0].FoodTypeID)
	assert.Equal(t, "Rice", result.Imported[1].Name)

	require.Len(t, result.Errors, 4)
	wantLines := []int{4, 5, 6, 7}
	wantKinds := []common.ErrorKind{
		common.KindEmptyName,
		common.KindNegativeQuantity,
		common.KindUnknownCategory,
		common.KindInvalidDateFormat,
	}
	for i, rowErr := range result.Errors {
		assert.Equal(t, wantLines[i], rowErr.Line)
		assert.Equal(t, wantKinds[i], common.KindOf(rowErr))
	}
	assert.Len(t, db.MustItems(), 2)
	assert.NotEmpty(t, progress.String())
}

func TestImport_ReportsFileLines(t *testing.T) {
	db := testutil.SetupTestDB(t)

	input := strings.Join([]string{
		"name,quantity,unit,food_type,expiration_date", // 1
		"",                                             // 2
		"Milk,2,L,Dairy,2024-06-05",                    // 3
		"",                                             // 4
		"Eggs,-3,piece,Protein,2024-06-10",             // 5
		`"Soup`,                                        // 6
		`with beans",1,L,Canned,2024-08-01`,            // 7
		"Cheese,0.25,kg,Snacks,2024-06-20",             // 8
	}, "\n")

	result, err := New(db.Storage.Categories(), db.Storage.Inventory()).
		Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Rows)
	require.Len(t, result.Imported, 2)
	assert.Equal(t, "Soup\nwith beans", result.Imported[1].Name)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, 5, result.Errors[0].Line)
	assert.Equal(t, common.KindNegativeQuantity, common.KindOf(result.Errors[0]))
	assert.Equal(t, 8, result.Errors[1].Line)
	assert.Equal(t, common.KindUnknownCategory, common.KindOf(result.Errors[1]))
}

func TestImport_ResolvesFoodTypeByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dairy := db.MustFoodType("Dairy")

	input := "name,quantity,unit,food_type,expiration_date\n" +
		"Butter,1,block," + strconv.FormatInt(dairy.ID, 10) + ",2024-07-01\n"

	result, err := New(db.Storage.Categories(), db.Storage.Inventory()).
		Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Imported, 1)
	assert.Equal(t, "Dairy", result.Imported[0].FoodTypeName)
}

func TestImport_HeaderOrderAndCase(t *testing.T) {
	db := testutil.SetupTestDB(t)

	input := "\ufeffExpiration_Date, Food_Type ,Name,Unit,Quantity\n" +
		"2024-06-05,Dairy,Milk,L,2\n"

	result, err := New(db.Storage.Categories(), db.Storage.Inventory()).
		Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Imported, 1)

	items := db.MustItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, 2.0, items[0].Quantity)
	assert.Equal(t, "L", items[0].Unit)
	assert.Equal(t, "2024-06-05", items[0].ExpirationDate)
}

func TestImport_ShortRowTreatsMissingFieldsAsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	input := "name,quantity,unit,food_type,expiration_date\n" +
		"Milk,2,L,Dairy\n"

	result, err := New(db.Storage.Categories(), db.Storage.Inventory()).
		Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, common.KindEmptyDate, common.KindOf(result.Errors[0]))
	assert.Contains(t, result.Errors[0].Error(), "line 2")
}

func TestImport_BadHeader(t *testing.T) {
	db := testutil.SetupTestDB(t)
	imp := New(db.Storage.Categories(), db.Storage.Inventory())

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "missing columns", input: "name,quantity\nMilk,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := imp.Import(context.Background(), strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMissingColumn)
		})
	}
}

func TestImport_CanceledContext(t *testing.T) {
	db := testutil.SetupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "name,quantity,unit,food_type,expiration_date\nMilk,2,L,Dairy,2024-06-05\n"
	result, err := New(db.Storage.Categories(), db.Storage.Inventory()).Import(ctx, strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, result.Imported)
	assert.Empty(t, db.MustItems())
}

// failingStore rejects every write with a storage failure.
type failingStore struct {
	err error
}

func (f failingStore) Create(context.Context, model.ItemInput) (*model.FoodItem, error) {
	return nil, f.err
}

func (f failingStore) ListAll(context.Context) ([]model.FoodItem, error) { return nil, f.err }

func (f failingStore) GetByID(context.Context, int64) (*model.FoodItem, error) { return nil, f.err }

func (f failingStore) Update(context.Context, int64, model.ItemInput) (*model.FoodItem, error) {
	return nil, f.err
}

func (f failingStore) Delete(context.Context, int64) error { return f.err }

func TestImport_StorageFailureAborts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	boom := errors.New("database is locked")

	input := "name,quantity,unit,food_type,expiration_date\n" +
		"Milk,2,L,Dairy,2024-06-05\n" +
		"Rice,1,kg,Grain,2025-01-01\n"

	result, err := New(db.Storage.Categories(), failingStore{err: boom}).
		Import(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, result.Imported)
}

package service

import (
	"context"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
)

// SaveItem creates an item (id 0) or updates item id, taking the food type
// as a name or id reference instead of a resolved id. An unresolvable
// reference is handed to the store as id 0 so its validation order decides
// which error the caller sees; if that is the food type, the resolver's
// message wins.
func SaveItem(ctx context.Context, types FoodTypeResolver, items InventoryStore, id int64, foodType string, in model.ItemInput) (*model.FoodItem, error) {
	ft, resolveErr := ResolveFoodType(ctx, types, foodType)
	switch {
	case resolveErr == nil:
		in.FoodTypeID = ft.ID
	case common.IsUserError(resolveErr):
		in.FoodTypeID = 0
	default:
		return nil, resolveErr
	}

	var (
		item *model.FoodItem
		err  error
	)
	if id == 0 {
		item, err = items.Create(ctx, in)
	} else {
		item, err = items.Update(ctx, id, in)
	}

	if resolveErr != nil && common.KindOf(err) == common.KindUnknownCategory {
		return nil, resolveErr
	}
	return item, err
}

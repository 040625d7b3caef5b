package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
)

// FoodTypeResolver finds food types by name or id.
type FoodTypeResolver interface {
	FoodTypeLookup
	GetByName(ctx context.Context, name string) (*model.FoodType, error)
}

// ResolveFoodType looks ref up as a food type name first and, failing
// that, as a numeric id. An unknown reference yields KindUnknownCategory.
func ResolveFoodType(ctx context.Context, types FoodTypeResolver, ref string) (*model.FoodType, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, common.NewError(common.KindUnknownCategory, "food type must be given")
	}

	ft, err := types.GetByName(ctx, ref)
	if err == nil {
		return ft, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		ft, err = types.GetByID(ctx, id)
		if err == nil {
			return ft, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	return nil, common.NewError(common.KindUnknownCategory, "food type %q does not exist", ref)
}

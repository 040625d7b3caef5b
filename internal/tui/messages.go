package tui

import "github.com/Veraticus/pantry/internal/model"

type itemsLoadedMsg struct {
	err   error
	items []model.FoodItem
	// focusID selects the item after the reload, if non-zero.
	focusID int64
}

type itemSavedMsg struct {
	item    *model.FoodItem
	created bool
}

type itemDeletedMsg struct {
	name string
	id   int64
}

// errorMsg carries a failed mutation; the form stays open so the user can
// correct the input.
type errorMsg struct {
	err error
}

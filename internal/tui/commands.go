package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/pantry/internal/service"
	"github.com/Veraticus/pantry/internal/tui/components"
)

// loadItems reads the whole inventory from storage.
func (m Model) loadItems(focusID int64) tea.Cmd {
	items := m.config.Items
	timeout := m.config.Timeout
	return func() tea.Msg {
		if items == nil {
			return itemsLoadedMsg{err: fmt.Errorf("storage not configured")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		list, err := items.ListAll(ctx)
		if err != nil {
			return itemsLoadedMsg{err: err}
		}
		return itemsLoadedMsg{items: list, focusID: focusID}
	}
}

// saveItem creates or updates an item from the form values.
func (m Model) saveItem(id int64, values components.FormValues) tea.Cmd {
	types, items := m.config.Categories, m.config.Items
	timeout := m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		item, err := service.SaveItem(ctx, types, items, id, values.FoodType, values.Input())
		if err != nil {
			return errorMsg{err: err}
		}
		return itemSavedMsg{item: item, created: id == 0}
	}
}

// deleteItem removes an item.
func (m Model) deleteItem(id int64, name string) tea.Cmd {
	items := m.config.Items
	timeout := m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := items.Delete(ctx, id); err != nil {
			return errorMsg{err: err}
		}
		return itemDeletedMsg{id: id, name: name}
	}
}

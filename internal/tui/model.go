package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/tui/components"
)

// State represents the current state of the TUI.
type State int

const (
	StateList State = iota
	StateForm
	StateConfirmDelete
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Model holds the main TUI state.
type Model struct {
	pendingDelete *model.FoodItem
	status        string
	help          help.Model
	keymap        KeyMap
	config        Config
	form          components.ItemFormModel
	list          components.ItemListModel
	statusKind    statusKind
	state         State
	width         int
	height        int
	ready         bool
	quitting      bool
}

func newModel(cfg Config) Model {
	list := components.NewItemList(cfg.Theme, cfg.Now, cfg.ExpiringDays)
	list.Resize(cfg.Width, listHeight(cfg.Height))

	return Model{
		config: cfg,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		list:   list,
		state:  StateList,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Chrome around the table: title, status line and help line.
func listHeight(height int) int {
	return max(5, height-4)
}

// Init loads the inventory.
func (m Model) Init() tea.Cmd {
	return m.loadItems(0)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Resize(msg.Width, listHeight(msg.Height))
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			m.setStatus(statusError, "Failed to load items: "+msg.err.Error())
			return m, nil
		}
		m.list.SetItems(msg.items)
		if msg.focusID != 0 {
			m.list.Select(msg.focusID)
		}
		m.ready = true
		return m, nil

	case itemSavedMsg:
		m.state = StateList
		verb := "Updated"
		if msg.created {
			verb = "Added"
		}
		m.setStatus(statusSuccess, fmt.Sprintf("%s %q", verb, msg.item.Name))
		return m, m.loadItems(msg.item.ID)

	case itemDeletedMsg:
		m.state = StateList
		m.pendingDelete = nil
		m.setStatus(statusSuccess, fmt.Sprintf("Deleted %q", msg.name))
		return m, m.loadItems(0)

	case errorMsg:
		if m.state == StateConfirmDelete {
			m.state = StateList
			m.pendingDelete = nil
		}
		m.setStatus(statusError, msg.err.Error())
		return m, nil
	}

	if m.state == StateForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateForm:
		return m.handleFormKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Add):
		m.form = components.NewItemForm(m.config.Theme)
		m.state = StateForm
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keymap.Edit):
		item, ok := m.list.Selected()
		if !ok {
			m.setStatus(statusInfo, "Nothing to edit")
			return m, nil
		}
		m.form = components.EditItemForm(m.config.Theme, item)
		m.state = StateForm
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		item, ok := m.list.Selected()
		if !ok {
			m.setStatus(statusInfo, "Nothing to delete")
			return m, nil
		}
		m.pendingDelete = &item
		m.state = StateConfirmDelete
		m.setStatus(statusInfo, fmt.Sprintf("Delete %q? (y/n)", item.Name))
		return m, nil

	case key.Matches(msg, m.keymap.Reload):
		var focus int64
		if item, ok := m.list.Selected(); ok {
			focus = item.ID
		}
		m.setStatus(statusInfo, "Reloaded")
		return m, m.loadItems(focus)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateList
		m.setStatus(statusInfo, "Canceled")
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		m.setStatus(statusInfo, "Saving...")
		return m, m.saveItem(m.form.ItemID, m.form.Values())

	case key.Matches(msg, m.keymap.NextField):
		return m, m.form.NextField()

	case key.Matches(msg, m.keymap.PrevField):
		return m, m.form.PrevField()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.pendingDelete
	if item != nil && key.Matches(msg, m.keymap.Confirm) {
		return m, m.deleteItem(item.ID, item.Name)
	}

	m.state = StateList
	m.pendingDelete = nil
	m.setStatus(statusInfo, "Delete canceled")
	return m, nil
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) clearStatus() {
	m.setStatus(statusInfo, "")
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

package components

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pantry/internal/cli"
	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/tui/themes"
)

// ItemListModel shows the inventory as a table.
type ItemListModel struct {
	now          func() time.Time
	theme        themes.Theme
	items        []model.FoodItem
	table        table.Model
	expiringDays int
	width        int
	height       int
}

// NewItemList creates an empty item list. Items expiring within
// expiringDays days are flagged.
func NewItemList(theme themes.Theme, now func() time.Time, expiringDays int) ItemListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := ItemListModel{
		now:          now,
		theme:        theme,
		table:        t,
		expiringDays: expiringDays,
		width:        80,
		height:       24,
	}
	m.updateColumnWidths()
	return m
}

// SetItems replaces the listed items, keeping the cursor in range.
func (m *ItemListModel) SetItems(items []model.FoodItem) {
	m.items = items
	m.table.SetRows(m.buildTableRows())

	if cursor := m.table.Cursor(); cursor >= len(items) {
		m.table.SetCursor(max(0, len(items)-1))
	}
}

// Items returns the listed items.
func (m ItemListModel) Items() []model.FoodItem {
	return m.items
}

// Selected returns the item under the cursor.
func (m ItemListModel) Selected() (model.FoodItem, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.items) {
		return model.FoodItem{}, false
	}
	return m.items[cursor], true
}

// Select moves the cursor to the item with the given id, if listed.
func (m *ItemListModel) Select(id int64) {
	for i, item := range m.items {
		if item.ID == id {
			m.table.SetCursor(i)
			return
		}
	}
}

// Update handles messages.
func (m ItemListModel) Update(msg tea.Msg) (ItemListModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the item list.
func (m ItemListModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.table.View())
}

func (m ItemListModel) renderHeader() string {
	var expired, soon int
	for _, item := range m.items {
		switch m.status(item) {
		case cli.ExpiryPast:
			expired++
		case cli.ExpirySoon:
			soon++
		default:
		}
	}

	summary := m.theme.Subtitle.Render(fmt.Sprintf("%d items", len(m.items)))
	if expired > 0 {
		summary += "  " + m.theme.StatusError.Render(fmt.Sprintf("%d expired", expired))
	}
	if soon > 0 {
		summary += "  " + m.theme.StatusWarning.Render(fmt.Sprintf("%d expiring soon", soon))
	}
	return summary
}

func (m ItemListModel) status(item model.FoodItem) cli.ExpiryStatus {
	days, ok := item.DaysUntilExpiry(m.now())
	return cli.ClassifyExpiry(days, ok, m.expiringDays)
}

func (m ItemListModel) buildTableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.items))

	for _, item := range m.items {
		rows = append(rows, table.Row{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			cli.FormatQuantity(item.Quantity),
			item.Unit,
			item.FoodTypeName,
			item.ExpirationDate,
			m.renderStatus(item),
		})
	}

	return rows
}

func (m ItemListModel) renderStatus(item model.FoodItem) string {
	days, ok := item.DaysUntilExpiry(m.now())
	switch cli.ClassifyExpiry(days, ok, m.expiringDays) {
	case cli.ExpiryPast:
		return lipgloss.NewStyle().Foreground(m.theme.Error).Render("expired")
	case cli.ExpirySoon:
		if days == 0 {
			return lipgloss.NewStyle().Foreground(m.theme.Warning).Render("today")
		}
		return lipgloss.NewStyle().Foreground(m.theme.Warning).Render(fmt.Sprintf("%dd left", days))
	case cli.ExpiryUnknown:
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("?")
	default:
		return ""
	}
}

// Resize updates the component size.
func (m *ItemListModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Summary line plus column headers and their border.
	m.table.SetHeight(max(1, height-3))
	m.updateColumnWidths()
}

func (m *ItemListModel) updateColumnWidths() {
	availableWidth := max(70, m.width-4)

	m.table.SetColumns([]table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: max(12, int(float64(availableWidth)*0.25))},
		{Title: "Quantity", Width: 9},
		{Title: "Unit", Width: max(6, int(float64(availableWidth)*0.1))},
		{Title: "Food type", Width: max(10, int(float64(availableWidth)*0.17))},
		{Title: "Expires", Width: 10},
		{Title: "Status", Width: 9},
	})
}

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/pantry/internal/cli"
	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/tui/themes"
)

// Form fields, in tab order.
const (
	FieldName = iota
	FieldQuantity
	FieldUnit
	FieldFoodType
	FieldExpires
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldName:     "Name",
	FieldQuantity: "Quantity",
	FieldUnit:     "Unit",
	FieldFoodType: "Food type",
	FieldExpires:  "Expires",
}

var fieldPlaceholders = [fieldCount]string{
	FieldName:     "Milk",
	FieldQuantity: "2.5",
	FieldUnit:     "L",
	FieldFoodType: "Dairy (name or id)",
	FieldExpires:  "YYYY-MM-DD",
}

// FormValues is the raw text of every form field.
type FormValues struct {
	Name     string
	Quantity string
	Unit     string
	FoodType string
	Expires  string
}

// Input converts the values to store input. The food type is resolved
// separately since it may be a name.
func (v FormValues) Input() model.ItemInput {
	return model.ItemInput{
		Name:           v.Name,
		Quantity:       v.Quantity,
		Unit:           v.Unit,
		ExpirationDate: v.Expires,
	}
}

// ItemFormModel edits a single item. ItemID is zero when adding.
type ItemFormModel struct {
	theme  themes.Theme
	inputs []textinput.Model
	ItemID int64
	focus  int
}

// NewItemForm creates a blank form for adding an item.
func NewItemForm(theme themes.Theme) ItemFormModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = fieldPlaceholders[i]
		in.CharLimit = 64
		in.Prompt = ""
		in.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = in
	}
	inputs[FieldExpires].CharLimit = len(model.DateLayout)

	f := ItemFormModel{theme: theme, inputs: inputs}
	f.setFocus(FieldName)
	return f
}

// EditItemForm creates a form prefilled from item.
func EditItemForm(theme themes.Theme, item model.FoodItem) ItemFormModel {
	f := NewItemForm(theme)
	f.ItemID = item.ID

	foodType := item.FoodTypeName
	if foodType == "" {
		foodType = strconv.FormatInt(item.FoodTypeID, 10)
	}

	f.inputs[FieldName].SetValue(item.Name)
	f.inputs[FieldQuantity].SetValue(cli.FormatQuantity(item.Quantity))
	f.inputs[FieldUnit].SetValue(item.Unit)
	f.inputs[FieldFoodType].SetValue(foodType)
	f.inputs[FieldExpires].SetValue(item.ExpirationDate)
	return f
}

// Editing reports whether the form edits an existing item.
func (f ItemFormModel) Editing() bool {
	return f.ItemID != 0
}

// Focused returns the index of the focused field.
func (f ItemFormModel) Focused() int {
	return f.focus
}

// Values returns the current field values.
func (f ItemFormModel) Values() FormValues {
	return FormValues{
		Name:     f.inputs[FieldName].Value(),
		Quantity: f.inputs[FieldQuantity].Value(),
		Unit:     f.inputs[FieldUnit].Value(),
		FoodType: f.inputs[FieldFoodType].Value(),
		Expires:  f.inputs[FieldExpires].Value(),
	}
}

// NextField moves focus forward, wrapping around.
func (f *ItemFormModel) NextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

// PrevField moves focus backward, wrapping around.
func (f *ItemFormModel) PrevField() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *ItemFormModel) setFocus(field int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = field
	return f.inputs[f.focus].Focus()
}

// Update forwards key input to the focused field.
func (f ItemFormModel) Update(msg tea.Msg) (ItemFormModel, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the form.
func (f ItemFormModel) View() string {
	title := "Add item"
	if f.Editing() {
		title = "Edit item #" + strconv.FormatInt(f.ItemID, 10)
	}

	lines := make([]string, 0, fieldCount+1)
	lines = append(lines, f.theme.Title.Render(title))
	for i, in := range f.inputs {
		label := f.theme.Label
		if i == f.focus {
			label = f.theme.FocusedLabel
		}
		lines = append(lines, label.Render(fieldLabels[i])+in.View())
	}

	return f.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/foodboard/internal/types"
)

// Form fields, in display order
const (
	fieldImage = iota
	fieldName
	fieldPrice
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Image URL", "Name", "Price", "Description"}

// FormState encapsulates the add/edit modal inputs
type FormState struct {
	title  string
	inputs []textinput.Model
	focus  int
	err    string
}

// NewFormState creates a form, prefilled from initial when editing
func NewFormState(title string, initial *types.FoodRecord) *FormState {
	f := &FormState{
		title:  title,
		inputs: make([]textinput.Model, fieldCount),
	}

	placeholders := [fieldCount]string{"https://example.com/cake.png", "Chocolate cake", "12.00", "Three layers of chocolate"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 512
		f.inputs[i] = in
	}
	f.inputs[fieldPrice].CharLimit = 16

	if initial != nil {
		f.inputs[fieldImage].SetValue(initial.Image)
		f.inputs[fieldName].SetValue(initial.Name)
		if initial.Price != 0 {
			f.inputs[fieldPrice].SetValue(strconv.FormatFloat(initial.Price, 'f', -1, 64))
		}
		f.inputs[fieldDescription].SetValue(initial.Description)
	}

	f.inputs[f.focus].Focus()
	return f
}

// Title returns the modal title
func (f *FormState) Title() string {
	return f.title
}

// Focused returns the focused field index
func (f *FormState) Focused() int {
	return f.focus
}

// NextField moves focus to the next input, wrapping around
func (f *FormState) NextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

// PrevField moves focus to the previous input, wrapping around
func (f *FormState) PrevField() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *FormState) setFocus(field int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = field
	return f.inputs[f.focus].Focus()
}

// Update forwards msg to the focused input
func (f *FormState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Value returns the raw text of a field
func (f *FormState) Value(field int) string {
	return f.inputs[field].Value()
}

// SetValue replaces the text of a field
func (f *FormState) SetValue(field int, value string) {
	f.inputs[field].SetValue(value)
}

// Error returns the inline error shown under the inputs
func (f *FormState) Error() string {
	return f.err
}

// SetError sets the inline error
func (f *FormState) SetError(err string) {
	f.err = err
}

// Input converts the fields into a FoodInput. Blank fields stay zero.
func (f *FormState) Input() (types.FoodInput, error) {
	input := types.FoodInput{
		Image:       strings.TrimSpace(f.Value(fieldImage)),
		Name:        strings.TrimSpace(f.Value(fieldName)),
		Description: strings.TrimSpace(f.Value(fieldDescription)),
	}

	price, err := parsePrice(f.Value(fieldPrice))
	if err != nil {
		return types.FoodInput{}, err
	}
	input.Price = price

	return input, nil
}

// parsePrice accepts "12", "12.5" and "12,50". Blank means not provided.
func parsePrice(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("price must be a number, got %q", value)
	}
	if price < 0 {
		return 0, fmt.Errorf("price must not be negative")
	}
	return price, nil
}

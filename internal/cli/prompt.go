package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/foodboard/internal/types"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	food  types.FoodRecord
	price string
}

func (i item) FilterValue() string {
	return i.food.Name + " " + i.food.ID
}

func (i item) Title() string {
	title := fmt.Sprintf("%s  %s", i.food.Name, i.price)
	if !i.food.Available {
		title += " [unavailable]"
	}
	return title
}

func (i item) Description() string { return i.food.ID }

type selectorModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Let the filter input receive q and enter while typing
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = ""
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				m.choice = i.food.ID
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: select • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// newSelector builds the food picker list
func newSelector(title string, foods []types.FoodRecord, currency string) selectorModel {
	items := make([]list.Item, 0, len(foods))
	for _, f := range foods {
		items = append(items, item{food: f, price: formatPrice(currency, f.Price)})
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	return selectorModel{list: l}
}

// promptForFood shows an interactive list and returns the chosen id
func promptForFood(title string, foods []types.FoodRecord, currency string) (string, error) {
	if len(foods) == 0 {
		return "", fmt.Errorf("no foods to choose from")
	}

	p := tea.NewProgram(newSelector(title, foods, currency))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if result.choice == "" {
		return "", fmt.Errorf("selection cancelled")
	}

	return result.choice, nil
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/foodboard/internal/keybinds"
	"github.com/studiowebux/foodboard/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	stylePrice = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	styleFoodName = lipgloss.NewStyle().
			Bold(true)
)

// View renders the current mode
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeAdd, ModeEdit:
		return m.renderFormModal()
	case ModeDeleteConfirm:
		return m.renderDeleteConfirmModal()
	case ModeDetail:
		return m.renderDetailModal()
	case ModeActivity:
		return m.renderActivityModal()
	case ModeHelp:
		return m.renderHelpModal()
	case ModeErrorDetail:
		return m.renderErrorDetailModal()
	}

	return m.renderMain()
}

// renderMain renders the header, the food cards and the status bar
func (m *Model) renderMain() string {
	listHeight := m.height - HeaderLines - StatusBarLines
	if listHeight < 1 {
		listHeight = 1
	}

	list := lipgloss.NewStyle().
		Height(listHeight).
		MaxHeight(listHeight).
		Render(m.renderFoodList(m.width))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		"",
		list,
		m.renderStatusBar(),
	)
}

// renderHeader renders the title line with the food count and the add hint
func (m *Model) renderHeader() string {
	left := styleTitle.Render("Foodboard") + "  " +
		styleSubtle.Render(fmt.Sprintf("%d foods", m.ctrl.Store().Len()))

	right := styleSubtle.Render(fmt.Sprintf("%s: new food",
		m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionNewFood)))
	if m.ctrl.Busy() {
		right = m.spinner.View() + " " + right
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}

// renderFoodList renders the visible food cards
func (m *Model) renderFoodList(width int) string {
	foods := m.ctrl.Store().All()

	if len(foods) == 0 {
		switch {
		case !m.loaded:
			return styleSubtle.Render("Loading foods...")
		case m.loadFailed:
			return styleError.Render(fmt.Sprintf("Could not load foods. Press %s to retry.",
				m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionReload)))
		default:
			return styleSubtle.Render(fmt.Sprintf("No foods yet. Press %s to add one.",
				m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionNewFood)))
		}
	}

	end := m.offset + m.visibleCards()
	if end > len(foods) {
		end = len(foods)
	}

	cards := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		cards = append(cards, m.renderFoodCard(foods[i], i == m.cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderFoodCard renders one food: name, price, availability badge,
// description and image URL. The selected card lists its actions.
func (m *Model) renderFoodCard(food types.FoodRecord, selected bool, width int) string {
	inner := width - 4 // border + padding
	if inner < 20 {
		inner = 20
	}

	right := stylePrice.Render(formatPrice(m.currency, food.Price)) + "  " + availabilityBadge(food.Available)
	name := styleFoodName.Render(truncateText(food.Name, inner-lipgloss.Width(right)-1))
	gap := inner - lipgloss.Width(name) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	titleLine := name + strings.Repeat(" ", gap) + right

	description := truncateText(food.Description, inner)

	imageLine := styleSubtle.Render(truncateText(food.Image, inner))
	if selected {
		actions := styleSubtle.Render(fmt.Sprintf("%s edit · %s delete · %s details",
			m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionEditFood),
			m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionDeleteFood),
			m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenDetail)))
		image := styleSubtle.Render(truncateText(food.Image, inner-lipgloss.Width(actions)-2))
		gap := inner - lipgloss.Width(image) - lipgloss.Width(actions)
		if gap < 1 {
			gap = 1
		}
		imageLine = image + strings.Repeat(" ", gap) + actions
	}

	borderColor := colorGray
	if selected {
		borderColor = colorGreen
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(inner + 2).
		Padding(0, 1).
		Render(titleLine + "\n" + description + "\n" + imageLine)
}

func availabilityBadge(available bool) string {
	if available {
		return styleSuccess.Render("Available")
	}
	return styleError.Render("Unavailable")
}

// formatPrice renders a price as "R$ 12.00"
func formatPrice(currency string, price float64) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%s %.2f", currency, price)
}

// renderStatusBar renders the status bar at the bottom
func (m *Model) renderStatusBar() string {
	left := styleSubtle.Render(m.baseURL)
	if m.ctrl.Busy() {
		left = m.spinner.View() + " " + left
	}

	right := ""
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	default:
		right = styleSubtle.Render(fmt.Sprintf("%s: help | %s: quit",
			m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenHelp),
			m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionQuit)))
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// visibleCards returns how many cards fit in the list area
func (m *Model) visibleCards() int {
	if m.height == 0 {
		return 10
	}
	n := (m.height - HeaderLines - StatusBarLines) / CardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// truncateText shortens s to at most width runes
func truncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/foodboard/internal/history"
	"github.com/studiowebux/foodboard/internal/types"
)

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// formatOutput renders v as json or yaml, anything else goes through text
func formatOutput(v any, format string, text func() string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil

	case "text", "":
		return text(), nil

	default:
		return "", fmt.Errorf("unsupported output format %q (use json, yaml or text)", format)
	}
}

// formatFoods renders the catalog, as a table in text mode
func formatFoods(foods []types.FoodRecord, format, currency string) (string, error) {
	if foods == nil {
		foods = []types.FoodRecord{}
	}

	return formatOutput(foods, format, func() string {
		if len(foods) == 0 {
			return "No foods"
		}

		rows := make([][]string, 0, len(foods))
		for _, f := range foods {
			rows = append(rows, []string{f.ID, f.Name, formatPrice(currency, f.Price), availability(f.Available), f.Description})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "NAME", "PRICE", "STATUS", "DESCRIPTION").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		return t.String() + fmt.Sprintf("\n%d foods", len(foods))
	})
}

// formatFood renders a single record
func formatFood(food types.FoodRecord, format, currency string) (string, error) {
	return formatOutput(food, format, func() string {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s%s%s (%s)\n", colorGreen, food.Name, colorReset, food.ID))
		sb.WriteString(fmt.Sprintf("Price: %s | %s\n", formatPrice(currency, food.Price), availability(food.Available)))
		sb.WriteString(fmt.Sprintf("Image: %s\n", food.Image))
		sb.WriteString(food.Description)
		return sb.String()
	})
}

// formatHistory renders activity entries, newest first
func formatHistory(entries []types.ActivityEntry, format string) (string, error) {
	if entries == nil {
		entries = []types.ActivityEntry{}
	}

	return formatOutput(entries, format, func() string {
		if len(entries) == 0 {
			return "No activity recorded"
		}

		var sb strings.Builder
		for _, e := range entries {
			outcome := colorGreen + "ok  " + colorReset
			if !e.Success {
				outcome = colorRed + "fail" + colorReset
			}

			subject := e.FoodName
			if e.FoodID != "" {
				subject = strings.TrimSpace(fmt.Sprintf("%s (%s)", e.FoodName, e.FoodID))
			}

			sb.WriteString(fmt.Sprintf("%s  %-6s %s  %s  %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.Op, outcome, formatDuration(e.DurationMS), subject))
			if e.Error != "" {
				sb.WriteString(fmt.Sprintf("    %s%s%s\n", colorYellow, e.Error, colorReset))
			}
		}
		return strings.TrimRight(sb.String(), "\n")
	})
}

// formatStats renders per-operation totals, as a table in text mode
func formatStats(stats []history.Stats, format string) (string, error) {
	if stats == nil {
		stats = []history.Stats{}
	}

	return formatOutput(stats, format, func() string {
		if len(stats) == 0 {
			return "No activity recorded"
		}

		rows := make([][]string, 0, len(stats))
		for _, s := range stats {
			rows = append(rows, []string{
				string(s.Op),
				fmt.Sprintf("%d", s.TotalCalls),
				fmt.Sprintf("%.0f%%", s.SuccessRate()*100),
				fmt.Sprintf("%.0fms", s.AvgDurationMs),
				fmt.Sprintf("%dms", s.MinDurationMs),
				fmt.Sprintf("%dms", s.MaxDurationMs),
				s.LastCalled.Format("2006-01-02 15:04:05"),
			})
		}

		return table.New().
			Border(lipgloss.NormalBorder()).
			Headers("OP", "CALLS", "SUCCESS", "AVG", "MIN", "MAX", "LAST").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			String()
	})
}

func availability(available bool) string {
	if available {
		return "available"
	}
	return "unavailable"
}

func formatPrice(currency string, price float64) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%s %.2f", currency, price)
}

package tui

import (
	"context"
	"encoding/json"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/foodboard/internal/dashboard"
	"github.com/studiowebux/foodboard/internal/types"
)

type foodsLoadedMsg struct {
	err error
}

type resultMsg struct {
	result dashboard.Result
}

type activityLoadedMsg struct {
	entries []types.ActivityEntry
	err     error
}

type activityClearedMsg struct {
	err error
}

type clipboardMsg struct {
	err error
}

type clearStatusMsg struct{}

type clearErrorMsg struct{}

// requestContext bounds a backend call by the configured timeout
func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m *Model) loadCmd() tea.Cmd {
	ctrl := m.ctrl
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		return foodsLoadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m *Model) submitAddCmd(input types.FoodInput) tea.Cmd {
	ctrl := m.ctrl
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		return resultMsg{result: ctrl.SubmitAdd(ctx, input)}
	}
}

func (m *Model) submitEditCmd(input types.FoodInput) tea.Cmd {
	ctrl := m.ctrl
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		return resultMsg{result: ctrl.SubmitEdit(ctx, input)}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	ctrl := m.ctrl
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		return resultMsg{result: ctrl.RequestDelete(ctx, id)}
	}
}

func (m *Model) loadActivityCmd() tea.Cmd {
	log := m.activity
	limit := m.activityLimit
	return func() tea.Msg {
		entries, err := log.Recent(limit)
		return activityLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) clearActivityCmd() tea.Cmd {
	log := m.activity
	return func() tea.Msg {
		return activityClearedMsg{err: log.Clear()}
	}
}

// copyFoodCmd copies the JSON of food to the system clipboard
func copyFoodCmd(food types.FoodRecord) tea.Cmd {
	return func() tea.Msg {
		data, err := json.MarshalIndent(food, "", "  ")
		if err != nil {
			return clipboardMsg{err: err}
		}
		return clipboardMsg{err: clipboard.WriteAll(string(data))}
	}
}

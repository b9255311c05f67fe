package tui

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/studiowebux/foodboard/internal/dashboard"
	"github.com/studiowebux/foodboard/internal/gateway"
	"github.com/studiowebux/foodboard/internal/mock"
	"github.com/studiowebux/foodboard/internal/types"
)

func cake() types.FoodRecord {
	return types.FoodRecord{ID: "1", Name: "Cake", Image: "http://img/cake.png", Price: 10, Description: "Chocolate", Available: true}
}

func soup() types.FoodRecord {
	return types.FoodRecord{ID: "2", Name: "Soup", Image: "http://img/soup.png", Price: 7.5, Description: "Tomato", Available: false}
}

// CreateTestModel creates a Model backed by an in-process mock backend.
// The model is sized but not loaded.
func CreateTestModel(t *testing.T, activity ActivityLog, foods ...types.FoodRecord) (*Model, *mock.Server) {
	t.Helper()

	backend := mock.NewServer(&mock.Config{Foods: foods}, zerolog.Nop())
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	gw, err := gateway.New(gateway.Options{BaseURL: ts.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Failed to create gateway: %v", err)
	}

	m, err := New(Options{
		Controller: dashboard.New(gw),
		Activity:   activity,
		Timeout:    5 * time.Second,
		BaseURL:    ts.URL,
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, backend
}

// CreateLoadedModel is CreateTestModel followed by the initial load
func CreateLoadedModel(t *testing.T, foods ...types.FoodRecord) (*Model, *mock.Server) {
	t.Helper()
	m, backend := CreateTestModel(t, nil, foods...)
	runCmd(t, m, m.loadCmd())
	return m, backend
}

// runCmd executes cmd synchronously and feeds the resulting messages back
// into the model. Spinner ticks are dropped.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case nil, spinner.TickMsg, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(t, m, c)
		}
	default:
		_, next := m.Update(msg)
		runCmd(t, m, next)
	}
}

// keyMsg builds the KeyMsg whose String() is key
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends a key and returns the resulting command without running it
func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// memActivity is an in-memory ActivityLog
type memActivity struct {
	entries []types.ActivityEntry
	cleared bool
}

func (a *memActivity) Recent(limit int) ([]types.ActivityEntry, error) {
	if limit > 0 && len(a.entries) > limit {
		return a.entries[:limit], nil
	}
	return a.entries, nil
}

func (a *memActivity) Clear() error {
	a.entries = nil
	a.cleared = true
	return nil
}

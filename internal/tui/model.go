package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/studiowebux/foodboard/internal/dashboard"
	"github.com/studiowebux/foodboard/internal/keybinds"
	"github.com/studiowebux/foodboard/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
	ModeDeleteConfirm
	ModeDetail
	ModeActivity
	ModeHelp
	ModeErrorDetail
)

// ActivityLog is the part of the history store the activity modal needs
type ActivityLog interface {
	Recent(limit int) ([]types.ActivityEntry, error)
	Clear() error
}

// Model represents the TUI state
type Model struct {
	// Core state
	ctrl     *dashboard.Controller
	activity ActivityLog
	keybinds *keybinds.Registry
	logger   zerolog.Logger

	// Settings
	currency       string
	timeout        time.Duration
	baseURL        string
	activityLimit  int
	messageTimeout time.Duration

	// UI state
	mode    Mode
	width   int
	height  int
	cursor  int // Selected food index
	offset  int // First visible food index
	spinner spinner.Model

	// Modal state
	form            *FormState
	deleteTarget    types.FoodRecord
	detailFood      types.FoodRecord
	activityEntries []types.ActivityEntry
	modalView       viewport.Model

	// Messages
	statusMsg     string
	fullStatusMsg string
	errorMsg      string
	fullErrorMsg  string
	loadFailed    bool // Last load failed, reload offered
	loaded        bool // At least one load completed
}

// Init loads the catalog and starts the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampSelection()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	case foodsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.loadFailed = true
			cmd = m.setErrorMessage(fmt.Sprintf("Failed to load foods: %v (press %s to retry)",
				msg.err, m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionReload)))
			break
		}
		m.loadFailed = false
		m.clearError()
		m.clampSelection()
		cmd = m.setStatusMessage(fmt.Sprintf("Loaded %d foods", m.ctrl.Store().Len()))

	case resultMsg:
		cmd = m.handleResult(msg.result)

	case activityLoadedMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage(fmt.Sprintf("Failed to load activity: %v", msg.err))
			break
		}
		m.activityEntries = msg.entries
		m.mode = ModeActivity
		m.modalView.GotoTop()

	case activityClearedMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage(fmt.Sprintf("Failed to clear activity: %v", msg.err))
			break
		}
		m.activityEntries = nil
		cmd = m.setStatusMessage("Activity log cleared")

	case clipboardMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage(fmt.Sprintf("Failed to copy to clipboard: %v", msg.err))
			break
		}
		cmd = m.setStatusMessage("JSON copied to clipboard")

	case clearStatusMsg:
		m.statusMsg = ""
		m.fullStatusMsg = ""

	case clearErrorMsg:
		m.clearError()
	}

	return m, cmd
}

// handleResult applies the outcome of a create, update or delete
func (m *Model) handleResult(result dashboard.Result) tea.Cmd {
	if errors.Is(result.Err, dashboard.ErrInFlight) {
		return m.setStatusMessage("Still saving, please wait")
	}

	if !result.OK() {
		// Only the form that submitted the request shows its error
		if m.form != nil && ((result.Op == types.OpCreate && m.mode == ModeAdd) ||
			(result.Op == types.OpUpdate && m.mode == ModeEdit)) {
			m.form.SetError(result.Err.Error())
		}
		return m.setErrorMessage(result.Err.Error())
	}

	m.clearError()

	switch result.Op {
	case types.OpCreate:
		m.ctrl.CloseAddModal()
		if m.mode == ModeAdd {
			m.mode = ModeNormal
			m.form = nil
		}
		m.selectID(result.Record.ID)
		return m.setStatusMessage(fmt.Sprintf("Created %s", result.Record.Name))

	case types.OpUpdate:
		m.ctrl.CloseEditModal()
		if m.mode == ModeEdit {
			m.mode = ModeNormal
			m.form = nil
		}
		return m.setStatusMessage(fmt.Sprintf("Updated %s", result.Record.Name))

	case types.OpDelete:
		m.clampSelection()
		return m.setStatusMessage(fmt.Sprintf("Deleted %s", displayName(result.Record)))
	}

	return nil
}

// selectedFood returns the food under the cursor
func (m *Model) selectedFood() (types.FoodRecord, bool) {
	return m.ctrl.Store().At(m.cursor)
}

// selectID moves the cursor to the food with the given id
func (m *Model) selectID(id string) {
	for i, food := range m.ctrl.Store().All() {
		if food.ID == id {
			m.cursor = i
			break
		}
	}
	m.clampSelection()
}

// clampSelection keeps the cursor inside the list and visible
func (m *Model) clampSelection() {
	count := m.ctrl.Store().Len()
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	visible := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// setStatusMessage shows msg in the status bar
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.fullStatusMsg = msg
	m.statusMsg = truncateMessage(msg)
	return m.messageTimeoutCmd(clearStatusMsg{})
}

// setErrorMessage shows msg in the status bar, the full text is kept for
// the error detail modal
func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.logger.Debug().Str("error", msg).Msg("error shown")
	m.fullErrorMsg = msg
	m.errorMsg = truncateMessage(msg)
	return m.messageTimeoutCmd(clearErrorMsg{})
}

func (m *Model) clearError() {
	m.errorMsg = ""
	m.fullErrorMsg = ""
}

func (m *Model) messageTimeoutCmd(msg tea.Msg) tea.Cmd {
	if m.messageTimeout <= 0 {
		return nil
	}
	return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
		return msg
	})
}

// truncateMessage shortens msg for the footer (max 100 runes)
func truncateMessage(msg string) string {
	return truncateText(msg, maxStatusLength)
}

func displayName(food types.FoodRecord) string {
	if food.Name != "" {
		return food.Name
	}
	return food.ID
}

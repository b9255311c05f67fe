package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/foodboard/internal/keybinds"
	"github.com/studiowebux/foodboard/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeAdd, ModeEdit:
		return m.handleFormKeys(msg)
	case ModeDeleteConfirm:
		return m.handleDeleteConfirmKeys(msg)
	case ModeDetail, ModeActivity, ModeHelp, ModeErrorDetail:
		return m.handleViewerKeys(msg)
	}
	return nil
}

// handleNormalKeys handles keyboard input on the food list
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextNormal, msg.String())
	if partial || !ok {
		return nil
	}

	count := m.ctrl.Store().Len()

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionNavigateUp:
		m.cursor--
	case keybinds.ActionNavigateDown:
		if m.cursor < count-1 {
			m.cursor++
		}
	case keybinds.ActionPageUp:
		m.cursor -= m.visibleCards()
	case keybinds.ActionPageDown:
		m.cursor += m.visibleCards()
	case keybinds.ActionGoToTop:
		m.cursor = 0
	case keybinds.ActionGoToBottom:
		m.cursor = count - 1

	case keybinds.ActionNewFood:
		return m.openAddForm()

	case keybinds.ActionEditFood:
		if food, ok := m.selectedFood(); ok {
			return m.openEditForm(food)
		}

	case keybinds.ActionDeleteFood:
		if food, ok := m.selectedFood(); ok {
			m.deleteTarget = food
			m.mode = ModeDeleteConfirm
		}

	case keybinds.ActionOpenDetail:
		if food, ok := m.selectedFood(); ok {
			m.detailFood = food
			m.mode = ModeDetail
			m.modalView.GotoTop()
		}

	case keybinds.ActionReload:
		cmd := m.setStatusMessage("Reloading...")
		return tea.Batch(cmd, m.loadCmd())

	case keybinds.ActionOpenActivity:
		if m.activity == nil {
			return m.setStatusMessage("Activity log is disabled")
		}
		return m.loadActivityCmd()

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.modalView.GotoTop()

	case keybinds.ActionOpenErrorDetail:
		if m.fullErrorMsg != "" {
			m.mode = ModeErrorDetail
			m.modalView.GotoTop()
		}
	}

	m.clampSelection()
	return nil
}

func (m *Model) openAddForm() tea.Cmd {
	if !m.ctrl.AddOpen() {
		m.ctrl.ToggleAddModal()
	}
	m.form = NewFormState("New food", nil)
	m.mode = ModeAdd
	return nil
}

func (m *Model) openEditForm(food types.FoodRecord) tea.Cmd {
	m.ctrl.RequestEdit(food)
	editing := m.ctrl.Editing()
	m.form = NewFormState("Edit "+displayName(editing), &editing)
	m.mode = ModeEdit
	return nil
}

// closeForm hides the add/edit modal without submitting
func (m *Model) closeForm() {
	if m.mode == ModeAdd && m.ctrl.AddOpen() {
		m.ctrl.ToggleAddModal()
	}
	if m.mode == ModeEdit && m.ctrl.EditOpen() {
		m.ctrl.ToggleEditModal()
	}
	m.form = nil
	m.mode = ModeNormal
}

// handleFormKeys handles keyboard input in the add and edit modals.
// Unbound keys go to the focused text input.
func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextForm, msg.String())
	if !ok {
		return m.form.Update(msg)
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionCloseModal:
		m.closeForm()

	case keybinds.ActionNextField:
		return m.form.NextField()

	case keybinds.ActionPrevField:
		return m.form.PrevField()

	case keybinds.ActionSubmit:
		input, err := m.form.Input()
		if err != nil {
			m.form.SetError(err.Error())
			return nil
		}
		m.form.SetError("")
		if m.mode == ModeAdd {
			return m.submitAddCmd(input)
		}
		return m.submitEditCmd(input)

	default:
		return m.form.Update(msg)
	}

	return nil
}

// handleDeleteConfirmKeys handles the y/n delete confirmation
func (m *Model) handleDeleteConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionConfirm:
		target := m.deleteTarget
		m.deleteTarget = types.FoodRecord{}
		m.mode = ModeNormal
		return tea.Batch(m.setStatusMessage("Deleting "+displayName(target)+"..."), m.deleteCmd(target.ID))

	case keybinds.ActionCancel:
		m.deleteTarget = types.FoodRecord{}
		m.mode = ModeNormal
	}

	return nil
}

// handleViewerKeys handles the scrollable modals
func (m *Model) handleViewerKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextViewer, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionCloseModal:
		m.mode = ModeNormal

	case keybinds.ActionNavigateUp:
		m.modalView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.modalView.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.modalView.PageUp()
	case keybinds.ActionPageDown:
		m.modalView.PageDown()
	case keybinds.ActionGoToTop:
		m.modalView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.modalView.GotoBottom()

	case keybinds.ActionCopyToClipboard:
		if m.mode == ModeDetail {
			return copyFoodCmd(m.detailFood)
		}

	case keybinds.ActionClearActivity:
		if m.mode == ModeActivity && m.activity != nil {
			return m.clearActivityCmd()
		}
	}

	return nil
}

package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/foodboard/internal/keybinds"
)

// renderModal renders a generic modal dialog with scrollable content
func (m *Model) renderModal(title, content string, width, height int) string {
	return m.renderModalWithFooter(title, content, "", width, height)
}

// renderModalWithFooter renders a modal dialog with scrollable content and a fixed footer
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	// For small terminals, use almost full screen
	maxWidth := m.width - ViewportPaddingHorizontal
	maxHeight := m.height - ModalHeightMarginSmall

	if width > maxWidth {
		width = maxWidth
	}
	if height > maxHeight {
		height = maxHeight
	}

	// Ensure minimum reasonable size (but allow small for tiny terminals)
	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	footerLines := 0
	if footer != "" {
		footerLines = ModalFooterLines
	}
	contentHeight := height - ModalOverheadLines - footerLines
	if contentHeight < 1 {
		contentHeight = height - ModalOverheadMinimal - footerLines
		if contentHeight < 1 {
			contentHeight = 1
		}
	}

	m.modalView.Width = width - ViewportPaddingHorizontal
	if m.modalView.Width < 10 {
		m.modalView.Width = 10
	}
	m.modalView.Height = contentHeight

	// Save scroll before SetContent resets it
	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(content)
	m.modalView.SetYOffset(savedOffset)

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	// Modal is full screen or nearly full screen
	if width >= m.width-2 || height >= m.height-1 {
		return modalBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalBox,
	)
}

// largeModalSize returns the size used by viewer modals
func (m *Model) largeModalSize(minWidth int) (int, int) {
	width := m.width - ModalWidthMargin
	height := m.height - ModalOverheadMinimal
	if width < minWidth {
		width = minWidth
	}
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *Model) keyHint(context keybinds.Context, action keybinds.Action, label string) string {
	return m.keybinds.GetBindingString(context, action) + ": " + label
}

// viewerFooter lists the scrolling keys plus extra hints
func (m *Model) viewerFooter(extra ...string) string {
	hints := append([]string{
		m.keyHint(keybinds.ContextViewer, keybinds.ActionNavigateDown, "scroll"),
	}, extra...)
	hints = append(hints, m.keyHint(keybinds.ContextViewer, keybinds.ActionCloseModal, "close"))
	return strings.Join(hints, " | ")
}

// renderFormModal renders the add or edit form
func (m *Model) renderFormModal() string {
	f := m.form
	var content strings.Builder

	for i, input := range f.inputs {
		label := styleSubtle.Render(fieldLabels[i])
		if i == f.focus {
			label = styleTitle.Render("> " + fieldLabels[i])
		}
		content.WriteString(label + "\n")
		content.WriteString("  " + input.View() + "\n\n")
	}

	switch {
	case m.ctrl.Busy():
		content.WriteString(m.spinner.View() + " Saving...")
	case f.Error() != "":
		content.WriteString(styleError.Render(f.Error()))
	}

	footer := strings.Join([]string{
		m.keyHint(keybinds.ContextForm, keybinds.ActionSubmit, "save"),
		m.keyHint(keybinds.ContextForm, keybinds.ActionNextField, "next field"),
		m.keyHint(keybinds.ContextForm, keybinds.ActionCloseModal, "cancel"),
	}, " | ")

	return m.renderModalWithFooter(f.Title(), content.String(), footer, FormModalWidth, FormModalHeight)
}

// renderDeleteConfirmModal asks before deleting the selected food
func (m *Model) renderDeleteConfirmModal() string {
	target := m.deleteTarget
	content := styleWarning.Render(fmt.Sprintf("Delete %s?", displayName(target))) + "\n\n" +
		styleSubtle.Render("id: "+target.ID) + "\n\n" +
		fmt.Sprintf("%s: delete | %s: cancel",
			m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm),
			m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel))

	return m.renderModal("Confirm delete", content, 50, 11)
}

// renderDetailModal shows the selected food as highlighted JSON
func (m *Model) renderDetailModal() string {
	data, err := json.MarshalIndent(m.detailFood, "", "  ")
	content := ""
	if err != nil {
		content = styleError.Render(err.Error())
	} else {
		content = highlightJSON(string(data))
	}

	width, height := m.largeModalSize(50)
	footer := m.viewerFooter(m.keyHint(keybinds.ContextViewer, keybinds.ActionCopyToClipboard, "copy"))
	return m.renderModalWithFooter(displayName(m.detailFood), content, footer, width, height)
}

// renderActivityModal lists the most recent catalog operations
func (m *Model) renderActivityModal() string {
	var content strings.Builder

	if len(m.activityEntries) == 0 {
		content.WriteString(styleSubtle.Render("No activity recorded yet"))
	}

	for _, entry := range m.activityEntries {
		outcome := styleSuccess.Render("ok  ")
		if !entry.Success {
			outcome = styleError.Render("fail")
		}

		subject := entry.FoodName
		if subject == "" {
			subject = entry.FoodID
		}
		if entry.FoodName != "" && entry.FoodID != "" {
			subject = fmt.Sprintf("%s (%s)", entry.FoodName, entry.FoodID)
		}

		content.WriteString(fmt.Sprintf("%s  %-6s %s  %-30s %dms\n",
			styleSubtle.Render(entry.Timestamp.Format("2006-01-02 15:04:05")),
			entry.Op,
			outcome,
			truncateText(subject, 30),
			entry.DurationMS,
		))
		if entry.Error != "" {
			content.WriteString("    " + styleError.Render(truncateText(entry.Error, m.modalView.Width-4)) + "\n")
		}
	}

	width, height := m.largeModalSize(60)
	footer := m.viewerFooter(m.keyHint(keybinds.ContextViewer, keybinds.ActionClearActivity, "clear"))
	return m.renderModalWithFooter("Activity", content.String(), footer, width, height)
}

// renderHelpModal lists the active key bindings per context
func (m *Model) renderHelpModal() string {
	var content strings.Builder

	sections := []struct {
		title   string
		context keybinds.Context
	}{
		{"Food list", keybinds.ContextNormal},
		{"Forms", keybinds.ContextForm},
		{"Delete confirmation", keybinds.ContextConfirm},
		{"Viewers", keybinds.ContextViewer},
		{"Everywhere", keybinds.ContextGlobal},
	}

	for i, section := range sections {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(styleTitle.Render(section.title) + "\n")
		for _, action := range m.keybinds.Actions(section.context) {
			info := keybinds.GetActionInfo(action)
			keys := strings.Join(m.keybinds.GetBinding(section.context, action), ", ")
			content.WriteString(fmt.Sprintf("  %-16s %s\n", keys, info.Description))
		}
	}

	width, height := m.largeModalSize(50)
	return m.renderModalWithFooter("Help", content.String(), m.viewerFooter(), width, height)
}

// renderErrorDetailModal shows the full text of the last error
func (m *Model) renderErrorDetailModal() string {
	width, height := m.largeModalSize(50)

	contentWidth := width - ViewportPaddingHorizontal
	content := styleError.Width(contentWidth).Render(m.fullErrorMsg)

	return m.renderModalWithFooter("Error Details", content, m.viewerFooter(), width, height)
}

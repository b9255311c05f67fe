package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6 // Standard horizontal margin (m.width - 6)
	ModalHeightMarginSmall = 2 // Small vertical margin (m.height - 2)

	// Viewport Padding and Borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Modal Content Calculations
	ModalOverheadLines   = 6 // Title (2) + padding (2) + border (2)
	ModalOverheadMinimal = 4 // Border + title for minimal modals
	ModalFooterLines     = 2 // Footer + blank line

	// Main view
	HeaderLines    = 2 // Title line + blank line
	StatusBarLines = 1
	CardHeight     = 5 // Three content lines + top and bottom border

	// Form modal size
	FormModalWidth  = 70
	FormModalHeight = 20

	maxStatusLength      = 100 // Status bar messages are truncated to this
	defaultActivityLimit = 50  // Entries shown in the activity modal
)

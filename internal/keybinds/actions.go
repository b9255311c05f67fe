package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextNormal  Context = "normal"  // Food list
	ContextForm    Context = "form"    // Add and edit modals
	ContextConfirm Context = "confirm" // Delete confirmation
	ContextViewer  Context = "viewer"  // Scrollable modals (detail, activity, help, error)
)

// AllContexts lists the contexts in display order
var AllContexts = []Context{ContextGlobal, ContextNormal, ContextForm, ContextConfirm, ContextViewer}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"   // Move up one item
	ActionNavigateDown Action = "navigate_down" // Move down one item
	ActionPageUp       Action = "page_up"       // Move up one page
	ActionPageDown     Action = "page_down"     // Move down one page
	ActionGoToTop      Action = "go_to_top"     // Go to top
	ActionGoToBottom   Action = "go_to_bottom"  // Go to bottom

	// Catalog actions (Normal mode)
	ActionNewFood         Action = "new_food"          // Open the add modal
	ActionEditFood        Action = "edit_food"         // Open the edit modal for the selection
	ActionDeleteFood      Action = "delete_food"       // Delete the selection (with confirm)
	ActionOpenDetail      Action = "open_detail"       // Show the selection as JSON
	ActionReload          Action = "reload"            // Reload the catalog
	ActionOpenActivity    Action = "open_activity"     // Open the activity log
	ActionOpenHelp        Action = "open_help"         // Open help viewer
	ActionOpenErrorDetail Action = "open_error_detail" // Show the full last error

	// Form actions
	ActionSubmit    Action = "submit"     // Submit the form
	ActionNextField Action = "next_field" // Focus the next input
	ActionPrevField Action = "prev_field" // Focus the previous input

	// Modal actions
	ActionCloseModal      Action = "close_modal"       // Close current modal
	ActionConfirm         Action = "confirm"           // Confirm action (y/Y)
	ActionCancel          Action = "cancel"            // Cancel action (n/N)
	ActionCopyToClipboard Action = "copy_to_clipboard" // Copy the shown JSON
	ActionClearActivity   Action = "clear_activity"    // Clear the activity log
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:      {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:          {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:        {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionNewFood:         {ActionNewFood, "New food", "Catalog"},
	ActionEditFood:        {ActionEditFood, "Edit food", "Catalog"},
	ActionDeleteFood:      {ActionDeleteFood, "Delete food", "Catalog"},
	ActionOpenDetail:      {ActionOpenDetail, "Show food JSON", "Catalog"},
	ActionReload:          {ActionReload, "Reload catalog", "Catalog"},
	ActionOpenActivity:    {ActionOpenActivity, "Activity log", "Information"},
	ActionOpenHelp:        {ActionOpenHelp, "Help", "Information"},
	ActionOpenErrorDetail: {ActionOpenErrorDetail, "Show full error", "Information"},
	ActionSubmit:          {ActionSubmit, "Submit", "Form"},
	ActionNextField:       {ActionNextField, "Next field", "Form"},
	ActionPrevField:       {ActionPrevField, "Previous field", "Form"},
	ActionCloseModal:      {ActionCloseModal, "Close", "Modal"},
	ActionConfirm:         {ActionConfirm, "Confirm", "Modal"},
	ActionCancel:          {ActionCancel, "Cancel", "Modal"},
	ActionCopyToClipboard: {ActionCopyToClipboard, "Copy to clipboard", "Modal"},
	ActionClearActivity:   {ActionClearActivity, "Clear activity log", "Modal"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the dashboard handles
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuit || action == ActionQuitForce
}

package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerFormBindings(r)
	registerConfirmBindings(r)
	registerViewerBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNormalModeBindings sets up the food list bindings
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)

	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextNormal, "pgup", ActionPageUp)
	r.Register(ContextNormal, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextNormal, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextNormal, []string{"G", "end"}, ActionGoToBottom)

	r.RegisterMultiple(ContextNormal, []string{"n", "a"}, ActionNewFood)
	r.RegisterMultiple(ContextNormal, []string{"e", "enter"}, ActionEditFood)
	r.RegisterMultiple(ContextNormal, []string{"d", "delete"}, ActionDeleteFood)
	r.Register(ContextNormal, "i", ActionOpenDetail)
	r.Register(ContextNormal, "r", ActionReload)
	r.Register(ContextNormal, "H", ActionOpenActivity)
	r.Register(ContextNormal, "?", ActionOpenHelp)
	r.Register(ContextNormal, "E", ActionOpenErrorDetail)
}

// registerFormBindings sets up the add/edit modal bindings.
// Printable keys are left to the text inputs.
func registerFormBindings(r *Registry) {
	r.RegisterMultiple(ContextForm, []string{"enter", "ctrl+s"}, ActionSubmit)
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextForm, "esc", ActionCloseModal)
}

// registerConfirmBindings sets up the delete confirmation bindings
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}

// registerViewerBindings sets up bindings for scrollable modals
func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"esc", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextViewer, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextViewer, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextViewer, "y", ActionCopyToClipboard)
	r.Register(ContextViewer, "C", ActionClearActivity)
}

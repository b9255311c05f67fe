package tui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/studiowebux/foodboard/internal/types"
)

func TestNew_RequiresController(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected error without controller")
	}
}

func TestNew_InitializesDefaults(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "currency", m.currency, "$")
	AssertModelField(t, "activityLimit", m.activityLimit, defaultActivityLimit)
	AssertModelField(t, "loaded", m.loaded, false)

	if m.keybinds == nil {
		t.Error("keybinds should default to the built-in registry")
	}
}

func TestLoad_PopulatesList(t *testing.T) {
	m, _ := CreateLoadedModel(t, cake(), soup())

	AssertModelField(t, "store.Len()", m.ctrl.Store().Len(), 2)
	AssertModelField(t, "statusMsg", m.statusMsg, "Loaded 2 foods")
	AssertModelField(t, "loadFailed", m.loadFailed, false)

	view := m.View()
	for _, want := range []string{"Cake", "Soup", "$ 10.00", "$ 7.50", "Available", "Unavailable"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestLoad_EmptyCatalog(t *testing.T) {
	m, _ := CreateLoadedModel(t)

	if !strings.Contains(m.View(), "No foods yet") {
		t.Error("empty catalog should show the add hint")
	}
}

func TestLoad_FailureOffersRetry(t *testing.T) {
	m, backend := CreateTestModel(t, nil, cake())
	backend.FailNext(http.MethodGet, http.StatusInternalServerError)

	runCmd(t, m, m.loadCmd())

	AssertModelField(t, "loadFailed", m.loadFailed, true)
	if !strings.Contains(m.fullErrorMsg, "press r to retry") {
		t.Errorf("fullErrorMsg = %q, want retry hint", m.fullErrorMsg)
	}
	if !strings.Contains(m.View(), "Could not load foods") {
		t.Error("failed load should be rendered")
	}

	runCmd(t, m, press(m, "r"))

	AssertModelField(t, "loadFailed after retry", m.loadFailed, false)
	AssertModelField(t, "store.Len()", m.ctrl.Store().Len(), 1)
	AssertModelField(t, "errorMsg", m.errorMsg, "")
}

func TestNavigation(t *testing.T) {
	third := types.FoodRecord{ID: "3", Name: "Tea", Image: "http://img/tea.png", Price: 3, Description: "Green"}
	m, _ := CreateLoadedModel(t, cake(), soup(), third)

	press(m, "j")
	AssertModelField(t, "cursor after j", m.cursor, 1)

	press(m, "G")
	AssertModelField(t, "cursor after G", m.cursor, 2)

	press(m, "down")
	AssertModelField(t, "cursor stays at bottom", m.cursor, 2)

	press(m, "g")
	press(m, "g")
	AssertModelField(t, "cursor after gg", m.cursor, 0)

	press(m, "k")
	AssertModelField(t, "cursor stays at top", m.cursor, 0)
}

func TestAddFlow(t *testing.T) {
	m, backend := CreateLoadedModel(t, cake())

	press(m, "n")
	AssertModelField(t, "mode", m.mode, ModeAdd)
	AssertModelField(t, "AddOpen()", m.ctrl.AddOpen(), true)

	m.form.SetValue(fieldImage, "http://img/pizza.png")
	m.form.SetValue(fieldName, "Pizza")
	m.form.SetValue(fieldPrice, "25,50")
	m.form.SetValue(fieldDescription, "Margherita")

	runCmd(t, m, press(m, "enter"))

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "AddOpen()", m.ctrl.AddOpen(), false)
	AssertModelField(t, "store.Len()", m.ctrl.Store().Len(), 2)
	AssertModelField(t, "statusMsg", m.statusMsg, "Created Pizza")
	AssertModelField(t, "cursor", m.cursor, 1)

	created, ok := m.selectedFood()
	if !ok || created.Price != 25.5 || !created.Available {
		t.Errorf("selected = %+v", created)
	}
	AssertModelField(t, "backend foods", len(backend.Foods()), 2)
}

func TestAddFlow_InvalidInputKeepsModal(t *testing.T) {
	m, backend := CreateLoadedModel(t, cake())

	press(m, "n")
	m.form.SetValue(fieldName, "Pizza")
	runCmd(t, m, press(m, "enter"))

	AssertModelField(t, "mode", m.mode, ModeAdd)
	AssertModelField(t, "AddOpen()", m.ctrl.AddOpen(), true)
	if m.form.Error() == "" {
		t.Error("form should show the validation error")
	}
	AssertModelField(t, "POST count", backend.CountRequests(http.MethodPost, "/foods"), 0)
}

func TestAddFlow_BadPrice(t *testing.T) {
	m, backend := CreateLoadedModel(t)

	press(m, "n")
	m.form.SetValue(fieldPrice, "cheap")
	cmd := press(m, "enter")

	if cmd != nil {
		t.Error("no request should be sent for an unparsable price")
	}
	if !strings.Contains(m.form.Error(), "price must be a number") {
		t.Errorf("form error = %q", m.form.Error())
	}
	AssertModelField(t, "POST count", backend.CountRequests(http.MethodPost, "/foods"), 0)
}

func TestAddFlow_BackendFailureKeepsModal(t *testing.T) {
	m, backend := CreateLoadedModel(t)
	backend.FailNext(http.MethodPost, http.StatusInternalServerError)

	press(m, "a")
	m.form.SetValue(fieldImage, "http://img/pizza.png")
	m.form.SetValue(fieldName, "Pizza")
	m.form.SetValue(fieldPrice, "25")
	m.form.SetValue(fieldDescription, "Margherita")
	runCmd(t, m, press(m, "enter"))

	AssertModelField(t, "mode", m.mode, ModeAdd)
	AssertModelField(t, "store.Len()", m.ctrl.Store().Len(), 0)
	if m.errorMsg == "" {
		t.Error("error should be shown in the status bar")
	}
}

func TestAddFailure_NotShownInLaterEditForm(t *testing.T) {
	m, backend := CreateLoadedModel(t, cake())
	backend.FailNext(http.MethodPost, http.StatusInternalServerError)

	press(m, "n")
	m.form.SetValue(fieldImage, "http://img/pizza.png")
	m.form.SetValue(fieldName, "Pizza")
	m.form.SetValue(fieldPrice, "25")
	m.form.SetValue(fieldDescription, "Margherita")
	submit := press(m, "enter")

	// The user leaves the add form and starts editing before the add answers
	press(m, "esc")
	press(m, "e")
	AssertModelField(t, "mode", m.mode, ModeEdit)

	runCmd(t, m, submit)

	AssertModelField(t, "mode", m.mode, ModeEdit)
	AssertModelField(t, "edit form error", m.form.Error(), "")
	if m.errorMsg == "" {
		t.Error("add failure should be shown in the status bar")
	}
}

func TestEscClosesForm(t *testing.T) {
	m, _ := CreateLoadedModel(t, cake())

	press(m, "n")
	press(m, "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "AddOpen()", m.ctrl.AddOpen(), false)
	if m.form != nil {
		t.Error("form should be discarded")
	}
}

func TestEditFlow(t *testing.T) {
	m, backend := CreateLoadedModel(t, cake(), soup())

	press(m, "e")
	AssertModelField(t, "mode", m.mode, ModeEdit)
	AssertModelField(t, "EditOpen()", m.ctrl.EditOpen(), true)
	AssertModelField(t, "prefilled name", m.form.Value(fieldName), "Cake")
	AssertModelField(t, "prefilled price", m.form.Value(fieldPrice), "10")

	m.form.SetValue(fieldPrice, "12")
	runCmd(t, m, press(m, "enter"))

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "statusMsg", m.statusMsg, "Updated Cake")
	AssertModelField(t, "store.Len()", m.ctrl.Store().Len(), 2)

	updated, _ := m.ctrl.Store().Get("1")
	AssertModelField(t, "price", updated.Price, 12.0)
	AssertModelField(t, "available", updated.Available, true)
	AssertModelField(t, "PUT count", backend.CountRequests(http.MethodPut, "/foods/1"), 1)
}

func TestDeleteConfirm(t *testing.T) {
	m, backend := CreateLoadedModel(t, cake(), soup())

	press(m, "d")
	AssertModelField(t, "mode", m.mode, ModeDeleteConfirm)
	if !strings.Contains(m.View(), "Cake") {
		t.Error("confirmation should name the food")
	}

	press(m, "n")
	AssertModelField(t, "mode after cancel", m.mode, ModeNormal)
	AssertModelField(t, "store.Len() after cancel", m.ctrl.Store().Len(), 2)

	press(m, "d")
	runCmd(t, m, press(m, "y"))

	AssertModelField(t, "store.Len()", m.ctrl.Store().Len(), 1)
	AssertModelField(t, "statusMsg", m.statusMsg, "Deleted Cake")
	AssertModelField(t, "DELETE count", backend.CountRequests(http.MethodDelete, "/foods/1"), 1)
}

func TestDetailModal(t *testing.T) {
	m, _ := CreateLoadedModel(t, cake())

	press(m, "i")
	AssertModelField(t, "mode", m.mode, ModeDetail)
	AssertModelField(t, "detailFood.ID", m.detailFood.ID, "1")

	press(m, "esc")
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestErrorMessageTruncated(t *testing.T) {
	m, _ := CreateLoadedModel(t, cake())

	long := strings.Repeat("x", 150)
	m.setErrorMessage(long)

	AssertModelField(t, "len(errorMsg)", len(m.errorMsg), maxStatusLength)
	AssertModelField(t, "fullErrorMsg", m.fullErrorMsg, long)

	press(m, "E")
	AssertModelField(t, "mode", m.mode, ModeErrorDetail)
}

func TestMessageTimeout(t *testing.T) {
	m, _ := CreateLoadedModel(t)

	if cmd := m.setStatusMessage("hello"); cmd != nil {
		t.Error("messages should persist when no timeout is set")
	}

	m.messageTimeout = time.Millisecond
	if cmd := m.setStatusMessage("hello"); cmd == nil {
		t.Error("expected a clear command")
	}

	m.Update(clearStatusMsg{})
	AssertModelField(t, "statusMsg", m.statusMsg, "")
}

func TestActivity_Disabled(t *testing.T) {
	m, _ := CreateLoadedModel(t)

	cmd := press(m, "H")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "statusMsg", m.statusMsg, "Activity log is disabled")
	if cmd != nil {
		t.Error("no command expected")
	}
}

func TestActivity_ShowAndClear(t *testing.T) {
	log := &memActivity{entries: []types.ActivityEntry{
		{Timestamp: time.Now(), Op: types.OpCreate, FoodID: "1", FoodName: "Cake", Success: true, DurationMS: 12},
		{Timestamp: time.Now(), Op: types.OpDelete, FoodID: "2", Success: false, Error: "not found"},
	}}
	m, _ := CreateTestModel(t, log, cake())

	runCmd(t, m, press(m, "H"))
	AssertModelField(t, "mode", m.mode, ModeActivity)
	AssertModelField(t, "entries", len(m.activityEntries), 2)
	if !strings.Contains(m.View(), "Cake (1)") {
		t.Error("activity modal should list the entries")
	}

	runCmd(t, m, press(m, "C"))
	AssertModelField(t, "cleared", log.cleared, true)
	AssertModelField(t, "entries", len(m.activityEntries), 0)
	AssertModelField(t, "statusMsg", m.statusMsg, "Activity log cleared")
}

func TestHelpModal_ShowsBindings(t *testing.T) {
	m, _ := CreateLoadedModel(t)

	press(m, "?")
	AssertModelField(t, "mode", m.mode, ModeHelp)
	if !strings.Contains(m.View(), "Food list") {
		t.Error("help should list the food list bindings")
	}
}

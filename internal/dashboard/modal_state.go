package dashboard

import "github.com/studiowebux/foodboard/internal/types"

// ToggleAddModal flips the add modal visibility
func (c *Controller) ToggleAddModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addOpen = !c.addOpen
}

// ToggleEditModal flips the edit modal visibility
func (c *Controller) ToggleEditModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editOpen = !c.editOpen
}

// CloseAddModal hides the add modal
func (c *Controller) CloseAddModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addOpen = false
}

// CloseEditModal hides the edit modal. The editing target is kept.
func (c *Controller) CloseEditModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editOpen = false
}

// RequestEdit selects record as the editing target and opens the edit modal
func (c *Controller) RequestEdit(record types.FoodRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = record
	c.editOpen = true
}

// AddOpen reports whether the add modal is visible
func (c *Controller) AddOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.addOpen
}

// EditOpen reports whether the edit modal is visible
func (c *Controller) EditOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editOpen
}

// Editing returns a copy of the editing target
func (c *Controller) Editing() types.FoodRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editing
}

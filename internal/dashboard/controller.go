package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiowebux/foodboard/internal/catalog"
	"github.com/studiowebux/foodboard/internal/gateway"
	"github.com/studiowebux/foodboard/internal/types"
)

var (
	// ErrInFlight is returned when the same submit is already pending
	ErrInFlight = errors.New("operation already in progress")

	// ErrNoEditTarget is returned by SubmitEdit when no food was selected
	ErrNoEditTarget = errors.New("no food selected for editing")
)

// Recorder receives every completed catalog operation
type Recorder interface {
	Record(entry types.ActivityEntry)
}

// Option configures a Controller
type Option func(*Controller)

// WithStore uses an existing store instead of a fresh one
func WithStore(store *catalog.Store) Option {
	return func(c *Controller) {
		if store != nil {
			c.store = store
		}
	}
}

// WithRecorder reports completed operations to r
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// WithLogger sets the controller logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Result is the outcome of a create, update or delete
type Result struct {
	Op     types.Operation
	Record types.FoodRecord
	Err    error
}

// OK reports whether the operation succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// Controller ties the catalog store to the remote gateway and owns the
// modal state of the dashboard. It is safe for concurrent use.
type Controller struct {
	gw       gateway.Gateway
	store    *catalog.Store
	recorder Recorder
	logger   zerolog.Logger

	mu       sync.RWMutex
	addOpen  bool
	editOpen bool
	editing  types.FoodRecord
	pending  map[string]struct{}
	loading  int
}

// New creates a controller around gw
func New(gw gateway.Gateway, opts ...Option) *Controller {
	c := &Controller{
		gw:      gw,
		store:   catalog.NewStore(),
		logger:  zerolog.Nop(),
		pending: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "dashboard").Logger()
	return c
}

// Store returns the catalog the controller writes to
func (c *Controller) Store() *catalog.Store {
	return c.store
}

// Load fetches the catalog and replaces the store contents. On failure the
// store is left untouched.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading--
		c.mu.Unlock()
	}()

	start := time.Now()
	foods, err := c.gw.List(ctx)
	c.record(types.OpLoad, types.FoodRecord{}, start, err)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load foods")
		return fmt.Errorf("failed to load foods: %w", err)
	}

	c.store.ReplaceAll(foods)
	c.logger.Debug().Int("count", c.store.Len()).Msg("foods loaded")
	return nil
}

// SubmitAdd creates a food from input. The add modal stays open; closing it
// is up to the caller.
func (c *Controller) SubmitAdd(ctx context.Context, input types.FoodInput) Result {
	result := Result{Op: types.OpCreate}

	if err := input.Validate(); err != nil {
		result.Err = err
		return result
	}

	if !c.acquire("add") {
		result.Err = ErrInFlight
		return result
	}
	defer c.release("add")

	start := time.Now()
	created, err := c.gw.Create(ctx, input)
	if err != nil {
		c.record(types.OpCreate, types.FoodRecord{Name: input.Name}, start, err)
		c.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create food")
		result.Err = fmt.Errorf("failed to create food: %w", err)
		return result
	}
	c.record(types.OpCreate, created, start, nil)

	if !c.store.Append(created) {
		c.logger.Warn().Str("id", created.ID).Msg("created food id already present, replaced in place")
	}
	result.Record = created
	return result
}

// SubmitEdit merges input into the editing target and sends the result to
// the backend once it passes validation. The store entry and the editing target are replaced by the
// record the backend returns.
func (c *Controller) SubmitEdit(ctx context.Context, input types.FoodInput) Result {
	result := Result{Op: types.OpUpdate}

	target := c.Editing()
	if target.ID == "" {
		result.Err = ErrNoEditTarget
		return result
	}

	if !c.acquire("edit") {
		result.Err = ErrInFlight
		return result
	}
	defer c.release("edit")

	merged := Merge(target, input)
	if err := merged.Validate(); err != nil {
		result.Err = fmt.Errorf("failed to update food %s: %w", target.ID, err)
		return result
	}

	start := time.Now()
	updated, err := c.gw.Update(ctx, target.ID, merged)
	if err != nil {
		c.record(types.OpUpdate, merged, start, err)
		c.logger.Error().Err(err).Str("id", target.ID).Msg("failed to update food")
		result.Err = fmt.Errorf("failed to update food %s: %w", target.ID, err)
		return result
	}
	c.record(types.OpUpdate, updated, start, nil)

	if !c.store.ReplaceByID(updated) {
		c.logger.Warn().Str("id", updated.ID).Msg("updated food not in store")
	}

	c.mu.Lock()
	if c.editing.ID == target.ID {
		c.editing = updated
	}
	c.mu.Unlock()

	result.Record = updated
	return result
}

// RequestDelete removes the food with the given id from the backend and
// then from the store
func (c *Controller) RequestDelete(ctx context.Context, id string) Result {
	result := Result{Op: types.OpDelete}
	result.Record, _ = c.store.Get(id)
	if result.Record.ID == "" {
		result.Record.ID = id
	}

	key := "delete:" + id
	if !c.acquire(key) {
		result.Err = ErrInFlight
		return result
	}
	defer c.release(key)

	start := time.Now()
	err := c.gw.Delete(ctx, id)
	c.record(types.OpDelete, result.Record, start, err)
	if err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("failed to delete food")
		result.Err = fmt.Errorf("failed to delete food %s: %w", id, err)
		return result
	}

	c.store.RemoveByID(id)
	return result
}

// Busy reports whether any operation is pending
func (c *Controller) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading > 0 || len(c.pending) > 0
}

func (c *Controller) acquire(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[key]; ok {
		return false
	}
	c.pending[key] = struct{}{}
	return true
}

func (c *Controller) release(key string) {
	c.mu.Lock()
	delete(c.pending, key)
	c.mu.Unlock()
}

func (c *Controller) record(op types.Operation, food types.FoodRecord, start time.Time, err error) {
	if c.recorder == nil {
		return
	}
	entry := types.ActivityEntry{
		Timestamp:  start,
		Op:         op,
		FoodID:     food.ID,
		FoodName:   food.Name,
		Success:    err == nil,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	c.recorder.Record(entry)
}

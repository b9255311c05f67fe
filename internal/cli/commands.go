package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/studiowebux/foodboard/internal/gateway"
	"github.com/studiowebux/foodboard/internal/types"
)

// requestContext bounds one command by the configured timeout
func (a *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.Config.RequestTimeout())
}

// List prints the catalog
func (a *App) List(ctx context.Context, w io.Writer, format string) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.Controller.Load(ctx); err != nil {
		return err
	}

	out, err := formatFoods(a.Controller.Store().All(), format, a.Config.Currency)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// Add creates a food and prints the stored record
func (a *App) Add(ctx context.Context, w io.Writer, input types.FoodInput, format string) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	result := a.Controller.SubmitAdd(ctx, input)
	if !result.OK() {
		return result.Err
	}

	return a.printFood(w, result.Record, format)
}

// Update merges input into the current record and stores it. Only the
// provided fields change.
func (a *App) Update(ctx context.Context, w io.Writer, id string, input types.FoodInput, format string) error {
	if input.IsEmpty() {
		return fmt.Errorf("nothing to update: set at least one of --name, --image, --price, --description")
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	target, err := a.find(ctx, id)
	if err != nil {
		return err
	}

	a.Controller.RequestEdit(target)
	result := a.Controller.SubmitEdit(ctx, input)
	a.Controller.CloseEditModal()
	if !result.OK() {
		return result.Err
	}

	return a.printFood(w, result.Record, format)
}

// DeleteOptions controls the delete confirmation
type DeleteOptions struct {
	Yes   bool      // skip the confirmation
	Stdin io.Reader // answers the confirmation, nil means non-interactive
}

// Delete removes a food. Without Yes the user must confirm on Stdin.
func (a *App) Delete(ctx context.Context, w io.Writer, id string, opts DeleteOptions) error {
	findCtx, cancelFind := a.requestContext(ctx)
	target, err := a.find(findCtx, id)
	cancelFind()
	if err != nil {
		return err
	}

	// The prompt waits on the user without a deadline
	if !opts.Yes {
		if opts.Stdin == nil {
			return fmt.Errorf("refusing to delete %q without confirmation (use --yes)", target.Name)
		}
		ok, err := confirm(w, opts.Stdin, fmt.Sprintf("Delete %s (%s)? [y/N]: ", target.Name, target.ID))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("delete cancelled by user")
		}
	}

	deleteCtx, cancel := a.requestContext(ctx)
	defer cancel()
	result := a.Controller.RequestDelete(deleteCtx, target.ID)
	if !result.OK() {
		return result.Err
	}

	fmt.Fprintf(w, "%sDeleted %s (%s)%s\n", colorGreen, target.Name, target.ID, colorReset)
	return nil
}

// History prints the most recent activity for the configured backend
func (a *App) History(w io.Writer, limit int, format string) error {
	if a.Activity == nil {
		return fmt.Errorf("activity history is disabled")
	}

	entries, err := a.Activity.Recent(limit)
	if err != nil {
		return err
	}

	out, err := formatHistory(entries, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// HistoryStats prints per-operation totals for the configured backend
func (a *App) HistoryStats(w io.Writer, format string) error {
	if a.Activity == nil {
		return fmt.Errorf("activity history is disabled")
	}

	stats, err := a.Activity.StatsPerOp()
	if err != nil {
		return err
	}

	out, err := formatStats(stats, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// ClearHistory removes the activity of the configured backend
func (a *App) ClearHistory(w io.Writer) error {
	if a.Activity == nil {
		return fmt.Errorf("activity history is disabled")
	}
	if err := a.Activity.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Activity history cleared")
	return nil
}

// PickFood loads the catalog and lets the user choose a food. It needs a
// terminal.
func (a *App) PickFood(ctx context.Context, title string) (string, error) {
	if !IsInteractive() {
		return "", fmt.Errorf("an id is required when stdin is not a terminal")
	}

	loadCtx, cancel := a.requestContext(ctx)
	err := a.Controller.Load(loadCtx)
	cancel()
	if err != nil {
		return "", err
	}

	return promptForFood(title, a.Controller.Store().All(), a.Config.Currency)
}

// find loads the catalog and returns the record with id
func (a *App) find(ctx context.Context, id string) (types.FoodRecord, error) {
	if err := a.Controller.Load(ctx); err != nil {
		return types.FoodRecord{}, err
	}

	record, ok := a.Controller.Store().Get(id)
	if !ok {
		return types.FoodRecord{}, fmt.Errorf("%w: %s", gateway.ErrNotFound, id)
	}
	return record, nil
}

func (a *App) printFood(w io.Writer, food types.FoodRecord, format string) error {
	out, err := formatFood(food, format, a.Config.Currency)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// confirm asks a yes/no question, anything but y/yes is a no
func confirm(w io.Writer, in io.Reader, question string) (bool, error) {
	fmt.Fprint(w, question)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// formatDuration renders an activity duration
func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

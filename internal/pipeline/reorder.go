package pipeline

import (
	"context"
	"fmt"
)

// Committer persists a full page order as the backend's new canonical
// order.
type Committer func(ctx context.Context, order []string) error

// Reorder holds an edition's page order during an interactive reorder
// session. Positions are 1-based and contiguous at every observable point;
// no id appears twice.
//
// Commit makes the in-memory order authoritative: on success the order
// becomes the new baseline, on failure the moved order is kept (not rolled
// back) so the user can retry or cancel. Cancel restores the baseline
// without a backend call.
type Reorder struct {
	baseline []string
	order    []string
	commit   Committer
}

func NewReorder(ids []string, commit Committer) *Reorder {
	r := &Reorder{commit: commit}
	r.baseline = append([]string(nil), ids...)
	r.order = append([]string(nil), ids...)
	return r
}

// Order is the current order, first position first.
func (r *Reorder) Order() []string {
	return append([]string(nil), r.order...)
}

// Position returns the 1-based position of id, or 0 if unknown.
func (r *Reorder) Position(id string) int {
	for i, x := range r.order {
		if x == id {
			return i + 1
		}
	}
	return 0
}

func (r *Reorder) Len() int { return len(r.order) }

// Dirty reports whether the order differs from the baseline.
func (r *Reorder) Dirty() bool {
	if len(r.order) != len(r.baseline) {
		return true
	}
	for i := range r.order {
		if r.order[i] != r.baseline[i] {
			return true
		}
	}
	return false
}

// Move removes id from its current position and reinserts it at toPos
// (1-based), renumbering the rest contiguously. toPos is clamped into
// [1, N]. Unknown ids are an error.
func (r *Reorder) Move(id string, toPos int) error {
	from := r.Position(id)
	if from == 0 {
		return fmt.Errorf("page not in order: %s", id)
	}
	if toPos < 1 {
		toPos = 1
	}
	if toPos > len(r.order) {
		toPos = len(r.order)
	}
	if toPos == from {
		return nil
	}

	rest := append([]string(nil), r.order[:from-1]...)
	rest = append(rest, r.order[from:]...)

	out := make([]string, 0, len(r.order))
	out = append(out, rest[:toPos-1]...)
	out = append(out, id)
	out = append(out, rest[toPos-1:]...)
	r.order = out
	return nil
}

// MoveUp and MoveDown shift id by one position; at the ends they are
// no-ops.
func (r *Reorder) MoveUp(id string) error   { return r.moveBy(id, -1) }
func (r *Reorder) MoveDown(id string) error { return r.moveBy(id, +1) }

func (r *Reorder) moveBy(id string, delta int) error {
	pos := r.Position(id)
	if pos == 0 {
		return fmt.Errorf("page not in order: %s", id)
	}
	return r.Move(id, pos+delta)
}

// Commit sends the full order to the backend. On success the committed
// order becomes the new baseline; a later Cancel then has nothing to
// revert.
func (r *Reorder) Commit(ctx context.Context) error {
	if r.commit == nil {
		return fmt.Errorf("no committer configured")
	}
	if err := r.commit(ctx, r.Order()); err != nil {
		return err
	}
	r.baseline = append([]string(nil), r.order...)
	return nil
}

// Cancel discards in-flight edits, restoring the last committed baseline.
func (r *Reorder) Cancel() {
	r.order = append([]string(nil), r.baseline...)
}

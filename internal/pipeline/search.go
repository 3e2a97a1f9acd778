// Package pipeline holds the in-memory list machinery shared by the
// dashboard screens: substring search with a quiet-period stage, page
// windowing, the filter-then-page list composition, the page-reorder
// workflow, and the public viewer's page cursor.
//
// Everything here is pure slice transformation; network and rendering live
// elsewhere. Lists are loaded wholesale from the backend and re-fetched
// after mutations, so the pipeline never mutates records, only selects,
// orders, and slices them.
package pipeline

import (
	"strings"
	"sync"
	"time"

	"github.com/romdo/go-debounce"
)

// Field extracts one searchable string from a record. Selectors for
// non-string values should return "" (a non-match), never a coercion.
type Field[T any] func(T) string

// Filter returns the subsequence of items for which at least one field's
// lowercase value contains the lowercase query as a substring.
//
// An empty or whitespace-only query returns items unchanged. An empty field
// set matches nothing for a non-empty query; that mirrors the dashboard's
// configuration-driven behavior and is intentional.
func Filter[T any](items []T, fields []Field[T], query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(it)), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// DefaultQuiet is the quiet period between the last query edit and the
// filter re-running.
const DefaultQuiet = 300 * time.Millisecond

// Query is the timer-based coalescing stage ahead of Filter. The visible
// value updates immediately (for input echo); apply fires with the latest
// value once edits pause for the quiet period.
type Query struct {
	mu      sync.Mutex
	value   string
	applied string
	dirty   bool
	apply   func(string)

	fire   func()
	cancel func()
}

// NewQuery builds a coalescing query stage. apply is called from a timer
// goroutine; callers that need single-threaded delivery should forward into
// their own event loop.
func NewQuery(quiet time.Duration, apply func(query string)) *Query {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	q := &Query{apply: apply}
	q.fire, q.cancel = debounce.New(quiet, q.applyPending)
	return q
}

func (q *Query) applyPending() {
	q.mu.Lock()
	if !q.dirty {
		q.mu.Unlock()
		return
	}
	v := q.value
	q.applied = v
	q.dirty = false
	fn := q.apply
	q.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

// Set records a new query value and restarts the quiet period.
func (q *Query) Set(value string) {
	q.mu.Lock()
	q.value = value
	q.dirty = true
	q.mu.Unlock()
	q.fire()
}

// Value is the immediately-updated value, for echoing in the input.
func (q *Query) Value() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value
}

// Applied is the value the filter last ran with.
func (q *Query) Applied() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.applied
}

// Flush applies the current value without waiting out the quiet period. A
// still-pending timer becomes a no-op (nothing left to apply).
func (q *Query) Flush() {
	q.applyPending()
}

// Close drops any pending apply. Used on teardown so a late timer cannot
// mutate state after the owner is gone.
func (q *Query) Close() {
	q.cancel()
}

package pipeline

import (
	"sync"
	"time"
)

// Row is one visible record plus its derived mutability flag.
type Row[T any] struct {
	Item      T
	CanMutate bool
}

// List composes Filter then Paginator over one entity's full in-memory
// list: the filter narrows before paging indexes. It owns the query and the
// page window; it does not own the record list, which the screen loader
// replaces wholesale after each backend mutation.
type List[T any] struct {
	mu sync.Mutex

	items    []T
	filtered []T
	fields   []Field[T]
	pager    *Paginator
	query    *Query

	canMutate func(T) bool
	onApply   func()
}

// NewList builds a list controller. canMutate may be nil (all rows
// immutable). onApply is called after a debounced query lands; the TUI uses
// it to forward a message into its event loop.
func NewList[T any](fields []Field[T], perPage int, quiet time.Duration, canMutate func(T) bool, onApply func()) *List[T] {
	l := &List[T]{
		fields:    fields,
		pager:     NewPaginator(perPage),
		canMutate: canMutate,
		onApply:   onApply,
	}
	l.query = NewQuery(quiet, func(string) {
		l.refilter()
		if l.onApply != nil {
			l.onApply()
		}
	})
	return l
}

// SetItems replaces the underlying records (fresh load from the backend)
// and re-runs the applied filter. The page clamps if it overflowed but is
// otherwise kept.
func (l *List[T]) SetItems(items []T) {
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	l.refilter()
}

func (l *List[T]) refilter() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filtered = Filter(l.items, l.fields, l.query.Applied())
	l.pager.SetLength(len(l.filtered))
}

// SetQuery updates the echoed query and restarts the quiet period.
func (l *List[T]) SetQuery(q string) { l.query.Set(q) }

// FlushQuery applies the pending query immediately.
func (l *List[T]) FlushQuery() { l.query.Flush() }

// Query is the echoed (not necessarily applied) query value.
func (l *List[T]) Query() string { return l.query.Value() }

// AppliedQuery is the value the visible rows were filtered with.
func (l *List[T]) AppliedQuery() string { return l.query.Applied() }

// Rows returns the visible page with the per-row mutability overlay.
func (l *List[T]) Rows() []Row[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	page := PageOf(l.pager, l.filtered)
	out := make([]Row[T], 0, len(page))
	for _, it := range page {
		r := Row[T]{Item: it}
		if l.canMutate != nil {
			r.CanMutate = l.canMutate(it)
		}
		out = append(out, r)
	}
	return out
}

func (l *List[T]) FilteredCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.filtered)
}

func (l *List[T]) TotalCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List[T]) Page() int { l.mu.Lock(); defer l.mu.Unlock(); return l.pager.Page() }

func (l *List[T]) TotalPages() int { l.mu.Lock(); defer l.mu.Unlock(); return l.pager.TotalPages() }

func (l *List[T]) SetPage(n int) { l.mu.Lock(); defer l.mu.Unlock(); l.pager.SetPage(n) }

func (l *List[T]) NextPage() { l.mu.Lock(); defer l.mu.Unlock(); l.pager.Next() }

func (l *List[T]) PrevPage() { l.mu.Lock(); defer l.mu.Unlock(); l.pager.Prev() }

func (l *List[T]) Summary() string { l.mu.Lock(); defer l.mu.Unlock(); return l.pager.Summary() }

func (l *List[T]) PageNumbers() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pager.PageNumbers()
}

// Close drops any pending debounced apply.
func (l *List[T]) Close() { l.query.Close() }

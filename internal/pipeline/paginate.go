package pipeline

import "fmt"

// Gap marks an elided run in PageNumbers output.
const Gap = -1

// Paginator slices a list into fixed-size pages. It tracks only the page
// number and item count; the slice itself is windowed by the caller via
// Bounds, so the paginator stays a pure function of (length, perPage,
// previous page).
type Paginator struct {
	perPage int
	page    int // 1-based
	length  int
}

func NewPaginator(perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator{perPage: perPage, page: 1}
}

func (p *Paginator) PerPage() int { return p.perPage }
func (p *Paginator) Page() int    { return p.page }
func (p *Paginator) Length() int  { return p.length }

func (p *Paginator) TotalPages() int {
	n := (p.length + p.perPage - 1) / p.perPage
	if n < 1 {
		n = 1
	}
	return n
}

// SetLength records a new underlying list length and clamps the current
// page back into range when the list shrank under it. It never resets to
// page 1 on its own: a page that still exists stays put.
func (p *Paginator) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	p.length = n
	if p.page > p.TotalPages() {
		p.page = p.TotalPages()
	}
	if p.page < 1 {
		p.page = 1
	}
}

// SetPage moves to page n. Out-of-range targets are rejected silently; the
// prior valid page is retained.
func (p *Paginator) SetPage(n int) {
	if n < 1 || n > p.TotalPages() {
		return
	}
	p.page = n
}

func (p *Paginator) Next() { p.SetPage(p.page + 1) }
func (p *Paginator) Prev() { p.SetPage(p.page - 1) }

// Bounds returns the half-open [start, end) range of the current page over
// a list of the recorded length.
func (p *Paginator) Bounds() (start, end int) {
	start = (p.page - 1) * p.perPage
	end = start + p.perPage
	if end > p.length {
		end = p.length
	}
	if start > p.length {
		start = p.length
	}
	return start, end
}

// Summary renders "Showing X to Y of Z", or "" when the list is empty.
func (p *Paginator) Summary() string {
	if p.length == 0 {
		return ""
	}
	start, end := p.Bounds()
	return fmt.Sprintf("Showing %d to %d of %d", start+1, end, p.length)
}

// PageNumbers returns the page-number affordance: all pages when there are
// at most five, otherwise a window with Gap entries marking elided runs.
// Page 1 and the last page are always present.
func (p *Paginator) PageNumbers() []int {
	total := p.TotalPages()
	if total <= 5 {
		out := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			out = append(out, i)
		}
		return out
	}

	switch {
	case p.page <= 3:
		// Near the start: first four, gap, last.
		return []int{1, 2, 3, 4, Gap, total}
	case p.page >= total-2:
		// Near the end: first, gap, last four.
		return []int{1, Gap, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, Gap, p.page - 1, p.page, p.page + 1, Gap, total}
	}
}

// PageOf slices items to the current page. Callers must have called
// SetLength(len(items)) first.
func PageOf[T any](p *Paginator, items []T) []T {
	start, end := p.Bounds()
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

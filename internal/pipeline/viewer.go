package pipeline

// Viewer tracks the reading cursor over an ordered page collection. The
// index is 0-based; navigation clamps to the valid range instead of
// erroring, and every command is a no-op while the collection is empty.
type Viewer[T any] struct {
	pages []T
	index int
}

func NewViewer[T any]() *Viewer[T] {
	return &Viewer[T]{}
}

// Load replaces the page collection and resets the cursor to the first
// page.
func (v *Viewer[T]) Load(pages []T) {
	v.pages = pages
	v.index = 0
}

func (v *Viewer[T]) Count() int { return len(v.pages) }
func (v *Viewer[T]) Index() int { return v.index }

// Current returns the page under the cursor; ok is false when the
// collection is empty.
func (v *Viewer[T]) Current() (page T, ok bool) {
	if len(v.pages) == 0 {
		var zero T
		return zero, false
	}
	return v.pages[v.index], true
}

func (v *Viewer[T]) HasNext() bool { return v.index < len(v.pages)-1 }
func (v *Viewer[T]) HasPrev() bool { return v.index > 0 }

func (v *Viewer[T]) Next()     { v.JumpTo(v.index + 1) }
func (v *Viewer[T]) Previous() { v.JumpTo(v.index - 1) }

// JumpTo moves the cursor to n, clamped to [0, Count-1]. On an empty
// collection it does nothing.
func (v *Viewer[T]) JumpTo(n int) {
	if len(v.pages) == 0 {
		return
	}
	if n < 0 {
		n = 0
	}
	if n > len(v.pages)-1 {
		n = len(v.pages) - 1
	}
	v.index = n
}

package pipeline

import (
	"testing"
	"time"
)

func testEditions(n int) []edition {
	out := make([]edition, 0, n)
	for i := 0; i < n; i++ {
		name := "Edition"
		if i%2 == 0 {
			name = "Draft Edition"
		}
		out = append(out, edition{Name: name, Status: "published", Pages: i})
	}
	return out
}

func TestList_FilterNarrowsBeforePaging(t *testing.T) {
	l := NewList(editionFields(), 10, time.Minute, nil, nil)
	defer l.Close()

	l.SetItems(testEditions(12))
	if got := len(l.Rows()); got != 10 {
		t.Fatalf("page 1: expected 10 rows, got %d", got)
	}
	l.SetPage(2)
	if got := len(l.Rows()); got != 2 {
		t.Fatalf("page 2: expected 2 rows, got %d", got)
	}
	if got := l.Summary(); got != "Showing 11 to 12 of 12" {
		t.Fatalf("summary: %q", got)
	}

	// Narrow via a flushed query: 6 of 12 match.
	l.SetQuery("draft")
	l.FlushQuery()
	if got := l.FilteredCount(); got != 6 {
		t.Fatalf("expected 6 filtered, got %d", got)
	}
	// Page 2 no longer exists; the clamp pulls us back to 1.
	if got := l.Page(); got != 1 {
		t.Fatalf("expected clamp to page 1, got %d", got)
	}
}

func TestList_MidPageSurvivesNarrowingThatStillCoversIt(t *testing.T) {
	l := NewList(editionFields(), 5, time.Minute, nil, nil)
	defer l.Close()

	l.SetItems(testEditions(30)) // 15 draft matches -> 3 pages of 5
	l.SetPage(2)

	l.SetQuery("draft")
	l.FlushQuery()
	if got := l.TotalPages(); got != 3 {
		t.Fatalf("expected 3 pages after narrowing, got %d", got)
	}
	// Still enough results to cover page 2: the user stays put.
	if got := l.Page(); got != 2 {
		t.Fatalf("expected to stay on page 2, got %d", got)
	}
}

func TestList_ReloadKeepsPageUnlessItOverflows(t *testing.T) {
	l := NewList(editionFields(), 10, time.Minute, nil, nil)
	defer l.Close()

	l.SetItems(testEditions(35))
	l.SetPage(3)

	// A delete shrank the list but page 3 still exists.
	l.SetItems(testEditions(25))
	if got := l.Page(); got != 3 {
		t.Fatalf("expected page kept at 3, got %d", got)
	}

	// Now it doesn't.
	l.SetItems(testEditions(12))
	if got := l.Page(); got != 2 {
		t.Fatalf("expected clamp to page 2, got %d", got)
	}
}

func TestList_CanMutateOverlayIndependentOfFilter(t *testing.T) {
	canMutate := func(e edition) bool { return e.Pages%2 == 0 }
	l := NewList(editionFields(), 10, time.Minute, canMutate, nil)
	defer l.Close()

	l.SetItems(testEditions(6))
	rows := l.Rows()
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.CanMutate != (r.Item.Pages%2 == 0) {
			t.Fatalf("overlay mismatch for %+v", r.Item)
		}
	}
}

func TestList_DebouncedApplyNotifies(t *testing.T) {
	notified := make(chan struct{}, 1)
	l := NewList(editionFields(), 10, 30*time.Millisecond, nil, func() {
		select {
		case notified <- struct{}{}:
		default:
		}
	})
	defer l.Close()

	l.SetItems(testEditions(12))
	l.SetQuery("draft")

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatalf("expected onApply notification after quiet period")
	}
	if got := l.FilteredCount(); got != 6 {
		t.Fatalf("expected filter applied after quiet period, got %d", got)
	}
}

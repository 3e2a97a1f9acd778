package pipeline

import (
	"sync"
	"testing"
	"time"
)

type edition struct {
	Name   string
	Status string
	Pages  int
}

func editionFields() []Field[edition] {
	return []Field[edition]{
		func(e edition) string { return e.Name },
		func(e edition) string { return e.Status },
	}
}

func TestFilter_EmptyQueryReturnsAllInOrder(t *testing.T) {
	items := []edition{{Name: "B"}, {Name: "A"}, {Name: "C"}}

	for _, q := range []string{"", "   ", "\t"} {
		got := Filter(items, editionFields(), q)
		if len(got) != len(items) {
			t.Fatalf("query %q: expected %d items, got %d", q, len(items), len(got))
		}
		for i := range items {
			if got[i].Name != items[i].Name {
				t.Fatalf("query %q: order changed at %d", q, i)
			}
		}
	}
}

func TestFilter_CaseInsensitiveSubstringOverAnyField(t *testing.T) {
	items := []edition{
		{Name: "Draft Edition", Status: "published"},
		{Name: "Final", Status: "archived"},
		{Name: "Weekly", Status: "draft"},
	}

	got := Filter(items, editionFields(), "draft")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Draft Edition" || got[1].Name != "Weekly" {
		t.Fatalf("unexpected matches: %+v", got)
	}

	// Unanchored containment, any case.
	got = Filter(items, editionFields(), "RAF")
	if len(got) != 2 {
		t.Fatalf("expected substring match regardless of case, got %+v", got)
	}
}

func TestFilter_NoFieldsMatchesNothingForNonEmptyQuery(t *testing.T) {
	items := []edition{{Name: "Anything"}}

	got := Filter(items, nil, "any")
	if len(got) != 0 {
		t.Fatalf("expected no matches with an empty field set, got %d", len(got))
	}
	// ...but an empty query still passes everything through.
	got = Filter(items, nil, "")
	if len(got) != 1 {
		t.Fatalf("expected empty query to pass items through, got %d", len(got))
	}
}

func TestQuery_CoalescesEditsWithinQuietPeriod(t *testing.T) {
	var mu sync.Mutex
	var applied []string

	q := NewQuery(40*time.Millisecond, func(v string) {
		mu.Lock()
		applied = append(applied, v)
		mu.Unlock()
	})
	defer q.Close()

	q.Set("d")
	q.Set("dr")
	q.Set("draft")

	if q.Value() != "draft" {
		t.Fatalf("echo value should update immediately, got %q", q.Value())
	}
	if q.Applied() != "" {
		t.Fatalf("apply should wait out the quiet period, got %q", q.Applied())
	}

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := len(applied)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(applied) != 1 || applied[0] != "draft" {
		t.Fatalf("expected exactly one apply with the final value, got %v", applied)
	}
}

func TestQuery_FlushAppliesImmediatelyAndOnlyOnce(t *testing.T) {
	var mu sync.Mutex
	var applied []string

	q := NewQuery(30*time.Millisecond, func(v string) {
		mu.Lock()
		applied = append(applied, v)
		mu.Unlock()
	})
	defer q.Close()

	q.Set("weekly")
	q.Flush()

	mu.Lock()
	if len(applied) != 1 || applied[0] != "weekly" {
		mu.Unlock()
		t.Fatalf("expected immediate apply on flush, got %v", applied)
	}
	mu.Unlock()

	// The pending timer must not apply the same value a second time.
	time.Sleep(80 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(applied) != 1 {
		t.Fatalf("expected no duplicate apply after flush, got %v", applied)
	}
}

func TestQuery_CloseDropsPendingApply(t *testing.T) {
	var mu sync.Mutex
	count := 0

	q := NewQuery(30*time.Millisecond, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	q.Set("late")
	q.Close()

	time.Sleep(80 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Fatalf("expected teardown to drop the pending apply, got %d applies", count)
	}
}

package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func checkContiguous(t *testing.T, r *Reorder, want []string) {
	t.Helper()
	order := r.Order()
	seen := map[string]bool{}
	for i, id := range order {
		if seen[id] {
			t.Fatalf("duplicate id %s in order %v", id, order)
		}
		seen[id] = true
		if r.Position(id) != i+1 {
			t.Fatalf("position of %s = %d, want %d", id, r.Position(id), i+1)
		}
	}
	if want != nil {
		if len(order) != len(want) {
			t.Fatalf("order %v, want %v", order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("order %v, want %v", order, want)
			}
		}
	}
}

func TestReorder_MoveRenumbersContiguously(t *testing.T) {
	r := NewReorder([]string{"a", "b", "c", "d", "e"}, nil)

	if err := r.Move("d", 2); err != nil {
		t.Fatalf("move: %v", err)
	}
	checkContiguous(t, r, []string{"a", "d", "b", "c", "e"})

	if err := r.Move("a", 5); err != nil {
		t.Fatalf("move: %v", err)
	}
	checkContiguous(t, r, []string{"d", "b", "c", "e", "a"})

	// Out-of-range targets clamp.
	if err := r.Move("e", 99); err != nil {
		t.Fatalf("move: %v", err)
	}
	checkContiguous(t, r, []string{"d", "b", "c", "a", "e"})
	if err := r.Move("e", -1); err != nil {
		t.Fatalf("move: %v", err)
	}
	checkContiguous(t, r, []string{"e", "d", "b", "c", "a"})
}

func TestReorder_UnknownIDRejected(t *testing.T) {
	r := NewReorder([]string{"a", "b"}, nil)
	if err := r.Move("zz", 1); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestReorder_RandomMovesKeepInvariant(t *testing.T) {
	ids := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	r := NewReorder(ids, nil)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		id := ids[rng.Intn(len(ids))]
		if err := r.Move(id, rng.Intn(10)-1); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		checkContiguous(t, r, nil)
	}
	if r.Len() != len(ids) {
		t.Fatalf("length changed: %d", r.Len())
	}
}

func TestReorder_CommitRebaselines(t *testing.T) {
	var committed []string
	r := NewReorder([]string{"a", "b", "c"}, func(_ context.Context, order []string) error {
		committed = append([]string(nil), order...)
		return nil
	})

	_ = r.Move("c", 1)
	if !r.Dirty() {
		t.Fatalf("expected dirty after move")
	}
	if err := r.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(committed) != 3 || committed[0] != "c" {
		t.Fatalf("unexpected committed order %v", committed)
	}
	if r.Dirty() {
		t.Fatalf("expected clean after successful commit")
	}

	// Cancel after a successful commit has nothing to revert.
	r.Cancel()
	checkContiguous(t, r, []string{"c", "a", "b"})
}

func TestReorder_FailedCommitKeepsStateForRetry(t *testing.T) {
	fail := errors.New("backend down")
	r := NewReorder([]string{"a", "b", "c"}, func(context.Context, []string) error {
		return fail
	})

	_ = r.Move("a", 3)
	if err := r.Commit(context.Background()); !errors.Is(err, fail) {
		t.Fatalf("expected commit error, got %v", err)
	}
	// Order is kept as-is for retry; still dirty.
	checkContiguous(t, r, []string{"b", "c", "a"})
	if !r.Dirty() {
		t.Fatalf("expected dirty after failed commit")
	}

	// Manual cancel restores the baseline.
	r.Cancel()
	checkContiguous(t, r, []string{"a", "b", "c"})
	if r.Dirty() {
		t.Fatalf("expected clean after cancel")
	}
}

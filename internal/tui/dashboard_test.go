package tui

import (
	"strings"
	"testing"

	"presskit-cli/internal/api"
	"presskit-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func testActor() model.User {
	return model.User{ID: "1", Name: "Root", Role: model.RoleSuperadmin}
}

func testDashModel() *dashModel {
	client := api.New("http://127.0.0.1:0", func() string { return "" })
	return newDashModel(client, testActor())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboard_StaleLoadIsDropped(t *testing.T) {
	m := testDashModel()

	// Two loads in flight; only the second's result may land.
	_ = m.loadEditions()
	_ = m.loadEditions()

	stale := []model.Epaper{{ID: "old", Name: "Old"}}
	fresh := []model.Epaper{{ID: "new-1", Name: "New 1"}, {ID: "new-2", Name: "New 2"}}

	m.Update(editionsLoadedMsg{seq: 1, items: stale})
	if m.editions.TotalCount() != 0 {
		t.Fatalf("stale result was applied: %d items", m.editions.TotalCount())
	}
	if !m.loadingEditions {
		t.Fatalf("stale result cleared the loading flag")
	}

	m.Update(editionsLoadedMsg{seq: 2, items: fresh})
	if m.editions.TotalCount() != 2 {
		t.Fatalf("fresh result not applied: %d items", m.editions.TotalCount())
	}
	if m.loadingEditions {
		t.Fatalf("loading flag still set after fresh result")
	}
}

func TestDashboard_StaleLoadArrivingAfterFreshIsDropped(t *testing.T) {
	m := testDashModel()

	_ = m.loadEditions()
	_ = m.loadEditions()

	fresh := []model.Epaper{{ID: "new", Name: "New"}}
	m.Update(editionsLoadedMsg{seq: 2, items: fresh})
	m.Update(editionsLoadedMsg{seq: 1, items: []model.Epaper{{ID: "old"}, {ID: "older"}}})

	if got := m.editions.TotalCount(); got != 1 {
		t.Fatalf("late stale result clobbered fresh data: %d items", got)
	}
}

func TestDashboard_LoadErrorSurfacesWithoutClearingData(t *testing.T) {
	m := testDashModel()

	_ = m.loadEditions()
	m.Update(editionsLoadedMsg{seq: 1, items: []model.Epaper{{ID: "a", Name: "A"}}})

	_ = m.loadEditions()
	m.Update(editionsLoadedMsg{seq: 2, err: errFake("boom")})

	if m.errText == "" {
		t.Fatalf("error not surfaced")
	}
	if m.editions.TotalCount() != 1 {
		t.Fatalf("error reload dropped existing rows")
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }

func TestDashboard_SelectionClampsWhenRowsShrink(t *testing.T) {
	m := testDashModel()

	items := make([]model.Epaper, 5)
	for i := range items {
		items[i] = model.Epaper{ID: string(rune('a' + i)), Name: "Edition"}
	}
	_ = m.loadEditions()
	m.Update(editionsLoadedMsg{seq: 1, items: items})

	m.selEditions = 4
	_ = m.loadEditions()
	m.Update(editionsLoadedMsg{seq: 2, items: items[:2]})

	if m.selEditions != 1 {
		t.Fatalf("selection not clamped: %d", m.selEditions)
	}
}

func TestDashboard_ConfirmDeleteSuppressesSecondSubmit(t *testing.T) {
	m := testDashModel()
	m.confirm = &confirmDelete{epaper: model.Epaper{ID: "9", Name: "Daily"}}

	_, cmd := m.handleConfirmKey(keyRunes("y"))
	if cmd == nil {
		t.Fatalf("first confirm produced no command")
	}
	if !m.confirm.inFlight {
		t.Fatalf("confirm not marked in flight")
	}

	_, cmd = m.handleConfirmKey(keyRunes("y"))
	if cmd != nil {
		t.Fatalf("second confirm submitted again while in flight")
	}

	// Esc must not dismiss the prompt mid-flight.
	m.handleConfirmKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.confirm == nil {
		t.Fatalf("confirm dismissed while delete in flight")
	}
}

func TestDashboard_ReorderMoveAndCancel(t *testing.T) {
	m := testDashModel()
	e := model.Epaper{
		ID:   "7",
		Name: "Weekly",
		Images: []model.PageImage{
			{ID: "p1", Position: 1},
			{ID: "p2", Position: 2},
			{ID: "p3", Position: 3},
		},
	}
	m.startReorder(e)

	// Grab the first page and push it down one.
	m.handleReorderKey(tea.KeyMsg{Type: tea.KeySpace})
	m.handleReorderKey(tea.KeyMsg{Type: tea.KeyDown})

	got := m.reorder.ord.Order()
	want := []string{"p2", "p1", "p3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after move = %v, want %v", got, want)
		}
	}
	if !m.reorder.ord.Dirty() {
		t.Fatalf("session not dirty after move")
	}

	m.handleReorderKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.reorder != nil {
		t.Fatalf("esc did not leave reorder mode")
	}
}

func TestDashboard_ReorderKeysIgnoredWhileCommitting(t *testing.T) {
	m := testDashModel()
	e := model.Epaper{ID: "7", Images: []model.PageImage{{ID: "p1"}, {ID: "p2"}}}
	m.startReorder(e)
	m.reorder.committing = true

	m.handleReorderKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.reorder == nil {
		t.Fatalf("esc cancelled session during commit")
	}
	m.handleReorderKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.reorder.cursor != 0 {
		t.Fatalf("cursor moved during commit")
	}
}

func TestDashboard_FailedCommitKeepsSession(t *testing.T) {
	m := testDashModel()
	e := model.Epaper{ID: "7", Images: []model.PageImage{{ID: "p1"}, {ID: "p2"}}}
	m.startReorder(e)
	m.reorder.committing = true

	m.Update(reorderCommittedMsg{err: errFake("network down")})

	if m.reorder == nil {
		t.Fatalf("failed commit closed the session")
	}
	if m.reorder.committing {
		t.Fatalf("committing flag still set after failure")
	}
	if m.reorder.errText == "" {
		t.Fatalf("commit error not surfaced")
	}
}

func TestDashboard_TabSwitchRestoresPerListQuery(t *testing.T) {
	m := testDashModel()
	m.editions.SetQuery("daily")
	m.editions.FlushQuery()

	m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabUsers {
		t.Fatalf("tab did not switch")
	}
	if m.search.Value() != "" {
		t.Fatalf("users tab inherited editions query %q", m.search.Value())
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.search.Value() != "daily" {
		t.Fatalf("editions query not restored, got %q", m.search.Value())
	}

	m.editions.Close()
	m.users.Close()
}

func TestRenderPageNumbers_MarksCurrentAndGaps(t *testing.T) {
	out := renderPageNumbers([]int{1, -1, 4, 5, 6, -1, 12}, 5)
	for _, want := range []string{"…", "[5]", "1", "12"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered page numbers %q missing %q", out, want)
		}
	}
}

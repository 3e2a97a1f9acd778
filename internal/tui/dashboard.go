package tui

import (
	"context"
	"fmt"
	"strings"

	"presskit-cli/internal/api"
	"presskit-cli/internal/model"
	"presskit-cli/internal/perm"
	"presskit-cli/internal/pipeline"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const dashPerPage = 10

type dashTab int

const (
	tabEditions dashTab = iota
	tabUsers
)

// Messages carry the sequence of the load that produced them; stale results
// (an older load resolving after a newer one) are dropped in Update.
type editionsLoadedMsg struct {
	seq   int
	items []model.Epaper
	err   error
}

type usersLoadedMsg struct {
	seq   int
	items []model.User
	err   error
}

type filterAppliedMsg struct{}

type editionDeletedMsg struct {
	err error
}

type reorderCommittedMsg struct {
	err error
}

type dashModel struct {
	client *api.Client
	actor  model.User

	width  int
	height int
	tab    dashTab

	editions *pipeline.List[model.Epaper]
	users    *pipeline.List[model.User]

	editionsSeq     int
	usersSeq        int
	loadingEditions bool
	loadingUsers    bool
	editionsLoaded  bool
	usersLoaded     bool

	selEditions int
	selUsers    int

	search    textinput.Model
	searching bool

	spin spinner.Model

	confirm  *confirmDelete
	reorder  *reorderSession
	showHelp bool

	errText    string
	statusText string

	// send forwards messages from timer goroutines into the program loop.
	// A no-op until the program is running (and in tests).
	send func(tea.Msg)
}

type confirmDelete struct {
	epaper   model.Epaper
	inFlight bool
}

type reorderSession struct {
	epaper     model.Epaper
	ord        *pipeline.Reorder
	cursor     int
	grabbed    bool
	committing bool
	errText    string
}

func newDashModel(client *api.Client, actor model.User) *dashModel {
	m := &dashModel{
		client: client,
		actor:  actor,
		send:   func(tea.Msg) {},
	}

	m.editions = pipeline.NewList(
		[]pipeline.Field[model.Epaper]{
			func(e model.Epaper) string { return e.Name },
			func(e model.Epaper) string { return string(e.Status) },
			func(e model.Epaper) string { return e.Date },
		},
		dashPerPage,
		pipeline.DefaultQuiet,
		func(e model.Epaper) bool { return perm.CanMutateEpaper(actor, e) },
		func() { m.send(filterAppliedMsg{}) },
	)
	m.users = pipeline.NewList(
		[]pipeline.Field[model.User]{
			func(u model.User) string { return u.Name },
			func(u model.User) string { return u.Email },
			func(u model.User) string { return string(u.Role) },
		},
		dashPerPage,
		pipeline.DefaultQuiet,
		func(u model.User) bool { return perm.CanMutateUser(actor, u) },
		func() { m.send(filterAppliedMsg{}) },
	)

	m.search = textinput.New()
	m.search.Placeholder = "type to search"
	m.search.Prompt = "/ "
	m.search.CharLimit = 120

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	return m
}

func (m *dashModel) Init() tea.Cmd {
	return tea.Batch(m.loadEditions(), m.loadUsers(), m.spin.Tick)
}

// loadEditions starts a fresh editions fetch. Bumping the sequence first
// means any older in-flight fetch resolves stale and is dropped.
func (m *dashModel) loadEditions() tea.Cmd {
	m.editionsSeq++
	seq := m.editionsSeq
	m.loadingEditions = true
	client := m.client
	return func() tea.Msg {
		items, err := client.ListEpapers(context.Background(), api.EpaperFilters{})
		return editionsLoadedMsg{seq: seq, items: items, err: err}
	}
}

func (m *dashModel) loadUsers() tea.Cmd {
	m.usersSeq++
	seq := m.usersSeq
	m.loadingUsers = true
	client := m.client
	return func() tea.Msg {
		items, err := client.ListUsers(context.Background())
		return usersLoadedMsg{seq: seq, items: items, err: err}
	}
}

func (m *dashModel) activeSel() *int {
	if m.tab == tabUsers {
		return &m.selUsers
	}
	return &m.selEditions
}

func (m *dashModel) visibleCount() int {
	if m.tab == tabUsers {
		return len(m.users.Rows())
	}
	return len(m.editions.Rows())
}

func (m *dashModel) clampSelection() {
	sel := m.activeSel()
	n := m.visibleCount()
	if *sel >= n {
		*sel = n - 1
	}
	if *sel < 0 {
		*sel = 0
	}
}

func (m *dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case editionsLoadedMsg:
		if msg.seq != m.editionsSeq {
			// A newer load is already in flight (or landed); this result
			// must not clobber it.
			return m, nil
		}
		m.loadingEditions = false
		m.editionsLoaded = true
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.editions.SetItems(msg.items)
		m.clampSelection()
		return m, nil

	case usersLoadedMsg:
		if msg.seq != m.usersSeq {
			return m, nil
		}
		m.loadingUsers = false
		m.usersLoaded = true
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.users.SetItems(msg.items)
		m.clampSelection()
		return m, nil

	case filterAppliedMsg:
		m.clampSelection()
		return m, nil

	case editionDeletedMsg:
		if m.confirm != nil {
			m.confirm = nil
		}
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.statusText = "edition deleted"
		// Reload rather than patching local state.
		return m, m.loadEditions()

	case reorderCommittedMsg:
		if m.reorder == nil {
			return m, nil
		}
		m.reorder.committing = false
		if msg.err != nil {
			// Keep the session (and its order) for retry or cancel.
			m.reorder.errText = msg.err.Error()
			return m, nil
		}
		m.reorder = nil
		m.statusText = "page order saved"
		return m, m.loadEditions()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *dashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.reorder != nil {
		return m.handleReorderKey(msg)
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			m.activeList().flushQuery()
			m.clampSelection()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.activeList().setQuery(m.search.Value())
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.editions.Close()
		m.users.Close()
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "tab":
		if m.tab == tabEditions {
			m.tab = tabUsers
		} else {
			m.tab = tabEditions
		}
		m.search.SetValue(m.activeList().query())
		m.statusText = ""
		return m, nil

	case "/":
		m.searching = true
		m.search.SetValue(m.activeList().query())
		m.search.Focus()
		return m, textinput.Blink

	case "r":
		if m.tab == tabUsers {
			return m, m.loadUsers()
		}
		return m, m.loadEditions()

	case "up", "k":
		sel := m.activeSel()
		if *sel > 0 {
			*sel--
		}
		return m, nil

	case "down", "j":
		sel := m.activeSel()
		if *sel < m.visibleCount()-1 {
			*sel++
		}
		return m, nil

	case "left", "h":
		m.activeList().prevPage()
		m.clampSelection()
		return m, nil

	case "right", "l":
		m.activeList().nextPage()
		m.clampSelection()
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// Out-of-range jumps are silently rejected by the paginator.
		m.activeList().setPage(int(msg.String()[0] - '0'))
		m.clampSelection()
		return m, nil

	case "o":
		if m.tab != tabEditions {
			return m, nil
		}
		rows := m.editions.Rows()
		if m.selEditions >= len(rows) {
			return m, nil
		}
		row := rows[m.selEditions]
		if !row.CanMutate {
			m.errText = "you cannot modify this edition"
			return m, nil
		}
		if len(row.Item.Images) == 0 {
			m.errText = "edition has no pages to reorder"
			return m, nil
		}
		m.startReorder(row.Item)
		return m, nil

	case "x":
		if m.tab != tabEditions {
			return m, nil
		}
		rows := m.editions.Rows()
		if m.selEditions >= len(rows) {
			return m, nil
		}
		row := rows[m.selEditions]
		if !row.CanMutate {
			m.errText = "you cannot delete this edition"
			return m, nil
		}
		m.confirm = &confirmDelete{epaper: row.Item}
		return m, nil
	}
	return m, nil
}

func (m *dashModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	switch msg.String() {
	case "esc", "n":
		if !c.inFlight {
			m.confirm = nil
		}
		return m, nil
	case "enter", "y":
		if c.inFlight {
			// A submit is already in flight; suppress the second.
			return m, nil
		}
		c.inFlight = true
		client := m.client
		id := c.epaper.ID
		return m, func() tea.Msg {
			return editionDeletedMsg{err: client.DeleteEpaper(context.Background(), id)}
		}
	}
	return m, nil
}

func (m *dashModel) startReorder(e model.Epaper) {
	m.reorder = &reorderSession{
		epaper: e,
		ord: pipeline.NewReorder(e.ImageOrder(), func(ctx context.Context, order []string) error {
			return m.client.ReorderEpaper(ctx, e.ID, order)
		}),
	}
}

func (m *dashModel) handleReorderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.reorder
	if r.committing {
		// Navigation is disabled while the commit is in flight.
		return m, nil
	}

	order := r.ord.Order()
	switch msg.String() {
	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "esc":
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		r.ord.Cancel()
		m.reorder = nil
		return m, nil

	case " ", "space":
		r.grabbed = !r.grabbed
		return m, nil

	case "up", "k":
		if r.grabbed && r.cursor < len(order) {
			_ = r.ord.MoveUp(order[r.cursor])
			if r.cursor > 0 {
				r.cursor--
			}
			return m, nil
		}
		if r.cursor > 0 {
			r.cursor--
		}
		return m, nil

	case "down", "j":
		if r.grabbed && r.cursor < len(order) {
			_ = r.ord.MoveDown(order[r.cursor])
			if r.cursor < len(order)-1 {
				r.cursor++
			}
			return m, nil
		}
		if r.cursor < len(order)-1 {
			r.cursor++
		}
		return m, nil

	case "s", "enter":
		if !r.ord.Dirty() {
			m.reorder = nil
			return m, nil
		}
		r.committing = true
		r.errText = ""
		ord := r.ord
		return m, func() tea.Msg {
			return reorderCommittedMsg{err: ord.Commit(context.Background())}
		}
	}
	return m, nil
}

type listFacade struct {
	query      func() string
	setQuery   func(string)
	flushQuery func()
	nextPage   func()
	prevPage   func()
	setPage    func(int)
}

// activeList erases the element type of the focused list so key handling
// doesn't duplicate per tab.
func (m *dashModel) activeList() listFacade {
	if m.tab == tabUsers {
		return listFacade{
			query:      m.users.Query,
			setQuery:   m.users.SetQuery,
			flushQuery: m.users.FlushQuery,
			nextPage:   m.users.NextPage,
			prevPage:   m.users.PrevPage,
			setPage:    m.users.SetPage,
		}
	}
	return listFacade{
		query:      m.editions.Query,
		setQuery:   m.editions.SetQuery,
		flushQuery: m.editions.FlushQuery,
		nextPage:   m.editions.NextPage,
		prevPage:   m.editions.PrevPage,
		setPage:    m.editions.SetPage,
	}
}

func (m *dashModel) View() string {
	width := m.width
	if width < 60 {
		width = 60
	}

	if m.reorder != nil {
		return m.viewReorder(width)
	}

	header := styleHeader().Render(fmt.Sprintf("presskit  %s (%s)", m.actor.Name, m.actor.Role))
	tabs := m.viewTabs()
	searchLine := m.search.View()

	var body string
	if m.showHelp {
		body = renderMarkdown(dashboardHelpMD, width-4)
	} else if m.tab == tabUsers {
		body = m.viewUserRows(width)
	} else {
		body = m.viewEditionRows(width)
	}

	footer := m.viewFooter(width)

	return strings.Join([]string{header, tabs, searchLine, "", body, "", footer}, "\n")
}

func (m *dashModel) viewTabs() string {
	editions := "Editions"
	users := "Users"
	if m.tab == tabEditions {
		editions = styleTabActive().Render(editions)
		users = styleMuted().Render(users)
	} else {
		editions = styleMuted().Render(editions)
		users = styleTabActive().Render(users)
	}
	return editions + "   " + users
}

// The three empty-ish body states are deliberately distinct: still loading,
// no data at all, and no search match.
func (m *dashModel) viewEditionRows(width int) string {
	if m.loadingEditions && !m.editionsLoaded {
		return m.spin.View() + " loading editions…"
	}
	if m.editions.TotalCount() == 0 {
		return styleMuted().Render("No editions yet. Create one with `presskit epapers create`.")
	}
	rows := m.editions.Rows()
	if len(rows) == 0 {
		return styleMuted().Render(fmt.Sprintf("No editions match %q.", m.editions.AppliedQuery()))
	}

	var b strings.Builder
	for i, row := range rows {
		b.WriteString(epaperRowLine(row.Item, row.CanMutate, width, i == m.selEditions))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *dashModel) viewUserRows(width int) string {
	if m.loadingUsers && !m.usersLoaded {
		return m.spin.View() + " loading users…"
	}
	if m.users.TotalCount() == 0 {
		return styleMuted().Render("No users yet.")
	}
	rows := m.users.Rows()
	if len(rows) == 0 {
		return styleMuted().Render(fmt.Sprintf("No users match %q.", m.users.AppliedQuery()))
	}

	var b strings.Builder
	for i, row := range rows {
		b.WriteString(userRowLine(row.Item, row.CanMutate, width, i == m.selUsers))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *dashModel) viewFooter(width int) string {
	var list interface {
		Summary() string
		PageNumbers() []int
		Page() int
	}
	if m.tab == tabUsers {
		list = m.users
	} else {
		list = m.editions
	}

	parts := []string{}
	if s := list.Summary(); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, renderPageNumbers(list.PageNumbers(), list.Page()))

	line1 := styleMuted().Render(strings.Join(parts, "   "))

	if m.confirm != nil {
		label := fmt.Sprintf("Delete %q (%s)? y/enter to confirm, esc to keep", m.confirm.epaper.Name, m.confirm.epaper.Date)
		if m.confirm.inFlight {
			label = m.spin.View() + " deleting…"
		}
		return line1 + "\n" + styleError().Render(label)
	}

	var line2 string
	switch {
	case m.errText != "":
		line2 = styleError().Render(m.errText)
	case m.statusText != "":
		line2 = styleMuted().Render(m.statusText)
	default:
		line2 = styleMuted().Render("/: search  tab: switch  o: reorder  x: delete  ?: help  q: quit")
	}
	return line1 + "\n" + line2
}

// renderPageNumbers draws the windowed page affordance, marking the current
// page and eliding gaps.
func renderPageNumbers(nums []int, current int) string {
	if len(nums) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		if n == pipeline.Gap {
			parts = append(parts, "…")
			continue
		}
		if n == current {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("[%d]", n)))
			continue
		}
		parts = append(parts, fmtInt(n))
	}
	return strings.Join(parts, " ")
}

func (m *dashModel) viewReorder(width int) string {
	r := m.reorder
	header := styleHeader().Render(fmt.Sprintf("Reorder pages: %s (%s)", r.epaper.Name, r.epaper.Date))

	if m.showHelp {
		return header + "\n\n" + renderMarkdown(reorderHelpMD, width-4)
	}

	byID := map[string]model.PageImage{}
	for _, img := range r.epaper.Images {
		byID[img.ID] = img
	}

	var b strings.Builder
	for i, id := range r.ord.Order() {
		marker := "  "
		if i == r.cursor {
			marker = "> "
			if r.grabbed {
				marker = "* "
			}
		}
		img := byID[id]
		line := fmt.Sprintf("%s%2d. %s", marker, i+1, img.Path)
		if i == r.cursor {
			line = styleSelectedRow().Render(fitLine(line, width))
		} else {
			line = fitLine(line, width)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	var status string
	switch {
	case r.committing:
		status = m.spin.View() + " saving order…"
	case r.errText != "":
		status = styleError().Render(r.errText + " (s to retry, esc to cancel)")
	case r.ord.Dirty():
		status = styleMuted().Render("unsaved changes  s: save  esc: cancel")
	default:
		status = styleMuted().Render("space: grab  ↑/↓: move  esc: back")
	}

	return strings.Join([]string{header, "", strings.TrimRight(b.String(), "\n"), "", status}, "\n")
}

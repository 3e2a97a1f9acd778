package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"presskit-cli/internal/api"
	"presskit-cli/internal/model"
	"presskit-cli/internal/pipeline"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editionResolvedMsg struct {
	seq     int
	edition *model.Epaper
	err     error
}

type pdfDownloadedMsg struct {
	dest string
	err  error
}

type viewerModel struct {
	client *api.Client

	width  int
	height int

	// requestedDate is the date the reader asked for; empty means "latest".
	requestedDate string

	seq     int
	loading bool

	edition  *model.Epaper
	pages    *pipeline.Viewer[model.PageImage]
	notFound bool

	jumping bool
	jump    textinput.Model

	fullscreen  bool
	downloading bool

	spin spinner.Model

	errText    string
	statusText string
}

func newViewerModel(client *api.Client, date string) *viewerModel {
	m := &viewerModel{
		client:        client,
		requestedDate: date,
		pages:         pipeline.NewViewer[model.PageImage](),
	}
	m.jump = textinput.New()
	m.jump.Prompt = "page: "
	m.jump.CharLimit = 4
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	return m
}

func (m *viewerModel) Init() tea.Cmd {
	return tea.Batch(m.resolve(m.requestedDate), m.spin.Tick)
}

// resolve fetches the edition for date, or the latest edition when date is
// empty.
func (m *viewerModel) resolve(date string) tea.Cmd {
	m.seq++
	seq := m.seq
	m.loading = true
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if date == "" {
			latest, err := client.LatestDate(ctx)
			if err != nil {
				return editionResolvedMsg{seq: seq, err: err}
			}
			date = latest
		}
		e, err := client.GetEpaperByDate(ctx, date)
		return editionResolvedMsg{seq: seq, edition: e, err: err}
	}
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case editionResolvedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var nf *api.NotFoundError
			if errors.As(msg.err, &nf) {
				// A date with no edition lands on the not-found view; the
				// viewer never substitutes a different edition. Single
				// navigation: nothing retries from here.
				m.notFound = true
				return m, nil
			}
			m.errText = msg.err.Error()
			return m, nil
		}
		m.edition = msg.edition
		m.pages.Load(msg.edition.Images)
		m.notFound = false
		m.errText = ""
		return m, nil

	case pdfDownloadedMsg:
		m.downloading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.statusText = "saved " + msg.dest
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *viewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.jumping {
		switch msg.String() {
		case "esc":
			m.jumping = false
			m.jump.Blur()
			return m, nil
		case "enter":
			m.jumping = false
			m.jump.Blur()
			if n, err := strconv.Atoi(strings.TrimSpace(m.jump.Value())); err == nil {
				// JumpTo is 0-based and clamps out-of-range targets.
				m.pages.JumpTo(n - 1)
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.jump, cmd = m.jump.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.fullscreen && msg.String() == "esc" {
			m.fullscreen = false
			return m, nil
		}
		return m, tea.Quit

	case "right", "l", " ":
		m.pages.Next()
		return m, nil

	case "left", "h":
		m.pages.Previous()
		return m, nil

	case "g":
		if m.edition == nil {
			return m, nil
		}
		m.jumping = true
		m.jump.SetValue("")
		m.jump.Focus()
		return m, textinput.Blink

	case "f":
		m.fullscreen = !m.fullscreen
		return m, nil

	case "d":
		if m.edition == nil || m.edition.PDF == nil {
			m.errText = "this edition has no PDF"
			return m, nil
		}
		if m.downloading {
			return m, nil
		}
		m.downloading = true
		m.errText = ""
		client := m.client
		path := m.edition.PDF.Path
		dest := fmt.Sprintf("epaper-%s-%s.pdf", m.edition.Date, m.edition.ID)
		return m, func() tea.Msg {
			err := client.Download(context.Background(), path, dest)
			return pdfDownloadedMsg{dest: dest, err: err}
		}
	}
	return m, nil
}

func (m *viewerModel) View() string {
	width := m.width
	if width < 40 {
		width = 40
	}

	if m.loading {
		return m.spin.View() + " loading edition…"
	}
	if m.notFound {
		return m.viewNotFound()
	}
	if m.errText != "" && m.edition == nil {
		return styleError().Render(m.errText)
	}
	if m.edition == nil {
		return ""
	}

	page, ok := m.pages.Current()
	if !ok {
		return styleMuted().Render("This edition has no pages.")
	}

	frame := m.viewPageFrame(page, width)
	if m.fullscreen {
		return frame
	}

	header := styleHeader().Render(fmt.Sprintf("%s  %s", m.edition.Name, m.edition.Date))
	footer := m.viewFooter()
	return strings.Join([]string{header, "", frame, "", footer}, "\n")
}

// viewPageFrame draws a placeholder frame for the current page image. A
// terminal cannot render the page itself, so the frame shows the page's
// identity and where the image lives.
func (m *viewerModel) viewPageFrame(page model.PageImage, width int) string {
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	label := fmt.Sprintf("Page %d of %d", m.pages.Index()+1, m.pages.Count())
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(1, 2).
		Width(inner).
		Render(label + "\n\n" + styleMuted().Render(page.Path))
	return body
}

func (m *viewerModel) viewFooter() string {
	nav := "←/→: page  g: go to  f: fullscreen"
	if m.edition.PDF != nil {
		nav += "  d: download pdf"
	}
	nav += "  q: quit"

	var status string
	switch {
	case m.jumping:
		status = m.jump.View()
	case m.downloading:
		status = m.spin.View() + " downloading…"
	case m.errText != "":
		status = styleError().Render(m.errText)
	case m.statusText != "":
		status = styleMuted().Render(m.statusText)
	}

	out := styleMuted().Render(nav)
	if status != "" {
		out += "\n" + status
	}
	return out
}

func (m *viewerModel) viewNotFound() string {
	lines := []string{
		styleHeader().Render("No edition available"),
		"",
	}
	if m.requestedDate != "" {
		lines = append(lines, fmt.Sprintf("There is no published edition for %s.", m.requestedDate),
			"Try `presskit view` for the latest edition.")
	} else {
		lines = append(lines, "No published edition exists yet.")
	}
	lines = append(lines, "", styleMuted().Render("q: quit"))
	return strings.Join(lines, "\n")
}

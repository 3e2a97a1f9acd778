package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by style + wrap width. Creating a renderer with the
	// auto style triggers terminal capability queries that can block on some
	// terminals, so an explicit style is resolved once and cached.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// markdownStyle resolves an explicit glamour style name without querying
// the terminal: env override first, then the COLORFGBG heuristic, then Lip
// Gloss's background detection.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PRESSKIT_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is often "fg;bg" (e.g. "15;0" => dark bg). Common xterm
	// palette: 0-6 dark colors, 7-15 light colors.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdRendererMu.Lock()
	style := markdownStyle()
	key := style + ":" + fmtInt(width)
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

const dashboardHelpMD = `# Dashboard keys

| Key | Action |
|-----|--------|
| tab | Switch between editions and users |
| /   | Search (applies after a short pause) |
| ←/→ | Previous / next page |
| 1-9 | Jump to page |
| ↑/↓ | Move selection |
| r   | Reload from the backend |
| o   | Reorder the selected edition's pages |
| x   | Delete the selected edition |
| ?   | Toggle this help |
| q   | Quit |

Rows marked ` + "`ro`" + ` are read-only for your role.
`

const reorderHelpMD = `# Reorder keys

| Key | Action |
|-----|--------|
| ↑/↓   | Move cursor |
| space | Grab / release the page under the cursor |
| ↑/↓ (grabbed) | Move the grabbed page |
| s     | Save the new order |
| esc   | Cancel and discard changes |
`

func fmtInt(n int) string { return strconv.Itoa(n) }

package tui

import (
	"fmt"
	"strings"

	"presskit-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// fitLine pads or truncates a (possibly styled) line to exactly width
// cells.
func fitLine(line string, width int) string {
	if width < 1 {
		return ""
	}
	w := xansi.StringWidth(line)
	if w < width {
		return line + strings.Repeat(" ", width-w)
	}
	if w > width {
		return xansi.Cut(line, 0, width)
	}
	return line
}

func statusBadge(s model.Status) string {
	var color lipgloss.TerminalColor
	switch s {
	case model.StatusPublished:
		color = colorStatusPublished
	case model.StatusArchived:
		color = colorStatusArchived
	default:
		color = colorStatusDraft
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(s))
}

// epaperRowLine renders one editions-list row: date, name, status, page
// count, and a lock marker when the signed-in user cannot mutate the row.
func epaperRowLine(e model.Epaper, canMutate bool, width int, selected bool) string {
	lock := "  "
	if !canMutate {
		lock = styleMuted().Render("ro")
	}
	pages := fmt.Sprintf("%d pages", len(e.Images))
	if e.PDF != nil {
		pages += " +pdf"
	}
	line := fmt.Sprintf(" %s  %-30s %-10s %-14s %s",
		e.Date, truncatePlain(e.Name, 30), statusBadge(e.Status), styleMuted().Render(pages), lock)

	if selected {
		return styleSelectedRow().Render(fitLine(line, width))
	}
	return fitLine(line, width)
}

func userRowLine(u model.User, canMutate bool, width int, selected bool) string {
	lock := "  "
	if !canMutate {
		lock = styleMuted().Render("ro")
	}
	line := fmt.Sprintf(" %-24s %-30s %-12s %s",
		truncatePlain(u.Name, 24), truncatePlain(u.Email, 30), string(u.Role), lock)

	if selected {
		return styleSelectedRow().Render(fitLine(line, width))
	}
	return fitLine(line, width)
}

func truncatePlain(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

package tui

import "testing"

func TestMarkdownStyle_EnvOverrideWins(t *testing.T) {
	t.Setenv("COLORFGBG", "0;15")
	t.Setenv("PRESSKIT_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("markdownStyle() = %q, want dark", got)
	}
}

func TestMarkdownStyle_ColorFgBgHeuristic(t *testing.T) {
	t.Setenv("PRESSKIT_MD_STYLE", "")

	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("dark background detected as %q", got)
	}

	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("light background detected as %q", got)
	}
}

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	if got := renderMarkdown("   \n", 80); got != "" {
		t.Fatalf("blank markdown rendered %q", got)
	}
}

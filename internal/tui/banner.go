package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerTagline = "Create your account in three short steps."

// RenderBanner returns the header shown above every step: the product mark
// with its version, the tagline and a rule sized to the terminal.
func RenderBanner(styles *StyleSet, version string, width int) string {
	if version == "" {
		version = "dev"
	}
	mark := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Banner.Render("✦  S I G N   U P"),
		"  ",
		styles.VersionPill.Render("v"+version),
	)
	rule := lipgloss.NewStyle().Foreground(styles.Theme.Border).
		Render(strings.Repeat("─", min(max(width-4, 20), 60)))

	return lipgloss.NewStyle().PaddingLeft(2).Render(
		lipgloss.JoinVertical(lipgloss.Left, mark, styles.Subtitle.Render(bannerTagline), rule),
	) + "\n\n"
}

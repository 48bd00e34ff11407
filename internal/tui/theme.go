package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv names the environment variable consulted when no theme is set.
const ThemeEnv = "SIGNUP_THEME"

// TermTheme is the palette every wizard style is derived from.
type TermTheme struct {
	Name string

	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color
	Border    lipgloss.Color
}

// DarkTheme is used unless a light background is detected.
var DarkTheme = TermTheme{
	Name:      "dark",
	Accent:    lipgloss.Color("#38bdf8"),
	Success:   lipgloss.Color("#22c55e"),
	Error:     lipgloss.Color("#ef4444"),
	Primary:   lipgloss.Color("#e2e8f0"),
	Secondary: lipgloss.Color("#94a3b8"),
	Dim:       lipgloss.Color("#64748b"),
	Border:    lipgloss.Color("#334155"),
}

// LightTheme suits terminals with a light background.
var LightTheme = TermTheme{
	Name:      "light",
	Accent:    lipgloss.Color("#0369a1"),
	Success:   lipgloss.Color("#15803d"),
	Error:     lipgloss.Color("#b91c1c"),
	Primary:   lipgloss.Color("#0f172a"),
	Secondary: lipgloss.Color("#475569"),
	Dim:       lipgloss.Color("#64748b"),
	Border:    lipgloss.Color("#cbd5e1"),
}

// DetectTheme resolves name ("dark", "light", "auto" or empty) to a theme.
// Anything but an explicit name falls back to SIGNUP_THEME and then to the
// background reported in COLORFGBG.
func DetectTheme(name string) TermTheme {
	for _, candidate := range []string{name, os.Getenv(ThemeEnv)} {
		switch strings.ToLower(candidate) {
		case "dark":
			return DarkTheme
		case "light":
			return LightTheme
		}
	}
	if lightBackground(os.Getenv("COLORFGBG")) {
		return LightTheme
	}
	return DarkTheme
}

// lightBackground reads a COLORFGBG value ("fg;bg" or "fg;default;bg").
func lightBackground(colorfgbg string) bool {
	i := strings.LastIndexByte(colorfgbg, ';')
	if i < 0 {
		return false
	}
	bg := colorfgbg[i+1:]
	return bg == "7" || bg == "15"
}

// StyleSet holds the lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	AccentTxt    lipgloss.Style
	DimTxt       lipgloss.Style
	SuccessTxt   lipgloss.Style
	ErrorTxt     lipgloss.Style
	PrimaryTxt   lipgloss.Style
	SecondaryTxt lipgloss.Style

	// Input borders by state.
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
	ErrorBorder    lipgloss.Style
	BorderedBox    lipgloss.Style

	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style

	Banner      lipgloss.Style
	VersionPill lipgloss.Style

	SummaryKey   lipgloss.Style
	SummaryValue lipgloss.Style

	StepBadgeComplete lipgloss.Style
	StepBadgeActive   lipgloss.Style
	StepBadgePending  lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

var white = lipgloss.Color("#ffffff")

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func rounded(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1)
}

func badge(bg, text lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(text).Padding(0, 1)
}

// NewStyleSet derives the wizard styles from theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	return &StyleSet{
		Theme: theme,

		Title:        fg(theme.Accent).Bold(true),
		Subtitle:     fg(theme.Secondary),
		AccentTxt:    fg(theme.Accent),
		DimTxt:       fg(theme.Dim),
		SuccessTxt:   fg(theme.Success),
		ErrorTxt:     fg(theme.Error),
		PrimaryTxt:   fg(theme.Primary),
		SecondaryTxt: fg(theme.Secondary),

		ActiveBorder:   rounded(theme.Accent),
		InactiveBorder: rounded(theme.Border),
		ErrorBorder:    rounded(theme.Error),
		BorderedBox:    rounded(theme.Border),

		KbdKey:  badge(theme.Dim, theme.Primary),
		KbdDesc: fg(theme.Dim),

		Banner:      fg(theme.Accent).Bold(true),
		VersionPill: badge(theme.Accent, white).Bold(true),

		SummaryKey:   fg(theme.Secondary),
		SummaryValue: fg(theme.Primary),

		StepBadgeComplete: badge(theme.Success, white).Bold(true),
		StepBadgeActive:   badge(theme.Accent, white).Bold(true),
		StepBadgePending:  badge(theme.Border, theme.Secondary),

		ProgressFilled: fg(theme.Accent),
		ProgressEmpty:  fg(theme.Border),
	}
}

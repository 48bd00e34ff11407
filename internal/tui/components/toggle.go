package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Toggle is a single checkbox, toggled with space.
type Toggle struct {
	Label   string
	Checked bool
	focused bool
	err     string

	// Styles
	AccentColor    lipgloss.Color
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	DimColor       lipgloss.Color
	ErrorStyle     lipgloss.Style
}

// NewToggle creates an unchecked toggle.
func NewToggle(label string, accentColor, primaryColor, secondaryColor, dimColor lipgloss.Color, errorStyle lipgloss.Style) Toggle {
	return Toggle{
		Label:          label,
		AccentColor:    accentColor,
		PrimaryColor:   primaryColor,
		SecondaryColor: secondaryColor,
		DimColor:       dimColor,
		ErrorStyle:     errorStyle,
	}
}

// Update handles keyboard input while focused.
func (t Toggle) Update(msg tea.Msg) (Toggle, tea.Cmd) {
	if !t.focused {
		return t, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == " " {
		t.Checked = !t.Checked
	}
	return t, nil
}

// View renders the checkbox line and any error below it.
func (t Toggle) View(width int) string {
	var check, label string
	if t.Checked {
		check = lipgloss.NewStyle().Foreground(t.AccentColor).Render("[✓]")
		label = lipgloss.NewStyle().Foreground(t.PrimaryColor).Render(t.Label)
	} else {
		check = lipgloss.NewStyle().Foreground(t.DimColor).Render("[ ]")
		label = lipgloss.NewStyle().Foreground(t.SecondaryColor).Render(t.Label)
	}

	marker := "  "
	if t.focused {
		marker = lipgloss.NewStyle().Foreground(t.AccentColor).Render("› ")
		label = lipgloss.NewStyle().Bold(true).Render(label)
	}

	out := "  " + marker + check + " " + label + "\n"
	if t.err != "" {
		out += "  " + t.ErrorStyle.Render("✗ "+t.err) + "\n"
	}
	return out
}

// Focus gives the toggle keyboard focus.
func (t *Toggle) Focus() {
	t.focused = true
}

// Blur removes keyboard focus.
func (t *Toggle) Blur() {
	t.focused = false
}

// Focused reports whether the toggle has keyboard focus.
func (t Toggle) Focused() bool {
	return t.focused
}

// SetError sets the message shown under the toggle. Empty clears it.
func (t *Toggle) SetError(msg string) {
	t.err = msg
}

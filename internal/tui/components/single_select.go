package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SingleSelectItem represents an option in a single-select row.
type SingleSelectItem struct {
	Label string
	Value string
}

// SingleSelect is a horizontal radio-button row. Moving the cursor with
// left and right selects the option under it.
type SingleSelect struct {
	Label    string
	Items    []SingleSelectItem
	cursor   int
	selected int
	focused  bool
	err      string

	// Styles
	LabelStyle     lipgloss.Style
	AccentColor    lipgloss.Color
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	DimColor       lipgloss.Color
	ErrorStyle     lipgloss.Style
}

// NewSingleSelect creates a new single-select component with nothing
// selected.
func NewSingleSelect(label string, items []SingleSelectItem, accentColor, primaryColor, secondaryColor, dimColor lipgloss.Color, labelStyle, errorStyle lipgloss.Style) SingleSelect {
	return SingleSelect{
		Label:          label,
		Items:          items,
		selected:       -1,
		LabelStyle:     labelStyle,
		AccentColor:    accentColor,
		PrimaryColor:   primaryColor,
		SecondaryColor: secondaryColor,
		DimColor:       dimColor,
		ErrorStyle:     errorStyle,
	}
}

// Update handles keyboard input while focused.
func (s SingleSelect) Update(msg tea.Msg) (SingleSelect, tea.Cmd) {
	if !s.focused || len(s.Items) == 0 {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "h":
			if s.selected < 0 {
				s.selected = s.cursor
			} else if s.cursor > 0 {
				s.cursor--
				s.selected = s.cursor
			}
		case "right", "l":
			if s.selected < 0 {
				s.selected = s.cursor
			} else if s.cursor < len(s.Items)-1 {
				s.cursor++
				s.selected = s.cursor
			}
		case " ":
			s.selected = s.cursor
		}
	}
	return s, nil
}

// View renders the label and the options on one line.
func (s SingleSelect) View(width int) string {
	out := "  " + s.LabelStyle.Render(s.Label) + "\n"

	parts := make([]string, 0, len(s.Items))
	for i, item := range s.Items {
		var radio, label string
		if i == s.selected {
			radio = lipgloss.NewStyle().Foreground(s.AccentColor).Render("◉")
			label = lipgloss.NewStyle().Foreground(s.PrimaryColor).Bold(true).Render(item.Label)
		} else {
			radio = lipgloss.NewStyle().Foreground(s.DimColor).Render("○")
			label = lipgloss.NewStyle().Foreground(s.SecondaryColor).Render(item.Label)
		}
		if s.focused && i == s.cursor {
			label = lipgloss.NewStyle().Underline(true).Render(label)
		}
		parts = append(parts, radio+" "+label)
	}

	marker := "  "
	if s.focused {
		marker = lipgloss.NewStyle().Foreground(s.AccentColor).Render("› ")
	}
	out += "  " + marker + strings.Join(parts, "    ") + "\n"

	if s.err != "" {
		out += "  " + s.ErrorStyle.Render("✗ "+s.err) + "\n"
	}
	return out
}

// Focus gives the row keyboard focus.
func (s *SingleSelect) Focus() {
	s.focused = true
}

// Blur removes keyboard focus.
func (s *SingleSelect) Blur() {
	s.focused = false
}

// Focused reports whether the row has keyboard focus.
func (s SingleSelect) Focused() bool {
	return s.focused
}

// Select marks the item with value v as selected. An unknown value clears the
// selection.
func (s *SingleSelect) Select(v string) {
	s.selected = -1
	for i, item := range s.Items {
		if item.Value == v {
			s.selected = i
			s.cursor = i
			return
		}
	}
}

// Selected returns the index and value of the selected item.
func (s SingleSelect) Selected() (int, string) {
	if s.selected >= 0 && s.selected < len(s.Items) {
		return s.selected, s.Items[s.selected].Value
	}
	return -1, ""
}

// SetError sets the message shown under the row. Empty clears it.
func (s *SingleSelect) SetError(msg string) {
	s.err = msg
}

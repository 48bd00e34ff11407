package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is a key and what it does.
type KeyBinding struct {
	Key  string
	Desc string
}

// KbdHint is the one-line shortcut bar shown under a form.
type KbdHint struct {
	Bindings  []KeyBinding
	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style
}

// NewFormHints returns the shortcut bar for a wizard step. On the first step
// esc quits instead of going back; on the last step enter signs up.
func NewFormHints(keyStyle, descStyle lipgloss.Style, first, last bool) KbdHint {
	enter, esc := "next", "back"
	if last {
		enter = "sign up"
	}
	if first {
		esc = "quit"
	}
	return KbdHint{
		Bindings: []KeyBinding{
			{"tab", "next field"},
			{"space", "toggle"},
			{"⏎", enter},
			{"esc", esc},
		},
		KeyStyle:  keyStyle,
		DescStyle: descStyle,
	}
}

// View renders the bindings on one line.
func (k KbdHint) View() string {
	var b strings.Builder
	b.WriteString("  ")
	for i, kb := range k.Bindings {
		if i > 0 {
			b.WriteString("    ")
		}
		b.WriteString(k.KeyStyle.Render(kb.Key))
		b.WriteByte(' ')
		b.WriteString(k.DescStyle.Render(kb.Desc))
	}
	return b.String()
}

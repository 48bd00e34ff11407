package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextInput is a styled text entry component wrapping bubbles/textinput. A
// masked input echoes bullets instead of the typed characters.
type TextInput struct {
	Label string
	input textinput.Model
	err   string

	// Styles
	LabelStyle       lipgloss.Style
	BorderStyle      lipgloss.Style
	FocusBorderStyle lipgloss.Style
	ErrorBorderStyle lipgloss.Style
	ErrorStyle       lipgloss.Style
}

// NewTextInput creates a new styled text input. It starts blurred.
func NewTextInput(label, placeholder string, masked bool, charLimit int, accentColor lipgloss.Color, labelStyle, borderStyle, focusBorderStyle, errorBorderStyle, errorStyle lipgloss.Style) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(accentColor)
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	return TextInput{
		Label:            label,
		input:            ti,
		LabelStyle:       labelStyle,
		BorderStyle:      borderStyle,
		FocusBorderStyle: focusBorderStyle,
		ErrorBorderStyle: errorBorderStyle,
		ErrorStyle:       errorStyle,
	}
}

// Init starts the cursor blinking.
func (t TextInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Only a focused input consumes keys.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// View renders the label, the bordered input and any error below it.
func (t TextInput) View(width int) string {
	out := "  " + t.LabelStyle.Render(t.Label) + "\n"

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	t.input.Width = inputWidth

	border := t.BorderStyle
	switch {
	case t.err != "":
		border = t.ErrorBorderStyle
	case t.input.Focused():
		border = t.FocusBorderStyle
	}
	out += "  " + border.Width(inputWidth).Render(t.input.View()) + "\n"

	if t.err != "" {
		out += "  " + t.ErrorStyle.Render("✗ "+t.err) + "\n"
	}
	return out
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.input.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.input.Blur()
}

// Focused reports whether the input has keyboard focus.
func (t TextInput) Focused() bool {
	return t.input.Focused()
}

// Value returns the current input value as typed.
func (t TextInput) Value() string {
	return t.input.Value()
}

// SetValue replaces the input value. It is a no-op when v is already shown,
// so the cursor stays put while typing.
func (t *TextInput) SetValue(v string) {
	if t.input.Value() != v {
		t.input.SetValue(v)
		t.input.CursorEnd()
	}
}

// SetError sets the message shown under the input. Empty clears it.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Err returns the message shown under the input.
func (t TextInput) Err() string {
	return t.err
}

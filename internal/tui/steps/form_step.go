// Package steps renders the signup wizard steps as bubbletea components
// bound to a wizard.Store.
package steps

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/internal/tui"
	"github.com/jskinn96/signup/internal/tui/components"
	"github.com/jskinn96/signup/router"
	"github.com/jskinn96/signup/schema"
	"github.com/jskinn96/signup/wizard"
)

var placeholders = map[form.Field]string{
	form.Username:  "letters, numbers and _",
	form.Password:  "8+ characters with a number and one of !@#$%^&*",
	form.Email:     "you@example.com",
	form.Phone:     "010-0000-0000",
	form.BirthDate: "YYYY-MM-DD",
	form.Nickname:  "2 to 15 characters",
	form.Interests: "music, hiking, …",
	form.Facebook:  "facebook handle",
	form.Instagram: "instagram handle",
	form.GitHub:    "github username",
}

type controlKind int

const (
	textControl controlKind = iota
	choiceControl
	toggleControl
)

type control struct {
	field  form.Field
	kind   controlKind
	masked bool
	text   components.TextInput
	choice components.SingleSelect
	toggle components.Toggle
}

func (c *control) focus() tea.Cmd {
	switch c.kind {
	case choiceControl:
		c.choice.Focus()
	case toggleControl:
		c.toggle.Focus()
	default:
		return c.text.Focus()
	}
	return nil
}

func (c *control) blur() {
	switch c.kind {
	case choiceControl:
		c.choice.Blur()
	case toggleControl:
		c.toggle.Blur()
	default:
		c.text.Blur()
	}
}

func (c *control) setError(msg string) {
	switch c.kind {
	case choiceControl:
		c.choice.SetError(msg)
	case toggleControl:
		c.toggle.SetError(msg)
	default:
		c.text.SetError(msg)
	}
}

func (c *control) view(width int) string {
	switch c.kind {
	case choiceControl:
		return c.choice.View(width)
	case toggleControl:
		return c.toggle.View(width)
	default:
		return c.text.View(width)
	}
}

// FormStep renders one wizard step as a column of controls. Every edit is
// written through to the store with SetField.
type FormStep struct {
	def      router.Definition
	store    *wizard.Store
	controls []*control
	focus    int
	kbd      components.KbdHint
}

// NewFormStep builds the controls for def.
func NewFormStep(styles *tui.StyleSet, store *wizard.Store, def router.Definition) *FormStep {
	reg := store.Router().Registry()
	theme := styles.Theme

	s := &FormStep{
		def:   def,
		store: store,
		kbd:   components.NewFormHints(styles.KbdKey, styles.KbdDesc, def.Number == router.First, def.Number == router.Last),
	}

	for _, f := range def.Fields {
		fs := reg.MustLookup(f)
		label := fs.Label
		if !def.IsRequired(f) {
			label += styles.DimTxt.Render(" (optional)")
		}

		c := &control{field: f}
		switch {
		case f == form.Gender:
			c.kind = choiceControl
			var items []components.SingleSelectItem
			for _, g := range form.GenderOptions() {
				items = append(items, components.SingleSelectItem{Label: g.Label, Value: string(g.Value)})
			}
			c.choice = components.NewSingleSelect(label, items,
				theme.Accent, theme.Primary, theme.Secondary, theme.Dim,
				styles.AccentTxt, styles.ErrorTxt)
		case fs.Kind == schema.KindBool:
			c.kind = toggleControl
			c.toggle = components.NewToggle(toggleLabel(f, fs.Label),
				theme.Accent, theme.Primary, theme.Secondary, theme.Dim, styles.ErrorTxt)
		default:
			c.masked = f == form.Password
			limit := 64
			if f == form.Phone {
				limit = len("010-0000-0000")
			}
			c.text = components.NewTextInput(label, placeholders[f], c.masked, limit,
				theme.Accent, styles.AccentTxt, styles.InactiveBorder, styles.ActiveBorder,
				styles.ErrorBorder, styles.ErrorTxt)
		}
		s.controls = append(s.controls, c)
	}
	return s
}

func toggleLabel(f form.Field, fallback string) string {
	switch f {
	case form.AgreeTerms:
		return "I agree to the terms of service"
	case form.AgreeMarketing:
		return "Send me news and offers (optional)"
	}
	return fallback
}

// All builds a FormStep for every wizard step, in order.
func All(styles *tui.StyleSet, store *wizard.Store) []tui.Step {
	defs := store.Router().Steps()
	out := make([]tui.Step, 0, len(defs))
	for _, d := range defs {
		out = append(out, NewFormStep(styles, store, d))
	}
	return out
}

func (s *FormStep) Title() string       { return s.def.Title }
func (s *FormStep) Description() string { return s.def.Description }

func (s *FormStep) Init() tea.Cmd {
	s.Sync(s.store.Snapshot())
	return s.setFocus(s.focus)
}

func (s *FormStep) setFocus(i int) tea.Cmd {
	if len(s.controls) == 0 {
		return nil
	}
	i = (i + len(s.controls)) % len(s.controls)
	for _, c := range s.controls {
		c.blur()
	}
	s.focus = i
	return s.controls[i].focus()
}

func (s *FormStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			return s, func() tea.Msg { return tui.StepCompleteMsg{} }
		case "esc":
			return s, func() tea.Msg { return tui.StepBackMsg{} }
		}
	}

	if len(s.controls) == 0 {
		return s, nil
	}
	c := s.controls[s.focus]

	var cmd tea.Cmd
	switch c.kind {
	case choiceControl:
		_, before := c.choice.Selected()
		c.choice, cmd = c.choice.Update(msg)
		if _, after := c.choice.Selected(); after != before {
			s.store.SetField(c.field, form.GenderValue(after))
		}
	case toggleControl:
		before := c.toggle.Checked
		c.toggle, cmd = c.toggle.Update(msg)
		if c.toggle.Checked != before {
			s.store.SetField(c.field, c.toggle.Checked)
		}
	default:
		before := c.text.Value()
		c.text, cmd = c.text.Update(msg)
		if after := c.text.Value(); after != before {
			s.store.SetField(c.field, after)
		}
	}
	return s, cmd
}

func (s *FormStep) View(width int) string {
	var out string
	for _, c := range s.controls {
		out += "\n" + c.view(width)
	}
	return out + "\n" + s.kbd.View() + "\n"
}

// Summary lists the filled required text answers, leaving out the password.
func (s *FormStep) Summary() string {
	snap := s.store.Snapshot()
	var parts []string
	for _, f := range s.def.Required {
		if f == form.Password {
			continue
		}
		v, _ := snap.FormData.Value(f)
		if str, ok := v.(string); ok && str != "" {
			parts = append(parts, str)
		}
	}
	return strings.Join(parts, " · ")
}

func (s *FormStep) Sync(state wizard.State) {
	for _, c := range s.controls {
		msg, _ := state.Errors.Get(c.field)
		c.setError(msg)

		v, _ := state.FormData.Value(c.field)
		switch c.kind {
		case choiceControl:
			str, _ := v.(string)
			if _, cur := c.choice.Selected(); cur != str {
				c.choice.Select(str)
			}
		case toggleControl:
			b, _ := v.(bool)
			c.toggle.Checked = b
		default:
			str, _ := v.(string)
			c.text.SetValue(str)
		}
	}
}

func (s *FormStep) Focus(f form.Field) bool {
	for i, c := range s.controls {
		if c.field == f {
			s.setFocus(i)
			return true
		}
	}
	return false
}

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/wizard"
)

type fakeStep struct {
	title   string
	focused []form.Field
	synced  int
}

func (f *fakeStep) Title() string { return f.title }
func (f *fakeStep) Description() string { return f.title + " description" }
func (f *fakeStep) Init() tea.Cmd { return nil }
func (f *fakeStep) Update(tea.Msg) (Step, tea.Cmd) { return f, nil }
func (f *fakeStep) View(int) string { return "[" + f.title + "]" }
func (f *fakeStep) Summary() string { return f.title + " summary" }
func (f *fakeStep) Sync(wizard.State) { f.synced++ }
func (f *fakeStep) Focus(field form.Field) bool { f.focused = append(f.focused, field); return true }

func newTestModel(store *wizard.Store) (WizardModel, []*fakeStep) {
	fakes := []*fakeStep{{title: "Welcome"}, {title: "About You"}, {title: "Connect"}}
	steps := make([]Step, len(fakes))
	for i, f := range fakes {
		steps[i] = f
	}
	return NewWizardModel(context.Background(), store, DarkTheme, steps, "1.0.0"), fakes
}

// run feeds msg to the model and then every message produced by the
// resulting commands, one level deep.
func run(t *testing.T, m WizardModel, msg tea.Msg) (WizardModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(WizardModel)
	if cmd == nil {
		return m, nil
	}
	next := cmd()
	switch next.(type) {
	case TransitionDoneMsg, SubmitDoneMsg:
		updated, cmd = m.Update(next)
		return updated.(WizardModel), cmd
	}
	return m, cmd
}

func fillStepOne(s *wizard.Store) {
	s.SetField(form.Username, "abc_123")
	s.SetField(form.Password, "abc12345!")
	s.SetField(form.Email, "a@b.co")
	s.SetField(form.Phone, "01012345678")
}

func TestFailedAdvanceFocusesFirstError(t *testing.T) {
	store := wizard.New(wizard.WithSettleDelay(0))
	store.SetField(form.Username, "abc_123")
	m, fakes := newTestModel(store)

	m, _ = run(t, m, StepCompleteMsg{})

	if store.Snapshot().CurrentStep != 1 {
		t.Fatalf("CurrentStep = %d, want 1", store.Snapshot().CurrentStep)
	}
	if len(fakes[0].focused) != 1 || fakes[0].focused[0] != form.Password {
		t.Errorf("focused %v, want [password]", fakes[0].focused)
	}
	if !strings.Contains(m.View(), wizard.MsgCheckInput) {
		t.Error("view does not show the failure message")
	}
}

func TestFailedAdvanceFocusesEarliestError(t *testing.T) {
	store := wizard.New(wizard.WithSettleDelay(0))
	store.SetField(form.Username, "abc_123")
	store.SetField(form.Password, "abc12345!")
	// Phone errors before email although email comes first on screen.
	store.SetField(form.Phone, "123")
	store.SetField(form.Email, "not-an-email")
	m, fakes := newTestModel(store)

	_, _ = run(t, m, StepCompleteMsg{})

	if got := store.Snapshot().Errors.Fields(); len(got) != 2 || got[0] != form.Phone {
		t.Fatalf("errors = %v, want phone first", got)
	}
	if len(fakes[0].focused) != 1 || fakes[0].focused[0] != form.Phone {
		t.Errorf("focused %v, want [phone]", fakes[0].focused)
	}
}

func TestAdvanceAndGoBack(t *testing.T) {
	store := wizard.New(wizard.WithSettleDelay(0))
	fillStepOne(store)
	m, fakes := newTestModel(store)

	m, _ = run(t, m, StepCompleteMsg{})
	if store.Snapshot().CurrentStep != 2 {
		t.Fatalf("CurrentStep = %d, want 2", store.Snapshot().CurrentStep)
	}
	if fakes[1].synced == 0 {
		t.Error("new step was not synced")
	}
	view := m.View()
	if !strings.Contains(view, "[About You]") || !strings.Contains(view, "Welcome summary") {
		t.Errorf("unexpected view:\n%s", view)
	}

	m, _ = run(t, m, StepBackMsg{})
	if store.Snapshot().CurrentStep != 1 {
		t.Fatalf("CurrentStep = %d after back, want 1", store.Snapshot().CurrentStep)
	}
	if m.Err() != nil {
		t.Errorf("Err = %v, want nil", m.Err())
	}
}

func TestBackOnFirstStepCancels(t *testing.T) {
	m, _ := newTestModel(wizard.New(wizard.WithSettleDelay(0)))
	m, cmd := run(t, m, StepBackMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !errors.Is(m.Err(), ErrCancelled) {
		t.Errorf("Err = %v, want ErrCancelled", m.Err())
	}
}

func TestSubmitOnLastStep(t *testing.T) {
	store := wizard.New(
		wizard.WithSettleDelay(0),
		wizard.WithSubmitter(wizard.SubmitterFunc(func(context.Context, form.FormData) (wizard.Response, error) {
			return wizard.Response{Success: true, AccountID: "acc-1"}, nil
		})),
	)
	store.SetStep(3)
	m, _ := newTestModel(store)

	m, _ = run(t, m, StepCompleteMsg{})
	if m.Done() {
		t.Fatal("submit without terms should not complete")
	}
	if !strings.Contains(m.View(), wizard.MsgCheckInput) {
		t.Errorf("view missing failure message:\n%s", m.View())
	}

	store.SetField(form.AgreeTerms, true)
	m, _ = run(t, m, StepCompleteMsg{})
	if !m.Done() {
		t.Fatalf("Done = false, view:\n%s", m.View())
	}
	if m.Result().AccountID != "acc-1" {
		t.Errorf("AccountID = %q", m.Result().AccountID)
	}
	if !strings.Contains(m.View(), "acc-1") {
		t.Error("completion view does not show the account ID")
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	store := wizard.New(wizard.WithSettleDelay(0))
	fillStepOne(store)
	m, _ := newTestModel(store)

	updated, cmd := m.Update(StepCompleteMsg{})
	m = updated.(WizardModel)
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	if _, second := m.Update(StepCompleteMsg{}); second != nil {
		t.Error("second advance while busy should be ignored")
	}
}

func TestRenderProgressBar(t *testing.T) {
	styles := NewStyleSet(DarkTheme)
	if got := RenderProgressBar(1.0/3, styles, 40); !strings.Contains(got, "33%") {
		t.Errorf("bar = %q, want 33%%", got)
	}
	if got := RenderProgressBar(1, styles, 40); !strings.Contains(got, "100%") {
		t.Errorf("bar = %q, want 100%%", got)
	}
}

func TestDetectTheme(t *testing.T) {
	t.Setenv("SIGNUP_THEME", "")
	t.Setenv("COLORFGBG", "")
	tests := []struct {
		in   string
		want string
	}{
		{"dark", "dark"},
		{"LIGHT", "light"},
		{"auto", "dark"},
		{"", "dark"},
	}
	for _, tt := range tests {
		if got := DetectTheme(tt.in).Name; got != tt.want {
			t.Errorf("DetectTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	t.Setenv("COLORFGBG", "0;default;15")
	if got := DetectTheme("auto").Name; got != "light" {
		t.Errorf("DetectTheme with light background = %q, want light", got)
	}
}

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jskinn96/signup/internal/tui/components"
	"github.com/jskinn96/signup/router"
	"github.com/jskinn96/signup/wizard"
)

// ErrCancelled is returned by Err when the user quits before submitting.
var ErrCancelled = errors.New("wizard cancelled")

// WizardModel is the top-level bubbletea model. It renders the store's state
// and runs transitions and submission as commands so the settle delay never
// blocks the event loop.
type WizardModel struct {
	ctx     context.Context
	store   *wizard.Store
	styles  *StyleSet
	steps   []Step
	width   int
	height  int
	busy    bool
	status  string
	result  *wizard.SubmitResult
	err     error
	version string
}

// NewWizardModel creates a wizard over store. steps[i] renders step i+1.
func NewWizardModel(ctx context.Context, store *wizard.Store, theme TermTheme, steps []Step, version string) WizardModel {
	return WizardModel{
		ctx:     ctx,
		store:   store,
		styles:  NewStyleSet(theme),
		steps:   steps,
		width:   80,
		height:  24,
		version: version,
	}
}

// Init initializes the current step.
func (w WizardModel) Init() tea.Cmd {
	if s := w.currentStep(); s != nil {
		return s.Init()
	}
	return nil
}

func (w WizardModel) currentStep() Step {
	i := w.store.Snapshot().CurrentStep - 1
	if i < 0 || i >= len(w.steps) {
		return nil
	}
	return w.steps[i]
}

func nextStepCmd(ctx context.Context, s *wizard.Store) tea.Cmd {
	return func() tea.Msg {
		return TransitionDoneMsg{Forward: true, OK: s.NextStep(ctx)}
	}
}

func previousStepCmd(ctx context.Context, s *wizard.Store) tea.Cmd {
	return func() tea.Msg {
		return TransitionDoneMsg{OK: s.PreviousStep(ctx)}
	}
}

func submitCmd(ctx context.Context, s *wizard.Store) tea.Cmd {
	return func() tea.Msg {
		return SubmitDoneMsg{Result: s.SubmitSignUp(ctx)}
	}
}

// Update handles messages for the wizard.
func (w WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			w.err = ErrCancelled
			return w, tea.Quit
		}
		if w.busy {
			return w, nil
		}

	case StepBackMsg:
		if w.busy {
			return w, nil
		}
		if w.store.Snapshot().CurrentStep <= router.First {
			w.err = ErrCancelled
			return w, tea.Quit
		}
		w.busy = true
		w.status = ""
		return w, previousStepCmd(w.ctx, w.store)

	case StepCompleteMsg:
		if w.busy {
			return w, nil
		}
		w.busy = true
		w.status = ""
		if w.store.Snapshot().CurrentStep >= router.Last {
			return w, submitCmd(w.ctx, w.store)
		}
		return w, nextStepCmd(w.ctx, w.store)

	case TransitionDoneMsg:
		w.busy = false
		step := w.currentStep()
		if step == nil {
			return w, nil
		}
		step.Sync(w.store.Snapshot())
		if msg.OK {
			return w, step.Init()
		}
		if msg.Forward {
			w.status = wizard.MsgCheckInput
			w.focusFirstError(step)
		}
		return w, nil

	case SubmitDoneMsg:
		w.busy = false
		if msg.Result.Success {
			res := msg.Result
			w.result = &res
			return w, tea.Quit
		}
		w.status = msg.Result.Message
		if step := w.currentStep(); step != nil {
			step.Sync(w.store.Snapshot())
			w.focusFirstError(step)
		}
		return w, nil
	}

	snap := w.store.Snapshot()
	i := snap.CurrentStep - 1
	if i < 0 || i >= len(w.steps) {
		return w, nil
	}
	updated, cmd := w.steps[i].Update(msg)
	updated.Sync(w.store.Snapshot())
	w.steps[i] = updated
	return w, cmd
}

// focusFirstError moves focus to the earliest recorded error that belongs to
// the current step. Errors are kept in the order they were raised.
func (w *WizardModel) focusFirstError(step Step) {
	snap := w.store.Snapshot()
	def, ok := w.store.Router().Lookup(snap.CurrentStep)
	if !ok {
		return
	}
	for _, f := range snap.Errors.Fields() {
		if def.Has(f) && step.Focus(f) {
			return
		}
	}
}

// View renders the entire wizard UI.
func (w WizardModel) View() string {
	out := "\n" + RenderBanner(w.styles, w.version, w.width) + "\n"

	if w.result != nil {
		out += "  " + w.styles.SuccessTxt.Bold(true).Render("✓ "+w.result.Message) + "\n\n"
		if w.result.AccountID != "" {
			box := components.NewSummaryBox("Your account",
				[]components.SummaryRow{{Key: "Account ID", Value: w.result.AccountID}},
				w.styles.SummaryKey, w.styles.SummaryValue, w.styles.BorderedBox,
			)
			out += box.View(w.width) + "\n"
		}
		return out
	}

	snap := w.store.Snapshot()
	out += RenderProgress(w.steps, snap.CurrentStep, w.store.Progress(), w.styles, w.width)
	out += "\n"

	if step := w.currentStep(); step != nil {
		out += step.View(w.width)
	}
	out += "\n"

	switch {
	case snap.StepChanging:
		out += "  " + w.styles.DimTxt.Render("…") + "\n"
	case snap.Loading:
		out += "  " + w.styles.DimTxt.Render("submitting…") + "\n"
	case w.status != "":
		out += "  " + w.styles.ErrorTxt.Render("✗ "+w.status) + "\n"
	}

	return out
}

// Result returns the successful submission, or nil if the wizard was not
// completed.
func (w WizardModel) Result() *wizard.SubmitResult {
	return w.result
}

// Err returns any error that occurred during the wizard.
func (w WizardModel) Err() error {
	return w.err
}

// Done returns true if the wizard completed successfully.
func (w WizardModel) Done() bool {
	return w.result != nil
}

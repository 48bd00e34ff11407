package tui

import "github.com/jskinn96/signup/wizard"

// StepBackMsg is emitted by a step when the user asks to go back.
type StepBackMsg struct{}

// StepCompleteMsg is emitted by a step when the user asks to advance or, on
// the last step, to submit.
type StepCompleteMsg struct{}

// TransitionDoneMsg carries the outcome of an async NextStep or PreviousStep.
type TransitionDoneMsg struct {
	Forward bool
	OK      bool
}

// SubmitDoneMsg carries the outcome of an async SubmitSignUp.
type SubmitDoneMsg struct {
	Result wizard.SubmitResult
}

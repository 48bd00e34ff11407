// Package wizard implements the signup wizard state machine: it owns the form
// data, the error map and the current step, and gates progression on
// validation.
package wizard

import (
	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/router"
)

// State is a point-in-time view of the wizard.
type State struct {
	FormData     form.FormData
	Errors       *form.ErrorMap
	CurrentStep  int
	Loading      bool
	StepChanging bool
}

func initialState() State {
	return State{
		Errors:      form.NewErrorMap(),
		CurrentStep: router.First,
	}
}

func (s State) clone() State {
	c := s
	c.Errors = s.Errors.Clone()
	return c
}

// User-facing result messages.
const (
	MsgCheckInput       = "please check your input"
	MsgAgreeTermsPrompt = "please agree to the terms of service"
	MsgSignUpComplete   = "sign up complete!"
	MsgSignUpFailed     = "sign up failed, please try again"
	MsgBusy             = "please wait for the current action to finish"
)

// SubmitResult is returned by SubmitSignUp.
type SubmitResult struct {
	Success   bool
	Message   string
	AccountID string
}

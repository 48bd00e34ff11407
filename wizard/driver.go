package wizard

import (
	"context"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/router"
)

// Outcome reports where a replay stopped and why.
type Outcome struct {
	// Step is the step the replay was on when it stopped.
	Step   int
	Result SubmitResult
	// Errors is the error map at the point the replay stopped. It is empty
	// after a successful submission.
	Errors *form.ErrorMap
}

// Replay walks the store through every step the way a user would: it sets
// each field of the current step from data, advances, and submits on the last
// step. It stops at the first step that fails to advance.
func Replay(ctx context.Context, s *Store, data form.FormData) Outcome {
	for {
		step := s.Snapshot().CurrentStep
		def, ok := s.Router().Lookup(step)
		if !ok {
			return Outcome{Step: step, Result: SubmitResult{Message: MsgCheckInput}, Errors: s.Snapshot().Errors}
		}

		for _, f := range def.Fields {
			if v, ok := data.Value(f); ok {
				s.SetField(f, v)
			}
		}

		if step < router.Last {
			if s.NextStep(ctx) {
				continue
			}
			msg := MsgCheckInput
			if ctx.Err() != nil {
				msg = ctx.Err().Error()
			}
			return Outcome{Step: step, Result: SubmitResult{Message: msg}, Errors: s.Snapshot().Errors}
		}

		res := s.SubmitSignUp(ctx)
		return Outcome{Step: step, Result: res, Errors: s.Snapshot().Errors}
	}
}

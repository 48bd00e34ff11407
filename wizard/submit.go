package wizard

import (
	"context"

	"github.com/jskinn96/signup/form"
)

// Response is what a Submitter reports back for a completed form.
type Response struct {
	Success   bool
	Message   string
	AccountID string
}

// Submitter receives the completed form once validation has passed.
type Submitter interface {
	Submit(ctx context.Context, data form.FormData) (Response, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, data form.FormData) (Response, error)

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, data form.FormData) (Response, error) {
	return f(ctx, data)
}

// acceptAll is used when no submitter is configured.
func acceptAll() Submitter {
	return SubmitterFunc(func(context.Context, form.FormData) (Response, error) {
		return Response{Success: true}, nil
	})
}

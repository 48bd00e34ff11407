package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jskinn96/signup/form"
)

// HookPoint identifies when a hook fires in the wizard lifecycle.
type HookPoint int

const (
	FieldChanged HookPoint = iota
	StepValidated
	BeforeTransition
	AfterTransition
	Submitted
	StateReset
)

func (p HookPoint) String() string {
	switch p {
	case FieldChanged:
		return "field_changed"
	case StepValidated:
		return "step_validated"
	case BeforeTransition:
		return "before_transition"
	case AfterTransition:
		return "after_transition"
	case Submitted:
		return "submitted"
	case StateReset:
		return "state_reset"
	}
	return "unknown"
}

// HookContext carries the data available to hooks at each point. State is a
// copy taken right after the change that triggered the hook.
type HookContext struct {
	Field  form.Field
	Valid  bool
	From   int
	To     int
	Result *SubmitResult
	State  State
}

// Hook is a function invoked at a specific point in the wizard lifecycle.
type Hook func(ctx context.Context, hctx *HookContext) error

// HookRegistry manages registered hooks for each hook point. Register every
// hook before the store is shared between goroutines.
type HookRegistry struct {
	hooks map[HookPoint][]Hook
}

// NewHookRegistry creates an empty HookRegistry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[HookPoint][]Hook),
	}
}

// Register adds a hook for the given point. Hooks fire in registration order.
func (r *HookRegistry) Register(point HookPoint, h Hook) {
	r.hooks[point] = append(r.hooks[point], h)
}

// Fire invokes every hook registered for point in order. A failing hook does
// not stop the ones after it; all failures are joined into the returned error.
func (r *HookRegistry) Fire(ctx context.Context, point HookPoint, hctx *HookContext) error {
	var errs []error
	for i, h := range r.hooks[point] {
		if err := h(ctx, hctx); err != nil {
			errs = append(errs, fmt.Errorf("%s hook %d: %w", point, i, err))
		}
	}
	return errors.Join(errs...)
}

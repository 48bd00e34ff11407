package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/logging"
	"github.com/jskinn96/signup/router"
	"github.com/jskinn96/signup/schema"
	"github.com/jskinn96/signup/validate"
)

// DefaultSettleDelay is how long a step transition waits before the step
// number changes, giving the presentation layer time to animate.
const DefaultSettleDelay = 300 * time.Millisecond

// Store is the wizard state container. Create one per wizard session with New
// and share it by pointer; all methods are safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	state State
	// gen identifies the transition allowed to clear StepChanging. Starting a
	// transition and resetting both bump it.
	gen uint64

	engine      *validate.Engine
	submitter   Submitter
	settleDelay time.Duration
	logger      logging.Logger
	hooks       *HookRegistry
}

type storeConfig struct {
	submitter   Submitter
	settleDelay time.Duration
	now         func() time.Time
	logger      logging.Logger
	hooks       *HookRegistry
}

// Option configures a Store.
type Option func(*storeConfig)

// WithSubmitter sets the collaborator that receives completed forms.
func WithSubmitter(s Submitter) Option {
	return func(c *storeConfig) { c.submitter = s }
}

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(c *storeConfig) { c.settleDelay = d }
}

// WithClock sets the reference clock used by age validation.
func WithClock(now func() time.Time) Option {
	return func(c *storeConfig) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *storeConfig) { c.logger = l }
}

// WithHooks attaches a hook registry.
func WithHooks(h *HookRegistry) Option {
	return func(c *storeConfig) { c.hooks = h }
}

// New creates a Store in its initial state: empty form, no errors, step 1.
func New(opts ...Option) *Store {
	cfg := storeConfig{
		settleDelay: DefaultSettleDelay,
		now:         time.Now,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.submitter == nil {
		cfg.submitter = acceptAll()
	}
	if cfg.logger == nil {
		cfg.logger = logging.Nop()
	}
	if cfg.hooks == nil {
		cfg.hooks = NewHookRegistry()
	}
	if cfg.settleDelay < 0 {
		cfg.settleDelay = 0
	}

	rt := router.New(schema.NewRegistry())
	return &Store{
		state:       initialState(),
		engine:      validate.NewEngine(rt, validate.WithClock(cfg.now)),
		submitter:   cfg.submitter,
		settleDelay: cfg.settleDelay,
		logger:      cfg.logger.With(map[string]any{"component": "wizard"}),
		hooks:       cfg.hooks,
	}
}

// Engine returns the validation engine the store delegates to.
func (s *Store) Engine() *validate.Engine {
	return s.engine
}

// Router returns the step router.
func (s *Store) Router() *router.Router {
	return s.engine.Router()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetField stores value for field and validates it under the current step,
// updating the error map. Phone numbers are formatted before storing. A value
// of the wrong type is not stored; it is reported as a field error when the
// field belongs to the current step.
func (s *Store) SetField(field form.Field, value any) {
	s.mu.Lock()
	if fs, ok := s.Router().Registry().Lookup(field); ok && fs.Normalize != nil {
		if str, ok := value.(string); ok {
			value = fs.Normalize(str)
		}
	}

	if fd, ok := s.state.FormData.With(field, value); ok {
		s.state.FormData = fd
	} else {
		s.logger.Debug("field value rejected", map[string]any{"field": string(field)})
	}

	res := s.engine.ValidateField(field, value, s.state.CurrentStep)
	if res.Valid {
		s.state.Errors.Delete(field)
	} else {
		s.state.Errors.Set(field, res.Message)
	}
	snap := s.state.clone()
	s.mu.Unlock()

	s.fire(context.Background(), FieldChanged, &HookContext{Field: field, Valid: res.Valid, State: snap})
}

// ValidateCurrentStep re-validates every required field of the current step
// and then the step as a whole, rebuilding those fields' errors. Errors of
// other steps are left alone. It reports whether the step is valid.
func (s *Store) ValidateCurrentStep() bool {
	s.mu.Lock()
	valid := s.validateCurrentStepLocked()
	snap := s.state.clone()
	s.mu.Unlock()

	s.fire(context.Background(), StepValidated, &HookContext{Valid: valid, State: snap})
	return valid
}

func (s *Store) validateCurrentStepLocked() bool {
	step := s.state.CurrentStep
	def, ok := s.Router().Lookup(step)
	if !ok {
		return false
	}

	errs := s.state.Errors.Clone()
	valid := true

	for _, f := range def.Required {
		v, _ := s.state.FormData.Value(f)
		if res := s.engine.ValidateField(f, v, step); res.Valid {
			errs.Delete(f)
		} else {
			errs.Set(f, res.Message)
			valid = false
		}
	}

	res := s.engine.ValidateStep(step, s.Router().Extract(step, s.state.FormData))
	flagged := make(map[form.Field]bool, len(res.Issues))
	for _, is := range res.Issues {
		errs.Set(is.Field, is.Message)
		flagged[is.Field] = true
	}
	if !res.Valid {
		valid = false
	}
	for _, f := range def.Fields {
		if !def.IsRequired(f) && !flagged[f] {
			errs.Delete(f)
		}
	}

	s.state.Errors = errs
	if !valid {
		s.logger.Info("step validation failed", map[string]any{
			"step":   step,
			"fields": fieldNames(errs.Fields()),
		})
	}
	return valid
}

// NextStep validates the current step and, when it passes and a later step
// exists, advances after the settle delay. It returns false without changing
// the step when validation fails, the wizard is on the last step, another
// transition is in flight, or ctx is done before the delay elapses.
func (s *Store) NextStep(ctx context.Context) bool {
	s.mu.Lock()
	if s.state.StepChanging {
		s.mu.Unlock()
		s.logger.Debug("transition rejected: already in flight", nil)
		return false
	}
	valid := s.validateCurrentStepLocked()
	from := s.state.CurrentStep
	if !valid || from >= router.Last {
		snap := s.state.clone()
		s.mu.Unlock()
		s.fire(ctx, StepValidated, &HookContext{Valid: valid, State: snap})
		return false
	}
	s.state.StepChanging = true
	s.gen++
	gen := s.gen
	snap := s.state.clone()
	s.mu.Unlock()

	s.fire(ctx, StepValidated, &HookContext{Valid: true, State: snap})
	return s.transition(ctx, gen, from, from+1, snap)
}

// PreviousStep moves back one step after the settle delay. No validation is
// performed. It returns false on the first step or while another transition
// is in flight.
func (s *Store) PreviousStep(ctx context.Context) bool {
	s.mu.Lock()
	from := s.state.CurrentStep
	if s.state.StepChanging || from <= router.First {
		s.mu.Unlock()
		return false
	}
	s.state.StepChanging = true
	s.gen++
	gen := s.gen
	snap := s.state.clone()
	s.mu.Unlock()

	return s.transition(ctx, gen, from, from-1, snap)
}

// transition commits to after the settle delay, unless the store was reset
// or another transition started since gen was taken.
func (s *Store) transition(ctx context.Context, gen uint64, from, to int, snap State) bool {
	s.fire(ctx, BeforeTransition, &HookContext{From: from, To: to, State: snap})

	timer := time.NewTimer(s.settleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.mu.Lock()
		if s.gen == gen {
			s.state.StepChanging = false
		}
		s.mu.Unlock()
		s.logger.Warn("transition cancelled", map[string]any{"from": from, "to": to, "error": ctx.Err().Error()})
		return false
	case <-timer.C:
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.logger.Debug("transition superseded", map[string]any{"from": from, "to": to})
		return false
	}
	s.state.CurrentStep = to
	s.state.StepChanging = false
	snap = s.state.clone()
	s.mu.Unlock()

	s.logger.Info("step changed", map[string]any{"from": from, "to": to})
	s.fire(ctx, AfterTransition, &HookContext{From: from, To: to, State: snap})
	return true
}

// SetStep jumps directly to step n without validation or settle delay. Steps
// outside [1,3] are ignored and false is returned.
func (s *Store) SetStep(n int) bool {
	if n < router.First || n > router.Last {
		return false
	}
	s.mu.Lock()
	from := s.state.CurrentStep
	s.state.CurrentStep = n
	snap := s.state.clone()
	s.mu.Unlock()

	s.fire(context.Background(), AfterTransition, &HookContext{From: from, To: n, State: snap})
	return true
}

// SubmitSignUp validates the current step, re-checks terms consent, and hands
// the form to the submitter. On success the wizard is reset to its initial
// state. Failures are reported only through the result and the error map.
func (s *Store) SubmitSignUp(ctx context.Context) SubmitResult {
	s.mu.Lock()
	if s.state.StepChanging || s.state.Loading {
		s.mu.Unlock()
		return SubmitResult{Message: MsgBusy}
	}

	if !s.validateCurrentStepLocked() {
		snap := s.state.clone()
		s.mu.Unlock()
		s.fire(ctx, StepValidated, &HookContext{Valid: false, State: snap})
		return SubmitResult{Message: MsgCheckInput}
	}

	if !s.state.FormData.AgreeTerms {
		s.state.Errors.Set(form.AgreeTerms, schema.MsgAgreeTerms)
		s.mu.Unlock()
		return SubmitResult{Message: MsgAgreeTermsPrompt}
	}

	s.state.Loading = true
	data := s.state.FormData
	s.mu.Unlock()

	resp, err := s.submitter.Submit(ctx, data)
	if err != nil || !resp.Success {
		s.mu.Lock()
		s.state.Loading = false
		s.mu.Unlock()

		msg := resp.Message
		if err != nil {
			s.logger.Error("submission failed", map[string]any{"error": err.Error()})
			msg = MsgSignUpFailed
		} else if msg == "" {
			msg = MsgSignUpFailed
		}
		s.logger.Info("submission rejected", map[string]any{"message": msg})
		return SubmitResult{Message: msg}
	}

	s.mu.Lock()
	s.resetLocked()
	snap := s.state.clone()
	s.mu.Unlock()

	result := SubmitResult{Success: true, Message: MsgSignUpComplete, AccountID: resp.AccountID}
	s.logger.Info("sign up submitted", map[string]any{"account_id": resp.AccountID})
	s.fire(ctx, Submitted, &HookContext{Result: &result, State: snap})
	return result
}

// resetLocked restores the initial state and orphans any pending transition.
func (s *Store) resetLocked() {
	s.state = initialState()
	s.gen++
}

// Reset restores the initial state unconditionally.
func (s *Store) Reset() {
	s.mu.Lock()
	s.resetLocked()
	snap := s.state.clone()
	s.mu.Unlock()

	s.fire(context.Background(), StateReset, &HookContext{State: snap})
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
}

// SetError records msg against field.
func (s *Store) SetError(field form.Field, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Errors.Set(field, msg)
}

// ClearError removes field's error.
func (s *Store) ClearError(field form.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Errors.Delete(field)
}

// ClearAllErrors empties the error map.
func (s *Store) ClearAllErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Errors = form.NewErrorMap()
}

// IsStepValid reports whether every required field of the current step is
// filled and has no error.
func (s *Store) IsStepValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isStepValidLocked()
}

func (s *Store) isStepValidLocked() bool {
	def, ok := s.Router().Lookup(s.state.CurrentStep)
	if !ok {
		return false
	}
	for _, f := range def.Required {
		if !s.state.FormData.IsFilled(f) || s.state.Errors.Has(f) {
			return false
		}
	}
	return true
}

// CanProceed reports whether the next or submit action should be enabled.
func (s *Store) CanProceed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isStepValidLocked() && !s.state.Loading && !s.state.StepChanging
}

// Progress returns the completed fraction of the wizard, current step over
// the number of steps.
func (s *Store) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.state.CurrentStep) / float64(router.Last)
}

func (s *Store) fire(ctx context.Context, point HookPoint, hctx *HookContext) {
	if err := s.hooks.Fire(ctx, point, hctx); err != nil {
		s.logger.Warn("hook failed", map[string]any{"hook": point.String(), "error": err.Error()})
	}
}

func fieldNames(fields []form.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

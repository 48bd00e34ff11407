// Package validate runs field and step validation for the signup wizard and
// checks config and answers documents against their JSON Schemas.
package validate

import (
	"time"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/router"
	"github.com/jskinn96/signup/schema"
)

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	Valid   bool
	Message string
}

// Issue is a single failing field within a step.
type Issue struct {
	Field   form.Field
	Message string
}

// StepResult is the outcome of validating a whole step.
type StepResult struct {
	Valid  bool
	Issues []Issue
}

// Engine validates values against the step router's schemas.
type Engine struct {
	router *router.Router
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the reference clock used for age checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine over r.
func NewEngine(r *router.Router, opts ...Option) *Engine {
	e := &Engine{router: r, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Router returns the engine's step router.
func (e *Engine) Router() *router.Router {
	return e.router
}

func (e *Engine) env() schema.Env {
	return schema.Env{Now: e.now()}
}

// ValidateField validates value as field under step's schema. Fields outside
// the step schema, and unknown steps, are vacuously valid.
func (e *Engine) ValidateField(field form.Field, value any, step int) FieldResult {
	def, ok := e.router.Lookup(step)
	if !ok || !def.Has(field) {
		return FieldResult{Valid: true}
	}
	fs, ok := e.router.Registry().Lookup(field)
	if !ok {
		return FieldResult{Valid: true}
	}
	if msg, ok := fs.Validate(value, e.env()); !ok {
		return FieldResult{Message: msg}
	}
	return FieldResult{Valid: true}
}

// ValidateStep runs the composite schema of step against data. Every field is
// checked and its first failure reported. An unknown step is invalid with no
// issues.
func (e *Engine) ValidateStep(step int, data router.Data) StepResult {
	def, ok := e.router.Lookup(step)
	if !ok {
		return StepResult{}
	}

	env := e.env()
	reg := e.router.Registry()
	var issues []Issue

	for _, f := range def.Fields {
		fs, ok := reg.Lookup(f)
		if !ok {
			continue
		}
		v, present := data[f]
		if !present {
			if fs.Optional {
				continue
			}
			v = zeroValue(fs.Kind)
		}
		if msg, ok := fs.Validate(v, env); !ok {
			issues = append(issues, Issue{Field: f, Message: msg})
		}
	}

	return StepResult{Valid: len(issues) == 0, Issues: issues}
}

func zeroValue(k schema.Kind) any {
	if k == schema.KindBool {
		return false
	}
	return ""
}

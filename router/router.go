// Package router maps wizard step numbers to the fields they own and the
// composite schema that validates them as a whole.
package router

import (
	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/schema"
)

// First and Last bound the step numbers.
const (
	First = 1
	Last  = 3
)

// Data is the slice of form values belonging to one step, keyed by field.
// Fields absent from the map were not extracted.
type Data map[form.Field]any

// Definition describes one step.
type Definition struct {
	Number      int
	Title       string
	Description string
	// Required lists the fields that must be filled and valid to pass the step.
	Required []form.Field
	// Fields lists every field in the step schema, optional ones included, in
	// display order.
	Fields []form.Field
}

// IsRequired reports whether f is required by the step.
func (d Definition) IsRequired(f form.Field) bool {
	for _, r := range d.Required {
		if r == f {
			return true
		}
	}
	return false
}

// Has reports whether f belongs to the step schema.
func (d Definition) Has(f form.Field) bool {
	for _, s := range d.Fields {
		if s == f {
			return true
		}
	}
	return false
}

// Router resolves step numbers to definitions.
type Router struct {
	registry *schema.Registry
	defs     map[int]Definition
}

// New returns a router over the three signup steps.
func New(reg *schema.Registry) *Router {
	r := &Router{
		registry: reg,
		defs:     make(map[int]Definition, Last),
	}
	for _, d := range definitions() {
		r.defs[d.Number] = d
	}
	return r
}

// Registry returns the field schema registry the router was built on.
func (r *Router) Registry() *schema.Registry {
	return r.registry
}

// Lookup returns the definition of step n.
func (r *Router) Lookup(n int) (Definition, bool) {
	d, ok := r.defs[n]
	return d, ok
}

// Steps returns all definitions in order.
func (r *Router) Steps() []Definition {
	out := make([]Definition, 0, len(r.defs))
	for n := First; n <= Last; n++ {
		out = append(out, r.defs[n])
	}
	return out
}

// Extract returns the values of every schema field of step n. Unknown steps
// yield an empty Data.
func (r *Router) Extract(n int, fd form.FormData) Data {
	d, ok := r.defs[n]
	if !ok {
		return Data{}
	}
	out := make(Data, len(d.Fields))
	for _, f := range d.Fields {
		if v, ok := fd.Value(f); ok {
			out[f] = v
		}
	}
	return out
}

func definitions() []Definition {
	return []Definition{
		{
			Number:      1,
			Title:       "Welcome",
			Description: "Enter your account details",
			Required:    []form.Field{form.Username, form.Password, form.Email, form.Phone},
			Fields:      []form.Field{form.Username, form.Password, form.Email, form.Phone},
		},
		{
			Number:      2,
			Title:       "About You",
			Description: "Tell us about yourself",
			Required:    []form.Field{form.BirthDate, form.Gender, form.Nickname},
			Fields:      []form.Field{form.BirthDate, form.Gender, form.Nickname, form.Interests},
		},
		{
			Number:      3,
			Title:       "Connect",
			Description: "Link your social accounts",
			Required:    []form.Field{form.AgreeTerms},
			Fields:      []form.Field{form.Facebook, form.Instagram, form.GitHub, form.AgreeTerms, form.AgreeMarketing},
		},
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/jskinn96/signup/accounts"
	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/router"
	"github.com/jskinn96/signup/schema"
	"github.com/jskinn96/signup/validate"
	"github.com/jskinn96/signup/wizard"
)

var errPromptAborted = errors.New("prompt aborted")

// prompter asks one question at a time on a line-oriented terminal.
type prompter interface {
	Text(label, defaultVal string, masked bool, check func(string) error) (string, error)
	Select(label string, items []string) (int, error)
	Confirm(label string) (bool, error)
}

type promptUI struct{}

func (promptUI) Text(label, defaultVal string, masked bool, check func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  defaultVal,
		Validate: check,
	}
	if masked {
		p.Mask = '*'
		p.Default = ""
	}
	result, err := p.Run()
	if err != nil {
		return "", promptError(label, err)
	}
	return result, nil
}

func (promptUI) Select(label string, items []string) (int, error) {
	s := promptui.Select{Label: label, Items: items}
	idx, _, err := s.Run()
	if err != nil {
		return -1, promptError(label, err)
	}
	return idx, nil
}

func (promptUI) Confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := p.Run(); err != nil {
		// promptui reports "No" as ErrAbort too; only ^C is a real abort.
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, errPromptAborted
		}
		return false, nil
	}
	return true, nil
}

func promptError(label string, err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errPromptAborted
	}
	return fmt.Errorf("prompt %q failed: %w", label, err)
}

// runPrompts drives store through every step with line prompts. Answers are
// checked as they are typed; a step that still fails its gate is asked again,
// as is the whole form after a rejected submission when the user agrees.
func runPrompts(ctx context.Context, store *wizard.Store, p prompter, out io.Writer) (wizard.SubmitResult, error) {
	for {
		snap := store.Snapshot()
		def, ok := store.Router().Lookup(snap.CurrentStep)
		if !ok {
			return wizard.SubmitResult{}, fmt.Errorf("unknown step %d", snap.CurrentStep)
		}

		fmt.Fprintf(out, "\nStep %d of %d: %s\n", def.Number, router.Last, def.Title)
		if def.Description != "" {
			fmt.Fprintln(out, def.Description)
		}
		for _, f := range def.Fields {
			v, err := askField(p, store.Engine(), store.Router().Registry().MustLookup(f), def, snap.FormData)
			if err != nil {
				return wizard.SubmitResult{}, err
			}
			store.SetField(f, v)
		}

		if def.Number < router.Last {
			if !store.NextStep(ctx) {
				if err := ctx.Err(); err != nil {
					return wizard.SubmitResult{}, err
				}
				fmt.Fprintln(out, wizard.MsgCheckInput)
				printErrors(out, store.Snapshot().Errors)
			}
			continue
		}

		res := store.SubmitSignUp(ctx)
		if res.Success {
			return res, nil
		}
		fmt.Fprintln(out, res.Message)
		if res.Message == accounts.MsgUsernameTaken {
			store.SetStep(router.First)
			store.SetError(form.Username, res.Message)
		}
		printErrors(out, store.Snapshot().Errors)

		again, err := p.Confirm("Try again")
		if err != nil || !again {
			return res, err
		}
	}
}

// askField asks for one field using the control that fits its kind. Text
// answers are validated against the field's rules before they are accepted.
func askField(p prompter, eng *validate.Engine, fs schema.FieldSchema, def router.Definition, fd form.FormData) (any, error) {
	label := fs.Label
	if !def.IsRequired(fs.Field) {
		label += " (optional)"
	}

	switch {
	case fs.Field == form.Gender:
		opts := form.GenderOptions()
		labels := make([]string, len(opts))
		for i, o := range opts {
			labels[i] = o.Label
		}
		i, err := p.Select(label, labels)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(opts) {
			return form.GenderUnset, nil
		}
		return opts[i].Value, nil

	case fs.Kind == schema.KindBool:
		switch fs.Field {
		case form.AgreeTerms:
			label = "I agree to the terms of service"
		case form.AgreeMarketing:
			label = "Send me news and offers (optional)"
		}
		return p.Confirm(label)
	}

	current, _ := fd.Value(fs.Field)
	defaultVal, _ := current.(string)
	check := func(s string) error {
		if fs.Normalize != nil {
			s = fs.Normalize(s)
		}
		if res := eng.ValidateField(fs.Field, strings.TrimSpace(s), def.Number); !res.Valid {
			return errors.New(res.Message)
		}
		return nil
	}
	answer, err := p.Text(label, defaultVal, fs.Field == form.Password, check)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(answer), nil
}

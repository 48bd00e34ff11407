package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/validate"
)

// loadAnswers reads a YAML or JSON answers file, checks it against the answers
// schema and decodes it.
func loadAnswers(path string) (form.FormData, error) {
	var fd form.FormData
	data, err := os.ReadFile(path)
	if err != nil {
		return fd, fmt.Errorf("reading answers %s: %w", path, err)
	}

	errs, err := validate.Document(validate.AnswersDocument, data)
	if err != nil {
		return fd, err
	}
	if len(errs) > 0 {
		return fd, fmt.Errorf("invalid answers file %s: %s", path, strings.Join(errs, "; "))
	}

	if err := yaml.Unmarshal(data, &fd); err != nil {
		return fd, fmt.Errorf("parsing answers %s: %w", path, err)
	}
	return fd, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func stdout(cmd *cobra.Command) io.Writer {
	if cmd != nil {
		return cmd.OutOrStdout()
	}
	return os.Stdout
}

func stderr(cmd *cobra.Command) io.Writer {
	if cmd != nil {
		return cmd.ErrOrStderr()
	}
	return os.Stderr
}

// printErrors writes one line per field error in form order.
func printErrors(w io.Writer, errs *form.ErrorMap) {
	for _, f := range form.AllFields {
		if msg, ok := errs.Get(f); ok {
			fmt.Fprintf(w, "ERROR: %s: %s\n", f, msg)
		}
	}
}

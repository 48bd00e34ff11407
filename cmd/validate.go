package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jskinn96/signup/router"
	"github.com/jskinn96/signup/validate"
	"github.com/jskinn96/signup/wizard"
)

var (
	validateFrom string
	validateStep int
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate signup.yaml, or an answers file without submitting it",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFrom, "from", "", "answers file to check instead of the config")
	validateCmd.Flags().IntVar(&validateStep, "step", 0, "only check this step (1-3)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateFrom == "" {
		return validateConfigFile(cmd)
	}
	if validateStep != 0 && (validateStep < router.First || validateStep > router.Last) {
		return fmt.Errorf("--step must be between %d and %d", router.First, router.Last)
	}

	data, err := loadAnswers(validateFrom)
	if err != nil {
		return err
	}

	// A throwaway store applies the same normalization as the wizard.
	store := wizard.New(wizard.WithSettleDelay(0))
	for n := router.First; n <= router.Last; n++ {
		store.SetStep(n)
		def, _ := store.Router().Lookup(n)
		for _, f := range def.Fields {
			if v, ok := data.Value(f); ok {
				store.SetField(f, v)
			}
		}
	}

	failed := 0
	for n := router.First; n <= router.Last; n++ {
		if validateStep != 0 && n != validateStep {
			continue
		}
		store.SetStep(n)
		def, _ := store.Router().Lookup(n)
		if store.ValidateCurrentStep() {
			fmt.Fprintf(stdout(cmd), "step %d (%s): ok\n", n, def.Title)
			continue
		}
		failed++
		fmt.Fprintf(stdout(cmd), "step %d (%s): failed\n", n, def.Title)
		errs := store.Snapshot().Errors
		for _, f := range def.Fields {
			if msg, ok := errs.Get(f); ok {
				fmt.Fprintf(stderr(cmd), "ERROR: %s: %s\n", f, msg)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d step(s) with errors", failed)
	}
	fmt.Fprintln(stdout(cmd), "Validation passed.")
	return nil
}

func validateConfigFile(cmd *cobra.Command) error {
	data, err := os.ReadFile(cfgFile)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", cfgFile, err)
	}
	errs, err := validate.Document(validate.ConfigDocument, data)
	if err != nil {
		return err
	}
	for _, e := range errs {
		fmt.Fprintf(stderr(cmd), "ERROR: %s\n", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
	fmt.Fprintln(stdout(cmd), "Validation passed.")
	return nil
}

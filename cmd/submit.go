package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jskinn96/signup/wizard"
)

var submitFrom string

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Sign up headlessly from an answers file",
	Long:  "submit replays an answers file through the wizard one step at a time, exactly as the interactive wizard would, and stores the account when every step passes.",
	RunE:  runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitFrom, "from", "", "answers file (YAML or JSON)")
	_ = submitCmd.MarkFlagRequired("from")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Replay does not animate anything.
	cfg.SettleDelay = 0

	logger, closeLog, err := newLogger(cfg, stderr(cmd))
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	data, err := loadAnswers(submitFrom)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	sess, err := newSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck

	out := wizard.Replay(ctx, sess.store, data)
	if !out.Result.Success {
		printErrors(stderr(cmd), out.Errors)
		return fmt.Errorf("sign up failed at step %d: %s", out.Step, out.Result.Message)
	}

	fmt.Fprintf(stdout(cmd), "%s Account ID: %s\n", out.Result.Message, out.Result.AccountID)
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jskinn96/signup/accounts"
	"github.com/jskinn96/signup/config"
	"github.com/jskinn96/signup/internal/tui"
	"github.com/jskinn96/signup/internal/tui/steps"
	"github.com/jskinn96/signup/logging"
	"github.com/jskinn96/signup/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the interactive sign up wizard",
	Long: "Run the interactive sign up wizard. The default is a full-screen terminal UI; " +
		"--plain asks one question per line instead.",
	RunE: runWizard,
}

var wizardPlain bool

func init() {
	wizardCmd.Flags().BoolVar(&wizardPlain, "plain", false, "ask one question per line instead of the full-screen UI")
}

// session bundles a wizard store with the account database behind it.
type session struct {
	store    *wizard.Store
	accounts *accounts.Store
	close    func() error
}

func newSession(ctx context.Context, cfg *config.Config, logger logging.Logger) (*session, error) {
	acc, err := accounts.Open(ctx, cfg.Database,
		accounts.WithLogger(logger.With(map[string]any{"component": "accounts"})))
	if err != nil {
		return nil, err
	}

	hooks := wizard.NewHookRegistry()
	hooks.Register(wizard.StepValidated, func(_ context.Context, h *wizard.HookContext) error {
		logger.Debug("step validated", map[string]any{
			"step":   h.State.CurrentStep,
			"valid":  h.Valid,
			"errors": h.State.Errors.Len(),
		})
		return nil
	})

	store := wizard.New(
		wizard.WithSubmitter(acc),
		wizard.WithSettleDelay(cfg.SettleDelay),
		wizard.WithLogger(logger),
		wizard.WithHooks(hooks),
	)
	return &session{store: store, accounts: acc, close: acc.Close}, nil
}

func runWizard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the wizard needs an interactive terminal; use 'signup submit --from <file>' instead")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess, err := newSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck

	if wizardPlain {
		res, err := runPrompts(ctx, sess.store, promptUI{}, os.Stdout)
		if errors.Is(err, errPromptAborted) {
			fmt.Fprintln(os.Stderr, "Sign up cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		if res.Success {
			fmt.Printf("%s Account ID: %s\n", res.Message, res.AccountID)
		}
		return nil
	}

	styles := tui.NewStyleSet(tui.DetectTheme(cfg.Theme))
	model := tui.NewWizardModel(ctx, sess.store, styles.Theme, steps.All(styles, sess.store), appVersion)

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	wm, ok := final.(tui.WizardModel)
	if !ok {
		return fmt.Errorf("unexpected wizard model %T", final)
	}
	if errors.Is(wm.Err(), tui.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "Sign up cancelled.")
		return nil
	}
	if res := wm.Result(); res != nil {
		fmt.Printf("%s Account ID: %s\n", res.Message, res.AccountID)
	}
	return nil
}

// Package cmd implements the signup CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jskinn96/signup/config"
	"github.com/jskinn96/signup/logging"
)

var (
	cfgFile       string
	verbose       bool
	dbOverride    string
	themeOverride string

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "signup",
	Short: "A three-step account sign up wizard",
	Long:  "signup walks a user through account, profile and consent steps, validating each before moving on, and stores the finished account.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "account database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "TUI color theme: dark, light, or auto")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(accountsCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("signup %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dbOverride != "" {
		cfg.Database = dbOverride
	}
	if themeOverride != "" {
		cfg.Theme = themeOverride
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	return cfg, nil
}

// newLogger opens the configured log destination. Without a log file, logs go
// to stderr only when verbose; the TUI owns the terminal otherwise.
func newLogger(cfg *config.Config, fallback io.Writer) (logging.Logger, func() error, error) {
	noop := func() error { return nil }
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("opening log file %s: %w", cfg.Log.File, err)
		}
		return logging.NewJSONLogger(f, cfg.Log.Verbose), f.Close, nil
	}
	if cfg.Log.Verbose && fallback != nil {
		return logging.NewJSONLogger(fallback, true), noop, nil
	}
	return logging.Nop(), noop, nil
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"aiup/internal/config"
	"aiup/internal/system"
	"aiup/internal/tools"
	appver "aiup/internal/version"
)

var (
	toolNames []string
	dryRun    bool
	jsonOut   bool
	logLevel  string

	// cfg is loaded once per invocation before any command runs.
	cfg config.Config
)

// newEffects builds the system-effects layer; tests swap it for a fake.
var newEffects = func(out io.Writer) tools.Prober {
	return &tools.System{Output: out, Logger: system.Logger}
}

var rootCmd = &cobra.Command{
	Use:   "aiup",
	Short: "aiup – keep AI coding CLIs up to date",
	Long: "aiup checks npm for newer releases of AI coding CLIs and installs them, " +
		"or runs a tool's own self-update command. Without --tool every registered tool is updated.",
	Example: "  aiup\n  aiup --tool claude --tool codex\n  aiup --dry-run --json",
	Version: appver.AppVersion,
	Args:    cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := system.SetLevel(cfg.LogLevel); err != nil {
			return err
		}
		return system.SetLevel(logLevel)
	},
	// Default action: update tools
	RunE:          runUpdate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringArrayVarP(&toolNames, "tool", "t", nil, "update only this tool (repeatable)")
	f.BoolVar(&dryRun, "dry-run", false, "check versions without installing or running updaters")
	f.BoolVar(&jsonOut, "json", false, "print the report as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	// keep output simple for scripting
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// exitError carries a process exit code for failures already reported to the user.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// registry merges config-declared tools into the built-in table.
func registry() (*tools.Registry, error) {
	reg, err := tools.NewRegistry(tools.Builtin, cfg.Tools...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}
	return reg, nil
}

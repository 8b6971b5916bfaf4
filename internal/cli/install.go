package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"aiup/internal/shellrc"
	"aiup/internal/system"
)

var (
	installAlias string
	installRC    string
	installYes   bool
)

func init() {
	f := installCmd.Flags()
	f.StringVar(&installAlias, "alias", "ai-update", "alias name to define")
	f.StringVar(&installRC, "rc", "", "shell run-control file (default: derived from $SHELL)")
	f.BoolVarP(&installYes, "yes", "y", false, "do not prompt for confirmation")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Add a shell alias that runs aiup",
	Long:  "Writes a marked alias block into your shell run-control file. Re-running replaces the block instead of adding another.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exe, err := os.Executable()
		if err != nil {
			return err
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot determine user home directory")
		}
		rc := installRC
		if rc == "" {
			rc = shellrc.RCFile(home, os.Getenv("SHELL"))
		}

		if !installYes {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return errors.New("not a terminal; pass --yes to install without prompting")
			}
			ok, err := confirmInstall(home, &rc, exe)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "• cancelled")
				return nil
			}
		}

		changed, err := shellrc.Install(rc, installAlias, exe)
		if err != nil {
			return err
		}
		system.Logger.Debug("alias", "rc", rc, "name", installAlias, "target", exe, "changed", changed)
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "• alias %s already present in %s\n", installAlias, rc)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ alias %s added to %s\n", installAlias, rc)
		fmt.Fprintf(cmd.OutOrStdout(), "  run: source %s\n", rc)
		return nil
	},
}

// confirmInstall lets the user pick the rc file and confirm.
func confirmInstall(home string, rc *string, exe string) (bool, error) {
	green := lipgloss.Color("#4d9375")
	theme := huh.ThemeCharm()
	theme.Focused.Title = theme.Focused.Title.Foreground(green).Bold(true)
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)

	opts := []huh.Option[string]{}
	seen := map[string]bool{}
	for _, p := range append([]string{*rc}, shellrc.Candidates(home)...) {
		if seen[p] {
			continue
		}
		seen[p] = true
		opts = append(opts, huh.NewOption(p, p))
	}

	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Shell config file").
				Options(opts...).
				Value(rc),
			huh.NewConfirm().
				Title(fmt.Sprintf("Add alias %s → %s?", installAlias, exe)).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(theme).WithWidth(72)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

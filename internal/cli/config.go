package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aiup/internal/config"
)

func init() {
	configCmd.AddCommand(configPathCmd, configSchemaCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

const exampleConfig = `# aiup configuration
# log_level: info
# timeouts:
#   lookup: 60s
#   install: 10m
# tools:
#   - name: amp
#     display_name: Amp
#     package: "@sourcegraph/amp"
#   - name: droid
#     executable: droid
#     subcommand: update
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the aiup configuration file",
	// config subcommands must work even when the file is broken
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := config.MarshalSchema(config.Schema())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented example config when none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		if _, err := os.Stat(p); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "• keeping existing config: %s\n", p)
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(exampleConfig), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ created %s\n", p)
		return nil
	},
}

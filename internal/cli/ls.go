package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"aiup/internal/tools"
	"aiup/internal/ui"
)

func init() {
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered tools with installed and latest versions",
	Long:  "Shows, for every registered tool, whether it is installed, its current version and the latest npm release. Nothing is installed.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		p := newEffects(nil)
		rows := make([]ui.StatusRow, 0, len(reg.Names()))
		for _, t := range reg.Tools() {
			rows = append(rows, ui.StatusRow{Tool: t, Result: tools.CheckTool(cmd.Context(), p, t, cfg.LookupTimeout)})
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.StatusTable(rows))
		return nil
	},
}

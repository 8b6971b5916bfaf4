package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"aiup/internal/system"
	"aiup/internal/tools"
	"aiup/internal/ui"
)

type jsonOutcome struct {
	tools.Outcome
	Error string `json:"error,omitempty"`
}

type jsonReport struct {
	DryRun   bool          `json:"dry_run,omitempty"`
	Outcomes []jsonOutcome `json:"outcomes"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Errors   int           `json:"errors"`
}

func runUpdate(cmd *cobra.Command, args []string) error {
	reg, err := registry()
	if err != nil {
		return err
	}
	names := toolNames
	if len(names) == 0 {
		names = reg.Names()
	}

	out := cmd.OutOrStdout()
	var effects tools.Effects
	if jsonOut {
		// updater output would corrupt the JSON document
		effects = newEffects(nil)
	} else {
		effects = newEffects(out)
	}
	if dryRun {
		effects = tools.DryRun{Effects: effects, Logger: system.Logger}
	}

	orch := &tools.Orchestrator{
		Registry:       reg,
		Effects:        effects,
		Logger:         system.Logger,
		LookupTimeout:  cfg.LookupTimeout,
		InstallTimeout: cfg.InstallTimeout,
	}
	if !jsonOut {
		if dryRun {
			fmt.Fprintln(out, ui.DryRunBanner())
		}
		orch.OnStart = func(i, n int, t tools.Tool) {
			fmt.Fprintln(out, ui.ProgressLine(i, n, t))
		}
		orch.OnOutcome = func(o tools.Outcome) {
			fmt.Fprintln(out, ui.OutcomeLine(o, dryRun))
		}
	}

	rep, err := orch.Run(cmd.Context(), names)
	if err != nil {
		return err
	}

	if jsonOut {
		jr := jsonReport{DryRun: dryRun, Failed: rep.Failed(), Skipped: rep.Count(tools.StatusSkipped), Errors: rep.Errors()}
		for _, o := range rep.Outcomes {
			jo := jsonOutcome{Outcome: o}
			if o.Err != nil {
				jo.Error = o.Err.Error()
			}
			jr.Outcomes = append(jr.Outcomes, jo)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jr); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.SummaryLine(rep))
	}

	if code := rep.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

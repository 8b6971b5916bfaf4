package ui

import (
	"fmt"
	"strings"

	"aiup/internal/tools"
)

// ProgressLine announces the tool about to be processed.
func ProgressLine(index, total int, t tools.Tool) string {
	return fmt.Sprintf("[%d/%d] %s", index+1, total, AccentBold().Render(t.Label()))
}

// DryRunBanner heads the output of a run that changes nothing.
func DryRunBanner() string {
	return warnStyle().Render("dry run: nothing will be installed or updated")
}

// OutcomeLine renders one tool outcome, indented under its progress line.
// With dryRun set, installs and updates are marked as not performed.
func OutcomeLine(o tools.Outcome, dryRun bool) string {
	var b strings.Builder
	b.WriteString("  ")
	switch o.Status {
	case tools.StatusInstalled:
		b.WriteString(okStyle().Render(IconOK() + " installed"))
		if o.To != "" {
			b.WriteString(" " + MutedStyle().Render(o.To))
		}
	case tools.StatusUpdated:
		b.WriteString(okStyle().Render(IconOK() + " updated"))
		if o.From != "" && o.To != "" {
			b.WriteString(" " + MutedStyle().Render(fmt.Sprintf("%s %s %s", o.From, IconArrow(), o.To)))
		}
	case tools.StatusUpToDate:
		b.WriteString(infoStyle().Render(IconOK() + " up to date"))
		if o.To != "" {
			b.WriteString(" " + MutedStyle().Render(o.To))
		}
	case tools.StatusSkipped:
		b.WriteString(warnStyle().Render(IconSkip() + " skipped: " + o.Reason))
	case tools.StatusFailed:
		b.WriteString(errStyle().Render(IconFail() + " failed: " + o.Reason))
		if o.Err != nil {
			b.WriteString(" " + MutedStyle().Render("("+o.Err.Error()+")"))
		}
	}
	if dryRun && (o.Status == tools.StatusInstalled || o.Status == tools.StatusUpdated) {
		b.WriteString(" " + warnStyle().Render("(dry run)"))
	}
	return b.String()
}

// SummaryLine renders the closing tally of a run.
func SummaryLine(r tools.Report) string {
	line := fmt.Sprintf("Summary: %d tool(s), %d updated, %d installed, %d up to date, %d skipped, %d failed, %d error(s)",
		len(r.Outcomes),
		r.Count(tools.StatusUpdated),
		r.Count(tools.StatusInstalled),
		r.Count(tools.StatusUpToDate),
		r.Count(tools.StatusSkipped),
		r.Failed(),
		r.Errors(),
	)
	if r.Errors() > 0 {
		return errStyle().Render(line)
	}
	return okStyle().Render(line)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"aiup/internal/tools"
)

// StatusRow is one line of the `ls` table.
type StatusRow struct {
	Tool   tools.Tool
	Result tools.CheckResult
}

// StatusTable renders tool status rows with aligned name and kind columns.
func StatusTable(rows []StatusRow) string {
	nameW, kindW := 0, 0
	for _, r := range rows {
		nameW = max(nameW, runewidth.StringWidth(r.Tool.Name))
		kindW = max(kindW, runewidth.StringWidth(kindLabel(r.Tool)))
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(AccentBold().Render(runewidth.FillRight(r.Tool.Name, nameW)))
		b.WriteString("  ")
		b.WriteString(MutedStyle().Render(runewidth.FillRight(kindLabel(r.Tool), kindW)))
		b.WriteString("  ")
		b.WriteString(statusCell(r.Result))
		b.WriteString("\n")
	}
	return b.String()
}

func kindLabel(t tools.Tool) string {
	if t.Strategy == nil {
		return "?"
	}
	return string(t.Strategy.Kind()) + ":" + t.Strategy.Target()
}

func statusCell(res tools.CheckResult) string {
	if !res.Installed {
		s := warnStyle().Render("not installed")
		if strings.TrimSpace(res.Err) != "" && res.Err != tools.ReasonNotFound {
			s += MutedStyle().Render(fmt.Sprintf(" (%s)", res.Err))
		}
		if res.Latest != "" {
			s += MutedStyle().Render(fmt.Sprintf(" · latest %s", res.Latest))
		}
		return s
	}
	ver := strings.TrimSpace(res.Version)
	if ver == "" {
		ver = "?"
	}
	// update hint: aiup reinstalls whenever the versions differ
	switch {
	case res.Latest != "" && !tools.Current(ver, res.Latest):
		return warnStyle().Render(fmt.Sprintf("%s %s %s available", ver, IconArrow(), res.Latest))
	case res.Latest != "":
		return okStyle().Render(ver) + MutedStyle().Render(" (latest)")
	}
	return okStyle().Render(ver) + MutedStyle().Render(" · "+res.Source)
}

package tools

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Orchestrator brings a selection of registry tools up to date, one at a time.
type Orchestrator struct {
	Registry *Registry
	Effects  Effects
	Logger   *log.Logger

	// LookupTimeout bounds each version query; InstallTimeout bounds each
	// install or self-update. Zero means no limit.
	LookupTimeout  time.Duration
	InstallTimeout time.Duration

	// OnStart is called before a tool is processed (index is 0-based).
	OnStart func(index, total int, t Tool)
	// OnOutcome is called as soon as a tool reaches its outcome.
	OnOutcome func(o Outcome)
}

// Report aggregates the outcomes of one run.
type Report struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Count returns the number of outcomes with status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the number of Failed outcomes.
func (r Report) Failed() int { return r.Count(StatusFailed) }

// Errors counts failures plus tools skipped because npm was unavailable.
func (r Report) Errors() int {
	n := r.Failed()
	for _, o := range r.Outcomes {
		if o.Status == StatusSkipped && o.Reason == ReasonManagerUnavailable {
			n++
		}
	}
	return n
}

// ExitCode is 1 iff any tool failed.
func (r Report) ExitCode() int {
	if r.Failed() > 0 {
		return 1
	}
	return 0
}

// Run resolves names against the registry and processes each tool in order.
// Resolution errors abort before any system effect; per-tool problems are
// recorded as outcomes and never stop the run.
func (o *Orchestrator) Run(ctx context.Context, names []string) (Report, error) {
	selected, err := o.Registry.Resolve(names)
	if err != nil {
		return Report{}, err
	}

	managerOK := true
	for _, t := range selected {
		if t.Strategy.Kind() == KindRegistryVersioned {
			managerOK = o.Effects.PackageManagerAvailable()
			if !managerOK {
				o.logger().Warn("npm not found in PATH; skipping registry tools")
			}
			break
		}
	}

	rep := Report{Outcomes: make([]Outcome, 0, len(selected))}
	for i, t := range selected {
		if o.OnStart != nil {
			o.OnStart(i, len(selected), t)
		}
		var out Outcome
		switch s := t.Strategy.(type) {
		case RegistryVersioned:
			if !managerOK {
				out = Outcome{Tool: t.Name, Status: StatusSkipped, Reason: ReasonManagerUnavailable}
				break
			}
			out = o.updateRegistry(ctx, t, s)
		case SelfManaged:
			out = o.updateSelf(ctx, t, s)
		}
		o.logger().Debug("tool done", "tool", t.Name, "status", out.Status, "reason", out.Reason)
		rep.Outcomes = append(rep.Outcomes, out)
		if o.OnOutcome != nil {
			o.OnOutcome(out)
		}
	}
	return rep, nil
}

func (o *Orchestrator) updateRegistry(ctx context.Context, t Tool, s RegistryVersioned) Outcome {
	out := Outcome{Tool: t.Name}

	lctx, cancel := withTimeout(ctx, o.LookupTimeout)
	latest, err := o.Effects.LatestVersion(lctx, s.Package)
	cancel()
	latest = strings.TrimSpace(latest)
	if err != nil || latest == "" {
		out.Status, out.Reason, out.Err = StatusFailed, ReasonLatestUnavailable, err
		return out
	}

	lctx, cancel = withTimeout(ctx, o.LookupTimeout)
	installed, err := o.Effects.InstalledVersion(lctx, s.Package)
	cancel()
	if err != nil {
		o.logger().Warn("could not read installed version; treating as not installed", "tool", t.Name, "err", err)
		installed = ""
	}
	installed = strings.TrimSpace(installed)

	if Current(installed, latest) {
		out.Status, out.From, out.To = StatusUpToDate, installed, latest
		return out
	}

	ictx, cancel := withTimeout(ctx, o.InstallTimeout)
	err = o.Effects.InstallLatest(ictx, s.Package)
	cancel()
	if err != nil {
		out.Status, out.Reason, out.Err, out.From = StatusFailed, ReasonInstallFailed, err, installed
		return out
	}
	out.From, out.To = installed, latest
	if installed == "" {
		out.Status = StatusInstalled
	} else {
		out.Status = StatusUpdated
	}
	return out
}

func (o *Orchestrator) updateSelf(ctx context.Context, t Tool, s SelfManaged) Outcome {
	out := Outcome{Tool: t.Name}
	if !o.Effects.HasExecutable(s.Executable) {
		out.Status, out.Reason = StatusSkipped, ReasonNotFound
		return out
	}
	ictx, cancel := withTimeout(ctx, o.InstallTimeout)
	err := o.Effects.SelfUpdate(ictx, s.Executable, s.Command())
	cancel()
	if err != nil {
		out.Status, out.Reason, out.Err = StatusFailed, ReasonSelfUpdateFailed, err
		return out
	}
	out.Status = StatusUpdated
	return out
}

func (o *Orchestrator) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

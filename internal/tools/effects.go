package tools

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Effects is every system interaction the orchestrator performs.
type Effects interface {
	// PackageManagerAvailable reports whether npm can be invoked at all.
	PackageManagerAvailable() bool
	LatestVersion(ctx context.Context, pkg string) (string, error)
	// InstalledVersion returns "" with a nil error when pkg is not installed.
	InstalledVersion(ctx context.Context, pkg string) (string, error)
	InstallLatest(ctx context.Context, pkg string) error
	HasExecutable(name string) bool
	SelfUpdate(ctx context.Context, executable, subcommand string) error
}

// System performs real npm queries and runs real executables.
type System struct {
	// Output receives self-updater output, indented; nil discards it.
	Output io.Writer
	Logger *log.Logger
}

func (s *System) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

func (s *System) PackageManagerAvailable() bool { return lookPath("npm") }

func (s *System) LatestVersion(ctx context.Context, pkg string) (string, error) {
	v, err := NpmLatestVersion(ctx, pkg)
	s.logger().Debug("npm view", "package", pkg, "version", v, "err", err)
	return v, err
}

func (s *System) InstalledVersion(ctx context.Context, pkg string) (string, error) {
	v, err := NpmGlobalVersion(ctx, pkg)
	s.logger().Debug("npm ls -g", "package", pkg, "version", v, "err", err)
	return v, err
}

func (s *System) InstallLatest(ctx context.Context, pkg string) error {
	s.logger().Debug("npm install -g", "package", pkg)
	return NpmUpgradeLatest(ctx, pkg)
}

func (s *System) HasExecutable(name string) bool { return lookPath(name) }

// SelfUpdate runs `<executable> <subcommand>` and echoes its output.
func (s *System) SelfUpdate(ctx context.Context, executable, subcommand string) error {
	s.logger().Debug("self-update", "exec", executable, "subcommand", subcommand)
	out, err := runCmd(ctx, executable, subcommand)
	if s.Output != nil {
		// Always show output for transparency
		for _, line := range outputLines(out) {
			fmt.Fprintf(s.Output, "    %s\n", line)
		}
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", executable, subcommand, err)
	}
	return nil
}

// DryRun forwards queries to Effects and turns every change into a logged no-op.
type DryRun struct {
	Effects
	Logger *log.Logger
}

func (d DryRun) InstallLatest(_ context.Context, pkg string) error {
	if d.Logger != nil {
		d.Logger.Info("dry run: would install", "package", pkg+"@latest")
	}
	return nil
}

func (d DryRun) SelfUpdate(_ context.Context, executable, subcommand string) error {
	if d.Logger != nil {
		d.Logger.Info("dry run: would run", "cmd", executable+" "+subcommand)
	}
	return nil
}

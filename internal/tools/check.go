package tools

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// Prober is Effects plus reading the version of an executable in PATH.
type Prober interface {
	Effects
	ExecutableVersion(ctx context.Context, name string) (string, error)
}

var versionArgs = [][]string{{"--version"}, {"-v"}, {"version"}}

var verRe = regexp.MustCompile(`(?i)\bv?(\d+\.\d+\.\d+(?:[\w\.-]+)?)\b`)

// versionIn returns the first semantic version in command output, preferring
// the first line ("claude 1.0.113 (Claude Code)").
func versionIn(s string) string {
	s = strings.TrimSpace(s)
	if m := verRe.FindStringSubmatch(firstLine(s)); len(m) > 1 {
		return m[1]
	}
	if m := verRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

// Current reports whether installed matches latest. This is the same rule the
// orchestrator uses to skip an install: exact equality after trimming.
func Current(installed, latest string) bool {
	installed = strings.TrimSpace(installed)
	return installed != "" && installed == strings.TrimSpace(latest)
}

// ExecutableVersion tries common version flags and returns the first
// version-looking output.
func (s *System) ExecutableVersion(ctx context.Context, name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	for _, args := range versionArgs {
		cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		out, err := runCmd(cctx, path, args...)
		cancel()
		if err != nil || strings.TrimSpace(out) == "" {
			continue
		}
		if ver := versionIn(out); ver != "" {
			return ver, nil
		}
		if lines := outputLines(out); len(lines) > 0 {
			return lines[0], nil
		}
	}
	return "", errors.New("no version output")
}

// CheckTool reports installed and latest versions without changing anything.
func CheckTool(ctx context.Context, p Prober, t Tool, timeout time.Duration) CheckResult {
	switch s := t.Strategy.(type) {
	case RegistryVersioned:
		if !p.PackageManagerAvailable() {
			return CheckResult{Err: ReasonManagerUnavailable}
		}
		var res CheckResult
		lctx, cancel := withTimeout(ctx, timeout)
		latest, err := p.LatestVersion(lctx, s.Package)
		cancel()
		if err == nil {
			res.Latest = strings.TrimSpace(latest)
		}
		lctx, cancel = withTimeout(ctx, timeout)
		ver, err := p.InstalledVersion(lctx, s.Package)
		cancel()
		if err != nil {
			res.Err = err.Error()
			return res
		}
		if ver == "" {
			res.Err = "not installed (npm -g)"
			return res
		}
		res.Installed, res.Version, res.Source = true, strings.TrimSpace(ver), "npm -g"
		return res
	case SelfManaged:
		if !p.HasExecutable(s.Executable) {
			return CheckResult{Err: ReasonNotFound}
		}
		lctx, cancel := withTimeout(ctx, timeout)
		ver, _ := p.ExecutableVersion(lctx, s.Executable)
		cancel()
		// Found binary but no version output; still consider installed
		return CheckResult{Installed: true, Version: ver, Source: s.Executable + " " + s.Command()}
	}
	return CheckResult{Err: "no update strategy"}
}

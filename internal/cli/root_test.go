package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "aiup/internal/testutil"
	"aiup/internal/tools"
	appver "aiup/internal/version"
)

// fakeSystem answers every query from maps and records changes.
type fakeSystem struct {
	noNpm     bool
	latest    map[string]string
	installed map[string]string
	execs     map[string]bool
	selfErr   map[string]error

	queries  int
	installs []string
	selfRuns []string
}

func (f *fakeSystem) PackageManagerAvailable() bool { f.queries++; return !f.noNpm }

func (f *fakeSystem) LatestVersion(_ context.Context, pkg string) (string, error) {
	f.queries++
	v, ok := f.latest[pkg]
	if !ok {
		return "", errors.New("E404")
	}
	return v, nil
}

func (f *fakeSystem) InstalledVersion(_ context.Context, pkg string) (string, error) {
	f.queries++
	return f.installed[pkg], nil
}

func (f *fakeSystem) InstallLatest(_ context.Context, pkg string) error {
	f.installs = append(f.installs, pkg)
	return nil
}

func (f *fakeSystem) HasExecutable(name string) bool { f.queries++; return f.execs[name] }

func (f *fakeSystem) SelfUpdate(_ context.Context, exe, sub string) error {
	f.selfRuns = append(f.selfRuns, exe+" "+sub)
	return f.selfErr[exe]
}

func (f *fakeSystem) ExecutableVersion(_ context.Context, name string) (string, error) {
	return "9.9.9", nil
}

func allLatest() *fakeSystem {
	return &fakeSystem{
		latest: map[string]string{
			"@anthropic-ai/claude-code": "1.2.0",
			"@openai/codex":             "0.40.0",
			"@google/gemini-cli":        "0.6.0",
			"@qwen-code/qwen-code":      "0.1.0",
		},
		installed: map[string]string{
			"@anthropic-ai/claude-code": "1.0.0",
			"@openai/codex":             "0.40.0",
		},
		execs: map[string]bool{},
	}
}

// executeCommand runs the root command with a temp HOME and no config file.
func executeCommand(t *testing.T, fx *fakeSystem, args ...string) (string, error) {
	t.Helper()
	_, restore := tu.WithHome(t)
	defer restore()
	return runRoot(t, fx, args...)
}

// runRoot resets flag state left over from earlier runs and executes rootCmd.
func runRoot(t *testing.T, fx *fakeSystem, args ...string) (string, error) {
	t.Helper()
	toolNames, dryRun, jsonOut, logLevel = nil, false, false, ""
	for _, name := range []string{"help", "version"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
		}
	}
	prev := newEffects
	newEffects = func(io.Writer) tools.Prober { return fx }
	defer func() { newEffects = prev }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRoot_UpdatesAllByDefault(t *testing.T) {
	fx := allLatest()
	out, err := executeCommand(t, fx)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	// claude updated, codex current, gemini and qwen installed
	want := []string{"@anthropic-ai/claude-code", "@google/gemini-cli", "@qwen-code/qwen-code"}
	if strings.Join(fx.installs, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected installs: %v", fx.installs)
	}
	if !strings.Contains(out, "[1/6]") || !strings.Contains(out, "[6/6]") {
		t.Fatalf("missing progress lines:\n%s", out)
	}
	if !strings.Contains(out, "Summary: 6 tool(s), 1 updated, 2 installed, 1 up to date, 2 skipped, 0 failed, 0 error(s)") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestRoot_ToolSubsetInOrder(t *testing.T) {
	fx := allLatest()
	fx.execs["cursor-agent"] = true
	out, err := executeCommand(t, fx, "--tool=cursor", "-t", "claude")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if strings.Join(fx.selfRuns, ",") != "cursor-agent update" {
		t.Fatalf("unexpected self-updates: %v", fx.selfRuns)
	}
	if strings.Index(out, "Cursor Agent") > strings.Index(out, "Claude Code") {
		t.Fatalf("tools not processed in flag order:\n%s", out)
	}
}

func TestRoot_UnknownToolAborts(t *testing.T) {
	fx := allLatest()
	_, err := executeCommand(t, fx, "--tool", "ghost")
	var unk *tools.UnknownToolError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
	if fx.queries != 0 || len(fx.installs) != 0 {
		t.Fatalf("effects were used before aborting: %d queries", fx.queries)
	}
}

func TestRoot_FailedToolExitCode(t *testing.T) {
	fx := allLatest()
	delete(fx.latest, "@openai/codex")
	out, err := executeCommand(t, fx, "-t", "codex", "-t", "claude")
	var ee *exitError
	if !errors.As(err, &ee) || ee.code != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(out, "could not fetch latest version") || len(fx.installs) != 1 {
		t.Fatalf("unexpected run:\n%s\ninstalls=%v", out, fx.installs)
	}
}

func TestRoot_JSONDryRun(t *testing.T) {
	fx := allLatest()
	out, err := executeCommand(t, fx, "--json", "--dry-run", "-t", "claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fx.installs) != 0 {
		t.Fatalf("dry run installed: %v", fx.installs)
	}
	var rep struct {
		DryRun   bool `json:"dry_run"`
		Outcomes []struct {
			Tool   string `json:"tool"`
			Status string `json:"status"`
			From   string `json:"from"`
			To     string `json:"to"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !rep.DryRun || len(rep.Outcomes) != 1 || rep.Outcomes[0].Status != "updated" || rep.Outcomes[0].To != "1.2.0" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestRoot_TextDryRun(t *testing.T) {
	fx := allLatest()
	out, err := executeCommand(t, fx, "--dry-run", "-t", "claude", "-t", "gemini")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if len(fx.installs) != 0 {
		t.Fatalf("dry run installed: %v", fx.installs)
	}
	if !strings.Contains(out, "dry run: nothing will be installed or updated") {
		t.Fatalf("missing dry-run banner:\n%s", out)
	}
	if strings.Count(out, "(dry run)") != 2 {
		t.Fatalf("outcome lines not marked as dry run:\n%s", out)
	}
}

func TestRoot_UnknownFlagAndArgs(t *testing.T) {
	if _, err := executeCommand(t, allLatest(), "--bogus"); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
	if _, err := executeCommand(t, allLatest(), "claude"); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestRoot_HelpAndVersion(t *testing.T) {
	fx := allLatest()
	out, err := executeCommand(t, fx, "--version")
	if err != nil || strings.TrimSpace(out) != appver.AppVersion {
		t.Fatalf("unexpected version output %q, %v", out, err)
	}
	out, err = executeCommand(t, fx, "-v")
	if err != nil || strings.TrimSpace(out) != appver.AppVersion {
		t.Fatalf("unexpected -v output %q, %v", out, err)
	}
	if _, err := executeCommand(t, fx, "version"); err == nil {
		t.Fatalf("expected error for positional argument \"version\"")
	}
	out, err = executeCommand(t, fx, "-h")
	if err != nil || !strings.Contains(out, "--tool") {
		t.Fatalf("unexpected help output %q, %v", out, err)
	}
	if fx.queries != 0 {
		t.Fatalf("help/version must not touch the system")
	}
}

func TestRoot_ConfigTools(t *testing.T) {
	fx := allLatest()
	fx.execs["droid"] = true
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte("tools:\n  - name: droid\n    executable: droid\n    subcommand: update\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, restoreHome := tu.WithHome(t)
	defer restoreHome()
	defer tu.WithEnv(t, "AIUP_CONFIG", p)()

	out, err := runRoot(t, fx, "-t", "droid")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if strings.Join(fx.selfRuns, ",") != "droid update" {
		t.Fatalf("unexpected self-updates: %v", fx.selfRuns)
	}
}

func TestLs(t *testing.T) {
	fx := allLatest()
	fx.execs["opencode"] = true
	out, err := executeCommand(t, fx, "ls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fx.installs) != 0 || len(fx.selfRuns) != 0 {
		t.Fatalf("ls changed the system")
	}
	for _, want := range []string{"claude", "1.0.0", "opencode", "9.9.9", "cursor", "not installed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ls output missing %q:\n%s", want, out)
		}
	}
}

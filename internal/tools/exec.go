package tools

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// waitDelay bounds how long a killed command may hold its output pipes open.
const waitDelay = 2 * time.Second

func command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	// Avoid opening pager or interactive prompts
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "npm_config_update_notifier=false")
	cmd.WaitDelay = waitDelay
	return cmd
}

// runCmd executes a command and returns combined output as string.
// Used for self-updaters, whose output is shown to the user as-is.
func runCmd(ctx context.Context, name string, args ...string) (string, error) {
	out, err := command(ctx, name, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}

// runOutput executes a command and keeps stdout and stderr apart. Parsers
// only ever see stdout; npm writes warnings to stderr.
func runOutput(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := command(ctx, name, args...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	out, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", errBuf.String(), ctx.Err()
	}
	return string(out), errBuf.String(), err
}

// outputLines splits command output into trimmed, non-empty lines with
// terminal escape sequences removed. Self-updaters often ignore NO_COLOR.
func outputLines(out string) []string {
	var lines []string
	for _, ln := range strings.Split(ansi.Strip(out), "\n") {
		ln = strings.TrimRight(ln, "\r \t")
		// progress bars redraw with carriage returns; keep the final frame
		if i := strings.LastIndex(ln, "\r"); i >= 0 {
			ln = ln[i+1:]
		}
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}

// lastLine returns the last non-empty line of out, or "".
func lastLine(out string) string {
	if lines := outputLines(out); len(lines) > 0 {
		return strings.TrimSpace(lines[len(lines)-1])
	}
	return ""
}

// lookPath reports whether name resolves to an executable in PATH.
func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

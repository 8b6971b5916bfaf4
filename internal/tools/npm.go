package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// NpmGlobalVersion queries npm for the globally installed package version.
// A package that is not installed yields "" and no error.
func NpmGlobalVersion(ctx context.Context, pkg string) (string, error) {
	out, stderr, err := runOutput(ctx, "npm", "ls", "-g", "--depth=0", pkg, "--json")
	if err != nil && strings.TrimSpace(out) == "" {
		return "", npmError("ls", pkg, stderr, err)
	}
	ver, perr := parseNpmList(out, pkg)
	if perr != nil {
		if err != nil {
			return "", npmError("ls", pkg, stderr, err)
		}
		return "", fmt.Errorf("npm ls %s: %w", pkg, perr)
	}
	// npm ls exits 1 for a missing package but still prints JSON
	return ver, nil
}

// NpmLatestVersion queries the npm registry for the latest dist-tag.
func NpmLatestVersion(ctx context.Context, pkg string) (string, error) {
	out, stderr, err := runOutput(ctx, "npm", "view", pkg, "version", "--json")
	if err != nil {
		if msg := npmErrorSummary(out); msg != "" {
			return "", fmt.Errorf("npm view %s: %s", pkg, msg)
		}
		return "", npmError("view", pkg, stderr, err)
	}
	v, err := parseNpmView(out)
	if err != nil {
		return "", fmt.Errorf("npm view %s: %w", pkg, err)
	}
	return v, nil
}

// NpmUpgradeLatest installs the latest version globally.
func NpmUpgradeLatest(ctx context.Context, pkg string) error {
	// Use --no-fund and --no-audit to speed up and reduce noise
	_, stderr, err := runOutput(ctx, "npm", "install", "-g", fmt.Sprintf("%s@latest", pkg), "--no-fund", "--no-audit")
	if err != nil {
		return npmError("install", pkg, stderr, err)
	}
	return nil
}

// npmError wraps err with the last stderr line, which is where npm puts
// the actual reason.
func npmError(verb, pkg, stderr string, err error) error {
	if ln := lastLine(stderr); ln != "" {
		return fmt.Errorf("npm %s %s: %w: %s", verb, pkg, err, ln)
	}
	return fmt.Errorf("npm %s %s: %w", verb, pkg, err)
}

func parseNpmList(out, pkg string) (string, error) {
	var data struct {
		Dependencies map[string]struct {
			Version string `json:"version"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		return "", err
	}
	if d, ok := data.Dependencies[pkg]; ok {
		return strings.TrimSpace(d.Version), nil
	}
	return "", nil
}

func parseNpmView(out string) (string, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return "", errors.New("empty npm view output")
	}
	// npm returns a bare JSON string like "1.2.3"
	var v string
	if json.Unmarshal([]byte(s), &v) == nil {
		v = strings.TrimSpace(v)
		if v == "" {
			return "", errors.New("empty version in npm view output")
		}
		return v, nil
	}
	// several versions match when a range is queried; the last is the newest
	var vs []string
	if json.Unmarshal([]byte(s), &vs) == nil && len(vs) > 0 {
		return strings.TrimSpace(vs[len(vs)-1]), nil
	}
	if msg := npmErrorSummary(s); msg != "" {
		return "", errors.New(msg)
	}
	// older npm prints a plain version without --json support; only a line
	// that is itself a version is accepted
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" && versionIn(ln) == strings.TrimPrefix(ln, "v") {
			return ln, nil
		}
	}
	return "", fmt.Errorf("unexpected npm view output: %q", firstLine(s))
}

func firstLine(s string) string {
	return strings.TrimSpace(strings.SplitN(s, "\n", 2)[0])
}

// npmErrorSummary extracts the summary of an npm --json error document.
func npmErrorSummary(out string) string {
	var doc struct {
		Error struct {
			Code    string `json:"code"`
			Summary string `json:"summary"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(strings.TrimSpace(out)), &doc) != nil {
		return ""
	}
	switch {
	case doc.Error.Code != "" && doc.Error.Summary != "":
		return doc.Error.Code + ": " + doc.Error.Summary
	case doc.Error.Summary != "":
		return doc.Error.Summary
	}
	return doc.Error.Code
}

// Package shellrc manages the aiup alias block in a shell run-control file.
package shellrc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	beginMarker = "# >>> aiup alias >>>"
	endMarker   = "# <<< aiup alias <<<"
)

var aliasNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// RCFile picks the run-control file for shell (a $SHELL value) under home.
func RCFile(home, shell string) string {
	switch filepath.Base(strings.TrimSpace(shell)) {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish")
	}
	return filepath.Join(home, ".profile")
}

// Candidates lists run-control files offered when $SHELL is not conclusive.
func Candidates(home string) []string {
	return []string{
		filepath.Join(home, ".zshrc"),
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".config", "fish", "config.fish"),
		filepath.Join(home, ".profile"),
	}
}

// Block renders the marked alias block.
func Block(name, target string) (string, error) {
	if !aliasNameRe.MatchString(name) {
		return "", fmt.Errorf("invalid alias name %q", name)
	}
	if strings.TrimSpace(target) == "" {
		return "", errors.New("empty alias target")
	}
	// single-quote the target; embedded quotes become '\''
	quoted := "'" + strings.ReplaceAll(target, "'", `'\''`) + "'"
	return fmt.Sprintf("%s\nalias %s=%s\n%s\n", beginMarker, name, quoted, endMarker), nil
}

// Apply returns content with exactly one alias block, replacing an existing
// block in place or appending a new one. changed is false when content
// already holds the same block.
func Apply(content, block string) (out string, changed bool) {
	start := strings.Index(content, beginMarker)
	if start >= 0 {
		if rel := strings.Index(content[start:], endMarker); rel >= 0 {
			end := start + rel + len(endMarker)
			if end < len(content) && content[end] == '\n' {
				end++
			}
			out = content[:start] + block + content[end:]
			return out, out != content
		}
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content += "\n"
	}
	return content + block, true
}

// Install writes the alias block into path, creating the file if needed.
func Install(path, name, target string) (changed bool, err error) {
	block, err := Block(name, target)
	if err != nil {
		return false, err
	}
	cur, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	next, changed := Apply(string(cur), block)
	if !changed {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(next), mode); err != nil {
		return false, err
	}
	return true, nil
}

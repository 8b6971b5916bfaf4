package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Builtin is the built-in tool table, in default update order.
var Builtin = []Tool{
	{
		Name:        "claude",
		DisplayName: "Claude Code (@anthropic-ai/claude-code)",
		Strategy:    RegistryVersioned{Package: "@anthropic-ai/claude-code"},
	},
	{
		Name:        "codex",
		DisplayName: "Codex (@openai/codex)",
		Strategy:    RegistryVersioned{Package: "@openai/codex"},
	},
	{
		Name:        "gemini",
		DisplayName: "Gemini CLI (@google/gemini-cli)",
		Strategy:    RegistryVersioned{Package: "@google/gemini-cli"},
	},
	{
		Name:        "qwen",
		DisplayName: "Qwen Code (@qwen-code/qwen-code)",
		Strategy:    RegistryVersioned{Package: "@qwen-code/qwen-code"},
	},
	{
		Name:        "opencode",
		DisplayName: "opencode",
		Strategy:    SelfManaged{Executable: "opencode", Subcommand: "upgrade"},
	},
	{
		Name:        "cursor",
		DisplayName: "Cursor Agent",
		Strategy:    SelfManaged{Executable: "cursor-agent", Subcommand: "update"},
	},
}

// ErrNoTools is returned when an update is requested for an empty selection.
var ErrNoTools = errors.New("no tools selected")

// UnknownToolError reports a requested name missing from the registry.
type UnknownToolError struct {
	Name        string
	Valid       []string
	Suggestions []string
}

func (e *UnknownToolError) Error() string {
	msg := fmt.Sprintf("unknown tool %q (valid: %s)", e.Name, strings.Join(e.Valid, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(e.Suggestions, " or "))
	}
	return msg
}

// Registry is an ordered, read-only set of tools. Build it once with
// NewRegistry; it is never mutated afterwards.
type Registry struct {
	order  []string
	byName map[string]Tool
}

// NewRegistry builds a registry from base followed by extra. An extra entry
// with the name of an earlier one replaces it in place.
func NewRegistry(base []Tool, extra ...Tool) (*Registry, error) {
	r := &Registry{byName: make(map[string]Tool, len(base)+len(extra))}
	all := make([]Tool, 0, len(base)+len(extra))
	all = append(all, base...)
	all = append(all, extra...)
	for _, t := range all {
		if err := validateTool(t); err != nil {
			return nil, err
		}
		if _, ok := r.byName[t.Name]; !ok {
			r.order = append(r.order, t.Name)
		}
		r.byName[t.Name] = t
	}
	return r, nil
}

func validateTool(t Tool) error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tool entry without a name")
	}
	switch s := t.Strategy.(type) {
	case RegistryVersioned:
		if strings.TrimSpace(s.Package) == "" {
			return fmt.Errorf("tool %q: empty package", t.Name)
		}
	case SelfManaged:
		if strings.TrimSpace(s.Executable) == "" {
			return fmt.Errorf("tool %q: empty executable", t.Name)
		}
	default:
		return fmt.Errorf("tool %q: no update strategy", t.Name)
	}
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Names returns tool names in registry order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Tools returns all tools in registry order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out
}

// Resolve maps names to tools in input order, dropping repeats. The first
// unknown name aborts with *UnknownToolError.
func (r *Registry) Resolve(names []string) ([]Tool, error) {
	if len(names) == 0 {
		return nil, ErrNoTools
	}
	seen := map[string]bool{}
	out := make([]Tool, 0, len(names))
	for _, n := range names {
		t, ok := r.byName[n]
		if !ok {
			return nil, &UnknownToolError{Name: n, Valid: r.Names(), Suggestions: r.suggest(n)}
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, t)
	}
	return out, nil
}

// suggest returns up to two close registry names for a mistyped one.
func (r *Registry) suggest(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	var out []string
	for _, m := range fuzzy.Find(name, r.order) {
		out = append(out, m.Str)
		if len(out) == 2 {
			break
		}
	}
	if len(out) > 0 {
		return out
	}
	// fuzzy only matches subsequences; also try the other direction for
	// over-long input like "claude-code"
	for _, n := range r.order {
		if strings.HasPrefix(name, n) {
			out = append(out, n)
		}
	}
	return out
}

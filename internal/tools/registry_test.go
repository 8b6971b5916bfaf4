package tools

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBuiltinRegistry(t *testing.T) {
	r, err := NewRegistry(Builtin)
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	names := r.Names()
	if len(names) != 6 {
		t.Fatalf("expected 6 builtin tools, got %v", names)
	}
	var subs []string
	for _, tl := range r.Tools() {
		if s, ok := tl.Strategy.(SelfManaged); ok {
			subs = append(subs, s.Command())
		}
	}
	if !reflect.DeepEqual(subs, []string{"upgrade", "update"}) {
		t.Fatalf("unexpected self-update subcommands: %v", subs)
	}
}

func TestNewRegistry_OverrideKeepsPosition(t *testing.T) {
	r, err := NewRegistry(Builtin, Tool{Name: "codex", Strategy: SelfManaged{Executable: "codex"}}, Tool{Name: "amp", Strategy: RegistryVersioned{Package: "@sourcegraph/amp"}})
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	names := r.Names()
	if names[1] != "codex" || names[len(names)-1] != "amp" || len(names) != 7 {
		t.Fatalf("unexpected order: %v", names)
	}
	tl, _ := r.Lookup("codex")
	if tl.Strategy.Kind() != KindSelfManaged {
		t.Fatalf("override not applied: %+v", tl)
	}
}

func TestNewRegistry_Invalid(t *testing.T) {
	cases := []Tool{
		{Name: "", Strategy: RegistryVersioned{Package: "x"}},
		{Name: "x", Strategy: RegistryVersioned{}},
		{Name: "x", Strategy: SelfManaged{}},
		{Name: "x"},
	}
	for _, c := range cases {
		if _, err := NewRegistry(nil, c); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	r, _ := NewRegistry(Builtin)
	n := r.Names()
	n[0] = "mutated"
	if r.Names()[0] != "claude" {
		t.Fatalf("registry mutated through Names()")
	}
}

func TestResolve_UnknownSuggests(t *testing.T) {
	r, _ := NewRegistry(Builtin)
	_, err := r.Resolve([]string{"claud"})
	var unk *UnknownToolError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
	if len(unk.Suggestions) == 0 || unk.Suggestions[0] != "claude" {
		t.Fatalf("unexpected suggestions: %v", unk.Suggestions)
	}
	if !strings.Contains(err.Error(), "valid: claude, codex") {
		t.Fatalf("error does not list valid names: %v", err)
	}

	_, err = r.Resolve([]string{"claude-code"})
	if !errors.As(err, &unk) || len(unk.Suggestions) != 1 || unk.Suggestions[0] != "claude" {
		t.Fatalf("expected prefix suggestion, got %v", err)
	}
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"aiup/internal/tools"
)

// Default timeouts applied when the file leaves them unset.
const (
	DefaultLookupTimeout  = 60 * time.Second
	DefaultInstallTimeout = 10 * time.Minute
)

// File is the shape of config.yaml.
type File struct {
	LogLevel string    `yaml:"log_level,omitempty" json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Log level for aiup diagnostics"`
	Timeouts Timeouts  `yaml:"timeouts,omitempty" json:"timeouts,omitempty"`
	Tools    []ToolDef `yaml:"tools,omitempty" json:"tools,omitempty" jsonschema:"description=Extra tools appended to (or replacing same-named) built-ins"`
}

// Timeouts are Go duration strings such as "30s" or "10m"; "0" disables.
type Timeouts struct {
	Lookup  string `yaml:"lookup,omitempty" json:"lookup,omitempty" jsonschema:"description=Per version query,example=60s"`
	Install string `yaml:"install,omitempty" json:"install,omitempty" jsonschema:"description=Per install or self-update,example=10m"`
}

// ToolDef declares a tool. Exactly one of Package or Executable is set.
type ToolDef struct {
	Name        string `yaml:"name" json:"name" jsonschema:"required"`
	DisplayName string `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Package     string `yaml:"package,omitempty" json:"package,omitempty" jsonschema:"description=npm package (registry-versioned)"`
	Executable  string `yaml:"executable,omitempty" json:"executable,omitempty" jsonschema:"description=Executable that updates itself"`
	Subcommand  string `yaml:"subcommand,omitempty" json:"subcommand,omitempty" jsonschema:"description=Self-update subcommand (default upgrade)"`
}

// ValidationError lists every problem found in a config file.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

// Config is the validated, ready-to-use configuration.
type Config struct {
	Path           string
	LogLevel       string
	LookupTimeout  time.Duration
	InstallTimeout time.Duration
	Tools          []tools.Tool
}

// Load reads the config file. A missing file yields defaults and no error.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Path: p, LookupTimeout: DefaultLookupTimeout, InstallTimeout: DefaultInstallTimeout}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	return Parse(p, b)
}

// Parse decodes and validates config bytes read from path.
func Parse(path string, b []byte) (Config, error) {
	cfg := Config{Path: path, LookupTimeout: DefaultLookupTimeout, InstallTimeout: DefaultInstallTimeout}
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	var problems []string
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(f.LogLevel))
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", f.LogLevel))
	}
	if d, err := parseDuration(f.Timeouts.Lookup, DefaultLookupTimeout); err != nil {
		problems = append(problems, "timeouts.lookup: "+err.Error())
	} else {
		cfg.LookupTimeout = d
	}
	if d, err := parseDuration(f.Timeouts.Install, DefaultInstallTimeout); err != nil {
		problems = append(problems, "timeouts.install: "+err.Error())
	} else {
		cfg.InstallTimeout = d
	}

	seen := map[string]bool{}
	for i, def := range f.Tools {
		t, err := def.tool()
		if err != nil {
			problems = append(problems, fmt.Sprintf("tools[%d]: %v", i, err))
			continue
		}
		if seen[t.Name] {
			problems = append(problems, fmt.Sprintf("tools[%d]: duplicate name %q", i, t.Name))
			continue
		}
		seen[t.Name] = true
		cfg.Tools = append(cfg.Tools, t)
	}
	if len(problems) > 0 {
		return cfg, &ValidationError{Path: path, Problems: problems}
	}
	return cfg, nil
}

func (d ToolDef) tool() (tools.Tool, error) {
	name := strings.TrimSpace(d.Name)
	pkg := strings.TrimSpace(d.Package)
	exe := strings.TrimSpace(d.Executable)
	sub := strings.TrimSpace(d.Subcommand)
	switch {
	case name == "":
		return tools.Tool{}, errors.New("missing name")
	case pkg != "" && exe != "":
		return tools.Tool{}, fmt.Errorf("%s: set either package or executable, not both", name)
	case pkg == "" && exe == "":
		return tools.Tool{}, fmt.Errorf("%s: one of package or executable is required", name)
	case pkg != "" && sub != "":
		return tools.Tool{}, fmt.Errorf("%s: subcommand requires executable", name)
	}
	t := tools.Tool{Name: name, DisplayName: strings.TrimSpace(d.DisplayName)}
	if pkg != "" {
		t.Strategy = tools.RegistryVersioned{Package: pkg}
	} else {
		t.Strategy = tools.SelfManaged{Executable: exe, Subcommand: sub}
	}
	return t, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

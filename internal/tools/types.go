package tools

// StrategyKind names how a tool is brought up to date.
type StrategyKind string

const (
	KindRegistryVersioned StrategyKind = "registry"
	KindSelfManaged       StrategyKind = "self"
)

// DefaultSubcommand is used by self-managed tools that do not name one.
const DefaultSubcommand = "upgrade"

// Strategy is the update mechanism of a tool. It is one of
// RegistryVersioned or SelfManaged.
type Strategy interface {
	Kind() StrategyKind
	// Target is the npm package or the local executable name.
	Target() string
}

// RegistryVersioned tools are installed globally from the npm registry.
type RegistryVersioned struct {
	Package string
}

func (RegistryVersioned) Kind() StrategyKind { return KindRegistryVersioned }
func (s RegistryVersioned) Target() string   { return s.Package }

// SelfManaged tools update themselves via `<Executable> <Subcommand>`.
type SelfManaged struct {
	Executable string
	Subcommand string
}

func (SelfManaged) Kind() StrategyKind { return KindSelfManaged }
func (s SelfManaged) Target() string   { return s.Executable }

// Command returns the self-update subcommand, falling back to DefaultSubcommand.
func (s SelfManaged) Command() string {
	if s.Subcommand == "" {
		return DefaultSubcommand
	}
	return s.Subcommand
}

// Tool is a registry entry.
type Tool struct {
	Name        string
	DisplayName string
	Strategy    Strategy
}

// Label returns DisplayName when set, otherwise Name.
func (t Tool) Label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Name
}

// Status is a per-tool terminal state of one update attempt.
type Status int

const (
	StatusInstalled Status = iota
	StatusUpdated
	StatusUpToDate
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusUpdated:
		return "updated"
	case StatusUpToDate:
		return "up to date"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// MarshalText keeps JSON reports readable.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome reasons.
const (
	ReasonLatestUnavailable  = "could not fetch latest version"
	ReasonInstallFailed      = "install failed"
	ReasonNotFound           = "tool not found"
	ReasonSelfUpdateFailed   = "self-update command failed"
	ReasonManagerUnavailable = "package manager unavailable"
)

// Outcome is the result of processing one tool.
type Outcome struct {
	Tool   string `json:"tool"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	From   string `json:"from,omitempty"` // version before the run
	To     string `json:"to,omitempty"`   // version after the run
	Err    error  `json:"-"`
}

// Ok reports whether the outcome counts as success.
func (o Outcome) Ok() bool {
	return o.Status == StatusInstalled || o.Status == StatusUpdated || o.Status == StatusUpToDate
}

// CheckResult is the read-only status of a tool, used by `ls`.
type CheckResult struct {
	Installed bool
	Version   string
	Source    string // which method produced version (binary/npm)
	Err       string
	Latest    string // latest version from registry
}

package system

import (
	"fmt"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for diagnostics.
// It prints to stderr with timestamps enabled; status lines go to stdout.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "aiup",
})

// SetLevel applies a level name (debug, info, warn, error). Empty keeps the current level.
func SetLevel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lvl, err := clog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("invalid log level %q", name)
	}
	Logger.SetLevel(lvl)
	return nil
}

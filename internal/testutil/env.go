package testutil

import (
	"os"
	"testing"
)

// WithEnv sets env var to val (unsetting it when val is empty) for the
// duration of the test scope. Returns a cleanup func to restore the previous value.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	return func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// WithHome points HOME at a fresh temp dir and clears AIUP_CONFIG so the
// default config location is used. Returns the dir and a cleanup func.
func WithHome(t *testing.T) (string, func()) {
	t.Helper()
	dir := t.TempDir()
	restoreHome := WithEnv(t, "HOME", dir)
	restoreCfg := WithEnv(t, "AIUP_CONFIG", "")
	return dir, func() {
		restoreCfg()
		restoreHome()
	}
}

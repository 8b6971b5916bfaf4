package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig overrides the config file location.
const EnvConfig = "AIUP_CONFIG"

// DotDir returns ~/.aiup.
func DotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", errors.New("cannot determine user home directory")
	}
	return filepath.Join(home, ".aiup"), nil
}

// Path returns the config file path: $AIUP_CONFIG when set, otherwise
// ~/.aiup/config.yaml.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	dir, err := DotDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

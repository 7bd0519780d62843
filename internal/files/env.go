package files

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeEnvVar overrides where liftlog keeps exercise logs.
	HomeEnvVar = "LIFTLOG_HOME"
	// DefaultDirName is the store folder, placed next to the directory holding the binary.
	DefaultDirName = "training_log"
)

// executable is swapped in tests.
var executable = os.Executable

// ResolveBasePath determines where liftlog stores exercise JSON files. It defaults to
// ../training_log relative to the running binary and can be overridden by exporting
// LIFTLOG_HOME.
func ResolveBasePath() (string, error) {
	if override, ok := os.LookupEnv(HomeEnvVar); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			return NormalizePath(override)
		}
	}

	exe, err := executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "..", DefaultDirName), nil
}

// NormalizePath expands a leading ~ to the user's home directory.
func NormalizePath(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}

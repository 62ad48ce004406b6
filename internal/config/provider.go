package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths captures resolved locations for config.
type Paths struct {
	ConfigDir  string // path to the reis config directory
	ConfigFile string // path to config.yaml inside ConfigDir
}

// ResolvePaths locates the config file. REIS_CONFIG names the file
// directly; otherwise it lives in the user config directory.
func ResolvePaths() (Paths, error) {
	if file := os.Getenv(EnvConfigFile); file != "" {
		return Paths{ConfigDir: filepath.Dir(file), ConfigFile: file}, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("locating user config directory: %w", err)
	}
	dir := filepath.Join(base, "reis")
	return Paths{ConfigDir: dir, ConfigFile: filepath.Join(dir, "config.yaml")}, nil
}

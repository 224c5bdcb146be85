// Package config handles configuration loading and data root resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// Search policies for the system tier of the profile store.
const (
	SearchFixed     = "fixed"     // probe system/<dir> then system/<dir>/base
	SearchRecursive = "recursive" // walk the whole system tree
)

// RootConfig is the per-root configuration loaded from <root>/config.yaml.
type RootConfig struct {
	Search     string `yaml:"search"`      // "fixed" | "recursive"
	ProfileDir string `yaml:"profile_dir"` // tier subdirectory holding profile files
}

// Default returns a RootConfig populated with sensible defaults.
func Default() *RootConfig {
	return &RootConfig{
		Search:     SearchFixed,
		ProfileDir: "filament",
	}
}

// Load reads a per-root config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*RootConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if v, ok := raw["search"].(string); ok {
		switch v {
		case SearchFixed, SearchRecursive:
			cfg.Search = v
		}
	}
	if v, ok := raw["profile_dir"].(string); ok && v != "" {
		cfg.ProfileDir = v
	}

	return cfg, nil
}

// ---------------------------------------------------------------------------
// Data root resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global spool config file.
// This file stores only data_root (and future global settings).
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "spool", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveDataRoot returns the data root path and the source of the resolution.
// Priority: SPOOL_ROOT env → persisted global config → ~/.spool
// source is one of "env", "config", or "default".
func ResolveDataRoot() (path, source string) {
	if env := os.Getenv("SPOOL_ROOT"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedDataRoot(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".spool"), "default"
}

// GetDataRoot returns the resolved data root path.
func GetDataRoot() string {
	path, _ := ResolveDataRoot()
	return path
}

// GetPersistedDataRoot reads data_root from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedDataRoot() (string, bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false, nil
	}

	val, _ := raw["data_root"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedDataRoot normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedDataRoot(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Read existing global config, preserving any other keys.
	var raw map[string]any
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["data_root"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedDataRoot removes data_root from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedDataRoot() (bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, nil
	}

	if _, ok := raw["data_root"]; !ok {
		return false, nil
	}
	delete(raw, "data_root")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}

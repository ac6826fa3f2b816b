package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrNotFound reports that no profile file exists at the resolved location.
var ErrNotFound = errors.New("config file not found")

// Profile describes a single named rclone synchronization task.
type Profile struct {
	Name  string `toml:"name"`
	From  string `toml:"from"`
	To    string `toml:"to"`
	Mode  string `toml:"mode"`
	Flags string `toml:"flags"`
}

// HasFlags reports whether the profile carries extra rclone flags.
func (p Profile) HasFlags() bool {
	return strings.TrimSpace(p.Flags) != ""
}

// Paths contains directory overrides.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Rclone contains settings for the external sync tool.
type Rclone struct {
	Binary string `toml:"binary"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// Output is "stderr", "stdout", or a file path. Detached watchers have no
	// stderr, so a file is the only way to keep their logs.
	Output string `toml:"output"`
}

// Config encapsulates the profile list and the few knobs around it.
//
// Configuration sections:
//   - Sync: the [[sync]] profile entries, in file order
//   - Paths: watcher registry location
//   - Rclone: the sync tool binary
//   - Logging: log format, level, and destination
type Config struct {
	Sync    []Profile `toml:"sync"`
	Paths   Paths     `toml:"paths"`
	Rclone  Rclone    `toml:"rclone"`
	Logging Logging   `toml:"logging"`

	path string
}

// DefaultConfigPath returns the absolute path to the default profile file.
// LAZYCLOUD_CONFIG takes precedence over the user configuration directory.
func DefaultConfigPath() (string, error) {
	if value, ok := os.LookupEnv(configPathEnv); ok && strings.TrimSpace(value) != "" {
		return expandPath(strings.TrimSpace(value))
	}
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		base = fallbackConfigRoot
	}
	return expandPath(filepath.Join(base, appDirName, configFileName))
}

// Load locates, parses, and validates a profile file. An empty path selects the
// default location. The resolved path is returned alongside the config, also
// when the file does not exist so callers can point the user at it.
func Load(path string) (*Config, string, error) {
	resolvedPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(resolvedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, resolvedPath, fmt.Errorf("%w at %s (create one with 'lazycloud init')", ErrNotFound, resolvedPath)
		}
		return nil, resolvedPath, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, resolvedPath, fmt.Errorf("parse config %s: %w", resolvedPath, err)
	}
	cfg.path = resolvedPath

	if err := cfg.normalize(); err != nil {
		return nil, resolvedPath, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolvedPath, err
	}
	return &cfg, resolvedPath, nil
}

func resolveConfigPath(path string) (string, error) {
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		return expandPath(trimmed)
	}
	return DefaultConfigPath()
}

// Path returns the file the config was loaded from, or "" for in-memory configs.
func (c *Config) Path() string {
	return c.path
}

// SetPath records the file a config belongs to. The registry directory
// defaults to a sibling of this file.
func (c *Config) SetPath(path string) {
	c.path = path
}

// RegistryDir returns the directory holding one pid record per watcher.
func (c *Config) RegistryDir() string {
	if dir := strings.TrimSpace(c.Paths.StateDir); dir != "" {
		return dir
	}
	if c.path != "" {
		return filepath.Join(filepath.Dir(c.path), registryDirName)
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName, registryDirName)
	}
	return filepath.Join(filepath.Dir(defaultPath), registryDirName)
}

// RcloneBinary returns the rclone executable name or path.
func (c *Config) RcloneBinary() string {
	if bin := strings.TrimSpace(c.Rclone.Binary); bin != "" {
		return bin
	}
	return defaultRcloneBin
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the sample profile file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

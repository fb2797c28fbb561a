package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Environment variables that override config file values.
const (
	EnvConfig      = "WEASELTREE_CONFIG"
	EnvWindowsHome = "WEASELTREE_WINDOWS_HOME"
	EnvWSLHome     = "WEASELTREE_WSL_HOME"
	EnvMappingFile = "WEASELTREE_MAPPING_FILE"
)

// Defaults
const (
	DefaultRemote       = "origin"
	DefaultWindowsGit   = "git.exe"
	DefaultWindowsShell = "cmd.exe"
	MappingFileName     = ".weaseltree.json"
)

// Config holds the weaseltree configuration
type Config struct {
	Remote       string `toml:"remote"`        // default remote for push/pull
	WindowsGit   string `toml:"windows_git"`   // git binary for the Windows side
	WindowsShell string `toml:"windows_shell"` // shell used by "run" on the Windows side
	WindowsHome  string `toml:"windows_home"`  // overrides Windows home detection
	WSLHome      string `toml:"wsl_home"`      // overrides the WSL home directory
	MappingFile  string `toml:"mapping_file"`  // overrides <windows home>/.weaseltree.json
	LogFile      string `toml:"log_file"`      // optional rotating debug log
	ASCII        bool   `toml:"ascii"`         // ASCII status symbols instead of unicode
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Remote:       DefaultRemote,
		WindowsGit:   DefaultWindowsGit,
		WindowsShell: DefaultWindowsShell,
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location: $WEASELTREE_CONFIG or
// ~/.config/weaseltree/config.toml
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "weaseltree", "config.toml"), nil
}

// Load reads the config file and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path. See Load.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.normalize(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvWindowsHome); v != "" {
		cfg.WindowsHome = v
	}
	if v := os.Getenv(EnvWSLHome); v != "" {
		cfg.WSLHome = v
	}
	if v := os.Getenv(EnvMappingFile); v != "" {
		cfg.MappingFile = v
	}
}

// normalize validates paths, expands ~ and fills empty values with defaults.
func (c *Config) normalize() error {
	paths := []struct {
		field string
		value *string
	}{
		{"windows_home", &c.WindowsHome},
		{"wsl_home", &c.WSLHome},
		{"mapping_file", &c.MappingFile},
		{"log_file", &c.LogFile},
	}
	for _, p := range paths {
		if err := ValidatePath(*p.value, p.field); err != nil {
			return err
		}
		expanded, err := expandPath(*p.value)
		if err != nil {
			return fmt.Errorf("expand %s: %w", p.field, err)
		}
		*p.value = expanded
	}

	if err := validateBinary(c.WindowsGit, "windows_git"); err != nil {
		return err
	}
	if err := validateBinary(c.WindowsShell, "windows_shell"); err != nil {
		return err
	}

	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if c.WindowsGit == "" {
		c.WindowsGit = DefaultWindowsGit
	}
	if c.WindowsShell == "" {
		c.WindowsShell = DefaultWindowsShell
	}
	return nil
}

const defaultConfig = `# weaseltree configuration

# Remote used by "weaseltree push" and "weaseltree pull"
remote = "origin"

# git binary used for the Windows side. git.exe keeps Windows line endings,
# remotes and credential helpers.
windows_git = "git.exe"

# Shell used by "weaseltree run" on the Windows side
windows_shell = "cmd.exe"

# Windows home directory as seen from WSL. Detected via cmd.exe and wslpath
# when empty. Must be absolute or start with ~
# windows_home = "/mnt/c/Users/me"

# WSL home directory that mirrors the drive layout. Defaults to $HOME.
# wsl_home = "~"

# Mapping file. Defaults to <windows home>/.weaseltree.json so that both
# sides share it.
# mapping_file = "/mnt/c/Users/me/.weaseltree.json"

# Optional debug log (JSON lines, rotated at 5 MB)
# log_file = "~/.local/state/weaseltree/weaseltree.log"

# Use ASCII status markers (ok, !!, xx) instead of unicode symbols
# ascii = false
`

// DefaultContent returns the commented default config file.
func DefaultContent() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Package config handles loading and validation of weaseltree configuration.
//
// Configuration is read from ~/.config/weaseltree/config.toml (or the file
// named by WEASELTREE_CONFIG) with environment variable overrides for the
// directory settings.
//
// # Configuration Sources (highest priority first)
//
//   - WEASELTREE_WINDOWS_HOME, WEASELTREE_WSL_HOME, WEASELTREE_MAPPING_FILE
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - remote: remote used by push and pull (default: "origin")
//   - windows_git: Windows-side git binary (default: "git.exe")
//   - windows_shell: Windows-side shell for "run" (default: "cmd.exe")
//   - windows_home, wsl_home, mapping_file, log_file: path overrides
//
// # Path Validation
//
// Paths must be absolute or start with ~ (no relative paths like "." or
// "..") to avoid confusion about the working directory.
package config

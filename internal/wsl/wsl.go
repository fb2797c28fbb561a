// Package wsl detects which side of the Windows/WSL boundary weaseltree runs
// on and locates the home directories of both sides.
package wsl

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"

	"github.com/weaseltree/weaseltree/internal/cmd"
	"github.com/weaseltree/weaseltree/internal/config"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/pathmap"
)

// procVersion is read by IsWSL; tests point it elsewhere.
var procVersion = "/proc/version"

var errUnexpanded = errors.New("USERPROFILE is not set")

// IsNativeWindows reports whether the process runs on Windows itself.
func IsNativeWindows() bool {
	return runtime.GOOS == "windows"
}

// IsWSL reports whether the process runs inside a WSL distribution.
func IsWSL() bool {
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	data, err := os.ReadFile(procVersion)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

// WSLHome returns the directory that mirrors the drive layout.
func WSLHome(cfg *config.Config) (string, error) {
	if cfg.WSLHome != "" {
		return pathmap.Clean(cfg.WSLHome), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return pathmap.Clean(home), nil
}

// WindowsHome returns the Windows user profile directory as seen by this
// process. A configured windows_home wins. Under WSL the profile is asked
// from cmd.exe and converted with wslpath; if either fails, or the process
// runs on plain Linux, the WSL home is used instead.
func WindowsHome(ctx context.Context, cfg *config.Config) (string, error) {
	return windowsHome(ctx, cfg, IsWSL())
}

func windowsHome(ctx context.Context, cfg *config.Config, underWSL bool) (string, error) {
	if cfg.WindowsHome != "" {
		return pathmap.Clean(cfg.WindowsHome), nil
	}
	if IsNativeWindows() {
		return os.UserHomeDir()
	}
	if !underWSL {
		log.FromContext(ctx).Debug("not running under wsl, using wsl home as windows home")
		return WSLHome(cfg)
	}

	home, err := profileFromCmd(ctx, cfg.WindowsShell)
	if err == nil {
		return home, nil
	}
	log.FromContext(ctx).Debug("windows home detection failed, using wsl home", "err", err)
	return WSLHome(cfg)
}

func profileFromCmd(ctx context.Context, shell string) (string, error) {
	out, err := cmd.OutputContext(ctx, "", shell, "/c", "echo", "%USERPROFILE%")
	if err != nil {
		return "", err
	}
	win := strings.TrimSpace(string(out))
	if win == "" || strings.Contains(win, "%USERPROFILE%") {
		return "", errUnexpanded
	}

	out, err = cmd.OutputContext(ctx, "", "wslpath", "-u", win)
	if err != nil {
		return "", err
	}
	return pathmap.Clean(strings.TrimSpace(string(out))), nil
}

// MappingFile returns the location of the mapping store.
func MappingFile(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.MappingFile != "" {
		return cfg.MappingFile, nil
	}
	home, err := WindowsHome(ctx, cfg)
	if err != nil {
		return "", err
	}
	return home + "/" + config.MappingFileName, nil
}

// RunWindows runs command through the Windows shell in dir with the
// terminal attached. dir is a /mnt path; WSL interop translates it.
func RunWindows(ctx context.Context, cfg *config.Config, dir string, command []string) error {
	args := append([]string{"/c"}, command...)
	return cmd.StreamContext(ctx, dir, cfg.WindowsShell, args...)
}

// Package pathmap classifies paths as Windows-side (drive) or WSL-side
// (home) paths and converts between the two views.
//
// Relative paths are always forward-slash separated. They are the keys of
// the mapping store: /mnt/c/r/app, C:\r\app and ~/r/app all map to "r/app".
package pathmap

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	mountRe   = regexp.MustCompile(`^/mnt/([a-zA-Z])/(.*)$`)
	windowsRe = regexp.MustCompile(`^([a-zA-Z]):[/\\](.*)$`)
)

// RelativeFromDrive extracts the path relative to its drive root.
//
//	/mnt/c/r/foo/bar -> r/foo/bar
//	C:\r\foo\bar     -> r/foo/bar
//
// Drive roots and non-drive paths return ok=false.
func RelativeFromDrive(p string) (rel string, ok bool) {
	if m := mountRe.FindStringSubmatch(p); m != nil {
		rel = m[2]
	} else if m := windowsRe.FindStringSubmatch(p); m != nil {
		rel = strings.ReplaceAll(m[2], `\`, "/")
	} else {
		return "", false
	}

	rel = strings.Trim(path.Clean("/"+rel), "/")
	if rel == "" {
		return "", false
	}
	return rel, true
}

// IsDrivePath reports whether p lies below a drive root.
func IsDrivePath(p string) bool {
	_, ok := RelativeFromDrive(p)
	return ok
}

// RelativeFromHome extracts the path relative to home. The path must be
// strictly below home.
func RelativeFromHome(home, p string) (string, bool) {
	home = Clean(home)
	p = Clean(p)
	if home == "" || !strings.HasPrefix(p, home+"/") {
		return "", false
	}
	return strings.TrimPrefix(p, home+"/"), true
}

// WSLTarget returns the WSL worktree location for a relative path.
func WSLTarget(home, rel string) string {
	return filepath.Join(home, filepath.FromSlash(rel))
}

// ToWindows converts a /mnt/<drive>/... path to C:\... form.
// Other paths are returned unchanged.
func ToWindows(p string) string {
	m := mountRe.FindStringSubmatch(p + "/")
	if m == nil {
		return p
	}
	rest := strings.TrimSuffix(m[2], "/")
	return strings.ToUpper(m[1]) + `:\` + strings.ReplaceAll(rest, "/", `\`)
}

// ToWSL converts a C:\... path to /mnt/<drive>/... form.
// Other paths are returned unchanged.
func ToWSL(p string) string {
	m := windowsRe.FindStringSubmatch(p)
	if m == nil {
		return p
	}
	rest := strings.Trim(strings.ReplaceAll(m[2], `\`, "/"), "/")
	if rest == "" {
		return "/mnt/" + strings.ToLower(m[1])
	}
	return "/mnt/" + strings.ToLower(m[1]) + "/" + rest
}

// Clean normalises separators and strips trailing slashes. Windows-form
// paths are converted to their /mnt form first.
func Clean(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(filepath.ToSlash(ToWSL(p)))
}

// Same reports whether two paths name the same location. Drive paths
// compare case-insensitively, as the Windows filesystem does.
func Same(a, b string) bool {
	a, b = Clean(a), Clean(b)
	if a == "" || b == "" {
		return false
	}
	if IsDrivePath(a) && IsDrivePath(b) {
		return strings.EqualFold(a, b)
	}
	return a == b
}

package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// CopyFile copies src over dst, creating parent directories as needed.
// The destination gets the source's permission bits and modification time.
// The copy goes through a temp file in the destination directory so a
// failed copy never leaves a truncated dst.
func CopyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpName) // clean up partial copy
		}
	}()

	if _, err := io.Copy(tmp, srcFile); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chtimes(tmpName, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return err
	}

	success = true
	return nil
}

// matchesExclude returns true if the file at relPath should be skipped.
// A pattern matches the file's basename or any whole path segment.
func matchesExclude(relPath string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	for seg := range strings.SplitSeq(filepath.ToSlash(relPath), "/") {
		if slices.Contains(exclude, seg) {
			return true
		}
	}

	base := filepath.Base(relPath)
	for _, pat := range exclude {
		if matched, _ := filepath.Match(pat, base); matched {
			return true
		}
	}
	return false
}

// within joins root and the slash-separated rel, refusing paths that leave
// root.
func within(root, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(filepath.FromSlash(rel)) {
		return "", fmt.Errorf("invalid path %q", rel)
	}
	joined := filepath.Join(root, filepath.FromSlash(rel))
	r, err := filepath.Rel(root, joined)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes %s", rel, root)
	}
	return joined, nil
}

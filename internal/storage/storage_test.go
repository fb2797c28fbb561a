package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type entry struct {
	Branch      string    `json:"branch"`
	WindowsPath string    `json:"windows_path"`
	WSLPath     string    `json:"wsl_path"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type document struct {
	Version int              `json:"version"`
	Entries map[string]entry `json:"entries"`
}

// leftovers returns the temp files SaveJSON may have left in dir.
func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestSaveLoadJSON_MappingDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".weaseltree.json")
	original := document{
		Version: 1,
		Entries: map[string]entry{
			"r/app": {
				Branch:      "feature-x",
				WindowsPath: "/mnt/c/r/app",
				WSLPath:     "/home/me/r/app",
				UpdatedAt:   time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
			},
			"src/lib": {Branch: "main", WindowsPath: "/mnt/d/src/lib"},
		},
	}

	if err := SaveJSON(path, original); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	var loaded document
	if err := LoadJSON(path, &loaded); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if loaded.Version != 1 || len(loaded.Entries) != 2 {
		t.Fatalf("loaded %+v, want version 1 with 2 entries", loaded)
	}
	got := loaded.Entries["r/app"]
	if got.Branch != "feature-x" || got.WSLPath != "/home/me/r/app" || !got.UpdatedAt.Equal(original.Entries["r/app"].UpdatedAt) {
		t.Errorf("r/app = %+v, want %+v", got, original.Entries["r/app"])
	}
}

func TestSaveJSON_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".weaseltree.json")

	// a longer file written by an older run; the new save must not leave
	// any of its tail behind
	old := `{"version":1,"entries":{"r/app":{"branch":"main"},"r/old":{"branch":"legacy-branch-with-a-long-name"}}}`
	if err := os.WriteFile(path, []byte(old), 0o600); err != nil {
		t.Fatal(err)
	}

	next := document{Version: 1, Entries: map[string]entry{"r/app": {Branch: "dev"}}}
	if err := SaveJSON(path, next); err != nil {
		t.Fatalf("SaveJSON overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "legacy-branch") || strings.Contains(string(data), "r/old") {
		t.Errorf("old content survived the replace:\n%s", data)
	}

	var loaded document
	if err := LoadJSON(path, &loaded); err != nil {
		t.Fatalf("replaced file is not valid JSON: %v", err)
	}
	if len(loaded.Entries) != 1 || loaded.Entries["r/app"].Branch != "dev" {
		t.Errorf("loaded %+v, want only r/app on dev", loaded)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("mode = %o, want 644 so both sides can read it", perm)
	}
	if l := leftovers(t, dir); len(l) > 0 {
		t.Errorf("temp files left behind: %v", l)
	}
}

func TestSaveJSON_CleansUpTempOnError(t *testing.T) {
	t.Parallel()

	t.Run("rename fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		// a non-empty directory where the file should go makes the rename fail
		path := filepath.Join(dir, ".weaseltree.json")
		if err := os.MkdirAll(filepath.Join(path, "keep"), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := SaveJSON(path, document{Version: 1}); err == nil {
			t.Fatal("SaveJSON over a directory should fail")
		}
		if l := leftovers(t, dir); len(l) > 0 {
			t.Errorf("temp files left behind: %v", l)
		}
		if _, err := os.Stat(filepath.Join(path, "keep")); err != nil {
			t.Errorf("directory in the way was modified: %v", err)
		}
	})

	t.Run("marshal fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, ".weaseltree.json")
		if err := os.WriteFile(path, []byte(`{"version":1}`), 0o644); err != nil {
			t.Fatal(err)
		}

		// Channels can't be marshaled to JSON
		if err := SaveJSON(path, make(chan int)); err == nil {
			t.Fatal("expected error for unmarshalable data, got nil")
		}
		if l := leftovers(t, dir); len(l) > 0 {
			t.Errorf("temp files left behind: %v", l)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != `{"version":1}` {
			t.Errorf("existing file changed by a failed save: %q, %v", data, err)
		}
	})
}

func TestSaveJSON_CreatesWindowsHome(t *testing.T) {
	t.Parallel()

	// the profile directory may not exist yet on a fresh test home
	path := filepath.Join(t.TempDir(), "Users", "me", ".weaseltree.json")
	if err := SaveJSON(path, document{Version: 1}); err != nil {
		t.Fatalf("SaveJSON failed to create directories: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to be created: %v", err)
	}
}

func TestSaveJSON_Format(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".weaseltree.json")
	if err := SaveJSON(path, document{Version: 1, Entries: map[string]entry{}}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// hand-editable: indented, newline-terminated
	want := "{\n  \"version\": 1,\n  \"entries\": {}\n}\n"
	if string(data) != want {
		t.Errorf("saved file = %q, want %q", data, want)
	}
}

func TestLoadJSON_Errors(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		var d document
		err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &d)
		if !os.IsNotExist(err) {
			t.Errorf("expected os.IsNotExist error, got %v", err)
		}
	})

	t.Run("truncated file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".weaseltree.json")
		if err := os.WriteFile(path, []byte(`{"version":1,"entries":{"r/app":`), 0o644); err != nil {
			t.Fatal(err)
		}
		var d document
		if err := LoadJSON(path, &d); err == nil {
			t.Fatal("expected error for truncated JSON, got nil")
		}
	})
}

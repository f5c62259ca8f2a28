package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/textsync/internal/config"
)

func TestLoadDefaultConfigExpandsProjectPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "textsync", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}

	wantProject := filepath.Join(tempHome, ".local", "share", "textsync", "project.db")
	if cfg.Project.Path != wantProject {
		t.Fatalf("unexpected project path: got %q want %q", cfg.Project.Path, wantProject)
	}
	if cfg.Timeline.TrackKind != "video" || cfg.Timeline.ElementKind != "Text+" {
		t.Fatalf("unexpected timeline defaults: %+v", cfg.Timeline)
	}
	if cfg.Verbose() {
		t.Fatal("expected info logging by default")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textsync.toml")
	content := `
[project]
path = "` + filepath.ToSlash(filepath.Join(dir, "edit.db")) + `"

[timeline]
element_kind = "Title"

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be loaded, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Project.Path != filepath.Join(dir, "edit.db") {
		t.Fatalf("unexpected project path: %q", cfg.Project.Path)
	}
	if cfg.Timeline.ElementKind != "Title" {
		t.Fatalf("unexpected element kind: %q", cfg.Timeline.ElementKind)
	}
	if cfg.Timeline.TrackKind != "video" {
		t.Fatalf("expected default track kind, got %q", cfg.Timeline.TrackKind)
	}
	if !cfg.Verbose() {
		t.Fatal("expected debug logging")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"empty element kind", "[timeline]\nelement_kind = \"\"\n", "timeline.element_kind"},
		{"unknown key", "[timeline]\nframe_rate = 24\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFallsBackToWorkingDirectoryConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.WriteFile("textsync.toml", []byte("[timeline]\ntrack_kind = \"title\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "textsync.toml" {
		t.Fatalf("expected working directory config, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Timeline.TrackKind != "title" {
		t.Fatalf("unexpected track kind: %q", cfg.Timeline.TrackKind)
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), restoring the original directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

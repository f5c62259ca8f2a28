package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Project points at the timeline project database.
type Project struct {
	Path string `toml:"path"`
}

// Timeline selects which tracks and elements take part in synchronization.
type Timeline struct {
	TrackKind   string `toml:"track_kind"`
	ElementKind string `toml:"element_kind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
}

// Config encapsulates all configuration values for textsync.
type Config struct {
	Project  Project  `toml:"project"`
	Timeline Timeline `toml:"timeline"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Project: Project{
			Path: "~/.local/share/textsync/project.db",
		},
		Timeline: Timeline{
			TrackKind:   "video",
			ElementKind: "Text+",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load locates, parses, and validates a configuration file. It returns the
// resolved path and whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Project.Path == "" {
		return errors.New("project.path must be set")
	}
	if c.Timeline.TrackKind == "" {
		return errors.New("timeline.track_kind must be set")
	}
	if c.Timeline.ElementKind == "" {
		return errors.New("timeline.element_kind must be set")
	}
	switch c.Logging.Level {
	case "debug", "info":
	default:
		return fmt.Errorf("logging.level %q must be debug or info", c.Logging.Level)
	}
	return nil
}

// Verbose reports whether debug logging is configured.
func (c *Config) Verbose() bool {
	return c.Logging.Level == "debug"
}

func (c *Config) normalize() error {
	c.Timeline.TrackKind = strings.TrimSpace(c.Timeline.TrackKind)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	path, err := expandPath(strings.TrimSpace(c.Project.Path))
	if err != nil {
		return fmt.Errorf("project.path: %w", err)
	}
	c.Project.Path = path
	return nil
}

// an explicit path is used as given; otherwise the first existing candidate
// wins and the user config path is reported when none exists
func resolveConfigPath(path string) (string, bool, error) {
	candidates := []string{path}
	if path == "" {
		candidates = []string{"~/.config/textsync/config.toml", "textsync.toml"}
	}

	var first string
	for _, candidate := range candidates {
		expanded, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = expanded
		}
		info, err := os.Stat(expanded)
		switch {
		case err == nil && !info.IsDir():
			return expanded, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return first, false, nil
}

// ExpandPath resolves a leading ~/ and makes the path absolute.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(pathValue, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, rest)
	}
	return filepath.Abs(pathValue)
}

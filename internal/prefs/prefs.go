// Package prefs handles rollcall user preferences persistence.
// Preferences are stored in ~/.config/rollcall/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/rollcall/internal/view"
)

// Prefs holds user preferences for rollcall.
type Prefs struct {
	Theme    string `toml:"theme"`
	PageSize int    `toml:"page_size"`
}

const (
	defaultPrefsPath = "~/.config/rollcall/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used when nothing is saved.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, PageSize: view.PageSizes[0]}
}

// Load reads preferences from the given path, falling back to defaults if
// the file is missing or unreadable.
func Load(path string) Prefs {
	prefs := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		return prefs
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Default()
	}

	return prefs.normalize()
}

func (p Prefs) normalize() Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	if !view.IsAllowedPageSize(p.PageSize) {
		p.PageSize = view.PageSizes[0]
	}
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

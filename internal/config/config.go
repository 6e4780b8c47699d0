package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/rollcall/internal/auth"
	"github.com/five82/rollcall/internal/directory"
)

// Config holds everything rollcall reads from config.toml.
type Config struct {
	UsersURL    string
	SessionDB   string
	LogFile     string
	Credentials Credentials
}

// Credentials is the account the placeholder verifier accepts.
type Credentials struct {
	Email    string
	Password string
}

const (
	defaultConfigPath = "~/.config/rollcall/config.toml"
	defaultSessionDB  = "~/.local/share/rollcall/session.db"
	defaultLogFile    = "~/.local/share/rollcall/rollcall.log"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		UsersURL:  directory.DefaultUsersURL,
		SessionDB: mustExpand(defaultSessionDB),
		LogFile:   mustExpand(defaultLogFile),
		Credentials: Credentials{
			Email:    auth.DefaultEmail,
			Password: auth.DefaultPassword,
		},
	}
}

// Load locates and parses the rollcall config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		UsersURL    string `toml:"users_url"`
		SessionDB   string `toml:"session_db"`
		LogFile     string `toml:"log_file"`
		Credentials struct {
			Email    string `toml:"email"`
			Password string `toml:"password"`
		} `toml:"credentials"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.UsersURL); v != "" {
		cfg.UsersURL = v
	}
	if v := strings.TrimSpace(raw.SessionDB); v != "" {
		cfg.SessionDB = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Credentials.Email); v != "" {
		cfg.Credentials.Email = v
	}
	// Passwords are compared verbatim, so only an absent value falls back.
	if raw.Credentials.Password != "" {
		cfg.Credentials.Password = raw.Credentials.Password
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
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

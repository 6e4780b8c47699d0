package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/rollcall/internal/auth"
	"github.com/five82/rollcall/internal/config"
	"github.com/five82/rollcall/internal/directory"
	"github.com/five82/rollcall/internal/prefs"
	"github.com/five82/rollcall/internal/session"
	"github.com/five82/rollcall/internal/state"
	"github.com/five82/rollcall/internal/storage"
	"github.com/five82/rollcall/internal/ui"
)

// Options configure the rollcall application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/rollcall/prefs.toml
	Version    string // reported in the User-Agent header
}

// Env holds the services shared by the TUI and the CLI commands.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Sessions  *session.Gate
	Auth      auth.Authenticator
	Users     *directory.Client

	kv         *storage.KV
	logFile    *os.File
	prevOutput io.Writer
	prevPrefix string
}

// Open loads configuration, routes logging to the log file and opens the
// session store. Callers must Close the returned Env.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	env := &Env{
		Config:     cfg,
		Prefs:      prefs.Load(prefsPath),
		PrefsPath:  prefsPath,
		prevOutput: log.Writer(),
		prevPrefix: log.Prefix(),
	}

	if err := env.startLogging(); err != nil {
		return nil, err
	}

	kv, err := storage.Open(cfg.SessionDB)
	if err != nil {
		env.stopLogging()
		return nil, fmt.Errorf("open session store: %w", err)
	}
	env.kv = kv
	env.Sessions = session.NewGate(kv)
	env.Auth = auth.Authenticator{
		Verifier: auth.NewStaticVerifier(cfg.Credentials.Email, cfg.Credentials.Password),
		Sessions: env.Sessions,
	}

	client, err := directory.NewClient(cfg.UsersURL)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init users client: %w", err)
	}
	if opts.Version != "" {
		client.SetUserAgent("rollcall/" + opts.Version)
	}
	env.Users = client

	return env, nil
}

// Close releases the session store and restores the previous log output.
func (e *Env) Close() error {
	var err error
	if e.kv != nil {
		err = e.kv.Close()
		e.kv = nil
	}
	e.stopLogging()
	return err
}

func (e *Env) startLogging() error {
	if e.Config.LogFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(e.Config.LogFile), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(e.Config.LogFile, "rollcall")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	e.logFile = f
	return nil
}

func (e *Env) stopLogging() {
	if e.logFile == nil {
		return
	}
	log.SetOutput(e.prevOutput)
	log.SetPrefix(e.prevPrefix)
	_ = e.logFile.Close()
	e.logFile = nil
}

// Run boots the rollcall TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	log.Printf("starting tui (users url %s)", env.Users.URL())

	uiOpts := ui.Options{
		Context:   ctx,
		Sessions:  env.Sessions,
		Auth:      env.Auth,
		Fetcher:   env.Users,
		Store:     &state.Store{},
		Prefs:     env.Prefs,
		PrefsPath: env.PrefsPath,
	}
	err = ui.Run(uiOpts)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

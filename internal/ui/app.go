package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/rollcall/internal/auth"
	"github.com/five82/rollcall/internal/directory"
	"github.com/five82/rollcall/internal/prefs"
	"github.com/five82/rollcall/internal/session"
	"github.com/five82/rollcall/internal/state"
)

// Screen identifies which top-level screen is mounted.
type Screen int

const (
	// ScreenChecking renders nothing until the session check resolves.
	ScreenChecking Screen = iota
	ScreenLogin
	ScreenUsers
)

// Sessions is the part of the session gate the UI reads.
type Sessions interface {
	HasSession(ctx context.Context) (bool, error)
	Current(ctx context.Context) (session.Identity, bool, error)
}

// Authenticator runs the login check and creates the session.
type Authenticator interface {
	Login(ctx context.Context, c auth.Credentials) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Sessions  Sessions
	Auth      Authenticator
	Fetcher   directory.Fetcher
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	sessions  Sessions
	auth      Authenticator
	fetcher   directory.Fetcher
	store     *state.Store
	prefsPath string
	keys      keyMap

	// UI state
	theme  Theme
	screen Screen
	width  int
	height int
	ready  bool

	// Signed-in identity, empty until known
	email string

	login loginForm
	users usersScreen

	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	p := opts.Prefs
	if p.Theme == "" && p.PageSize == 0 {
		p = prefs.Default()
	}

	return Model{
		ctx:       ctx,
		sessions:  opts.Sessions,
		auth:      opts.Auth,
		fetcher:   opts.Fetcher,
		store:     store,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(p.Theme),
		screen:    ScreenChecking,
		login:     newLoginForm(),
		users:     newUsersScreen(p.PageSize),
	}
}

// Screen reports the mounted screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return checkSessionCmd(m.ctx, m.sessions)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case sessionCheckedMsg:
		if msg.err != nil {
			log.Printf("session check failed: %v", msg.err)
		}
		if msg.present {
			m.email = msg.email
			return m.mountUsers()
		}
		return m.mountLogin()

	case loginResultMsg:
		m.login.submitting = false
		if msg.err != nil {
			log.Printf("login rejected: %v", msg.err)
			m.modal = loginAlert(msg.err)
			return m, nil
		}
		m.email = msg.email
		return m.mountUsers()

	case usersFetchedMsg:
		return m.handleUsersFetched(msg)
	}

	if m.screen == ScreenUsers {
		return m.updateUsersAsync(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready || m.screen == ScreenChecking {
		return ""
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	switch m.screen {
	case ScreenLogin:
		return m.renderLogin()
	case ScreenUsers:
		return m.renderUsers()
	}
	return ""
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKey(msg)
	case ScreenUsers:
		return m.handleUsersKey(msg)
	}
	return m, nil
}

func (m Model) mountLogin() (tea.Model, tea.Cmd) {
	m.screen = ScreenLogin
	m.login = newLoginForm()
	return m, m.login.focusCmd()
}

func (m Model) cycleTheme() Model {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.savePrefs()
	return m
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, PageSize: m.users.state.PageSize}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs failed: %v", err)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.unmountUsers()
	return m, tea.Quit
}

// Messages

type sessionCheckedMsg struct {
	present bool
	email   string
	err     error
}

// Commands

func checkSessionCmd(ctx context.Context, sessions Sessions) tea.Cmd {
	return func() tea.Msg {
		if sessions == nil {
			return sessionCheckedMsg{}
		}
		present, err := sessions.HasSession(ctx)
		if err != nil || !present {
			return sessionCheckedMsg{err: err}
		}
		msg := sessionCheckedMsg{present: true}
		if id, ok, err := sessions.Current(ctx); err != nil {
			msg.err = err
		} else if ok {
			msg.email = id.Email
		}
		return msg
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.unmountUsers()
	}
	return err
}

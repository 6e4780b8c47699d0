package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/rollcall/internal/auth"
)

const (
	fieldEmail = iota
	fieldPassword
)

type loginForm struct {
	inputs     [2]textinput.Model
	focus      int
	submitting bool
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 32

	f := loginForm{inputs: [2]textinput.Model{email, password}}
	f.inputs[fieldEmail].Focus()
	return f
}

func (f loginForm) credentials() auth.Credentials {
	return auth.Credentials{
		Email:    f.inputs[fieldEmail].Value(),
		Password: f.inputs[fieldPassword].Value(),
	}
}

func (f loginForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *loginForm) setFocus(idx int) {
	f.focus = (idx + len(f.inputs)) % len(f.inputs)
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextField):
		m.login.setFocus(m.login.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.login.setFocus(m.login.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.login.submitting = true
		return m, loginCmd(m.ctx, m.auth, m.login.credentials())
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	labelStyle := styles.MutedText.Width(10)
	fieldStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(m.theme.Border))
	focusedField := fieldStyle.BorderForeground(lipgloss.Color(m.theme.BorderFocus))

	labels := [2]string{"Email", "Password"}
	var b strings.Builder
	b.WriteString(styles.Logo.Render("rollcall"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Sign in to view the user directory"))
	b.WriteString("\n\n")
	for i, input := range m.login.inputs {
		style := fieldStyle
		if i == m.login.focus {
			style = focusedField
		}
		row := lipgloss.JoinHorizontal(lipgloss.Bottom,
			labelStyle.Render(labels[i]),
			style.Render(input.View()),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.login.submitting {
		b.WriteString(styles.WarningText.Render("Signing in..."))
	} else {
		b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" sign in  ") +
			styles.AccentText.Render("tab") + styles.MutedText.Render(" switch field  ") +
			styles.AccentText.Render("ctrl+c") + styles.MutedText.Render(" quit"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Messages

type loginResultMsg struct {
	email string
	err   error
}

// Commands

func loginCmd(ctx context.Context, a Authenticator, c auth.Credentials) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return loginResultMsg{err: auth.ErrInvalidCredentials}
		}
		if err := a.Login(ctx, c); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{email: strings.TrimSpace(c.Email)}
	}
}

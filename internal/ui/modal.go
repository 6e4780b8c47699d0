package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/rollcall/internal/auth"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// alertModal blocks input until any key is pressed.
type alertModal struct {
	title   string
	message string
}

func newAlert(title, message string) alertModal {
	return alertModal{title: title, message: message}
}

// loginAlert turns a login failure into a user-facing alert.
func loginAlert(err error) alertModal {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		return newAlert("Check your details", capitalize(verr.Error()))
	case errors.Is(err, auth.ErrInvalidCredentials):
		return newAlert("Login failed", "Invalid email or password")
	default:
		return newAlert("Login failed", capitalize(err.Error()))
	}
}

func (a alertModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return a, nil, true
	}
	return a, nil, false
}

func (a alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(a.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(a.message))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Press any key"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

package ui

// renderHeader renders the status line above the users table.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bar := newBarWriter(m.theme.Surface)

	var email, status, fetched string
	if m.email != "" {
		email = bar.Text(truncateMiddle(m.email, 32), styles.Text)
	}

	snap := m.users.snapshot
	switch {
	case m.users.loading:
		status = bar.Text("Loading...", styles.WarningText.Bold(true))
	case snap.Failed():
		status = bar.Text("Offline", styles.DangerText)
	case snap.Loaded:
		status = bar.Text(plural(len(snap.Users), "user"), styles.SuccessText)
	}

	if !snap.LastUpdated.IsZero() {
		fetched = bar.Text("fetched", styles.FaintText) + bar.Gap(1) +
			bar.Text(snap.LastUpdated.Format("15:04:05"), styles.MutedText)
	}

	line := bar.Line(bar.Text("rollcall", styles.Logo), email, status, fetched)
	return styles.Header.Width(m.width).Render(line)
}

// renderCommandBar renders the key hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bar := newBarWriter(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.users.searching {
		commands = []cmd{
			{"enter", "Done"},
			{"esc", "Clear"},
		}
	} else {
		commands = []cmd{
			{"/", "Search"},
			{"1/2/3", "Sort"},
			{"h/l", "Page"},
			{"r", "Rows"},
			{"?", "More"},
			{"q", "Quit"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bar.Hint(c.key, c.desc, styles.AccentText, styles.MutedText))
	}
	segments = append(segments, bar.Hint("T", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Header.Width(m.width).Render(bar.Line(segments...))
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/rollcall/internal/directory"
	"github.com/five82/rollcall/internal/record"
	"github.com/five82/rollcall/internal/state"
	"github.com/five82/rollcall/internal/view"
)

// column describes one sortable table column.
type column struct {
	title string
	field string
}

var columns = []column{
	{"Name", view.FieldName},
	{"Email", view.FieldEmail},
	{"City", view.FieldCity},
}

type usersScreen struct {
	state     view.State
	search    textinput.Model
	searching bool
	spinner   spinner.Model
	paginator paginator.Model

	// fetch bookkeeping for the current mount
	mountID int
	loading bool
	cancel  context.CancelFunc

	snapshot state.Snapshot
}

func newUsersScreen(pageSize int) usersScreen {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search by name"
	search.CharLimit = 64
	search.Width = 30

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.ArabicFormat = "page %d/%d"

	return usersScreen{
		state:     view.DefaultState().WithPageSize(pageSize),
		search:    search,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		paginator: pg,
	}
}

// result runs the pipeline over the mounted collection.
func (u usersScreen) result() view.Result {
	return view.Compute(u.snapshot.Users, u.state)
}

// mountUsers switches to the users screen and issues its single fetch.
func (m Model) mountUsers() (tea.Model, tea.Cmd) {
	m.unmountUsers()

	m.screen = ScreenUsers
	gen := m.store.Reset()

	ctx, cancel := context.WithCancel(m.ctx)
	m.users.mountID++
	m.users.cancel = cancel
	m.users.loading = true
	m.users.snapshot = state.Snapshot{}

	return m, tea.Batch(
		m.users.spinner.Tick,
		fetchUsersCmd(ctx, m.users.mountID, gen, m.fetcher, m.store),
	)
}

// unmountUsers cancels an in-flight fetch and drops the collection.
func (m Model) unmountUsers() {
	if m.users.cancel != nil {
		m.users.cancel()
	}
	if m.store != nil {
		m.store.Reset()
	}
}

func (m Model) handleUsersFetched(msg usersFetchedMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenUsers || msg.mountID != m.users.mountID {
		return m, nil
	}
	m.users.loading = false
	m.users.snapshot = m.store.Snapshot()
	m.users.state = m.users.state.WithPage(m.users.state.Page, m.users.result().Total)
	return m, nil
}

// updateUsersAsync forwards non-key messages to the animated components.
func (m Model) updateUsersAsync(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case spinner.TickMsg:
		if !m.users.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.users.spinner, cmd = m.users.spinner.Update(msg)
		return m, cmd
	}
	if m.users.searching {
		var cmd tea.Cmd
		m.users.search, cmd = m.users.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.users.searching {
		return m.handleSearchInput(msg)
	}

	total := m.users.result().Total

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme(), nil

	case key.Matches(msg, m.keys.Search):
		m.users.searching = true
		m.users.search.SetValue(m.users.state.Search)
		m.users.search.CursorEnd()
		cmd := m.users.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		m.users.state = m.users.state.WithSearch("")
		m.users.search.SetValue("")
		return m, nil

	case key.Matches(msg, m.keys.SortName):
		m.users.state = m.users.state.WithSort(view.FieldName)
	case key.Matches(msg, m.keys.SortEmail):
		m.users.state = m.users.state.WithSort(view.FieldEmail)
	case key.Matches(msg, m.keys.SortCity):
		m.users.state = m.users.state.WithSort(view.FieldCity)

	case key.Matches(msg, m.keys.PrevPage):
		m.users.state = m.users.state.WithPage(m.users.state.Page-1, total)
	case key.Matches(msg, m.keys.NextPage):
		m.users.state = m.users.state.WithPage(m.users.state.Page+1, total)

	case key.Matches(msg, m.keys.CyclePerPage):
		m.users.state = m.users.state.WithPageSize(view.NextPageSize(m.users.state.PageSize))
		m.savePrefs()
	}

	return m, nil
}

// handleSearchInput filters live as the user types.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.users.searching = false
		m.users.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.users.searching = false
		m.users.search.Blur()
		m.users.search.SetValue("")
		m.users.state = m.users.state.WithSearch("")
		return m, nil
	}

	var cmd tea.Cmd
	m.users.search, cmd = m.users.search.Update(msg)
	m.users.state = m.users.state.WithSearch(m.users.search.Value())
	return m, cmd
}

func (m Model) renderUsers() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderUsersBody())
	return b.String()
}

func (m Model) renderUsersBody() string {
	styles := m.theme.Styles()
	contentHeight := max(m.height-3, 1)

	if m.users.loading {
		msg := m.users.spinner.View() + " " + styles.MutedText.Render("Loading users...")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	if m.users.snapshot.Failed() {
		return styles.DangerText.Render("Error: " + fetchErrorText(m.users.snapshot.LastError))
	}

	var b strings.Builder
	b.WriteString(m.renderSearchLine())
	b.WriteString("\n")

	res := m.users.result()
	if len(res.Rows) == 0 {
		b.WriteString(styles.MutedText.Render("No users match"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderUsersTable(res.Rows))
		b.WriteString("\n")
	}

	pg := m.users.paginator
	pg.PerPage = m.users.state.PageSize
	pg.TotalPages = res.DisplayPages()
	pg.Page = min(m.users.state.Page, pg.TotalPages-1)

	footer := []string{
		styles.AccentText.Render(pg.View()),
		styles.MutedText.Render(plural(res.Total, "user")),
		styles.FaintText.Render(fmt.Sprintf("%d per page", m.users.state.PageSize)),
	}
	b.WriteString(strings.Join(footer, styles.FaintText.Render("  ·  ")))
	return b.String()
}

func (m Model) renderSearchLine() string {
	styles := m.theme.Styles()
	if m.users.searching {
		return m.users.search.View()
	}
	if m.users.state.Search == "" {
		return styles.FaintText.Render("/ search by name")
	}
	return styles.AccentText.Render("/ "+m.users.state.Search) + styles.FaintText.Render("  (esc clears)")
}

func (m Model) renderUsersTable(rows []record.Record) string {
	styles := m.theme.Styles()

	headers := make([]string, len(columns))
	activeCol := -1
	for i, c := range columns {
		headers[i] = c.title
		if c.field == m.users.state.SortField {
			activeCol = i
			headers[i] = c.title + " " + sortArrow(m.users.state.Direction)
		}
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(columns))
		for j, c := range columns {
			cells[j] = truncate(r.String(c.field), 40)
		}
		data[i] = cells
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorder).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == activeCol {
					return styles.TableHeaderActive
				}
				return styles.TableHeader
			}
			return styles.TableCell
		})
	if m.width > 0 {
		t = t.Width(m.width)
	}
	return t.String()
}

func sortArrow(d view.Direction) string {
	if d == view.Descending {
		return "▼"
	}
	return "▲"
}

// fetchErrorText renders a fetch failure as a single line.
func fetchErrorText(err error) string {
	var ferr *directory.FetchError
	if errors.As(err, &ferr) && ferr.StatusCode != 0 {
		return fmt.Sprintf("could not load users (server returned %d)", ferr.StatusCode)
	}
	return "could not load users: " + err.Error()
}

// Messages

type usersFetchedMsg struct {
	mountID int
}

// Commands

// fetchUsersCmd performs the single fetch for a mount. Results arriving
// after the context is cancelled or the store has been reset are dropped.
func fetchUsersCmd(ctx context.Context, mountID int, gen uint64, f directory.Fetcher, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		if f == nil {
			if !store.UpdateIfCurrent(gen, nil, errors.New("no user source configured")) {
				return nil
			}
			return usersFetchedMsg{mountID: mountID}
		}
		users, err := f.FetchUsers(ctx)
		if ctx.Err() != nil || !store.UpdateIfCurrent(gen, users, err) {
			return nil
		}
		if err != nil {
			log.Printf("fetch users failed: %v", err)
		}
		return usersFetchedMsg{mountID: mountID}
	}
}

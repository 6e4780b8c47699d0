package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/rollcall/internal/directory"
	"github.com/five82/rollcall/internal/prefs"
	"github.com/five82/rollcall/internal/record"
	"github.com/five82/rollcall/internal/state"
	"github.com/five82/rollcall/internal/view"
)

func mountedUsers(t *testing.T) Model {
	t.Helper()
	m, _ := newHarness(t, true)
	return drain(t, m, m.Init())
}

func rowNames(m Model) []string {
	res := m.users.result()
	names := make([]string, len(res.Rows))
	for i, r := range res.Rows {
		names[i] = r.String(view.FieldName)
	}
	return names
}

func TestUsers_DefaultViewIsFirstFiveByName(t *testing.T) {
	m := mountedUsers(t)

	got := rowNames(m)
	want := []string{"Aurelia Kuhn", "bram osei", "Chelsey Dietrich", "Clementina DuBuque", "Clementine Bauch"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %v, want %v", got, want)
	}

	view := m.View()
	for _, s := range []string{"Name ▲", "Email", "City", "page 1/3", "12 users"} {
		if !strings.Contains(view, s) {
			t.Fatalf("view missing %q:\n%s", s, view)
		}
	}
}

func TestUsers_SortKeysToggleDirection(t *testing.T) {
	m := mountedUsers(t)

	m = send(t, m, keyRunes("1"))
	if m.users.state.Direction != view.Descending {
		t.Fatalf("Direction = %v, want desc after re-selecting name", m.users.state.Direction)
	}
	if got := rowNames(m)[0]; got != "Patricia Lebsack" {
		t.Fatalf("first row desc = %q, want Patricia Lebsack", got)
	}
	if !strings.Contains(m.View(), "Name ▼") {
		t.Fatal("header should show descending arrow")
	}

	m = send(t, m, keyRunes("3"))
	if m.users.state.SortField != view.FieldCity || m.users.state.Direction != view.Ascending {
		t.Fatalf("state = %+v, want city asc", m.users.state)
	}
	if got := rowNames(m)[0]; got != "Nicholas Runolfsdottir V" {
		t.Fatalf("first row by city = %q, want Nicholas Runolfsdottir V (Aliyaview)", got)
	}
}

func TestUsers_PagingClamps(t *testing.T) {
	m := mountedUsers(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.users.state.Page != 0 {
		t.Fatalf("Page = %d, want 0 after prev on first page", m.users.state.Page)
	}

	for i := 0; i < 5; i++ {
		m = send(t, m, keyRunes("l"))
	}
	if m.users.state.Page != 2 {
		t.Fatalf("Page = %d, want 2 (last)", m.users.state.Page)
	}
	if got := len(rowNames(m)); got != 2 {
		t.Fatalf("last page rows = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "page 3/3") {
		t.Fatal("paginator should show page 3/3")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.users.state.Page != 1 {
		t.Fatalf("Page = %d, want 1 after pgup", m.users.state.Page)
	}
}

func TestUsers_PageSizeCyclesAndPersists(t *testing.T) {
	m := mountedUsers(t)
	m.prefsPath = filepath.Join(t.TempDir(), "prefs.toml")

	m = send(t, m, keyRunes("l"))
	m = send(t, m, keyRunes("r"))

	if m.users.state.PageSize != 10 || m.users.state.Page != 0 {
		t.Fatalf("state = %+v, want page size 10 on page 0", m.users.state)
	}
	if got := prefs.Load(m.prefsPath); got.PageSize != 10 {
		t.Fatalf("saved PageSize = %d, want 10", got.PageSize)
	}

	m = send(t, m, keyRunes("r"))
	m = send(t, m, keyRunes("r"))
	if m.users.state.PageSize != 5 {
		t.Fatalf("PageSize = %d, want wrap to 5", m.users.state.PageSize)
	}
}

func TestUsers_ThemeCyclesAndPersists(t *testing.T) {
	m := mountedUsers(t)
	m.prefsPath = filepath.Join(t.TempDir(), "prefs.toml")

	m = send(t, m, keyRunes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath); got.Theme != "Kanagawa" {
		t.Fatalf("saved Theme = %q, want Kanagawa", got.Theme)
	}
}

func TestUsers_SearchFiltersLiveAndResetsPage(t *testing.T) {
	m := mountedUsers(t)
	m = send(t, m, keyRunes("l"))

	m = send(t, m, keyRunes("/"))
	if !m.users.searching {
		t.Fatal("/ should focus search")
	}
	m = typeText(t, m, "LE")

	if m.users.state.Search != "LE" || m.users.state.Page != 0 {
		t.Fatalf("state = %+v, want search LE on page 0", m.users.state)
	}
	res := m.users.result()
	if res.Total != 5 {
		t.Fatalf("Total = %d, want 5 names containing le", res.Total)
	}

	// Letters typed into search are not commands.
	if m.users.state.SortField != view.FieldName || m.users.state.Direction != view.Ascending {
		t.Fatalf("typing changed sort state: %+v", m.users.state)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.users.searching {
		t.Fatal("enter should leave search mode")
	}
	if m.users.state.Search != "LE" {
		t.Fatal("enter should keep the term")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.users.state.Search != "" || m.users.result().Total != 12 {
		t.Fatalf("esc should clear search, got %+v", m.users.state)
	}
}

func TestUsers_NoMatchesShowsEmptyState(t *testing.T) {
	m := mountedUsers(t)
	m = send(t, m, keyRunes("/"))
	m = typeText(t, m, "zzz")

	view := m.View()
	if !strings.Contains(view, "No users match") || !strings.Contains(view, "page 1/1") {
		t.Fatalf("empty view wrong:\n%s", view)
	}
}

func TestFetchErrorText(t *testing.T) {
	err := &directory.FetchError{URL: "http://x", StatusCode: 503}
	if got := fetchErrorText(err); got != "could not load users (server returned 503)" {
		t.Fatalf("fetchErrorText = %q", got)
	}
}

func TestFetchUsersCmd_DropsResultAfterRemount(t *testing.T) {
	store := &state.Store{}
	f := &fakeFetcher{users: []record.Record{{"id": float64(1), "name": "Ann"}}}

	gen := store.Reset()
	cmd := fetchUsersCmd(context.Background(), 1, gen, f, store)
	store.Reset() // a newer mount owns the store now

	if msg := cmd(); msg != nil {
		t.Fatalf("fetch for reset store returned %#v, want nil", msg)
	}
	if snap := store.Snapshot(); snap.Loaded || len(snap.Users) != 0 {
		t.Fatalf("snapshot = %+v, want untouched after remount", snap)
	}
}

func TestFetchUsersCmd_WritesCurrentGeneration(t *testing.T) {
	store := &state.Store{}
	f := &fakeFetcher{users: []record.Record{{"id": float64(1), "name": "Ann"}}}

	gen := store.Reset()
	msg := fetchUsersCmd(context.Background(), 4, gen, f, store)()
	if got, ok := msg.(usersFetchedMsg); !ok || got.mountID != 4 {
		t.Fatalf("msg = %#v, want usersFetchedMsg for mount 4", msg)
	}
	if snap := store.Snapshot(); !snap.Loaded || len(snap.Users) != 1 {
		t.Fatalf("snapshot = %+v, want one user", snap)
	}
}

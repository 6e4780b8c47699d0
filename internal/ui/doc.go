// Package ui provides the Bubble Tea TUI for rollcall.
//
// # Screens
//
// The root Model mounts one screen at a time:
//
//   - ScreenChecking: nothing is rendered until the session check resolves,
//     so the login form never flashes for a signed-in user
//   - ScreenLogin: email and masked password inputs; failures open a
//     blocking alert that any key dismisses
//   - ScreenUsers: the directory table driven by view.Compute
//
// # Fetch Lifecycle
//
// Mounting the users screen resets the state.Store and issues exactly one
// fetch command bound to a cancellable context. Quitting or remounting
// cancels it. Each mount carries an id so a late result from an earlier
// mount is ignored.
//
// # Key Bindings
//
// Bindings live in keys.go and are rendered by the help overlay (?):
//
//	/        focus the search input (filters live, resets the page)
//	1 2 3    sort by name, email, city; repeat to reverse
//	h l      previous and next page (also arrows, pgup, pgdown)
//	r        cycle rows per page through view.PageSizes
//	T        cycle theme
//	q        quit (ctrl+c works everywhere)
//
// Theme and rows per page are written to the prefs file when they change.
package ui

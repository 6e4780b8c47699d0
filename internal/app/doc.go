// Package app is the composition root for rollcall.
//
// # Components
//
//   - app.go: Open builds an Env (config, prefs, log file, session store,
//     authenticator, users client); Run starts the TUI on top of it
//   - loader.go: one-shot fetch used by the headless `users` command
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.Load()         Read config.toml
//	       ├─────> prefs.Load()          Theme and rows per page
//	       ├─────> tea.LogToFile()       log package → log_file
//	       ├─────> storage.Open()        sqlite key/value store
//	       ├─────> session.NewGate()     Session flag over the store
//	       └─────> directory.NewClient() Users endpoint
//
//	Run() → ui.Run()                     Session check, login, users screen
//
// # Error Handling
//
// Errors from Open are fatal and returned wrapped ("load config: ...",
// "open session store: ..."). Once the TUI is running nothing is fatal:
// fetch and login failures are shown on screen and logged.
//
// Close restores the log package's previous output, so tests and CLI
// commands can open and close an Env repeatedly.
package app

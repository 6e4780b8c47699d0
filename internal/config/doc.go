// Package config loads rollcall's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/rollcall/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but fields are empty, use the default for that field
//
// # TOML Format
//
//	users_url  = "https://jsonplaceholder.typicode.com/users"
//	session_db = "~/.local/share/rollcall/session.db"
//	log_file   = "~/.local/share/rollcall/rollcall.log"
//
//	[credentials]
//	email    = "test@gmail.com"
//	password = "pass123"
//
// Every field is optional. Paths get tilde expansion and are made absolute.
// The credentials table configures the placeholder verifier; it is not a
// secret store.
//
// Missing config files are not an error. Open, read and parse failures are
// returned wrapped.
package config

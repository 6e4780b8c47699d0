// Package session persists the marker that says a user has logged in.
//
// The marker is a single entry in a key/value store: key "user" holding a
// JSON object such as {"email":"test@gmail.com"}. Its presence is the only
// signal consulted when the UI mounts:
//
//	HasSession ──yes──> users screen
//	           └─no───> login form ──Login ok──> Create ──> users screen
//
// The entry is written once after a successful credential check and is never
// mutated afterwards. There is no logout, so nothing in rollcall deletes it.
//
// Gate depends only on the small KV interface. Production wiring passes a
// *storage.KV (SQLite); tests pass an in-memory map.
package session

// Package state holds the fetched user collection behind a readers-writer
// lock so the fetch goroutine and the UI never share mutable slices.
//
// # Update Semantics
//
//	// Success: replace the collection
//	store.Update(users, nil)
//	→ snapshot.Users = users
//	→ snapshot.LastError = nil
//
//	// Failure: keep the previous collection, record the error
//	store.Update(nil, err)
//	→ snapshot.Users = <unchanged>
//	→ snapshot.LastError = err
//
// Both cases set Loaded and LastUpdated. Snapshot clones the slice header
// and wraps the error, so callers may reorder or truncate what they get back.
// Records themselves are shared and must be treated as read-only.
//
// The zero Store is ready to use. Reset returns it to that state when the
// users screen unmounts.
package state

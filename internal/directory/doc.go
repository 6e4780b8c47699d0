// Package directory is the HTTP client for the remote user directory.
//
// The directory is a single endpoint returning a JSON array of user objects.
// Each object carries at least id, name, email and address.city; everything
// else is kept as-is in the decoded record.Record.
//
// FetchUsers performs exactly one GET. There is no retry and no paging on the
// wire. Any transport error, non-2xx status or undecodable body comes back as
// a *FetchError so callers can render it as a single error state:
//
//	users, err := client.FetchUsers(ctx)
//	var ferr *directory.FetchError
//	if errors.As(err, &ferr) {
//		// show ferr.Error() in place of the table
//	}
//
// Requests carry Accept: application/json, a rollcall User-Agent and a fresh
// X-Request-ID so a fetch can be matched against server logs.
package directory

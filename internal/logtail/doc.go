// Package logtail reads the tail of rollcall's log file and styles it for
// the terminal.
//
// Read keeps a ring buffer of maxLines entries, so memory stays
// O(maxLines) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//
// A missing file is not an error; Read returns nil, nil.
//
// Palette.ColorizeLine recognises the standard log package header, with or
// without the "rollcall " prefix, and dims the timestamp. Messages that
// mention an error or failure are rendered with the Failure style. Lines
// that do not start with a timestamp are returned unchanged.
package logtail

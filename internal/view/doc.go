// Package view is the client-side data view engine behind the users screen.
//
// # Overview
//
// Compute turns a fetched collection and a caller-owned State into the exact
// page of rows to render:
//
//	records ──> Filter(name contains search) ──> Sort(field, direction) ──> Paginate(page, size)
//
// The package holds no state of its own. The UI keeps a State value, replaces
// it through the With* methods on every key press and calls Compute again.
//
// # Filtering
//
// A record matches when its top-level "name" string contains the search term.
// Both sides are case-folded with golang.org/x/text/cases. An empty term keeps
// every record in arrival order.
//
// # Sorting
//
// Sort is stable and resolves the sort field through record.Resolve, so
// "address.city" works the same as "name". Values compare as follows:
//
//   - strings: case-folded, lexicographic
//   - numbers: numeric
//   - booleans: false before true
//   - mixed kinds: bool < number < string < anything else
//   - missing paths: before every present value
//
// Descending inverts the comparison instead of reversing the output, so rows
// that tie keep their input order in both directions and missing values end up
// last.
//
// # Pagination
//
// Paginate returns the half-open window [page*size, page*size+size) clamped
// to the filtered length. A page past the end is empty rather than an error.
// Result.Pages is zero for an empty result; DisplayPages reports it as one.
//
// # Sort control
//
// State.WithSort implements the column header behaviour: choosing the active
// column flips the direction, choosing another column selects it ascending.
// WithSearch and WithPageSize reset the page to zero; WithPage clamps.
package view

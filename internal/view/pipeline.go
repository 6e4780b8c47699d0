package view

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/rollcall/internal/record"
)

// Result is the slice of rows to render plus the counts the pager needs.
type Result struct {
	Rows  []record.Record
	Total int
	Pages int
}

// DisplayPages returns Pages, treating an empty result as a single page.
func (r Result) DisplayPages() int {
	if r.Pages < 1 {
		return 1
	}
	return r.Pages
}

// Compute runs filter, sort and paginate over records for the given state.
// The input slice and its records are never modified.
func Compute(records []record.Record, s State) Result {
	filtered := Filter(records, s.Search)
	sorted := Sort(filtered, s.SortField, s.Direction)
	return Result{
		Rows:  Paginate(sorted, s.Page, s.PageSize),
		Total: len(sorted),
		Pages: PageCount(len(sorted), s.PageSize),
	}
}

// Filter keeps the records whose name contains term, compared case-folded.
// An empty term keeps every record.
func Filter(records []record.Record, term string) []record.Record {
	out := make([]record.Record, 0, len(records))
	if term == "" {
		return append(out, records...)
	}
	folder := cases.Fold()
	needle := folder.String(term)
	for _, r := range records {
		name, ok := r["name"].(string)
		if !ok {
			continue
		}
		if strings.Contains(folder.String(name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a stably sorted copy of records ordered by the value at field.
// Missing values order before present ones; Descending reverses every
// comparison, so missing values come last and ties keep their input order.
func Sort(records []record.Record, field string, dir Direction) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)
	if field == "" || len(out) < 2 {
		return out
	}

	folder := cases.Fold()
	keys := make([]sortKey, len(out))
	for i, r := range out {
		v, ok := record.Resolve(r, field)
		keys[i] = newSortKey(v, ok, folder)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		c := compareKeys(keys[idx[i]], keys[idx[j]])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})

	sorted := make([]record.Record, len(out))
	for i, at := range idx {
		sorted[i] = out[at]
	}
	return sorted
}

// Paginate returns records[page*size : page*size+size] clamped to the slice.
// Out-of-range pages and non-positive sizes yield an empty page.
func Paginate(records []record.Record, page, size int) []record.Record {
	if size <= 0 {
		return []record.Record{}
	}
	if page < 0 {
		page = 0
	}
	// Checked before multiplying: page*size can overflow.
	if len(records) == 0 || page > (len(records)-1)/size {
		return []record.Record{}
	}
	from := page * size
	to := min(from+size, len(records))
	out := make([]record.Record, to-from)
	copy(out, records[from:to])
	return out
}

// PageCount returns ceil(total/size), or 0 when size is not positive.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Type ranks used when two present values have different kinds.
const (
	rankBool = iota
	rankNumber
	rankString
	rankOther
)

type sortKey struct {
	present bool
	rank    int
	b       bool
	n       float64
	s       string
}

func newSortKey(v any, present bool, folder cases.Caser) sortKey {
	if !present {
		return sortKey{}
	}
	switch t := v.(type) {
	case bool:
		return sortKey{present: true, rank: rankBool, b: t}
	case string:
		return sortKey{present: true, rank: rankString, s: folder.String(t)}
	}
	if n, ok := toFloat(v); ok {
		return sortKey{present: true, rank: rankNumber, n: n}
	}
	return sortKey{present: true, rank: rankOther, s: fmt.Sprint(v)}
}

func compareKeys(a, b sortKey) int {
	switch {
	case !a.present && !b.present:
		return 0
	case !a.present:
		return -1
	case !b.present:
		return 1
	}
	if a.rank != b.rank {
		if a.rank < b.rank {
			return -1
		}
		return 1
	}
	switch a.rank {
	case rankBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case rankNumber:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(a.s, b.s)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

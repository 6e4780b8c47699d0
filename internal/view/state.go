package view

// Direction is the sort direction of the active column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Sortable column paths exposed by the users screen.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldCity  = "address.city"
)

// PageSizes is the allowed rows-per-page set. The first entry is the default.
var PageSizes = []int{5, 10, 15}

// State is the caller-owned view state. It is passed by value into Compute
// and every With* method returns a modified copy.
type State struct {
	Search    string
	SortField string
	Direction Direction
	Page      int
	PageSize  int
}

// DefaultState returns the initial view state: no search, name ascending,
// first page, first allowed page size.
func DefaultState() State {
	return State{
		SortField: FieldName,
		Direction: Ascending,
		PageSize:  PageSizes[0],
	}
}

// WithSearch replaces the search term. Changing the term resets to page 0.
func (s State) WithSearch(term string) State {
	if term != s.Search {
		s.Page = 0
	}
	s.Search = term
	return s
}

// WithSort applies a column selection. Selecting the active column toggles
// the direction; selecting another column makes it active in ascending order.
func (s State) WithSort(field string) State {
	if field == s.SortField {
		s.Direction = s.Direction.Toggle()
		return s
	}
	s.SortField = field
	s.Direction = Ascending
	return s
}

// WithPageSize changes rows per page and resets to page 0. Sizes outside
// PageSizes are ignored.
func (s State) WithPageSize(size int) State {
	if !IsAllowedPageSize(size) {
		return s
	}
	if size != s.PageSize {
		s.Page = 0
	}
	s.PageSize = size
	return s
}

// WithPage moves to page, clamped to [0, pages-1] for a filtered total.
func (s State) WithPage(page, total int) State {
	last := PageCount(total, s.PageSize) - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	s.Page = page
	return s
}

// NextPageSize returns the allowed size after current, wrapping around.
func NextPageSize(current int) int {
	for i, size := range PageSizes {
		if size == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

// IsAllowedPageSize reports whether size is in PageSizes.
func IsAllowedPageSize(size int) bool {
	for _, allowed := range PageSizes {
		if allowed == size {
			return true
		}
	}
	return false
}

package view

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/rollcall/internal/record"
)

func user(id int, name, city string) record.Record {
	return record.Record{
		"id":      float64(id),
		"name":    name,
		"email":   strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		"address": map[string]any{"city": city},
	}
}

func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Key()
	}
	return out
}

func names(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String("name")
	}
	return out
}

func twelveUsers() []record.Record {
	out := make([]record.Record, 0, 12)
	for i := 1; i <= 12; i++ {
		out = append(out, user(i, fmt.Sprintf("User %02d", i), "Gwenborough"))
	}
	return out
}

func TestFilter_EmptyTermIsIdentity(t *testing.T) {
	in := []record.Record{user(1, "Bob", "A"), user(2, "alice", "B"), user(3, "Carol", "C")}
	got := Filter(in, "")
	if !reflect.DeepEqual(ids(got), ids(in)) {
		t.Fatalf("Filter(\"\") = %v, want %v", ids(got), ids(in))
	}
}

func TestFilter_CaseInsensitiveSubstringOnName(t *testing.T) {
	in := []record.Record{user(1, "Bob", "A"), user(2, "alice", "B"), user(3, "Carol", "C")}
	got := names(Filter(in, "a"))
	want := []string{"alice", "Carol"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter(a) = %v, want %v", got, want)
	}

	got = names(Filter(in, "CAR"))
	if !reflect.DeepEqual(got, []string{"Carol"}) {
		t.Fatalf("Filter(CAR) = %v, want [Carol]", got)
	}
}

func TestFilter_PartitionsCollection(t *testing.T) {
	in := []record.Record{
		user(1, "Leanne Graham", "Gwenborough"),
		user(2, "Ervin Howell", "Wisokyburgh"),
		user(3, "Clementine Bauch", "McKenziehaven"),
		user(4, "Patricia Lebsack", "South Elvis"),
		user(5, "Chelsey Dietrich", "Roscoeview"),
	}
	term := "LE"
	kept := map[string]bool{}
	for _, r := range Filter(in, term) {
		kept[r.Key()] = true
		if !strings.Contains(strings.ToLower(r.String("name")), "le") {
			t.Fatalf("kept %q which does not contain %q", r.String("name"), term)
		}
	}
	for _, r := range in {
		if kept[r.Key()] {
			continue
		}
		if strings.Contains(strings.ToLower(r.String("name")), "le") {
			t.Fatalf("dropped %q which contains %q", r.String("name"), term)
		}
	}
	if len(kept) != 3 {
		t.Fatalf("kept %d records, want 3", len(kept))
	}
}

func TestFilter_IgnoresOtherFieldsAndMissingName(t *testing.T) {
	in := []record.Record{
		{"id": float64(1), "email": "anna@example.com"},
		user(2, "Bob", "Annapolis"),
	}
	if got := Filter(in, "ann"); len(got) != 0 {
		t.Fatalf("Filter(ann) = %v, want no matches", ids(got))
	}
}

func TestSort_CaseInsensitiveAscendingAndDescending(t *testing.T) {
	in := []record.Record{user(1, "bob", "x"), user(2, "Alice", "x"), user(3, "carol", "x")}

	if got := names(Sort(in, FieldName, Ascending)); !reflect.DeepEqual(got, []string{"Alice", "bob", "carol"}) {
		t.Fatalf("ascending = %v", got)
	}
	if got := names(Sort(in, FieldName, Descending)); !reflect.DeepEqual(got, []string{"carol", "bob", "Alice"}) {
		t.Fatalf("descending = %v", got)
	}
	if got := ids(in); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("input reordered: %v", got)
	}
}

func TestSort_StableOnNestedTies(t *testing.T) {
	in := []record.Record{
		user(1, "A", "Paris"),
		user(2, "B", "Berlin"),
		user(3, "C", "paris"),
		user(4, "D", "Berlin"),
	}

	got := ids(Sort(in, FieldCity, Ascending))
	want := []string{"2", "4", "1", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ascending by city = %v, want %v", got, want)
	}

	got = ids(Sort(in, FieldCity, Descending))
	want = []string{"1", "3", "2", "4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("descending by city = %v, want %v (ties keep input order)", got, want)
	}
}

func TestSort_MissingValuesOrderFirstAscendingLastDescending(t *testing.T) {
	in := []record.Record{
		user(1, "A", "Paris"),
		{"id": float64(2), "name": "B"},
		user(3, "C", "Amsterdam"),
		{"id": float64(4), "name": "D", "address": "not an object"},
	}

	got := ids(Sort(in, FieldCity, Ascending))
	want := []string{"2", "4", "3", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ascending = %v, want %v", got, want)
	}

	got = ids(Sort(in, FieldCity, Descending))
	want = []string{"1", "3", "2", "4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("descending = %v, want %v", got, want)
	}
}

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	in := []record.Record{user(3, "C", "x"), user(1, "A", "x"), user(2, "B", "x")}
	for _, field := range []string{"", "website", "address.zipcode"} {
		if got := ids(Sort(in, field, Ascending)); !reflect.DeepEqual(got, []string{"3", "1", "2"}) {
			t.Fatalf("Sort(%q) = %v, want input order", field, got)
		}
	}
}

func TestSort_NaturalOrderForNonStrings(t *testing.T) {
	in := []record.Record{
		{"id": float64(10)},
		{"id": float64(2)},
		{"id": "b"},
		{"id": true},
		{"id": float64(33)},
		{"id": false},
	}
	got := ids(Sort(in, "id", Ascending))
	want := []string{"false", "true", "2", "10", "33", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sort(id) = %v, want %v", got, want)
	}
}

func TestSort_ToggleRoundTrip(t *testing.T) {
	in := []record.Record{
		user(1, "Dana", "Oslo"),
		user(2, "ann", "Rome"),
		user(3, "Ann", "Oslo"),
		user(4, "bo", "Rome"),
	}
	for _, field := range []string{FieldName, FieldCity} {
		asc := Sort(in, field, Ascending)
		back := Sort(Sort(asc, field, Descending), field, Ascending)
		if !reflect.DeepEqual(ids(back), ids(asc)) {
			t.Fatalf("%s: asc->desc->asc = %v, want %v", field, ids(back), ids(asc))
		}
	}
}

func TestPaginate(t *testing.T) {
	in := twelveUsers()

	tests := []struct {
		name string
		page int
		size int
		want int
	}{
		{"first page", 0, 5, 5},
		{"middle page", 1, 5, 5},
		{"last partial page", 2, 5, 2},
		{"past the end", 3, 5, 0},
		{"far past the end", 99, 5, 0},
		{"page index that overflows offset", math.MaxInt/5 + 1, 5, 0},
		{"max page index", math.MaxInt, 15, 0},
		{"negative page clamps to first", -1, 5, 5},
		{"zero size", 0, 0, 0},
		{"size larger than collection", 0, 15, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(in, tt.page, tt.size)
			if len(got) != tt.want {
				t.Fatalf("Paginate(%d, %d) len = %d, want %d", tt.page, tt.size, len(got), tt.want)
			}
		})
	}
}

func TestPaginate_PagesCoverCollectionExactly(t *testing.T) {
	in := twelveUsers()
	for _, size := range PageSizes {
		var joined []record.Record
		pages := PageCount(len(in), size)
		for p := 0; p < pages; p++ {
			joined = append(joined, Paginate(in, p, size)...)
		}
		if !reflect.DeepEqual(ids(joined), ids(in)) {
			t.Fatalf("size %d: pages joined = %v, want %v", size, ids(joined), ids(in))
		}
	}
}

func TestCompute_TwelveUsersFivePerPage(t *testing.T) {
	in := twelveUsers()
	s := DefaultState()
	s.PageSize = 5

	res := Compute(in, s)
	if res.Total != 12 || res.Pages != 3 {
		t.Fatalf("Total/Pages = %d/%d, want 12/3", res.Total, res.Pages)
	}
	if len(res.Rows) != 5 {
		t.Fatalf("page 0 rows = %d, want 5", len(res.Rows))
	}

	s.Page = 2
	res = Compute(in, s)
	if len(res.Rows) != 2 {
		t.Fatalf("page 2 rows = %d, want 2", len(res.Rows))
	}
	if got := names(res.Rows); !reflect.DeepEqual(got, []string{"User 11", "User 12"}) {
		t.Fatalf("page 2 = %v", got)
	}

	s.Page = 3
	res = Compute(in, s)
	if len(res.Rows) != 0 || res.Total != 12 {
		t.Fatalf("out of range page = %d rows (total %d), want 0 rows (total 12)", len(res.Rows), res.Total)
	}
}

func TestCompute_HugePageIsEmpty(t *testing.T) {
	s := DefaultState()
	s.Page = math.MaxInt/s.PageSize + 1

	res := Compute(twelveUsers(), s)
	if len(res.Rows) != 0 || res.Total != 12 || res.Pages != 3 {
		t.Fatalf("Compute = %d rows, total %d, pages %d; want 0 rows, 12, 3", len(res.Rows), res.Total, res.Pages)
	}
}

func TestCompute_EmptyCollection(t *testing.T) {
	res := Compute(nil, DefaultState())
	if len(res.Rows) != 0 || res.Total != 0 || res.Pages != 0 {
		t.Fatalf("Compute(nil) = %+v, want empty", res)
	}
	if res.DisplayPages() != 1 {
		t.Fatalf("DisplayPages = %d, want 1", res.DisplayPages())
	}
}

func TestCompute_Idempotent(t *testing.T) {
	in := []record.Record{user(1, "Bob", "Oslo"), user(2, "alice", "Rome"), user(3, "Carol", "Oslo")}
	s := State{Search: "o", SortField: FieldCity, Direction: Descending, PageSize: 5}

	first := Compute(in, s)
	second := Compute(in, s)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Compute not idempotent: %+v vs %+v", first, second)
	}
}

func TestCompute_FilterThenSortThenPage(t *testing.T) {
	in := []record.Record{
		user(1, "Bob", "Oslo"),
		user(2, "alice", "Rome"),
		user(3, "Carol", "Athens"),
		user(4, "Dave", "Berlin"),
	}
	s := State{Search: "a", SortField: FieldCity, Direction: Ascending, PageSize: 5}
	got := names(Compute(in, s).Rows)
	want := []string{"Carol", "Dave", "alice"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Compute = %v, want %v", got, want)
	}
}

package tableview

import (
	"strconv"
	"testing"
	"time"
)

type item struct {
	ID    string
	Name  string
	Price float64
}

func testColumns() []Column[item] {
	return []Column[item]{
		{Key: "name", Title: "Name", Sortable: true, Value: func(i item) any { return i.Name }},
		{Key: "price", Title: "Price", Sortable: true, Value: func(i item) any { return i.Price }},
	}
}

func testEngine(t *testing.T, opts ...Option[item]) *Engine[item] {
	t.Helper()
	e, err := New(testColumns(), func(i item) string { return i.ID }, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func testData() []item {
	return []item{
		{ID: "1", Name: "Portrait", Price: 1000},
		{ID: "2", Name: "Family", Price: 1500},
		{ID: "3", Name: "Wedding", Price: 5000},
		{ID: "4", Name: "Newborn", Price: 2000},
		{ID: "5", Name: "Portfolio", Price: 3000},
	}
}

func TestNew_RequiresRowKey(t *testing.T) {
	if _, err := New(testColumns(), nil); err != ErrNoRowKey {
		t.Fatalf("expected ErrNoRowKey, got %v", err)
	}
}

func TestNew_RejectsDuplicateColumnKeys(t *testing.T) {
	cols := testColumns()
	cols = append(cols, Column[item]{Key: "name", Title: "Name 2", Value: func(i item) any { return i.Name }})
	if _, err := New(cols, func(i item) string { return i.ID }); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestView_FilterMonotonicity(t *testing.T) {
	e := testEngine(t)
	data := testData()

	all := e.View(data, Query{})
	if len(all.Rows) != len(data) {
		t.Fatalf("empty search must return full set, got %d rows", len(all.Rows))
	}

	filtered := e.View(data, Query{Search: "port"})
	if len(filtered.Rows) >= len(data) || len(filtered.Rows) == 0 {
		t.Fatalf("expected proper non-empty subset, got %d rows", len(filtered.Rows))
	}
	for _, row := range filtered.Rows {
		if row.Cells["name"] != "Portrait" && row.Cells["name"] != "Portfolio" {
			t.Fatalf("unexpected row passed filter: %+v", row)
		}
	}
}

func TestView_SearchIsCaseInsensitive(t *testing.T) {
	e := testEngine(t)
	res := e.View(testData(), Query{Search: "WEDDING"})
	if len(res.Rows) != 1 || res.Rows[0].Key != "3" {
		t.Fatalf("expected wedding row, got %+v", res.Rows)
	}
}

func TestView_ColumnFiltersComposeWithAnd(t *testing.T) {
	e := testEngine(t)
	res := e.View(testData(), Query{Filters: map[string]string{"name": "port", "price": "3000"}})
	if len(res.Rows) != 1 || res.Rows[0].Key != "5" {
		t.Fatalf("expected only Portfolio to match both filters, got %+v", res.Rows)
	}
}

func TestView_SortStabilityAndToggle(t *testing.T) {
	e := testEngine(t)
	data := testData()

	asc := e.View(data, Query{Sort: &Sort{Key: "price", Direction: Asc}})
	again := e.View(data, Query{Sort: &Sort{Key: "price", Direction: Asc}})
	for i := range asc.Rows {
		if asc.Rows[i].Key != again.Rows[i].Key {
			t.Fatalf("re-applying the same sort changed order at %d", i)
		}
	}

	desc := e.View(data, Query{Sort: &Sort{Key: "price", Direction: Desc}})
	n := len(asc.Rows)
	for i := range asc.Rows {
		if asc.Rows[i].Key != desc.Rows[n-1-i].Key {
			t.Fatalf("desc is not the reverse of asc at %d", i)
		}
	}
}

func TestView_SortDoesNotMutateInput(t *testing.T) {
	e := testEngine(t)
	data := testData()
	first := data[0].ID

	e.View(data, Query{Sort: &Sort{Key: "price", Direction: Desc}})
	if data[0].ID != first {
		t.Fatal("View mutated the input slice")
	}
}

func TestNextSort(t *testing.T) {
	s := NextSort(nil, "price")
	if s.Direction != Asc {
		t.Fatalf("first activation must be asc, got %s", s.Direction)
	}
	s = NextSort(&s, "price")
	if s.Direction != Desc {
		t.Fatalf("second activation must toggle to desc, got %s", s.Direction)
	}
	s = NextSort(&s, "name")
	if s.Key != "name" || s.Direction != Asc {
		t.Fatalf("switching column must reset to asc, got %+v", s)
	}
}

func TestView_PaginationCoverage(t *testing.T) {
	e := testEngine(t)
	data := testData()

	for pageSize := 1; pageSize <= len(data)+1; pageSize++ {
		seen := make(map[string]bool)
		var count int
		pages := (len(data) + pageSize - 1) / pageSize
		for page := 1; page <= pages; page++ {
			res := e.View(data, Query{Page: page, PageSize: pageSize})
			for _, row := range res.Rows {
				if seen[row.Key] {
					t.Fatalf("pageSize=%d: duplicate row %s", pageSize, row.Key)
				}
				seen[row.Key] = true
				count++
			}
		}
		if count != len(data) {
			t.Fatalf("pageSize=%d: pages concatenate to %d rows, want %d", pageSize, count, len(data))
		}
	}
}

func TestView_PageBeyondEndIsEmpty(t *testing.T) {
	e := testEngine(t)
	res := e.View(testData(), Query{Page: 99, PageSize: 2})
	if len(res.Rows) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(res.Rows))
	}
	if res.Meta.Total != 5 {
		t.Fatalf("meta total should still cover the filtered set, got %d", res.Meta.Total)
	}
}

func TestView_RemoteModeDoesNotRepaginate(t *testing.T) {
	e := testEngine(t, WithRemote[item]())

	page := testData()[:2]
	res := e.View(page, Query{Page: 3, PageSize: 2, Total: 42})
	if len(res.Rows) != 2 {
		t.Fatalf("remote mode must render the page as-is, got %d rows", len(res.Rows))
	}
	if res.Meta.Total != 42 || res.Meta.Page != 3 {
		t.Fatalf("remote meta must come from the caller, got %+v", res.Meta)
	}
}

func TestView_MissingValueRendersEmpty(t *testing.T) {
	cols := []Column[item]{
		{Key: "none", Title: "None", Value: func(i item) any { return nil }},
	}
	e, err := New(cols, func(i item) string { return i.ID })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := e.View(testData()[:1], Query{})
	if res.Rows[0].Cells["none"] != "" {
		t.Fatalf("nil value must render empty, got %q", res.Rows[0].Cells["none"])
	}
}

func TestView_RowActions(t *testing.T) {
	e := testEngine(t, WithActions(
		Action[item]{Key: "edit", Label: "Edit", Variant: VariantPrimary},
		Action[item]{
			Key: "delete", Label: "Delete", Variant: VariantDanger,
			Disabled: func(i item) bool { return i.Price >= 5000 },
		},
		Action[item]{
			Key: "archive", Label: "Archive", Variant: VariantSecondary,
			Hidden: func(i item) bool { return i.Name == "Wedding" },
		},
	))

	res := e.View(testData(), Query{Search: "Wedding"})
	if len(res.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(res.Rows))
	}
	actions := res.Rows[0].Actions
	if len(actions) != 2 {
		t.Fatalf("hidden action must be removed, got %+v", actions)
	}
	if actions[1].Key != "delete" || !actions[1].Disabled {
		t.Fatalf("delete must be visible but disabled, got %+v", actions[1])
	}
}

func TestSelection_RadioInvariant(t *testing.T) {
	s := NewSelection(SelectionRadio)

	for i := 0; i < 10; i++ {
		s.Toggle(strconv.Itoa(i % 3))
		if n := len(s.Keys()); n > 1 {
			t.Fatalf("radio selection grew to %d keys", n)
		}
	}

	s.Clear()
	s.Toggle("a")
	s.Toggle("b")
	keys := s.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Fatalf("radio toggle must replace, got %v", keys)
	}
	s.Toggle("b")
	if len(s.Keys()) != 0 {
		t.Fatal("toggling the selected key must deselect")
	}
}

func TestSelection_SelectAllCurrentPageOnly(t *testing.T) {
	s := NewSelection(SelectionCheckbox)
	page := []string{"1", "2", "3"}

	s.SelectAll(page)
	if len(s.Keys()) != 3 {
		t.Fatalf("expected page selected, got %v", s.Keys())
	}

	// second page keys are untouched by the first page's select-all
	s.SelectAll([]string{"4", "5"})
	if len(s.Keys()) != 5 {
		t.Fatalf("expected both pages selected, got %v", s.Keys())
	}

	// all of page one selected: select-all deselects exactly that page
	s.SelectAll(page)
	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "4" || keys[1] != "5" {
		t.Fatalf("expected only page two to remain, got %v", keys)
	}
}

func TestExportCSV_QuotesAndEscapes(t *testing.T) {
	cols := []Column[map[string]string]{
		{Key: "a", Title: "A", Value: func(m map[string]string) any { return m["a"] }},
		{Key: "b", Title: "B", Value: func(m map[string]string) any { return m["b"] }},
	}
	e, err := New(cols, func(m map[string]string) string { return m["a"] })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := e.ExportCSV([]map[string]string{{"a": "x,y", "b": "z"}}, Query{})
	want := "A,B\n\"x,y\",\"z\""
	if string(out) != want {
		t.Fatalf("unexpected csv:\nwant %q\ngot  %q", want, string(out))
	}
}

func TestExportCSV_IgnoresPagination(t *testing.T) {
	e := testEngine(t)
	out := e.ExportCSV(testData(), Query{Page: 1, PageSize: 2, Sort: &Sort{Key: "price", Direction: Desc}})

	lines := 1
	for _, c := range out {
		if c == '\n' {
			lines++
		}
	}
	if lines != len(testData())+1 {
		t.Fatalf("export must cover all filtered rows, got %d lines", lines)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := ExportFilename(now); got != "data-1700000000000.csv" {
		t.Fatalf("unexpected filename: %s", got)
	}
}

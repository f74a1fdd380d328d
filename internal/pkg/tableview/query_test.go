package tableview

import (
	"net/url"
	"testing"
)

func TestParseQuery(t *testing.T) {
	values := url.Values{
		"search":        {"  wedding  "},
		"sort":          {"date"},
		"dir":           {"desc"},
		"page":          {"3"},
		"page_size":     {"25"},
		"filter.status": {"pending"},
	}

	q := ParseQuery(values)

	if q.Search != "wedding" {
		t.Errorf("search = %q", q.Search)
	}
	if q.Sort == nil || q.Sort.Key != "date" || q.Sort.Direction != Desc {
		t.Errorf("sort = %+v", q.Sort)
	}
	if q.Page != 3 || q.PageSize != 25 {
		t.Errorf("page = %d size = %d", q.Page, q.PageSize)
	}
	if q.Filters["status"] != "pending" {
		t.Errorf("filters = %v", q.Filters)
	}
}

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(url.Values{})

	if q.Page != 1 || q.PageSize != 10 {
		t.Errorf("defaults: page = %d size = %d", q.Page, q.PageSize)
	}
	if q.Sort != nil {
		t.Errorf("sort should be nil, got %+v", q.Sort)
	}
	if q.Filters != nil {
		t.Errorf("filters should be nil, got %v", q.Filters)
	}
}

func TestParseQueryRejectsBadNumbers(t *testing.T) {
	q := ParseQuery(url.Values{"page": {"-2"}, "page_size": {"abc"}})

	if q.Page != 1 || q.PageSize != 10 {
		t.Errorf("bad numbers should fall back, got page = %d size = %d", q.Page, q.PageSize)
	}
}

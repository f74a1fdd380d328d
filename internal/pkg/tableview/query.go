package tableview

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery builds a Query from HTTP query parameters.
//
//	search      free-text term
//	sort, dir   column key and asc|desc (asc when dir is absent)
//	page, page_size
//	filter.<column>=<value>   case-insensitive substring cell match, repeatable
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:   strings.TrimSpace(values.Get("search")),
		Page:     intParam(values.Get("page"), 1),
		PageSize: intParam(values.Get("page_size"), 10),
	}

	if key := values.Get("sort"); key != "" {
		dir := Asc
		if values.Get("dir") == string(Desc) {
			dir = Desc
		}
		q.Sort = &Sort{Key: key, Direction: dir}
	}

	for name, vals := range values {
		if !strings.HasPrefix(name, "filter.") || len(vals) == 0 {
			continue
		}
		if q.Filters == nil {
			q.Filters = make(map[string]string)
		}
		q.Filters[strings.TrimPrefix(name, "filter.")] = vals[0]
	}

	return q
}

func intParam(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

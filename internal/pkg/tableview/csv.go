package tableview

import (
	"fmt"
	"strings"
	"time"
)

// CSVContentType is the MIME type for exports.
const CSVContentType = "text/csv;charset=utf-8"

// ExportFilename returns the download filename for an export taken at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("data-%d.csv", now.UnixMilli())
}

// ExportCSV builds a CSV of the filtered and sorted dataset. Pagination is
// deliberately ignored: an export always covers every matching row.
// The header row is the raw column titles; every data cell is quoted with
// embedded quotes doubled, so commas inside values survive.
func (e *Engine[T]) ExportCSV(data []T, q Query) []byte {
	rows := data
	if e.mode == ModeLocal {
		rows = e.sorted(e.filtered(data, q), q.Sort)
	}

	var b strings.Builder

	titles := make([]string, len(e.columns))
	for i, col := range e.columns {
		titles[i] = col.Title
	}
	b.WriteString(strings.Join(titles, ","))

	for _, rec := range rows {
		b.WriteByte('\n')
		for i, col := range e.columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(e.cell(col, rec), `"`, `""`))
			b.WriteByte('"')
		}
	}

	return []byte(b.String())
}

// Package tableview implements the admin list-view engine: search, per-column
// filtering, stable sorting, pagination, row actions and CSV export over an
// in-memory record slice. Every admin screen renders through it instead of
// re-implementing list plumbing per entity.
package tableview

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lumenstudio/lumen-api/internal/pkg/response"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort holds the active sort key and direction.
type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// NextSort returns the sort state after activating a column header:
// same key toggles asc/desc, a different key resets to asc.
func NextSort(current *Sort, key string) Sort {
	if current == nil || current.Key != key {
		return Sort{Key: key, Direction: Asc}
	}
	if current.Direction == Asc {
		return Sort{Key: key, Direction: Desc}
	}
	return Sort{Key: key, Direction: Asc}
}

// Column describes one table column for records of type T.
// Value resolves the raw field; Render optionally overrides display text.
type Column[T any] struct {
	Key      string
	Title    string
	Sortable bool
	Value    func(T) any
	Render   func(T) string
}

// Variant is a row-action visual style.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantDanger    Variant = "danger"
	VariantSuccess   Variant = "success"
)

// Action describes a per-row action. Hidden removes the action for the row,
// Disabled keeps it visible but inert.
type Action[T any] struct {
	Key      string
	Label    string
	Variant  Variant
	Disabled func(T) bool
	Hidden   func(T) bool
}

// RowAction is the evaluated action payload for one row.
type RowAction struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Variant  string `json:"variant"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Row is one rendered record.
type Row struct {
	Key     string            `json:"key"`
	Cells   map[string]string `json:"cells"`
	Actions []RowAction       `json:"actions,omitempty"`
}

// Mode selects who owns filter/sort/pagination state.
type Mode int

const (
	// ModeLocal: the engine receives the complete dataset and owns
	// filtering, sorting and page slicing.
	ModeLocal Mode = iota
	// ModeRemote: the engine receives only the current page and shapes
	// rows; filter/sort/page state and totals belong to the caller.
	ModeRemote
)

// Query carries the caller's view state.
type Query struct {
	Search   string
	Filters  map[string]string
	Sort     *Sort
	Page     int // 1-based; 0 disables pagination in local mode
	PageSize int
	Total    int // remote mode only: total matching rows across all pages
}

// Result is a rendered view page.
type Result struct {
	Rows []Row         `json:"rows"`
	Meta response.Meta `json:"meta"`
}

// Engine renders records of type T. Construct with New.
type Engine[T any] struct {
	columns []Column[T]
	actions []Action[T]
	rowKey  func(T) string
	mode    Mode
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithActions attaches row actions.
func WithActions[T any](actions ...Action[T]) Option[T] {
	return func(e *Engine[T]) { e.actions = actions }
}

// WithRemote puts the engine in remote mode.
func WithRemote[T any]() Option[T] {
	return func(e *Engine[T]) { e.mode = ModeRemote }
}

var (
	ErrNoRowKey       = errors.New("tableview: row key accessor is required")
	ErrNoColumns      = errors.New("tableview: at least one column is required")
	ErrDuplicateKey   = errors.New("tableview: duplicate column key")
	ErrNilColumnValue = errors.New("tableview: column value accessor is required")
)

// New builds an engine. The row-key accessor is mandatory: row identity must
// never fall back to slice indexes, which break selection across re-sorts.
func New[T any](columns []Column[T], rowKey func(T) string, opts ...Option[T]) (*Engine[T], error) {
	if rowKey == nil {
		return nil, ErrNoRowKey
	}
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if seen[col.Key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, col.Key)
		}
		seen[col.Key] = true
		if col.Value == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilColumnValue, col.Key)
		}
	}

	e := &Engine[T]{columns: columns, rowKey: rowKey}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Mode reports the configured mode.
func (e *Engine[T]) Mode() Mode { return e.mode }

// View renders one page. In local mode the dataset is filtered, sorted and
// sliced here; in remote mode the input already is the current page.
// Rendering is pure: no side effects, the input slice is never mutated.
func (e *Engine[T]) View(data []T, q Query) Result {
	if e.mode == ModeRemote {
		meta := response.NewMeta(q.Total, max(q.Page, 1), q.PageSize)
		return Result{Rows: e.renderRows(data), Meta: meta}
	}

	visible := e.sorted(e.filtered(data, q), q.Sort)

	total := len(visible)
	if q.PageSize <= 0 {
		return Result{
			Rows: e.renderRows(visible),
			Meta: response.NewMeta(total, 1, max(total, 1)),
		}
	}

	page := max(q.Page, 1)
	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Rows: e.renderRows(visible[start:end]),
		Meta: response.NewMeta(total, page, q.PageSize),
	}
}

// filtered applies free-text search and per-column filters (AND-composed).
func (e *Engine[T]) filtered(data []T, q Query) []T {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	hasFilters := false
	for _, v := range q.Filters {
		if v != "" {
			hasFilters = true
			break
		}
	}
	if search == "" && !hasFilters {
		return data
	}

	out := make([]T, 0, len(data))
	for _, rec := range data {
		if search != "" && !e.matchesSearch(rec, search) {
			continue
		}
		if hasFilters && !e.matchesFilters(rec, q.Filters) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (e *Engine[T]) matchesSearch(rec T, loweredTerm string) bool {
	for _, col := range e.columns {
		if strings.Contains(strings.ToLower(e.cell(col, rec)), loweredTerm) {
			return true
		}
	}
	return false
}

func (e *Engine[T]) matchesFilters(rec T, filters map[string]string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		col, ok := e.column(key)
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(e.cell(col, rec)), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// sorted returns a stably sorted copy; ties keep input order.
func (e *Engine[T]) sorted(data []T, s *Sort) []T {
	if s == nil || s.Key == "" {
		return data
	}
	col, ok := e.column(s.Key)
	if !ok {
		return data
	}

	out := make([]T, len(data))
	copy(out, data)
	sort.SliceStable(out, func(i, j int) bool {
		c := compareValues(col.Value(out[i]), col.Value(out[j]))
		if s.Direction == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func (e *Engine[T]) column(key string) (Column[T], bool) {
	for _, col := range e.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

func (e *Engine[T]) renderRows(data []T) []Row {
	rows := make([]Row, 0, len(data))
	for _, rec := range data {
		row := Row{
			Key:   e.rowKey(rec),
			Cells: make(map[string]string, len(e.columns)),
		}
		for _, col := range e.columns {
			row.Cells[col.Key] = e.cell(col, rec)
		}
		for _, action := range e.actions {
			if action.Hidden != nil && action.Hidden(rec) {
				continue
			}
			ra := RowAction{
				Key:     action.Key,
				Label:   action.Label,
				Variant: string(action.Variant),
			}
			if action.Disabled != nil && action.Disabled(rec) {
				ra.Disabled = true
			}
			row.Actions = append(row.Actions, ra)
		}
		rows = append(rows, row)
	}
	return rows
}

// cell resolves a column's display text; missing values render empty,
// never as an error.
func (e *Engine[T]) cell(col Column[T], rec T) string {
	if col.Render != nil {
		return col.Render(rec)
	}
	return stringify(col.Value(rec))
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// compareValues orders two resolved values: numbers numerically, times
// chronologically, everything else as strings. Mixed types compare by their
// string form so ordering stays deterministic.
func compareValues(a, b any) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

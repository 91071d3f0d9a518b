package store

import (
	"fmt"
	"strings"
)

// Defaults applied when a search request leaves page or limit unset.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// sortColumns is the allow-list of sortable columns. Caller-provided sort
// fields are checked by membership and never embedded directly into SQL.
var sortColumns = map[string]string{
	"price": "price",
	"stock": "stock",
}

const defaultSortColumn = "price"

// SearchSpec describes a product search. A filter field left at its zero
// value (empty string, nil pointer) imposes no constraint. Numeric bounds
// are inclusive.
type SearchSpec struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
	MinStock *int32
	MaxStock *int32
	Page     int
	Limit    int
	SortBy   string
	SortDir  string
}

// Normalized returns a copy of the spec with pagination defaults applied and
// sort parameters folded onto the allow-list: unknown SortBy values fall back
// to price, anything but "desc" (case-insensitive) sorts ascending.
func (s SearchSpec) Normalized() SearchSpec {
	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.Limit < 1 {
		s.Limit = DefaultLimit
	}
	if col, ok := sortColumns[strings.ToLower(s.SortBy)]; ok {
		s.SortBy = col
	} else {
		s.SortBy = defaultSortColumn
	}
	if strings.EqualFold(s.SortDir, "desc") {
		s.SortDir = "DESC"
	} else {
		s.SortDir = "ASC"
	}
	return s
}

// searchQuery accumulates WHERE fragments and their bound arguments. The
// fragments are built once per search and shared by the windowed data query
// and the unwindowed count query, so the two can never disagree on which
// rows match.
type searchQuery struct {
	spec  SearchSpec
	where []string
	args  []any
}

// newSearchQuery translates a normalized spec into predicate fragments.
// Filter values are always passed as bound parameters.
func newSearchQuery(spec SearchSpec) *searchQuery {
	q := &searchQuery{spec: spec}
	if name := strings.TrimSpace(spec.Name); name != "" {
		q.add("name ILIKE", "%"+name+"%")
	}
	if spec.MinPrice != nil {
		q.add("price >=", *spec.MinPrice)
	}
	if spec.MaxPrice != nil {
		q.add("price <=", *spec.MaxPrice)
	}
	if spec.MinStock != nil {
		q.add("stock >=", *spec.MinStock)
	}
	if spec.MaxStock != nil {
		q.add("stock <=", *spec.MaxStock)
	}
	return q
}

func (q *searchQuery) add(expr string, arg any) {
	q.args = append(q.args, arg)
	q.where = append(q.where, fmt.Sprintf("%s $%d", expr, len(q.args)))
}

func (q *searchQuery) whereClause() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

// dataStatement returns the filtered, sorted and windowed SELECT.
// The id tiebreaker keeps row order deterministic across pages when the
// sort key has duplicates.
func (q *searchQuery) dataStatement() (string, []any) {
	offset := (q.spec.Page - 1) * q.spec.Limit
	sql := "SELECT id, name, price, stock FROM products" + q.whereClause() +
		fmt.Sprintf(" ORDER BY %s %s, id ASC", q.spec.SortBy, q.spec.SortDir) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(q.args)+1, len(q.args)+2)
	args := make([]any, 0, len(q.args)+2)
	args = append(args, q.args...)
	args = append(args, q.spec.Limit, offset)
	return sql, args
}

// countStatement returns the matching COUNT query: same filters, no sort,
// no window.
func (q *searchQuery) countStatement() (string, []any) {
	return "SELECT COUNT(*) FROM products" + q.whereClause(), q.args
}

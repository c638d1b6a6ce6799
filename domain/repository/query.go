// Package repository holds the lookup options shared by the catalog stores.
package repository

import "fmt"

// Option narrows a store lookup.
type Option func(*Query)

// Query collects the filters, sort column and row limit of one lookup.
type Query struct {
	filters []Filter
	orderBy string
	desc    bool
	limit   int
}

// Build applies options to an empty Query.
func Build(options ...Option) Query {
	var q Query
	for _, opt := range options {
		opt(&q)
	}
	return q
}

// Filters returns a copy of the column filters, in the order they were added.
func (q Query) Filters() []Filter {
	return append([]Filter(nil), q.filters...)
}

// Order returns the sort column and direction. column is "" when unsorted.
func (q Query) Order() (column string, desc bool) {
	return q.orderBy, q.desc
}

// Limit returns the row limit, 0 for none.
func (q Query) Limit() int { return q.limit }

// Filter matches one column against a value. A nil value matches NULL.
type Filter struct {
	column string
	value  any
}

// Column returns the filtered column.
func (f Filter) Column() string { return f.column }

// Value returns the compared value.
func (f Filter) Value() any { return f.value }

// IsNull reports whether the filter matches NULL.
func (f Filter) IsNull() bool { return f.value == nil }

func (f Filter) String() string {
	if f.IsNull() {
		return f.column + " IS NULL"
	}
	return fmt.Sprintf("%s = %v", f.column, f.value)
}

// Where matches rows whose column equals value.
func Where(column string, value any) Option {
	return func(q *Query) {
		q.filters = append(q.filters, Filter{column: column, value: value})
	}
}

// WhereNull matches rows whose column is NULL.
func WhereNull(column string) Option {
	return Where(column, nil)
}

// WithOrder sorts by column. A later WithOrder replaces an earlier one.
func WithOrder(column string, desc bool) Option {
	return func(q *Query) {
		q.orderBy = column
		q.desc = desc
	}
}

// WithLimit caps the number of rows returned by Find.
func WithLimit(n int) Option {
	return func(q *Query) {
		q.limit = n
	}
}

package domain

import (
	"fmt"
	"slices"
	"time"
)

// Table holds one location's measurements ordered by time. It is never
// mutated after construction.
type Table struct {
	location Location
	rows     []Measurement
	columns  []Variable
}

// NewTable copies rows, orders them by time and records which covariate
// columns the source provided.
func NewTable(loc Location, rows []Measurement, columns []Variable) *Table {
	cp := slices.Clone(rows)
	SortByTime(cp)
	return &Table{
		location: loc,
		rows:     cp,
		columns:  slices.Clone(columns),
	}
}

func (t *Table) Location() Location { return t.location }

// Len is the number of rows in the table.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th measurement in time order.
func (t *Table) Row(i int) Measurement { return t.rows[i] }

// HasColumn reports whether the source file carried column v. PM2.5 is always present.
func (t *Table) HasColumn(v Variable) bool {
	return v == PM25 || slices.Contains(t.columns, v)
}

// Span returns the first and last timestamps; ok is false for an empty table.
func (t *Table) Span() (first, last time.Time, ok bool) {
	if len(t.rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.rows[0].Time, t.rows[len(t.rows)-1].Time, true
}

// Dataset maps every loaded location to its table. It is read-only once built.
type Dataset struct {
	tables map[Location]*Table
}

// NewDataset builds a dataset from tables, rejecting duplicate locations.
func NewDataset(tables ...*Table) (*Dataset, error) {
	m := make(map[Location]*Table, len(tables))
	for _, t := range tables {
		if _, dup := m[t.location]; dup {
			return nil, fmt.Errorf("duplicate table for location %s", t.location)
		}
		m[t.location] = t
	}
	return &Dataset{tables: m}, nil
}

// Table returns the table for loc.
func (d *Dataset) Table(loc Location) (*Table, error) {
	t, ok := d.tables[loc]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, string(loc))
	}
	return t, nil
}

// Locations lists the loaded locations in display order.
func (d *Dataset) Locations() []Location {
	out := make([]Location, 0, len(d.tables))
	for _, loc := range locations {
		if _, ok := d.tables[loc]; ok {
			out = append(out, loc)
		}
	}
	return out
}

// Rows is the total row count across all tables.
func (d *Dataset) Rows() int {
	n := 0
	for _, t := range d.tables {
		n += t.Len()
	}
	return n
}

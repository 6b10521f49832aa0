package domain

import (
	"fmt"
	"sort"
	"time"
)

// ViewRow is a measurement annotated with its day of week.
type ViewRow struct {
	Measurement `yaml:",inline"`
	Weekday     int  `json:"weekday" yaml:"weekday"`
	Weekend     bool `json:"weekend" yaml:"weekend"`
}

// View is the filtered, derived slice of a table for one selection.
type View struct {
	Location Location
	Range    DateRange
	Rows     []ViewRow
}

// Len is the number of rows in the view.
func (v View) Len() int { return len(v.Rows) }

// Empty reports whether the view holds no rows.
func (v View) Empty() bool { return len(v.Rows) == 0 }

// WeekdayIndex maps t to Monday = 0 .. Sunday = 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekend reports whether a weekday index is Saturday or Sunday.
func IsWeekend(weekday int) bool {
	return weekday >= 5
}

// Filter returns the rows of t with Start 00:00 <= Time < End+1 day 00:00,
// in table order. An inverted range yields an empty view. The table is not modified.
func Filter(t *Table, r DateRange) View {
	v := View{Location: t.location, Range: r}
	if r.Inverted() {
		return v
	}

	lo := sort.Search(len(t.rows), func(i int) bool {
		return !t.rows[i].Time.Before(r.Lower())
	})
	hi := sort.Search(len(t.rows), func(i int) bool {
		return !t.rows[i].Time.Before(r.Upper())
	})
	if lo >= hi {
		return v
	}

	v.Rows = make([]ViewRow, hi-lo)
	for i, m := range t.rows[lo:hi] {
		wd := WeekdayIndex(m.Time)
		v.Rows[i] = ViewRow{Measurement: m, Weekday: wd, Weekend: IsWeekend(wd)}
	}
	return v
}

// Select resolves the selection's location in ds and filters its table.
func Select(ds *Dataset, sel Selection) (View, error) {
	t, err := ds.Table(sel.Location)
	if err != nil {
		return View{}, fmt.Errorf("select %s: %w", sel.Range, err)
	}
	return Filter(t, sel.Range), nil
}

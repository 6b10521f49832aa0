package domain

import (
	"fmt"
	"time"
)

// MonthlySummary condenses one location-month for downstream consumers.
type MonthlySummary struct {
	Location    Location  `json:"location"`
	Month       string    `json:"month"`
	Count       int       `json:"count"`
	Mean        NullFloat `json:"mean"`
	Std         NullFloat `json:"std"`
	Min         NullFloat `json:"min"`
	Median      NullFloat `json:"median"`
	Max         NullFloat `json:"max"`
	WeekdayMean NullFloat `json:"weekday_mean"`
	WeekendMean NullFloat `json:"weekend_mean"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Key identifies the summary as <location>-<YYYY-MM>.
func (s MonthlySummary) Key() string {
	return fmt.Sprintf("%s-%s", s.Location, s.Month)
}

// SummarizeMonths builds one summary per calendar month present in t.
func SummarizeMonths(t *Table) []MonthlySummary {
	first, last, ok := t.Span()
	if !ok {
		return nil
	}
	now := Now()

	var out []MonthlySummary
	month := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !month.After(last) {
		next := month.AddDate(0, 1, 0)
		v := Filter(t, NewDateRange(month, next.AddDate(0, 0, -1)))
		if !v.Empty() {
			out = append(out, summarize(v, month, now))
		}
		month = next
	}
	return out
}

func summarize(v View, month, now time.Time) MonthlySummary {
	d := Describe(v)
	s := MonthlySummary{
		Location:    v.Location,
		Month:       month.Format("2006-01"),
		Count:       d.Count,
		Mean:        d.Mean,
		Std:         d.Std,
		Min:         d.Min,
		Median:      d.P50,
		Max:         d.Max,
		WeekdayMean: Null(),
		WeekendMean: Null(),
		GeneratedAt: now,
	}
	for _, g := range CompareWeekend(v) {
		switch g.Group {
		case GroupWeekday:
			s.WeekdayMean = NullFloat(g.Mean)
		case GroupWeekend:
			s.WeekendMean = NullFloat(g.Mean)
		}
	}
	return s
}

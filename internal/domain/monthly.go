package domain

import "time"

// MonthlyMean is the mean PM2.5 of one calendar month.
type MonthlyMean struct {
	Month time.Time `json:"month" yaml:"month"`
	Mean  float64   `json:"mean" yaml:"mean"`
	Count int       `json:"count" yaml:"count"`
}

// Label formats the month as YYYY-MM.
func (m MonthlyMean) Label() string {
	return m.Month.Format("2006-01")
}

// MonthlyTrend averages PM2.5 per calendar month present in the view, in
// chronological order. Rows are already time ordered, so each month is a
// contiguous run.
func MonthlyTrend(v View) []MonthlyMean {
	var out []MonthlyMean
	var acc welford
	var current time.Time

	flush := func() {
		if acc.n > 0 {
			out = append(out, MonthlyMean{Month: current, Mean: acc.mean, Count: acc.n})
		}
	}

	for _, row := range v.Rows {
		month := time.Date(row.Time.Year(), row.Time.Month(), 1, 0, 0, 0, 0, time.UTC)
		if !month.Equal(current) {
			flush()
			current = month
			acc = welford{}
		}
		acc.add(row.PM25)
	}
	flush()
	return out
}

package domain

// DayGroup partitions days into working days and weekends.
type DayGroup string

const (
	GroupWeekday DayGroup = "weekday"
	GroupWeekend DayGroup = "weekend"
)

// Label is the display name of the group.
func (g DayGroup) Label() string {
	if g == GroupWeekend {
		return "Weekend"
	}
	return "Weekday"
}

// GroupMean is the PM2.5 mean of one day group with its spread.
type GroupMean struct {
	Group DayGroup  `json:"group" yaml:"group"`
	Mean  float64   `json:"mean" yaml:"mean"`
	Std   NullFloat `json:"std" yaml:"std"`
	Count int       `json:"count" yaml:"count"`
}

// CompareWeekend averages PM2.5 over weekday and weekend rows, weekday
// first. A group without rows is omitted.
func CompareWeekend(v View) []GroupMean {
	var weekday, weekend welford
	for _, row := range v.Rows {
		if row.Weekend {
			weekend.add(row.PM25)
		} else {
			weekday.add(row.PM25)
		}
	}

	var out []GroupMean
	if weekday.n > 0 {
		out = append(out, GroupMean{Group: GroupWeekday, Mean: weekday.mean, Std: weekday.std(), Count: weekday.n})
	}
	if weekend.n > 0 {
		out = append(out, GroupMean{Group: GroupWeekend, Mean: weekend.mean, Std: weekend.std(), Count: weekend.n})
	}
	return out
}

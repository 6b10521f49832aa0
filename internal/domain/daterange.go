package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted from users.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for a date that does not parse as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

var (
	// DatasetStart and DatasetEnd bound every file of the data set.
	DatasetStart = Date(2013, time.March, 1)
	DatasetEnd   = Date(2017, time.February, 28)
)

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// truncateDay drops the time of day, keeping the wall-clock calendar date.
func truncateDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DateRange is the closed interval [Start, End] of calendar dates. End
// covers its whole day. Start after End is allowed and selects nothing.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two dates, ignoring any time of day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// DatasetBounds is the full span of the data set.
func DatasetBounds() DateRange {
	return DateRange{Start: DatasetStart, End: DatasetEnd}
}

// Clamp intersects r with bounds. A range lying wholly outside bounds comes
// back inverted, so it still selects nothing.
func (r DateRange) Clamp(bounds DateRange) DateRange {
	out := r
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}

// Inverted reports whether Start falls after End.
func (r DateRange) Inverted() bool {
	return r.Start.After(r.End)
}

// Lower is the first instant inside the range.
func (r DateRange) Lower() time.Time { return r.Start }

// Upper is the first instant after the range: midnight following End.
func (r DateRange) Upper() time.Time { return r.End.AddDate(0, 0, 1) }

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Lower()) && t.Before(r.Upper())
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

type dateRangeJSON struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{Start: r.Start.Format(DateLayout), End: r.End.Format(DateLayout)})
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := ParseDate(raw.Start)
	if err != nil {
		return err
	}
	end, err := ParseDate(raw.End)
	if err != nil {
		return err
	}
	*r = DateRange{Start: start, End: end}
	return nil
}

// MarshalYAML implements yaml.Marshaler with the same shape as the JSON form.
func (r DateRange) MarshalYAML() (any, error) {
	return dateRangeJSON{Start: r.Start.Format(DateLayout), End: r.End.Format(DateLayout)}, nil
}

// Selection is a location together with the date range to inspect.
type Selection struct {
	Location Location
	Range    DateRange
}

// Key identifies the selection for memoization.
func (s Selection) Key() string {
	return string(s.Location) + "|" + s.Range.String()
}

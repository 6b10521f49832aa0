package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateTimestamp is returned by the reject policy.
var ErrDuplicateTimestamp = errors.New("duplicate timestamp")

// DuplicatePolicy decides what happens to rows sharing a timestamp.
type DuplicatePolicy string

const (
	KeepAll  DuplicatePolicy = "keep-all"
	KeepLast DuplicatePolicy = "keep-last"
	Reject   DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy validates a policy name.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case KeepAll, KeepLast, Reject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// ResolveDuplicates applies policy to rows already ordered by SortByTime.
// keep-last retains the last row in file order for each timestamp.
func ResolveDuplicates(rows []Measurement, policy DuplicatePolicy) ([]Measurement, error) {
	switch policy {
	case KeepAll, "":
		return rows, nil
	case Reject:
		for i := 1; i < len(rows); i++ {
			if rows[i].Time.Equal(rows[i-1].Time) {
				return nil, fmt.Errorf("%w at %s", ErrDuplicateTimestamp, rows[i].Time.Format("2006-01-02 15:04"))
			}
		}
		return rows, nil
	case KeepLast:
		out := make([]Measurement, 0, len(rows))
		for i, m := range rows {
			if i+1 < len(rows) && rows[i+1].Time.Equal(m.Time) {
				continue
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown duplicate policy %q", string(policy))
	}
}

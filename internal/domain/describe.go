package domain

import "sort"

// Summary holds descriptive statistics of PM2.5. Every field except Count
// is null for an empty view.
type Summary struct {
	Count int       `json:"count" yaml:"count"`
	Mean  NullFloat `json:"mean" yaml:"mean"`
	Std   NullFloat `json:"std" yaml:"std"`
	Min   NullFloat `json:"min" yaml:"min"`
	P25   NullFloat `json:"p25" yaml:"p25"`
	P50   NullFloat `json:"p50" yaml:"p50"`
	P75   NullFloat `json:"p75" yaml:"p75"`
	Max   NullFloat `json:"max" yaml:"max"`
}

// Describe computes count, mean, sample std, min, quartiles and max of
// PM2.5 over the view. Quartiles interpolate linearly between ranks.
func Describe(v View) Summary {
	if v.Empty() {
		return Summary{
			Mean: Null(), Std: Null(), Min: Null(),
			P25: Null(), P50: Null(), P75: Null(), Max: Null(),
		}
	}

	var acc welford
	xs := make([]float64, len(v.Rows))
	for i, row := range v.Rows {
		xs[i] = row.PM25
		acc.add(row.PM25)
	}
	sort.Float64s(xs)

	return Summary{
		Count: acc.n,
		Mean:  NullFloat(acc.mean),
		Std:   acc.std(),
		Min:   NullFloat(xs[0]),
		P25:   NullFloat(quantile(xs, 0.25)),
		P50:   NullFloat(quantile(xs, 0.50)),
		P75:   NullFloat(quantile(xs, 0.75)),
		Max:   NullFloat(xs[len(xs)-1]),
	}
}

package domain

import "math"

// welford accumulates a running mean and sum of squared deviations.
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

// std is the sample standard deviation (n-1), null below two observations.
func (w *welford) std() NullFloat {
	if w.n < 2 {
		return Null()
	}
	return NullFloat(math.Sqrt(w.m2 / float64(w.n-1)))
}

// quantile interpolates linearly between closest ranks of sorted xs.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// pearson computes r over paired samples in two passes. It returns null for
// fewer than two pairs or when either side has zero variance.
func pearson(xs, ys []float64) NullFloat {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return Null()
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return Null()
	}
	r := sxy / math.Sqrt(sxx*syy)
	return NullFloat(math.Max(-1, math.Min(1, r)))
}

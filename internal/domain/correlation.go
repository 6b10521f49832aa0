package domain

// CorrelationMatrix holds pairwise Pearson coefficients. Values[i][j] is the
// coefficient between Variables[i] and Variables[j]; null when undefined.
type CorrelationMatrix struct {
	Variables []Variable    `json:"variables" yaml:"variables"`
	Values    [][]NullFloat `json:"values" yaml:"values"`
}

// Empty reports whether no variable had any value in the view.
func (m CorrelationMatrix) Empty() bool { return len(m.Variables) == 0 }

// At returns the coefficient between a and b; ok is false if either was excluded.
func (m CorrelationMatrix) At(a, b Variable) (NullFloat, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return Null(), false
	}
	return m.Values[i][j], true
}

func (m CorrelationMatrix) index(v Variable) int {
	for i, x := range m.Variables {
		if x == v {
			return i
		}
	}
	return -1
}

// Correlate computes Pearson r between every pair of PM2.5, TEMP, PRES and
// WSPM. Variables with no present value in the view are left out. Each pair
// is computed over the rows where both values are present.
func Correlate(v View) CorrelationMatrix {
	var vars []Variable
	for _, x := range CorrelationVariables {
		for _, row := range v.Rows {
			if row.Value(x).Valid() {
				vars = append(vars, x)
				break
			}
		}
	}

	m := CorrelationMatrix{Variables: vars, Values: make([][]NullFloat, len(vars))}
	for i := range vars {
		m.Values[i] = make([]NullFloat, len(vars))
	}

	for i := range vars {
		for j := i; j < len(vars); j++ {
			xs, ys := pairs(v, vars[i], vars[j])
			r := pearson(xs, ys)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairs(v View, a, b Variable) (xs, ys []float64) {
	for _, row := range v.Rows {
		x, y := row.Value(a), row.Value(b)
		if !x.Valid() || !y.Valid() {
			continue
		}
		xs = append(xs, float64(x))
		ys = append(ys, float64(y))
	}
	return xs, ys
}

package domain

// Point is one (x, PM2.5) pair of a scatter series.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Scatter pairs variable x with PM2.5 for every row where x is present.
func Scatter(v View, x Variable) []Point {
	out := make([]Point, 0, len(v.Rows))
	for _, row := range v.Rows {
		val := row.Value(x)
		if !val.Valid() {
			continue
		}
		out = append(out, Point{X: float64(val), Y: row.PM25})
	}
	return out
}

// Preview returns up to the first n rows of the view.
func Preview(v View, n int) []ViewRow {
	if n <= 0 {
		return nil
	}
	if n > len(v.Rows) {
		n = len(v.Rows)
	}
	out := make([]ViewRow, n)
	copy(out, v.Rows[:n])
	return out
}

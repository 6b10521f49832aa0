// Package charts renders dashboard figures as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"slices"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

// ErrUnknownKind is returned by ParseKind for an unsupported chart name.
var ErrUnknownKind = errors.New("unknown chart kind")

var errNoData = errors.New("no data")

// Kind names a dashboard figure.
type Kind string

const (
	ScatterTemp Kind = "scatter-temp"
	ScatterPres Kind = "scatter-pres"
	ScatterWSPM Kind = "scatter-wspm"
	Monthly     Kind = "monthly"
	Weekend     Kind = "weekend"
)

// Kinds lists every renderable figure.
func Kinds() []Kind {
	return []Kind{ScatterTemp, ScatterPres, ScatterWSPM, Monthly, Weekend}
}

// ParseKind validates a chart name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

const (
	width  = 640
	height = 400
)

var (
	pm25Color    = drawing.ColorFromHex("1f77b4")
	weekdayColor = drawing.ColorFromHex("4c72b0")
	weekendColor = drawing.ColorFromHex("dd8452")
)

// Render draws kind for the view as a PNG. Views without enough data to
// plot produce a placeholder image instead of an error.
func Render(w io.Writer, kind Kind, v domain.View) error {
	var buf bytes.Buffer
	var err error
	switch kind {
	case ScatterTemp:
		err = renderScatter(&buf, v, domain.Temp)
	case ScatterPres:
		err = renderScatter(&buf, v, domain.Pres)
	case ScatterWSPM:
		err = renderScatter(&buf, v, domain.WSPM)
	case Monthly:
		err = renderMonthly(&buf, v)
	case Weekend:
		err = renderWeekend(&buf, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}

	switch {
	case errors.Is(err, errNoData):
		buf.Reset()
		if perr := placeholder(&buf, title(kind, v), "No data for the selected range"); perr != nil {
			return perr
		}
	case err != nil:
		return fmt.Errorf("render %s: %w", kind, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// paddedRange widens a zero-width axis around its single value, which
// go-chart refuses to draw. It returns nil when the values already span a
// range so the axis keeps its automatic bounds.
func paddedRange(vals []float64) chart.Range {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := slices.Min(vals), slices.Max(vals)
	if lo != hi {
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.05, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func title(kind Kind, v domain.View) string {
	var what string
	switch kind {
	case ScatterTemp:
		what = "PM2.5 vs temperature"
	case ScatterPres:
		what = "PM2.5 vs pressure"
	case ScatterWSPM:
		what = "PM2.5 vs wind speed"
	case Monthly:
		what = "Monthly mean PM2.5"
	case Weekend:
		what = "PM2.5 on weekdays and weekends"
	}
	return fmt.Sprintf("%s, %s", what, v.Location)
}

// pointStyle renders points only, without a connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    2,
		DotColor:    col.WithAlpha(120),
	}
}

func renderScatter(w io.Writer, v domain.View, x domain.Variable) error {
	points := domain.Scatter(v, x)
	if len(points) == 0 {
		return errNoData
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	var kind Kind
	switch x {
	case domain.Temp:
		kind = ScatterTemp
	case domain.Pres:
		kind = ScatterPres
	default:
		kind = ScatterWSPM
	}

	ch := chart.Chart{
		Title:      title(kind, v),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: x.Label(), Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: domain.PM25.Label(), Range: paddedRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: string(x), Style: pointStyle(pm25Color), XValues: xs, YValues: ys},
		},
	}
	return ch.Render(chart.PNG, w)
}

func renderMonthly(w io.Writer, v domain.View) error {
	trend := domain.MonthlyTrend(v)
	if len(trend) == 0 {
		return errNoData
	}
	times := make([]time.Time, len(trend))
	means := make([]float64, len(trend))
	for i, m := range trend {
		times[i] = m.Month
		means[i] = m.Mean
	}
	// Pad to at least two X values for go-chart.
	if len(times) == 1 {
		times = append(times, times[0].AddDate(0, 1, 0))
		means = append(means, means[0])
	}

	ch := chart.Chart{
		Title:      title(Monthly, v),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Month", ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01")},
		YAxis:      chart.YAxis{Name: "Mean " + domain.PM25.Label(), Range: paddedRange(means)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Monthly mean",
				Style:   chart.Style{StrokeColor: pm25Color, StrokeWidth: 2, DotWidth: 3, DotColor: pm25Color},
				XValues: times,
				YValues: means,
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

func renderWeekend(w io.Writer, v domain.View) error {
	groups := domain.CompareWeekend(v)
	if len(groups) == 0 {
		return errNoData
	}

	bars := make([]chart.Value, 0, len(groups))
	top := 0.0
	for _, g := range groups {
		col := weekdayColor
		if g.Group == domain.GroupWeekend {
			col = weekendColor
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (n=%d)", g.Group.Label(), g.Count),
			Value: g.Mean,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
		upper := g.Mean
		if g.Std.Valid() {
			upper += g.Std.Float64()
		}
		top = max(top, upper)
	}
	if top <= 0 {
		top = 1
	}

	bc := chart.BarChart{
		Title:      title(Weekend, v),
		Width:      width,
		Height:     height,
		BarWidth:   120,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: "Mean " + domain.PM25.Label(), Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// placeholder writes a plain PNG carrying a title and a message.
func placeholder(w io.Writer, heading, msg string) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 250, G: 250, B: 250, A: 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	ink := image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255})
	for i, line := range []string{heading, msg} {
		dr := &font.Drawer{Dst: img, Src: ink, Face: face}
		tw := dr.MeasureString(line).Ceil()
		x := (width - tw) / 2
		y := height/2 + i*24
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(line)
	}
	return png.Encode(w, img)
}

package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"time"

	"github.com/couchcryptid/air-quality-dashboard/internal/dashboard"
	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTmpl = template.Must(
	template.New("dashboard.html").Funcs(template.FuncMap{
		"num":       formatNull,
		"fnum":      formatFloat,
		"corrStyle": corrStyle,
		"dayName":   dayName,
		"stamp":     func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}).ParseFS(templateFS, "templates/*.html"),
)

func renderDashboard(w io.Writer, page dashboardPage) error {
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", page)
}

// dashboardPage is the view model of the single dashboard page.
type dashboardPage struct {
	Locations   []dashboard.LocationInfo
	Selected    domain.Location
	Start       string
	End         string
	Min         string
	Max         string
	Report      dashboard.Report
	Heatmap     heatmap
	Charts      []chartRef
	Conclusions []string
}

type chartRef struct {
	Kind string
	Alt  string
}

// heatmap is the correlation matrix laid out as table rows.
type heatmap struct {
	Labels []string
	Rows   []heatmapRow
}

type heatmapRow struct {
	Label string
	Cells []domain.NullFloat
}

func newDashboardPage(locs []dashboard.LocationInfo, bounds domain.DateRange, sel domain.Selection, r dashboard.Report) dashboardPage {
	page := dashboardPage{
		Locations: locs,
		Selected:  sel.Location,
		Start:     r.Range.Start.Format(domain.DateLayout),
		End:       r.Range.End.Format(domain.DateLayout),
		Min:       bounds.Start.Format(domain.DateLayout),
		Max:       bounds.End.Format(domain.DateLayout),
		Report:    r,
		Charts: []chartRef{
			{Kind: "scatter-temp", Alt: "PM2.5 against temperature"},
			{Kind: "scatter-pres", Alt: "PM2.5 against pressure"},
			{Kind: "scatter-wspm", Alt: "PM2.5 against wind speed"},
		},
		Conclusions: conclusions(r),
	}

	for i, v := range r.Correlation.Variables {
		page.Heatmap.Labels = append(page.Heatmap.Labels, string(v))
		page.Heatmap.Rows = append(page.Heatmap.Rows, heatmapRow{Label: string(v), Cells: r.Correlation.Values[i]})
	}
	return page
}

// conclusions derives the closing notes from the report figures.
func conclusions(r dashboard.Report) []string {
	if r.Empty() {
		return nil
	}
	var out []string

	out = append(out, fmt.Sprintf("Across %d hourly readings the mean PM2.5 was %s µg/m³ (median %s, max %s).",
		r.Summary.Count, formatNull(r.Summary.Mean), formatNull(r.Summary.P50), formatNull(r.Summary.Max)))

	if len(r.Weekend) == 2 {
		diff := r.Weekend[1].Mean - r.Weekend[0].Mean
		switch {
		case diff > 0:
			out = append(out, fmt.Sprintf("Weekends averaged %s µg/m³ more PM2.5 than weekdays.", formatFloat(diff)))
		case diff < 0:
			out = append(out, fmt.Sprintf("Weekdays averaged %s µg/m³ more PM2.5 than weekends.", formatFloat(-diff)))
		default:
			out = append(out, "Weekday and weekend PM2.5 means were equal.")
		}
	}

	if len(r.Monthly) > 1 {
		worst, best := r.Monthly[0], r.Monthly[0]
		for _, m := range r.Monthly[1:] {
			if m.Mean > worst.Mean {
				worst = m
			}
			if m.Mean < best.Mean {
				best = m
			}
		}
		out = append(out, fmt.Sprintf("The most polluted month was %s (%s µg/m³); the cleanest was %s (%s µg/m³).",
			worst.Label(), formatFloat(worst.Mean), best.Label(), formatFloat(best.Mean)))
	}

	var strongest domain.Variable
	best := 0.0
	for _, v := range domain.Covariates {
		c, ok := r.Correlation.At(domain.PM25, v)
		if ok && c.Valid() && math.Abs(c.Float64()) > math.Abs(best) {
			strongest, best = v, c.Float64()
		}
	}
	if strongest != "" {
		dir := "rises"
		if best < 0 {
			dir = "falls"
		}
		out = append(out, fmt.Sprintf("PM2.5 is most strongly related to %s (r = %.2f): it %s as %s increases.",
			strongest, best, dir, strongest))
	}
	return out
}

func formatNull(f domain.NullFloat) string {
	if !f.Valid() {
		return "n/a"
	}
	return formatFloat(f.Float64())
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// corrStyle shades a correlation cell from blue (-1) through white to red (+1).
func corrStyle(f domain.NullFloat) template.CSS {
	if !f.Valid() {
		return "background-color: #eeeeee"
	}
	r := math.Max(-1, math.Min(1, f.Float64()))
	var red, green, blue int
	if r >= 0 {
		red, green, blue = 255, int(255*(1-r)), int(255*(1-r))
	} else {
		red, green, blue = int(255*(1+r)), int(255*(1+r)), 255
	}
	return template.CSS(fmt.Sprintf("background-color: rgb(%d, %d, %d)", red, green, blue))
}

func dayName(weekday int) string {
	return [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}[weekday%7]
}

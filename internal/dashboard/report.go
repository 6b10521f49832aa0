package dashboard

import (
	"slices"
	"time"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

// Report bundles every figure and table the dashboard shows for one selection.
type Report struct {
	Location    domain.Location          `json:"location" yaml:"location"`
	Range       domain.DateRange         `json:"range" yaml:"range"`
	TotalRows   int                      `json:"total_rows" yaml:"total_rows"`
	ViewRows    int                      `json:"view_rows" yaml:"view_rows"`
	Preview     []domain.ViewRow         `json:"preview" yaml:"preview"`
	Correlation domain.CorrelationMatrix `json:"correlation" yaml:"correlation"`
	Monthly     []domain.MonthlyMean     `json:"monthly" yaml:"monthly"`
	Weekend     []domain.GroupMean       `json:"weekend_comparison" yaml:"weekend_comparison"`
	Summary     domain.Summary           `json:"summary" yaml:"summary"`
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
}

// Empty reports whether the selection matched no rows.
func (r Report) Empty() bool { return r.ViewRows == 0 }

// clone copies every slice so the copy shares no memory with r.
func (r Report) clone() Report {
	r.Preview = slices.Clone(r.Preview)
	r.Monthly = slices.Clone(r.Monthly)
	r.Weekend = slices.Clone(r.Weekend)
	r.Correlation.Variables = slices.Clone(r.Correlation.Variables)
	if r.Correlation.Values != nil {
		values := make([][]domain.NullFloat, len(r.Correlation.Values))
		for i, row := range r.Correlation.Values {
			values[i] = slices.Clone(row)
		}
		r.Correlation.Values = values
	}
	return r
}

// LocationInfo describes a selectable location.
type LocationInfo struct {
	Name domain.Location `json:"name" yaml:"name"`
	File string          `json:"file" yaml:"file"`
	Rows int             `json:"rows" yaml:"rows"`
}

func buildReport(t *domain.Table, v domain.View, previewRows int) Report {
	return Report{
		Location:    v.Location,
		Range:       v.Range,
		TotalRows:   t.Len(),
		ViewRows:    v.Len(),
		Preview:     domain.Preview(v, previewRows),
		Correlation: domain.Correlate(v),
		Monthly:     domain.MonthlyTrend(v),
		Weekend:     domain.CompareWeekend(v),
		Summary:     domain.Describe(v),
		GeneratedAt: domain.Now(),
	}
}

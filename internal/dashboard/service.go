// Package dashboard serves reports over a loaded dataset.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
	"github.com/couchcryptid/air-quality-dashboard/internal/observability"
)

// Options tunes a Service.
type Options struct {
	// CacheSize is the number of memoized reports; 0 disables caching.
	CacheSize   int
	PreviewRows int
}

// Service answers dashboard queries against an immutable dataset. It is
// safe for concurrent use.
type Service struct {
	dataset     *domain.Dataset
	logger      *slog.Logger
	metrics     *observability.Metrics
	cache       *reportCache
	previewRows int
}

// NewService binds a loaded dataset to the report pipeline.
func NewService(ds *domain.Dataset, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Service {
	s := &Service{
		dataset:     ds,
		logger:      logger,
		metrics:     metrics,
		previewRows: opts.PreviewRows,
	}
	if opts.CacheSize > 0 {
		s.cache = newReportCache(opts.CacheSize)
	}
	return s
}

// CheckReadiness returns nil once every location has been loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.dataset == nil {
		return errors.New("dataset not loaded")
	}
	if got, want := len(s.dataset.Locations()), len(domain.Locations()); got != want {
		return fmt.Errorf("dataset has %d of %d locations", got, want)
	}
	return nil
}

// Locations lists the selectable locations with their full row counts.
func (s *Service) Locations() []LocationInfo {
	locs := s.dataset.Locations()
	out := make([]LocationInfo, 0, len(locs))
	for _, loc := range locs {
		t, err := s.dataset.Table(loc)
		if err != nil {
			continue
		}
		out = append(out, LocationInfo{Name: loc, File: loc.FileName(), Rows: t.Len()})
	}
	return out
}

// Bounds is the date span offered by the date pickers.
func (s *Service) Bounds() domain.DateRange {
	return domain.DatasetBounds()
}

// View clamps the selection to the dataset bounds and filters it.
func (s *Service) View(sel domain.Selection) (domain.View, error) {
	sel.Range = sel.Range.Clamp(s.Bounds())
	return domain.Select(s.dataset, sel)
}

// Report computes, or returns the memoized, report for the selection.
func (s *Service) Report(sel domain.Selection) (Report, error) {
	sel.Range = sel.Range.Clamp(s.Bounds())
	key := sel.Key()

	if s.cache != nil {
		if r, ok := s.cache.get(key); ok {
			s.metrics.ReportCache.WithLabelValues("hit").Inc()
			return r, nil
		}
		s.metrics.ReportCache.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	t, err := s.dataset.Table(sel.Location)
	if err != nil {
		return Report{}, err
	}
	v := domain.Filter(t, sel.Range)
	r := buildReport(t, v, s.previewRows)

	s.metrics.ReportsComputed.Inc()
	s.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	if v.Empty() {
		s.metrics.EmptyViews.Inc()
	}
	s.logger.Debug("report computed",
		"location", sel.Location,
		"range", sel.Range.String(),
		"rows", v.Len(),
		"duration", time.Since(start),
	)

	if s.cache != nil {
		s.cache.put(key, r)
	}
	return r, nil
}

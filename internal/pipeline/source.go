package pipeline

import (
	"context"
	"sync"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

// DatasetSource summarizes a dataset location by location, in display
// order, handing out the summaries in batches.
type DatasetSource struct {
	mu      sync.Mutex
	dataset *domain.Dataset
	pending []domain.Location
	queue   []domain.MonthlySummary
}

// NewDatasetSource creates a source over every location of ds.
func NewDatasetSource(ds *domain.Dataset) *DatasetSource {
	return &DatasetSource{dataset: ds, pending: ds.Locations()}
}

// ExtractBatch returns the next batchSize summaries, or none once exhausted.
func (s *DatasetSource) ExtractBatch(ctx context.Context, batchSize int) ([]domain.MonthlySummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.queue) < batchSize && len(s.pending) > 0 {
		loc := s.pending[0]
		s.pending = s.pending[1:]
		t, err := s.dataset.Table(loc)
		if err != nil {
			return nil, err
		}
		s.queue = append(s.queue, domain.SummarizeMonths(t)...)
	}

	n := min(batchSize, len(s.queue))
	batch := s.queue[:n:n]
	s.queue = s.queue[n:]
	return batch, nil
}

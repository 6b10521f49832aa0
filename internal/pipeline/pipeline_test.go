package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
	"github.com/couchcryptid/air-quality-dashboard/internal/observability"
	"github.com/couchcryptid/air-quality-dashboard/internal/pipeline"
)

// --- mocks ---

type mockLoader struct {
	mu       sync.Mutex
	failures int
	calls    int
	loaded   []domain.MonthlySummary
}

func (m *mockLoader) LoadBatch(_ context.Context, summaries []domain.MonthlySummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failures > 0 {
		m.failures--
		return errors.New("broker unavailable")
	}
	m.loaded = append(m.loaded, summaries...)
	return nil
}

func (m *mockLoader) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.loaded))
	for i, s := range m.loaded {
		out[i] = s.Key()
	}
	return out
}

type failingExtractor struct{}

func (failingExtractor) ExtractBatch(context.Context, int) ([]domain.MonthlySummary, error) {
	return nil, errors.New("boom")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// twoMonthDataset has every location with rows in March and April 2013.
func twoMonthDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	var tables []*domain.Table
	for _, loc := range domain.Locations() {
		tables = append(tables, domain.NewTable(loc, []domain.Measurement{
			{Time: time.Date(2013, 3, 10, 0, 0, 0, 0, time.UTC), PM25: 10},
			{Time: time.Date(2013, 4, 10, 0, 0, 0, 0, time.UTC), PM25: 20},
		}, nil))
	}
	ds, err := domain.NewDataset(tables...)
	require.NoError(t, err)
	return ds
}

func expectedKeys() []string {
	var keys []string
	for _, loc := range domain.Locations() {
		keys = append(keys, string(loc)+"-2013-03", string(loc)+"-2013-04")
	}
	return keys
}

// --- tests ---

func TestPipeline_Run_PublishesEverySummary(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(pipeline.NewDatasetSource(twoMonthDataset(t)), ldr, discardLogger(), metrics, 3)

	require.NoError(t, p.Run(context.Background()))

	if diff := cmp.Diff(expectedKeys(), ldr.keys()); diff != "" {
		t.Errorf("published keys mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, p.Done())
	assert.Equal(t, 4, ldr.calls, "10 summaries in batches of 3")
	assert.Equal(t, 10.0, testutil.ToFloat64(metrics.SummariesPublished))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SummaryFeedRunning))
	assert.Equal(t, fixed, ldr.loaded[0].GeneratedAt)
}

func TestPipeline_Run_RetriesFailedLoads(t *testing.T) {
	ldr := &mockLoader{failures: 2}
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(pipeline.NewDatasetSource(twoMonthDataset(t)), ldr, discardLogger(), metrics, 50)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx))

	assert.True(t, p.Done())
	assert.Equal(t, expectedKeys(), ldr.keys(), "no summary is skipped after a failure")
	assert.Equal(t, 3, ldr.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SummaryPublishErrors))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ldr := &mockLoader{}
	p := pipeline.New(pipeline.NewDatasetSource(twoMonthDataset(t)), ldr, discardLogger(), observability.NewMetricsForTesting(), 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Empty(t, ldr.loaded)
	assert.False(t, p.Done())
}

func TestPipeline_Run_StopsRetryingOnCancel(t *testing.T) {
	ldr := &mockLoader{failures: 1000}
	p := pipeline.New(pipeline.NewDatasetSource(twoMonthDataset(t)), ldr, discardLogger(), observability.NewMetricsForTesting(), 5)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Empty(t, ldr.loaded)
	assert.False(t, p.Done())
}

func TestPipeline_Run_ExtractError(t *testing.T) {
	p := pipeline.New(failingExtractor{}, &mockLoader{}, discardLogger(), observability.NewMetricsForTesting(), 5)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDatasetSource_Batches(t *testing.T) {
	src := pipeline.NewDatasetSource(twoMonthDataset(t))
	ctx := context.Background()

	var sizes []int
	for {
		batch, err := src.ExtractBatch(ctx, 4)
		require.NoError(t, err)
		if len(batch) == 0 {
			break
		}
		sizes = append(sizes, len(batch))
	}
	assert.Equal(t, []int{4, 4, 2}, sizes)
}

// Package pipeline publishes monthly air-quality summaries to a sink.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
	"github.com/couchcryptid/air-quality-dashboard/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor yields up to batchSize summaries; an empty batch means the
// source is exhausted.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.MonthlySummary, error)
}

// BatchLoader writes multiple summaries to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, summaries []domain.MonthlySummary) error
}

// Pipeline drains an extractor into a loader, retrying failed loads.
type Pipeline struct {
	extractor BatchExtractor
	loader    BatchLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	done      atomic.Bool
	batchSize int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Done reports whether every summary has been published.
func (p *Pipeline) Done() bool {
	return p.done.Load()
}

// Run publishes batches until the extractor is exhausted or the context is
// cancelled. A failed load is retried with exponential backoff (200ms
// doubling, capped at 5s) and never skipped.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("summary feed started", "batch_size", p.batchSize)
	p.metrics.SummaryFeedRunning.Set(1)
	defer p.metrics.SummaryFeedRunning.Set(0)

	backoff := initialBackoff
	published := 0

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("summary feed stopping", "reason", ctx.Err(), "published", published)
			return nil
		default:
		}

		batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("extract summaries: %w", err)
		}
		if len(batch) == 0 {
			p.done.Store(true)
			p.logger.Info("summary feed complete", "published", published)
			return nil
		}

		if !p.loadWithRetry(ctx, batch, &backoff) {
			p.logger.Info("summary feed stopping", "reason", ctx.Err(), "published", published)
			return nil
		}
		published += len(batch)
	}
}

// loadWithRetry loads one batch, backing off between failures. Returns
// false if the context ended first.
func (p *Pipeline) loadWithRetry(ctx context.Context, batch []domain.MonthlySummary, backoff *time.Duration) bool {
	for {
		start := time.Now()
		err := p.loader.LoadBatch(ctx, batch)
		if err == nil {
			p.metrics.SummariesPublished.Add(float64(len(batch)))
			p.metrics.SummaryBatchDuration.Observe(time.Since(start).Seconds())
			*backoff = initialBackoff
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		p.metrics.SummaryPublishErrors.Inc()
		p.logger.Error("load batch failed", "error", err, "batch_size", len(batch), "retry_in", *backoff)
		if !p.backoffOrStop(ctx, backoff) {
			return false
		}
	}
}

// backoffOrStop sleeps with the current backoff and advances it. Returns
// false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/issuesreport/internal/source"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of inputs decoded at the same time when
// no limit is configured.
const DefaultConcurrency = 4

// BatchLoader decodes several inputs concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
// Batches are returned in input order; the caller adds them sequentially.
type BatchLoader struct {
	// concurrency is the maximum number of inputs decoded at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchLoader.
type BatchOption func(*BatchLoader)

// WithBatchLogger sets a custom logger for batch loading.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchLoader) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent decodes.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchLoader) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchLoader creates a new BatchLoader.
func NewBatchLoader(opts ...BatchOption) *BatchLoader {
	bl := &BatchLoader{
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bl)
	}

	if bl.logger == nil {
		bl.logger = slog.Default()
	}

	return bl
}

// Load decodes all sources and returns their batches in the order of
// sources. The first failure cancels the remaining decodes and is
// returned; no partial result is returned in that case.
func (bl *BatchLoader) Load(ctx context.Context, sources []source.Source) ([]*source.Batch, error) {
	bl.logger.Debug("loading inputs",
		"total_inputs", len(sources),
		"concurrency", bl.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes its own index, so no lock is needed.
	batches := make([]*source.Batch, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bl.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			batch, err := src.Load(ctx)
			if err != nil {
				bl.logger.Warn("input failed",
					"input", src.Name(),
					"error", err,
				)
				return err
			}

			bl.logger.Debug("input loaded",
				"input", src.Name(),
				"issues", len(batch.Issues),
				"files_analyzed", batch.FilesAnalyzed,
			)

			batches[i] = batch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bl.logger.Debug("inputs loaded",
		"total_inputs", len(sources),
		"elapsed", time.Since(startTime),
	)

	return batches, nil
}

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/internal/model"
	"go.uber.org/zap"
)

// ChartRenderer is satisfied by insights.Service.
type ChartRenderer interface {
	Chart(ctx context.Context, kind model.ChartKind) (model.ChartSpec, error)
}

type WarmResult struct {
	Kind    model.ChartKind
	Elapsed time.Duration
	Err     error
}

// Warmer renders charts on a small goroutine pool so the chart cache is
// filled before traffic arrives.
type Warmer struct {
	Charts  ChartRenderer
	Workers int
}

func NewWarmer(charts ChartRenderer, workers int) *Warmer {
	if workers <= 0 {
		workers = 4
	}
	return &Warmer{Charts: charts, Workers: workers}
}

// Run renders kinds and returns one result per kind, in input order.
// Kinds not started before ctx is cancelled carry ctx.Err().
func (w *Warmer) Run(ctx context.Context, kinds []model.ChartKind) []WarmResult {
	results := make([]WarmResult, len(kinds))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < w.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				kind := kinds[idx]
				start := time.Now()
				_, err := w.Charts.Chart(ctx, kind)
				results[idx] = WarmResult{Kind: kind, Elapsed: time.Since(start), Err: err}
				if err != nil {
					logger.Log.Warn("warm chart failed", zap.Stringer("chart", kind), zap.Error(err))
					continue
				}
				logger.Log.Debug("warmed chart", zap.Stringer("chart", kind), zap.Duration("elapsed", results[idx].Elapsed))
			}
		}()
	}

	next := 0
feed:
	for ; next < len(kinds); next++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(kinds); i++ {
		results[i] = WarmResult{Kind: kinds[i], Err: ctx.Err()}
	}
	return results
}

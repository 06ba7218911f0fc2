package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/internal/model"
	"go.uber.org/zap"
)

// RecordsInserter is the write side of repository.RecordsRepository.
type RecordsInserter interface {
	InsertBatch(ctx context.Context, recs []model.CustomerRecord) error
}

// Seeder imports records into the warehouse in fixed-size batches written by
// a few concurrent writers.
type Seeder struct {
	Repo      RecordsInserter
	BatchSize int
	Workers   int
}

func NewSeeder(repo RecordsInserter, batchSize, workers int) *Seeder {
	if batchSize <= 0 {
		batchSize = 5000
	}
	if workers <= 0 {
		workers = 2
	}
	return &Seeder{Repo: repo, BatchSize: batchSize, Workers: workers}
}

// Run writes recs and returns how many were inserted. The first failing
// batch cancels the remaining ones.
func (s *Seeder) Run(ctx context.Context, recs []model.CustomerRecord) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := make(chan []model.CustomerRecord)
	var (
		wg       sync.WaitGroup
		inserted atomic.Int64
		errOnce  sync.Once
		firstErr error
	)

	for i := 0; i < s.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range batches {
				if err := s.Repo.InsertBatch(ctx, b); err != nil {
					errOnce.Do(func() {
						firstErr = fmt.Errorf("insert batch at %s: %w", b[0].ID, err)
						cancel()
					})
					continue
				}
				n := inserted.Add(int64(len(b)))
				logger.Log.Debug("seed batch written", zap.Int("size", len(b)), zap.Int64("total", n))
			}
		}()
	}

feed:
	for start := 0; start < len(recs); start += s.BatchSize {
		end := min(start+s.BatchSize, len(recs))
		select {
		case <-ctx.Done():
			break feed
		case batches <- recs[start:end]:
		}
	}
	close(batches)
	wg.Wait()

	if firstErr != nil {
		return int(inserted.Load()), firstErr
	}
	return int(inserted.Load()), ctx.Err()
}

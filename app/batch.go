package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"modshift/domain/vetting"
	"modshift/internal/errors"
)

// BatchVetter fans a set of independent candidates across the vetting
// service with bounded concurrency. Candidates share no pipeline state, so
// the only coordination needed is the worker limit.
type BatchVetter struct {
	service *VetService
	sem     *semaphore.Weighted
}

// BatchItem is one candidate's outcome: a report or an error, never both.
type BatchItem struct {
	Index  int
	Report *vetting.Report
	Err    error
}

// NewBatchVetter creates a batch driver running at most workers candidates
// concurrently.
func NewBatchVetter(service *VetService, workers int64) (*BatchVetter, error) {
	if workers < 1 {
		return nil, errors.InvalidInput("batch worker count must be at least 1")
	}
	return &BatchVetter{
		service: service,
		sem:     semaphore.NewWeighted(workers),
	}, nil
}

// VetAll runs every request and returns one item per request, index-aligned
// with the input. Individual failures are recorded per item; only context
// cancellation aborts the batch early.
func (b *BatchVetter) VetAll(ctx context.Context, reqs []VetRequest) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "acquiring batch worker slot")
		}
		wg.Add(1)
		go func(i int, req VetRequest) {
			defer wg.Done()
			defer b.sem.Release(1)
			report, err := b.service.Vet(ctx, req)
			items[i] = BatchItem{Index: i, Report: report, Err: err}
		}(i, req)
	}
	wg.Wait()
	return items, nil
}

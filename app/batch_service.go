package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"pitchlens/domain/regression"
)

// defaultBatchConcurrency bounds how many pitcher regressions run at once.
const defaultBatchConcurrency = 4

// BatchService fans one regression request out across many pitchers with
// bounded parallelism. Per-pitcher failures are collected, never fatal.
type BatchService struct {
	analysis    *AnalysisService
	concurrency int64
}

// NewBatchService creates a batch runner around an analysis service.
func NewBatchService(analysis *AnalysisService, concurrency int) *BatchService {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &BatchService{analysis: analysis, concurrency: int64(concurrency)}
}

// BatchItem is one pitcher's outcome within a batch run.
type BatchItem struct {
	PitcherID int                `json:"pitcher_id"`
	Result    *regression.Result `json:"result,omitempty"`
	Err       string             `json:"error,omitempty"`
}

// BatchResult reports a whole batch run under a stable identifier.
type BatchResult struct {
	BatchID   string      `json:"batch_id"`
	Season    int         `json:"season"`
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// RunRegressions fits the same model for every pitcher in the list. Items
// come back in input order regardless of completion order.
func (b *BatchService) RunRegressions(ctx context.Context, pitcherIDs []int, season int, dependent string, specs []regression.FeatureSpec) (BatchResult, error) {
	out := BatchResult{
		BatchID: uuid.NewString(),
		Season:  season,
		Items:   make([]BatchItem, len(pitcherIDs)),
	}

	sem := semaphore.NewWeighted(b.concurrency)
	var wg sync.WaitGroup

	for i, id := range pitcherIDs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Started workers still hold references to out.Items; let them
			// finish before the slice goes out of scope.
			wg.Wait()
			return BatchResult{}, err
		}
		wg.Add(1)
		go func(idx, pitcherID int) {
			defer wg.Done()
			defer sem.Release(1)

			item := BatchItem{PitcherID: pitcherID}
			res, err := b.analysis.RunRegression(ctx, RegressionRequest{
				PitcherID: pitcherID,
				Season:    season,
				Dependent: dependent,
				Features:  specs,
			})
			if err != nil {
				item.Err = err.Error()
			} else {
				item.Result = &res
			}
			out.Items[idx] = item
		}(i, id)
	}
	wg.Wait()

	for _, item := range out.Items {
		if item.Err == "" {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	return out, nil
}

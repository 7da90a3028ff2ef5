package compliance

import (
	"context"
	"sync"
)

// BulkConcurrency bounds parallel analyses for urgent batches.
const BulkConcurrency = 5

// AnalyzeBulk processes a batch of contracts. Urgent batches run up to
// BulkConcurrency analyses in parallel; normal batches run strictly
// sequentially to bound peak resource usage. Reports are returned in input
// order and a cancelled context leaves the remaining slots as zero Reports.
func (a *Analyzer) AnalyzeBulk(ctx context.Context, req BulkRequest) []Report {
	reports := make([]Report, len(req.Contracts))

	if req.Priority != PriorityUrgent {
		for i, c := range req.Contracts {
			if ctx.Err() != nil {
				break
			}
			reports[i] = a.Analyze(ctx, c)
		}
		return reports
	}

	sem := make(chan struct{}, BulkConcurrency)
	var wg sync.WaitGroup
	for i, c := range req.Contracts {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, c AnalyzeRequest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			reports[i] = a.Analyze(ctx, c)
		}(i, c)
	}
	wg.Wait()
	return reports
}

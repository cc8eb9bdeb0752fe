package charts

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/huikaichung/knowyourself/internal/domain"
)

// BatchResult is the outcome of one request in a batch. Exactly one of Reading
// and Error is set.
type BatchResult struct {
	Index   int            `json:"index"`
	Request ReadingRequest `json:"request"`
	Reading *Reading       `json:"reading,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    string         `json:"error_kind,omitempty"`
	Field   string         `json:"error_field,omitempty"`
}

// CalculateBatch computes readings with at most workers in flight. A failing
// request is reported in its result and does not stop the others; only context
// cancellation aborts the batch.
func (s *Service) CalculateBatch(ctx context.Context, reqs []ReadingRequest, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := BatchResult{Index: i, Request: req}
			reading, err := s.CalculateReading(ctx, req)
			if err != nil {
				res.Error = err.Error()
				res.Kind = string(domain.KindOf(err))
				res.Field = domain.FieldOf(err)
			} else {
				res.Reading = reading
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	s.log.Info().Int("requests", len(reqs)).Int("failed", failed).Msg("Batch calculated")

	return results, nil
}

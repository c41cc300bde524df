package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes fn once per item with at most limit invocations in flight at
// any time. As soon as one invocation returns, the next queued item is
// admitted. Results are returned in input order regardless of completion
// order: results[i] always corresponds to items[i].
//
// fn is expected to capture per-item failures inside its result value. An
// error returned from fn is treated as a programmer error: it cancels the
// group context and fails the whole run.
func Run[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, index int, item T) (R, error)) ([]R, error) {
	if limit < 1 {
		limit = 1
	}

	results := make([]R, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			res, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

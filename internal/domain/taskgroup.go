package domain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runTasks fans fn out over items and waits for every task to settle.
//
// Each task owns results[i]; nothing else is shared. Tasks are not started
// once ctx is done, and cancellation errors are swallowed so an interrupted
// batch returns the results gathered so far without failing. A failing task
// never cancels its siblings: the first other error is returned only after
// all tasks have finished. limit <= 0 means no concurrency cap.
func runTasks[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			res, err := fn(ctx, item)
			if err != nil {
				if isCancellation(err) {
					return nil
				}

				return err
			}

			results[i] = res

			return nil
		})
	}

	return results, g.Wait()
}

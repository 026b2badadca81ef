package filter

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// sequentialThreshold is the list size below which Select does not fan out
const sequentialThreshold = 100

// Select returns the items for which f matches, preserving order. A nil
// filter matches everything. The first evaluation failure aborts the
// selection and is returned as an *EvaluationError.
func Select[T any](ctx context.Context, f CompiledFilter, items []T, env func(T) Env) ([]T, error) {
	if f == nil || len(items) == 0 {
		return items, nil
	}

	matched := make([]bool, len(items))

	if len(items) < sequentialThreshold {
		for i, item := range items {
			ok, err := evaluate(f, item, env)
			if err != nil {
				return nil, err
			}
			matched[i] = ok
		}
		return collect(items, matched), nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunkSize := max(len(items)/workers, sequentialThreshold)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(items); start += chunkSize {
		end := min(start+chunkSize, len(items))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				ok, err := evaluate(f, items[i], env)
				if err != nil {
					return err
				}
				matched[i] = ok
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return collect(items, matched), nil
}

func evaluate[T any](f CompiledFilter, item T, env func(T) Env) (bool, error) {
	ok, err := f.Evaluate(env(item))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.Expression(),
			Subject:    fmt.Sprint(item),
			Err:        err,
		}
	}
	return ok, nil
}

func collect[T any](items []T, matched []bool) []T {
	out := make([]T, 0, len(items))
	for i, item := range items {
		if matched[i] {
			out = append(out, item)
		}
	}
	return out
}

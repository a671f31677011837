package scraper

import (
	"context"
	"fmt"
	"sync"
)

// forEachPage runs fn once per page in [1, total], launching every page
// at once and joining all of them before returning. Results come back
// one per page in completion order; callers must not rely on page
// order. The first page error fails the whole fan-out, but sibling
// pages still run to completion before it is returned.
func forEachPage[T any](ctx context.Context, total int, fn func(ctx context.Context, page int) (T, error)) ([]T, error) {
	if total <= 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  = make([]T, 0, total)
		firstErr error
	)

	for page := 1; page <= total; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()

			result, err := fn(ctx, page)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("page %d: %w", page, err)
				}
				return
			}
			results = append(results, result)
		}(page)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

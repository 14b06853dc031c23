package parallel

import "context"
import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	_ = ForEachErr(context.Background(), length, limit, func(i int) error {
		body(i)
		return nil
	})
}

// ForEachErr is ForEach which stops starting new iterations once ctx is done or
// any body returned an error. The first error (or the ctx error) is returned.
func ForEachErr(ctx context.Context, length, limit int, body func(i int) error) error {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return ctx.Err()
	}

	var (
		sem   = make(chan struct{}, limit)
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	fail := func(err error) {
		once.Do(func() { first = err })
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for i := 0; i < length; i++ {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := body(i); err != nil {
				fail(err)
				cancel()
			}
		}(i)
	}

	wg.Wait()
	return first
}

package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Func = func(context.Context) error

// Run calls each given function in a separate goroutine and waits for them to finish.
// The first non-nil error cancels the shared context and is returned once every function has exited.
// Note that Run does not forcefully terminate the goroutines;
// your functions should be able to handle context cancellation.
func Run(ctx context.Context, fs ...Func) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, f := range fs {
		g.Go(func() error {
			return f(gCtx)
		})
	}
	return g.Wait()
}

package gencontext

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PreparedRun pairs one script with the Context it should run under.
// Every run in a RunMultithreaded batch should share the same backing
// StoryboardContext (via SetSharedContext) for the fan-out to be
// meaningful.
type PreparedRun struct {
	Context *Context
	Script  Script
}

// RunMultithreaded fans runs out concurrently over an errgroup, one
// goroutine per run, each activating its own Context against a child of
// ctx. It returns every run's error indexed by position (collected into
// a pre-sized slice, never appended to concurrently) plus the first
// non-nil error the group observed, which also cancels the remaining
// runs' derived context.
//
// Only used when the caller has opted into RunConfig.Multithreaded;
// single-threaded callers should just loop over runs and call
// Script.Generate directly.
func RunMultithreaded(ctx context.Context, runs []PreparedRun) ([]error, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]error, len(runs))

	for i, run := range runs {
		i, run := i, run
		g.Go(func() error {
			activated := run.Context.Activate(gctx)
			run.Context.Cancel = activated
			err := run.Script.Generate(run.Context)
			results[i] = err
			return err
		})
	}

	return results, g.Wait()
}

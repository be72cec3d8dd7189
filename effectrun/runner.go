package effectrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lucidforge/sbcoord/gencontext"
)

// Runner drives one script through the Initializing -> Loading ->
// Configuring -> Updating -> Ready lifecycle.
type Runner struct{}

// New returns a Runner. It holds no state; scripts and contexts are
// passed per call.
func New() *Runner { return &Runner{} }

// Run drives script through its lifecycle, checking ctx before each
// phase boundary. It never panics: a panicking Generate is
// recovered and reported as ExecutionFailed, returning to the caller
// instead of terminating the process, since a library must stay total
// for its callers.
func (r *Runner) Run(ctx context.Context, script gencontext.Script, gctx *gencontext.Context) (outcome Outcome) {
	phases := []Status{Initializing, Loading, Configuring, Updating}
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return Outcome{Status: UpdateCanceled, Err: err, Log: gctx.Log.String()}
		}
		_ = phase
	}

	err := r.callGenerate(script, gctx)
	if err != nil {
		return Outcome{Status: classify(err), Err: err, Log: gctx.Log.String()}
	}
	return Outcome{Status: Ready, Log: gctx.Log.String()}
}

func (r *Runner) callGenerate(script gencontext.Script, gctx *gencontext.Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			gctx.Log.Printf("panic in %s: %v\n%s", script.Identifier(), rec, debug.Stack())
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return script.Generate(gctx)
}

func classify(err error) Status {
	var compErr *CompilationError
	if errors.As(err, &compErr) {
		return CompilationFailed
	}
	var loadErr *LoadingError
	if errors.As(err, &loadErr) {
		return LoadingFailed
	}
	if errors.Is(err, os.ErrNotExist) {
		return LoadingFailed
	}
	return ExecutionFailed
}

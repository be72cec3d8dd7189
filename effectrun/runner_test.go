package effectrun_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lucidforge/sbcoord/contributor"
	"github.com/lucidforge/sbcoord/effectrun"
	"github.com/lucidforge/sbcoord/gencontext"
	"github.com/lucidforge/sbcoord/kind"
)

type scriptFunc struct {
	id string
	fn func(ctx *gencontext.Context) error
}

func (s scriptFunc) Identifier() string                    { return s.id }
func (s scriptFunc) Generate(ctx *gencontext.Context) error { return s.fn(ctx) }

func newGctx() *gencontext.Context {
	return gencontext.New(kind.NewRegistry(), contributor.Contributor{ID: "artist-a", Name: "artist-a"})
}

func TestRunner_SuccessIsReady(t *testing.T) {
	r := effectrun.New()
	outcome := r.Run(context.Background(), scriptFunc{id: "ok", fn: func(*gencontext.Context) error { return nil }}, newGctx())
	if outcome.Status != effectrun.Ready {
		t.Fatalf("expected Ready, got %v (%v)", outcome.Status, outcome.Err)
	}
}

func TestRunner_CanceledContextIsUpdateCanceled(t *testing.T) {
	r := effectrun.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome := r.Run(ctx, scriptFunc{id: "never-runs", fn: func(*gencontext.Context) error {
		t.Fatalf("Generate must not be called once the context is already canceled")
		return nil
	}}, newGctx())
	if outcome.Status != effectrun.UpdateCanceled {
		t.Fatalf("expected UpdateCanceled, got %v", outcome.Status)
	}
}

func TestRunner_PanicIsExecutionFailed(t *testing.T) {
	r := effectrun.New()
	outcome := r.Run(context.Background(), scriptFunc{id: "boom", fn: func(*gencontext.Context) error {
		panic("kaboom")
	}}, newGctx())
	if outcome.Status != effectrun.ExecutionFailed {
		t.Fatalf("expected ExecutionFailed after a panic, got %v", outcome.Status)
	}
	if outcome.Log == "" {
		t.Fatalf("expected the panic to be logged")
	}
}

func TestRunner_CompilationErrorClassified(t *testing.T) {
	r := effectrun.New()
	wrapped := &effectrun.CompilationError{Err: errors.New("bad syntax")}
	outcome := r.Run(context.Background(), scriptFunc{id: "bad-compile", fn: func(*gencontext.Context) error {
		return wrapped
	}}, newGctx())
	if outcome.Status != effectrun.CompilationFailed {
		t.Fatalf("expected CompilationFailed, got %v", outcome.Status)
	}
}

func TestRunner_LoadingErrorClassified(t *testing.T) {
	r := effectrun.New()
	outcome := r.Run(context.Background(), scriptFunc{id: "bad-load", fn: func(*gencontext.Context) error {
		return &effectrun.LoadingError{Err: errors.New("missing asset")}
	}}, newGctx())
	if outcome.Status != effectrun.LoadingFailed {
		t.Fatalf("expected LoadingFailed, got %v", outcome.Status)
	}
}

func TestRunner_GenericErrorIsExecutionFailed(t *testing.T) {
	r := effectrun.New()
	outcome := r.Run(context.Background(), scriptFunc{id: "generic", fn: func(*gencontext.Context) error {
		return errors.New("something went wrong")
	}}, newGctx())
	if outcome.Status != effectrun.ExecutionFailed {
		t.Fatalf("expected ExecutionFailed, got %v", outcome.Status)
	}
}

package sbcontext_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lucidforge/sbcoord/kind"
	"github.com/lucidforge/sbcoord/sbcontext"
)

// TestContext_ConcurrentGetLayer drives many goroutines at the same
// small set of layer ids to exercise the create-once guarantee under
// -race: every goroutine addressing "shared" must observe the same
// *Layer instance.
func TestContext_ConcurrentGetLayer(t *testing.T) {
	ctx := sbcontext.New(kind.NewRegistry())
	const workers = 32

	results := make([]*sbcontext.Layer, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l, err := ctx.GetLayer(sbcontext.Named("shared"))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = l
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("expected every goroutine to observe the same layer instance")
		}
	}
}

func TestContext_ConcurrentDistinctLayers(t *testing.T) {
	ctx := sbcontext.New(kind.NewRegistry())
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := ctx.GetLayer(sbcontext.Named(fmt.Sprintf("layer-%d", i)))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if len(ctx.SnapshotLayers()) != workers {
		t.Fatalf("expected %d distinct layers, got %d", workers, len(ctx.SnapshotLayers()))
	}
}

package gencontext_test

import (
	"context"
	"testing"

	"github.com/lucidforge/sbcoord/contributor"
	"github.com/lucidforge/sbcoord/gencontext"
	"github.com/lucidforge/sbcoord/kind"
	"github.com/lucidforge/sbcoord/sbcontext"
)

func newCtx() *gencontext.Context {
	return gencontext.New(kind.NewRegistry(), contributor.Contributor{ID: "artist-a", Name: "artist-a"})
}

func TestContext_GetLayer_LocalMode(t *testing.T) {
	c := newCtx()
	l, err := c.GetLayer(sbcontext.Named("bg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Identifier() != "bg" {
		t.Fatalf("expected layer identifier 'bg', got %q", l.Identifier())
	}
}

func TestContext_GetLayer_RepeatCallsReturnSameLayer(t *testing.T) {
	c := newCtx()
	l1, err := c.GetLayer(sbcontext.Unnamed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l2, err := c.GetLayer(sbcontext.Unnamed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l1 != l2 {
		t.Fatalf("expected repeat GetLayer(Unnamed) to return the same layer")
	}
}

func TestContext_SharedMode_LayersSurviveAcrossContexts(t *testing.T) {
	shared := sbcontext.New(kind.NewRegistry())
	c1 := newCtx()
	c2 := gencontext.New(kind.NewRegistry(), contributor.Contributor{ID: "artist-b", Name: "artist-b"})
	c1.SetSharedContext(shared)
	c2.SetSharedContext(shared)

	l1, err := c1.GetLayer(sbcontext.Named("fg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l2, err := c2.GetLayer(sbcontext.Named("fg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l1 != l2 {
		t.Fatalf("expected shared-mode contexts to observe the same layer instance")
	}
}

func TestContext_OnLayerCreated_FiresForSharedLayer(t *testing.T) {
	shared := sbcontext.New(kind.NewRegistry())
	c := newCtx()
	c.SetSharedContext(shared)

	var seen []string
	c.OnLayerCreated(func(l *sbcontext.Layer) {
		seen = append(seen, l.Identifier())
	})

	if _, err := c.GetLayer(sbcontext.Named("new-layer")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 1 || seen[0] != "new-layer" {
		t.Fatalf("expected one LayerCreated event for 'new-layer', got %v", seen)
	}
}

func TestContext_MapsetPath_MissingReturnsError(t *testing.T) {
	c := newCtx()
	c.SetMapsetPath("/nonexistent/path/for/testing")
	if _, err := c.MapsetPath(); err == nil {
		t.Fatalf("expected an error for a missing mapset path")
	}
}

func TestContext_MapsetPath_EmptyIsNotAnError(t *testing.T) {
	c := newCtx()
	path, err := c.MapsetPath()
	if err != nil || path != "" {
		t.Fatalf("expected empty path with no error when never set, got %q, %v", path, err)
	}
}

func TestContext_BeatmapDependent_FlipsOnRead(t *testing.T) {
	c := newCtx()
	if c.BeatmapDependent() {
		t.Fatalf("expected BeatmapDependent to start false")
	}
	c.Beatmap = "fixture-beatmap"
	_ = c.ReadBeatmap()
	if !c.BeatmapDependent() {
		t.Fatalf("expected BeatmapDependent to flip true after ReadBeatmap")
	}
}

func TestContext_ActivateAndCurrent(t *testing.T) {
	c := newCtx()
	activated := c.Activate(context.Background())
	got, ok := gencontext.Current(activated)
	if !ok || got != c {
		t.Fatalf("expected Current to retrieve the activated Context")
	}
	if _, ok := gencontext.Current(context.Background()); ok {
		t.Fatalf("expected a plain background context to carry no Context")
	}
}

func TestContext_Dependencies_ForwardsToWatcher(t *testing.T) {
	c := newCtx()
	c.AddDependency("skin.ini")
	deps := c.Dependencies()
	if len(deps) != 1 || deps[0] != "skin.ini" {
		t.Fatalf("expected ['skin.ini'], got %v", deps)
	}
}

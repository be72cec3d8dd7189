package watcher_test

import (
	"reflect"
	"testing"

	"github.com/lucidforge/sbcoord/watcher"
)

func TestFileWatcher_WatchAndPaths(t *testing.T) {
	w := watcher.New()
	w.Watch("b.osb")
	w.Watch("a.osb")
	w.Watch("a.osb")

	got := w.Paths()
	want := []string{"a.osb", "b.osb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sorted deduplicated paths %v, got %v", want, got)
	}
}

func TestFileWatcher_EmptyPathIsNoop(t *testing.T) {
	w := watcher.New()
	w.Watch("")
	if len(w.Paths()) != 0 {
		t.Fatalf("expected empty path to be ignored")
	}
}

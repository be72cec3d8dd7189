package contributor_test

import (
	"math"
	"testing"

	"github.com/lucidforge/sbcoord/contributor"
)

func TestDefault_SortsLast(t *testing.T) {
	d := contributor.Default()
	if d.ID != contributor.DefaultID {
		t.Fatalf("expected default contributor's ID to be DefaultID")
	}
	if d.Priority != math.MaxInt || d.Order != math.MaxUint64 {
		t.Fatalf("expected default contributor to carry maximal Priority and Order")
	}
}

func TestWithPriority_ReturnsCopy(t *testing.T) {
	original := contributor.Contributor{ID: "a", Priority: 1}
	updated := original.WithPriority(5)
	if original.Priority != 1 {
		t.Fatalf("expected WithPriority not to mutate the receiver")
	}
	if updated.Priority != 5 {
		t.Fatalf("expected the returned copy to carry the new priority")
	}
}

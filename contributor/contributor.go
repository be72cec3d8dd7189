// Package contributor identifies the producer of a storyboard object.
package contributor

import "math"

// ID is a stable, globally unique token identifying a contributor.
type ID string

// DefaultID is the sentinel identity objects fall back to when their
// declared contributor is unknown at ordering time.
const DefaultID ID = "__default__"

// Contributor is a value-like identity record: Id, Name, a monotonic
// registration Order, and a caller-set Priority (smaller sorts earlier).
type Contributor struct {
	ID       ID
	Name     string
	Order    uint64
	Priority int
}

// WithPriority returns a copy of c with Priority replaced.
func (c Contributor) WithPriority(priority int) Contributor {
	c.Priority = priority
	return c
}

// Default returns the sentinel contributor used to remap objects whose
// declared contributor was never registered. It sorts last: maximum
// order and priority.
func Default() Contributor {
	return Contributor{
		ID:       DefaultID,
		Name:     "default",
		Order:    math.MaxUint64,
		Priority: math.MaxInt,
	}
}

// Package kind implements the CommandKindRegistry: a descriptor table
// keyed by concrete command kind, used by the fusion engine to build
// fused instances without reflection.
package kind

import (
	"sync"

	"github.com/lucidforge/sbcoord/command"
)

// Factory builds a fused command instance. It must fail (ok=false) for
// point-like kinds when startValue and endValue disagree, since a point
// command has no meaningful end value distinct from its start.
type Factory func(easing command.Easing, startTime, endTime float64, startValue, endValue any) (command.Command, bool)

// Descriptor describes one concrete command kind.
type Descriptor struct {
	Key Key
	// Supported gates whether the fusion engine attempts merging at all
	// for this kind. A Descriptor obtained via a failed introspection
	// (see BuildDescriptor) has Supported == false.
	Supported bool
	// PointLike marks kinds with no meaningful end value distinct from
	// the start (e.g. a parameter toggle). Point commands are never
	// merged into a range; see Factory.
	PointLike bool
	Create    Factory
}

// Key is re-exported from command for readability at call sites that
// only need the registry, not the full command contract.
type Key = command.Key

// Registry maps a command Key to its Descriptor. It is safe for
// concurrent reads and registrations.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[Key]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[Key]Descriptor)}
}

// Register adds or replaces the descriptor for d.Key.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[d.Key] = d
}

// Lookup returns the descriptor for k, if any. A missing or unsupported
// descriptor means the fusion engine must bypass merging for k and
// clone the command through unchanged.
func (r *Registry) Lookup(k Key) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[k]
	if !ok || !d.Supported {
		return Descriptor{}, false
	}
	return d, true
}

// BuildDescriptor is a convenience for registering a kind whose factory
// might legitimately be absent (e.g. a kind under construction). A nil
// create function yields an unsupported descriptor rather than a
// registry that panics later — construction of a descriptor never
// throws, per the CommandKindRegistry contract.
func BuildDescriptor(key Key, pointLike bool, create Factory) Descriptor {
	if create == nil {
		return Descriptor{Key: key, Supported: false}
	}
	return Descriptor{Key: key, Supported: true, PointLike: pointLike, Create: create}
}

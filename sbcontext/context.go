// Package sbcontext implements the shared StoryboardContext: a registry
// mapping layer identifier to Layer, with creation events, snapshots,
// and reset, giving multiple generator runs stable shared layer
// references.
//
// A Context also backs GeneratorContext's "local" mode (see package
// gencontext): a local run simply owns a private Context nobody else
// references, which resolves the redesign in DESIGN.md around the
// unnamed-layer slot being treated uniformly everywhere rather than
// only in shared mode.
package sbcontext

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/lucidforge/sbcoord/coordinator"
	"github.com/lucidforge/sbcoord/kind"
)

// LayerID addresses a layer: either a named identifier, or the single
// reserved Unnamed slot. Unnamed is kept distinct from Named("") so a
// layer literally named with the empty string can never collide with
// the "no identifier given" slot.
type LayerID struct {
	id      string
	unnamed bool
}

// Named addresses the layer with the given external identifier.
func Named(id string) LayerID { return LayerID{id: id} }

// Unnamed addresses the single reserved unnamed layer slot.
var Unnamed = LayerID{unnamed: true}

// LayerFactory constructs a new Layer for id. It must never return nil;
// doing so is a fatal programming error surfaced by GetLayer.
type LayerFactory func(id LayerID, registry *kind.Registry) *Layer

// Context is the shared, inter-run layer registry.
type Context struct {
	mu sync.Mutex

	registry *kind.Registry
	layers   map[LayerID]*Layer
	order    []LayerID
	version  uint64
	factory  LayerFactory

	listeners []func(*Layer)
}

// New creates an empty shared context. registry is passed to every
// layer the default factory constructs; callers using AttachLayerFactory
// with their own factory may ignore it.
func New(registry *kind.Registry) *Context {
	return &Context{
		registry: registry,
		layers:   make(map[LayerID]*Layer),
	}
}

// DefaultFactory builds a plain Layer wrapping a fresh coordinator. It
// is the factory a Context uses if none is ever attached explicitly.
func DefaultFactory(id LayerID, registry *kind.Registry) *Layer {
	return &Layer{
		identifier:  id.id,
		unnamed:     id.unnamed,
		Coordinator: coordinator.New(registry),
	}
}

// AttachLayerFactory sets the factory used for future layer creation.
// First-wins: once a factory is attached, later calls are ignored, so
// every generator sharing this context observes the same concrete
// layer kind for the context's whole lifetime.
func (c *Context) AttachLayerFactory(f LayerFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.factory != nil || f == nil {
		return
	}
	c.factory = f
}

// Version returns the current monotonically increasing version stamp,
// bumped once per newly created layer.
func (c *Context) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// GetLayer looks up or creates the layer addressed by id. Creation
// bumps Version and fires LayerCreated to every subscriber outside the
// context lock, to avoid re-entrant deadlocks in listeners that call
// back into the context.
func (c *Context) GetLayer(id LayerID) (*Layer, error) {
	c.mu.Lock()
	if l, ok := c.layers[id]; ok {
		c.mu.Unlock()
		return l, nil
	}

	factory := c.factory
	if factory == nil {
		factory = DefaultFactory
	}
	l := factory(id, c.registry)
	if l == nil {
		c.mu.Unlock()
		return nil, errors.Wrapf(ErrLayerFactoryReturnedNull, "layer id %q", id.id)
	}

	c.layers[id] = l
	c.order = append(c.order, id)
	c.version++
	listeners := append([]func(*Layer){}, c.listeners...)
	c.mu.Unlock()

	for _, listen := range listeners {
		if listen != nil {
			listen(l)
		}
	}
	return l, nil
}

// TryGetLayer performs a non-creating lookup.
func (c *Context) TryGetLayer(id LayerID) (*Layer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.layers[id]
	return l, ok
}

// SnapshotLayers returns a point-in-time copy of the layer list in
// creation order. Later mutations of the context do not propagate to
// the returned slice.
func (c *Context) SnapshotLayers() []*Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Layer, len(c.order))
	for i, id := range c.order {
		out[i] = c.layers[id]
	}
	return out
}

// EnumerateLayers calls fn for each layer in creation order, stopping
// early if fn returns false. If snapshot is false, iteration happens
// under the context lock and the caller must finish promptly; if true,
// it iterates a SnapshotLayers copy instead.
func (c *Context) EnumerateLayers(snapshot bool, fn func(*Layer) bool) {
	if snapshot {
		for _, l := range c.SnapshotLayers() {
			if !fn(l) {
				return
			}
		}
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.order {
		if !fn(c.layers[id]) {
			return
		}
	}
}

// OnLayerCreated subscribes fn to future LayerCreated events. The
// returned func unsubscribes; after it is called, fn observes no
// further events.
func (c *Context) OnLayerCreated(fn func(*Layer)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
	idx := len(c.listeners) - 1
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if idx < 0 || idx >= len(c.listeners) {
			return
		}
		c.listeners[idx] = nil
	}
}

// Reset clears every layer (including the unnamed slot) and bumps
// Version. Subscribers are left attached; they will observe
// LayerCreated events for whatever is created next.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers = make(map[LayerID]*Layer)
	c.order = nil
	c.version++
}

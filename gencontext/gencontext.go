// Package gencontext implements the GeneratorContext: the facade one
// script run uses to obtain layers (local or shared), observe layer
// creation/access, and reach ambient run data.
//
// Field grouping below calls out immutable-after-init, atomic, and
// mutex-protected fields explicitly rather than leaving it for the
// reader to infer from usage.
package gencontext

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/lucidforge/sbcoord/audiofft"
	"github.com/lucidforge/sbcoord/contributor"
	"github.com/lucidforge/sbcoord/kind"
	"github.com/lucidforge/sbcoord/logging"
	"github.com/lucidforge/sbcoord/sbcontext"
	"github.com/lucidforge/sbcoord/watcher"
)

// Script is the collaborator contract for one contributor's generator
// run: a stable Identifier and a Generate entry point. A script may
// also declare a shared-context key through KeyedScript; this package
// does not read that key or group scripts by it, and a run shares
// layers only through an explicit SetSharedContext call.
type Script interface {
	Identifier() string
	Generate(ctx *Context) error
}

// KeyedScript is implemented by scripts that want an explicit
// shared-context key instead of the default (their concrete type's
// fully-qualified name).
type KeyedScript interface {
	Script
	ContextKey() string
}

// Context is the facade a single script run uses to reach layers and
// ambient state.
type Context struct {
	// ===== Immutable After Init =====

	registry    *kind.Registry
	contributor contributor.Contributor
	watcher     *watcher.FileWatcher
	Log         *logging.Log
	Cancel      context.Context

	ProjectPath string
	AssetPath   string
	mapsetPath  string

	Beatmap  any
	Beatmaps []any

	// ===== Atomic (Self-Synchronized) =====

	beatmapDependent atomic.Bool
	multithreaded    atomic.Bool

	// ===== Mutex-Protected =====

	mu              sync.Mutex
	local           *sbcontext.Context // owned exclusively when shared == nil
	shared          *sbcontext.Context
	unsubscribe     func()
	onLayerAccessed func(id sbcontext.LayerID)
	onLayerCreated  func(*sbcontext.Layer)
	fftCache        map[string]*audiofft.Source
}

// New creates a local-mode GeneratorContext: it owns a private layer
// registry nobody else references. The mapset path is validated lazily,
// on each MapsetPath() call, surfacing ErrMapsetMissing if it is gone.
func New(registry *kind.Registry, contrib contributor.Contributor) *Context {
	c := &Context{
		registry:    registry,
		contributor: contrib,
		watcher:     watcher.New(),
		Log:         logging.New(),
		Cancel:      context.Background(),
		fftCache:    make(map[string]*audiofft.Source),
	}
	c.local = sbcontext.New(registry)
	c.attachEvents(c.local)
	return c
}

// SetMapsetPath records the mapset path a run should read from.
func (c *Context) SetMapsetPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mapsetPath = path
}

// MapsetPath returns the configured mapset path, or ErrMapsetMissing if
// it no longer exists on disk.
func (c *Context) MapsetPath() (string, error) {
	c.mu.Lock()
	path := c.mapsetPath
	c.mu.Unlock()
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMapsetMissing, path)
	}
	return path, nil
}

// SetSharedContext switches this run to share layers through shared.
// Unhooks any previous subscription and hooks the new one; passing the
// context this run is already attached to is a no-op.
func (c *Context) SetSharedContext(shared *sbcontext.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shared == shared {
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.shared = shared
	if shared != nil {
		c.attachEventsLocked(shared)
	}
}

func (c *Context) attachEvents(ctx *sbcontext.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachEventsLocked(ctx)
}

func (c *Context) attachEventsLocked(ctx *sbcontext.Context) {
	ctx.AttachLayerFactory(sbcontext.DefaultFactory)
	c.unsubscribe = ctx.OnLayerCreated(func(l *sbcontext.Layer) {
		c.mu.Lock()
		onCreated := c.onLayerCreated
		c.mu.Unlock()
		if onCreated != nil {
			onCreated(l)
		}
	})
}

func (c *Context) activeRegistry() *sbcontext.Context {
	if c.shared != nil {
		return c.shared
	}
	return c.local
}

// OnLayerAccessed sets the hook invoked every time GetLayer resolves a
// layer, new or existing.
func (c *Context) OnLayerAccessed(fn func(id sbcontext.LayerID)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLayerAccessed = fn
}

// OnLayerCreated sets the hook invoked when GetLayer (on this or any
// other generator sharing the same context) causes a new layer to be
// created.
func (c *Context) OnLayerCreated(fn func(*sbcontext.Layer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLayerCreated = fn
}

// GetLayer resolves the layer addressed by id, creating it if
// necessary, and registers this run's contributor on it. A nil-style
// "no identifier" request should use sbcontext.Unnamed, uniformly in
// both local and shared mode.
func (c *Context) GetLayer(id sbcontext.LayerID) (*sbcontext.Layer, error) {
	c.mu.Lock()
	registry := c.activeRegistry()
	onAccessed := c.onLayerAccessed
	c.mu.Unlock()

	layer, err := registry.GetLayer(id)
	if err != nil {
		return nil, err
	}
	layer.Coordinator.RegisterContributor(c.contributor.ID, c.contributor.Name, c.contributor.Priority)
	if onAccessed != nil {
		onAccessed(id)
	}
	return layer, nil
}

// AddDependency forwards path to the run's file watcher collaborator.
func (c *Context) AddDependency(path string) {
	c.watcher.Watch(path)
}

// Dependencies returns every path AddDependency has recorded so far.
func (c *Context) Dependencies() []string {
	return c.watcher.Paths()
}

// BeatmapDependent reports whether Beatmap or Beatmaps has ever been
// read on this run.
func (c *Context) BeatmapDependent() bool {
	return c.beatmapDependent.Load()
}

// ReadBeatmap returns Beatmap, flipping BeatmapDependent.
func (c *Context) ReadBeatmap() any {
	c.beatmapDependent.Store(true)
	return c.Beatmap
}

// ReadBeatmaps returns Beatmaps, flipping BeatmapDependent.
func (c *Context) ReadBeatmaps() []any {
	c.beatmapDependent.Store(true)
	return c.Beatmaps
}

// SetMultithreaded records whether this run opts into multithreaded
// generation.
func (c *Context) SetMultithreaded(v bool) { c.multithreaded.Store(v) }

// Multithreaded reports the current opt-in state.
func (c *Context) Multithreaded() bool { return c.multithreaded.Load() }

// GetFft returns the cached audiofft.Source for the given absolute
// path, decoding it on first request. The cache is owned by this
// Context alone and is never shared across generators.
func (c *Context) GetFft(absPath string) (*audiofft.Source, error) {
	c.mu.Lock()
	if src, ok := c.fftCache[absPath]; ok {
		c.mu.Unlock()
		return src, nil
	}
	c.mu.Unlock()

	src, err := audiofft.NewSource(absPath)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.fftCache[absPath]; ok {
		return existing, nil
	}
	c.fftCache[absPath] = src
	return src, nil
}

// Activate binds this Context as the ambient "current context" for the
// duration of one script run, by deriving a child of parent that
// carries it. This deliberately avoids goroutine-local/thread-local
// state (multithreaded generation runs several script Generate calls
// concurrently, each in its own goroutine): the child context IS the
// scoped handle, and "restoring the previous" binding is simply a
// matter of the caller reverting to using parent once the derived
// context is discarded.
func (c *Context) Activate(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, currentContextKey{}, c)
}

type currentContextKey struct{}

// Current retrieves the GeneratorContext bound to ctx by Activate, if
// any.
func Current(ctx context.Context) (*Context, bool) {
	c, ok := ctx.Value(currentContextKey{}).(*Context)
	return c, ok
}

// Package coordinator implements the LayerCommandCoordinator: a
// per-layer registry of contributors, tracked objects, and
// object-to-contributor attribution, producing deterministic object
// order and driving command fusion recursively through nested segments.
package coordinator

import (
	"sort"
	"sync"

	"github.com/lucidforge/sbcoord/contributor"
	"github.com/lucidforge/sbcoord/fusion"
	"github.com/lucidforge/sbcoord/kind"
	"github.com/lucidforge/sbcoord/object"
	"github.com/lucidforge/sbcoord/rebuild"
)

// entry is one tracked object's attribution and cached bounds.
type entry struct {
	object        object.Object
	contributorID contributor.ID
	sequence      uint64
	startTime     float64
	endTime       float64
}

// FusionResult reports the outcome of fusing one sprite's command list.
type FusionResult struct {
	Object        object.Sprite
	OriginalCount int
	FusedCount    int
}

// HasFusion reports whether fusion actually reduced the command count.
func (r FusionResult) HasFusion() bool { return r.FusedCount < r.OriginalCount }

// Coordinator is a single layer's contributor and object registry. All
// public operations are total for valid inputs: invalid inputs (a nil
// object, an empty contributor id) are silent no-ops, never errors.
type Coordinator struct {
	mu sync.Mutex

	registry *kind.Registry

	contributors     map[contributor.ID]contributor.Contributor
	nextContribOrder uint64

	entries      map[object.Object]*entry
	nextSequence uint64
}

// New creates an empty coordinator that fuses commands using registry.
func New(registry *kind.Registry) *Coordinator {
	return &Coordinator{
		registry:     registry,
		contributors: make(map[contributor.ID]contributor.Contributor),
		entries:      make(map[object.Object]*entry),
	}
}

// RegisterContributor inserts a new contributor with the next
// registration order. A no-op if id is empty or already registered.
func (c *Coordinator) RegisterContributor(id contributor.ID, name string, priority int) {
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.contributors[id]; exists {
		return
	}
	c.contributors[id] = contributor.Contributor{
		ID:       id,
		Name:     name,
		Order:    c.nextContribOrder,
		Priority: priority,
	}
	c.nextContribOrder++
}

// UpdateContributorPriority updates priority in place if id is
// registered; a silent no-op otherwise.
func (c *Coordinator) UpdateContributorPriority(id contributor.ID, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.contributors[id]
	if !ok {
		return
	}
	c.contributors[id] = existing.WithPriority(priority)
}

// Track ensures contributorID is registered, then inserts a new entry
// for obj or updates the existing entry's contributor. A no-op if obj
// is nil.
func (c *Coordinator) Track(obj object.Object, contributorID contributor.ID) {
	if obj == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureContributorLocked(contributorID)

	if e, ok := c.entries[obj]; ok {
		e.contributorID = contributorID
		return
	}
	c.entries[obj] = &entry{
		object:        obj,
		contributorID: contributorID,
		sequence:      c.nextSequence,
	}
	c.nextSequence++
}

// Untrack removes obj's entry, if present.
func (c *Coordinator) Untrack(obj object.Object) {
	if obj == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, obj)
}

// TrackedObjects returns every currently tracked object in insertion
// (sequence) order.
func (c *Coordinator) TrackedObjects() []object.Object {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := c.sortedEntriesLocked()
	out := make([]object.Object, len(entries))
	for i, e := range entries {
		out[i] = e.object
	}
	return out
}

// TryBuildOrdered finds or creates an entry for every object in
// objects, remaps unknown contributors to the default contributor,
// refreshes cached bounds, and returns the deterministic sort order.
// changed is false (and ordered is undefined) when the recomputed order
// is identical to the input order.
func (c *Coordinator) TryBuildOrdered(objects []object.Object) (changed bool, ordered []object.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]*entry, 0, len(objects))
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		e, ok := c.entries[obj]
		if !ok {
			e = &entry{object: obj, contributorID: contributor.DefaultID, sequence: c.nextSequence}
			c.nextSequence++
			c.entries[obj] = e
		}
		if _, ok := c.contributors[e.contributorID]; !ok {
			e.contributorID = contributor.DefaultID
		}
		start, end := object.Bounds(obj)
		e.startTime, e.endTime = start, end
		entries = append(entries, e)
	}
	c.ensureContributorLocked(contributor.DefaultID)

	sortedEntries := make([]*entry, len(entries))
	copy(sortedEntries, entries)
	c.sortEntries(sortedEntries)

	result := make([]object.Object, len(sortedEntries))
	for i, e := range sortedEntries {
		result[i] = e.object
	}

	if len(result) == len(objects) {
		identical := true
		for i := range result {
			if result[i] != objects[i] {
				identical = false
				break
			}
		}
		if identical {
			return false, nil
		}
	}
	return true, result
}

// MergeCommands fuses each object's command list (recursing through
// segments) and returns one FusionResult per sprite-like object
// processed.
func (c *Coordinator) MergeCommands(objects []object.Object) []FusionResult {
	c.mu.Lock()
	registry := c.registry
	// Snapshot the entry/contributor state needed to build an
	// OrderingContext per object before releasing the lock: fusion
	// itself is CPU-bound and object-scoped, so it does not need to
	// hold the coordinator lock while it runs.
	type ctxInfo struct {
		objectOrder         uint64
		contributorPriority int
		contributorOrder    uint64
		snapshotBase        uint64
	}
	infoFor := func(obj object.Object) ctxInfo {
		e, ok := c.entries[obj]
		if !ok {
			e = &entry{object: obj, contributorID: contributor.DefaultID, sequence: c.nextSequence}
			c.nextSequence++
			c.entries[obj] = e
		}
		contrib, ok := c.contributors[e.contributorID]
		if !ok {
			contrib = contributor.Default()
		}
		return ctxInfo{
			objectOrder:         e.sequence,
			contributorPriority: contrib.Priority,
			contributorOrder:    contrib.Order,
			// Disjoint per-object range: reserve a generous span per
			// object sequence so SnapshotIndex values never collide
			// across objects sharing one coordinator.
			snapshotBase: e.sequence * 1_000_000,
		}
	}

	infos := make(map[object.Object]ctxInfo, len(objects))
	var collect func(obj object.Object)
	collect = func(obj object.Object) {
		if obj == nil {
			return
		}
		if _, ok := infos[obj]; ok {
			return
		}
		infos[obj] = infoFor(obj)
		if seg, ok := obj.(object.Segment); ok {
			for _, child := range seg.Children() {
				collect(child)
			}
		}
	}
	for _, obj := range objects {
		collect(obj)
	}
	c.mu.Unlock()

	var results []FusionResult
	var walk func(obj object.Object)
	walk = func(obj object.Object) {
		if obj == nil {
			return
		}
		if sprite, ok := obj.(object.Sprite); ok {
			info := infos[obj]
			original := sprite.Commands()
			originalCount := len(original)
			fused := fusion.Fuse(original, registry, fusion.OrderingContext{
				ObjectOrder:         info.objectOrder,
				ContributorPriority: info.contributorPriority,
				ContributorOrder:    info.contributorOrder,
				SnapshotBase:        info.snapshotBase,
			})
			rebuild.Apply(sprite, fused)
			results = append(results, FusionResult{
				Object:        sprite,
				OriginalCount: originalCount,
				FusedCount:    len(fused),
			})
			return
		}
		if seg, ok := obj.(object.Segment); ok {
			for _, child := range seg.Children() {
				walk(child)
			}
		}
	}
	for _, obj := range objects {
		walk(obj)
	}
	return results
}

func (c *Coordinator) ensureContributorLocked(id contributor.ID) {
	if id == "" {
		return
	}
	if _, ok := c.contributors[id]; ok {
		return
	}
	if id == contributor.DefaultID {
		c.contributors[id] = contributor.Default()
		return
	}
	c.contributors[id] = contributor.Contributor{
		ID:    id,
		Order: c.nextContribOrder,
	}
	c.nextContribOrder++
}

func (c *Coordinator) sortedEntriesLocked() []*entry {
	entries := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].sequence < entries[j].sequence })
	return entries
}

// sortEntries orders by (StartTime, ContributorPriority, ContributorOrder,
// EndTime, Sequence), resolving each entry's contributor through the
// coordinator's contributor map (falling back to the default
// contributor for an unknown id, without mutating the entry).
func (c *Coordinator) sortEntries(entries []*entry) {
	contribOf := func(e *entry) contributor.Contributor {
		if ctr, ok := c.contributors[e.contributorID]; ok {
			return ctr
		}
		return contributor.Default()
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.startTime != b.startTime {
			return a.startTime < b.startTime
		}
		ca, cb := contribOf(a), contribOf(b)
		if ca.Priority != cb.Priority {
			return ca.Priority < cb.Priority
		}
		if ca.Order != cb.Order {
			return ca.Order < cb.Order
		}
		if a.endTime != b.endTime {
			return a.endTime < b.endTime
		}
		return a.sequence < b.sequence
	})
}


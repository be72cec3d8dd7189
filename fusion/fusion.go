// Package fusion implements the CommandFusionEngine: a pure function
// that takes the command list of one storyboard object and produces a
// fused, deterministically ordered equivalent sequence.
//
// Fuse never mutates its input and never pools state across calls; each
// call is scoped to exactly one object, per the object-isolation
// contract.
package fusion

import (
	"math"
	"sort"

	"github.com/lucidforge/sbcoord/command"
	"github.com/lucidforge/sbcoord/kind"
)

// Epsilon is the tolerance used for zero-duration detection and
// edge-touch merging: start == end_prev counts as overlap.
const Epsilon = 1e-4

// OrderingContext parameterizes a fusion call's final sort. Every field
// is constant for all commands emitted by one call, since fusion is
// scoped to a single object belonging to a single tracked entry; only
// the SnapshotIndex derived from SnapshotBase plus each command's
// original index differs between outputs.
type OrderingContext struct {
	ObjectOrder         uint64
	ContributorPriority int
	ContributorOrder    uint64
	SnapshotBase        uint64
}

// record is one supported-kind command staged into a per-kind bucket.
type record struct {
	original      command.Command
	descriptor    kind.Descriptor
	startTime     float64
	endTime       float64
	startValue    any
	endValue      any
	easing        command.Easing
	originalIndex int
}

// output is one emitted command awaiting the final cross-kind sort.
type output struct {
	cmd           command.Command
	typeKey       command.Key
	startTime     float64
	endTime       float64
	originalIndex int
}

// Fuse merges overlapping/edge-touching same-kind commands in commands
// and returns a freshly constructed, deterministically ordered sequence.
// registry supplies the per-kind descriptors used to build fused
// instances; kinds absent from registry (or marked unsupported) are
// cloned through unchanged.
func Fuse(commands []command.Command, registry *kind.Registry, ctx OrderingContext) []command.Command {
	buckets := make(map[command.Key][]record)
	var outputs []output

	for i, c := range commands {
		if c == nil {
			continue
		}
		if grp, ok := c.(command.Group); ok {
			clone := cloneGroup(grp)
			outputs = append(outputs, output{
				cmd:           clone,
				typeKey:       clone.Kind(),
				startTime:     sanitize(clone.StartTime()),
				endTime:       sanitize(clone.EndTime()),
				originalIndex: i,
			})
			continue
		}

		key := c.Kind()
		desc, ok := registry.Lookup(key)
		if !ok {
			clone := c.Clone()
			outputs = append(outputs, output{
				cmd:           clone,
				typeKey:       key,
				startTime:     sanitize(clone.StartTime()),
				endTime:       sanitize(clone.EndTime()),
				originalIndex: i,
			})
			continue
		}

		buckets[key] = append(buckets[key], record{
			original:      c,
			descriptor:    desc,
			startTime:     sanitize(c.StartTime()),
			endTime:       sanitize(c.EndTime()),
			startValue:    c.StartValue(),
			endValue:      c.EndValue(),
			easing:        c.Easing(),
			originalIndex: i,
		})
	}

	for key, recs := range buckets {
		sort.SliceStable(recs, func(a, b int) bool {
			if recs[a].startTime != recs[b].startTime {
				return recs[a].startTime < recs[b].startTime
			}
			if recs[a].endTime != recs[b].endTime {
				return recs[a].endTime < recs[b].endTime
			}
			return recs[a].originalIndex < recs[b].originalIndex
		})
		outputs = append(outputs, mergeBucket(key, recs)...)
	}

	sort.SliceStable(outputs, func(a, b int) bool {
		oa, ob := outputs[a], outputs[b]
		if oa.typeKey != ob.typeKey {
			return oa.typeKey < ob.typeKey
		}
		if oa.startTime != ob.startTime {
			return oa.startTime < ob.startTime
		}
		if oa.endTime != ob.endTime {
			return oa.endTime < ob.endTime
		}
		// ContributorPriority/ContributorOrder/ObjectOrder are constant
		// across all outputs of one Fuse call; SnapshotIndex is the
		// remaining, always-decisive tiebreaker.
		snapA := ctx.SnapshotBase + uint64(oa.originalIndex)
		snapB := ctx.SnapshotBase + uint64(ob.originalIndex)
		return snapA < snapB
	})

	result := make([]command.Command, len(outputs))
	for i, o := range outputs {
		result[i] = o.cmd
	}
	return result
}

// mergeBucket runs the scan-and-merge pass over one kind's sorted
// records, emitting one output per resulting group.
func mergeBucket(key command.Key, recs []record) []output {
	var outputs []output
	var group []record

	flush := func() {
		if len(group) == 0 {
			return
		}
		outputs = append(outputs, emitGroup(key, group)...)
		group = nil
	}

	groupEnd := math.Inf(-1)

	for _, r := range recs {
		zeroDuration := math.Abs(r.endTime-r.startTime) <= Epsilon
		if zeroDuration {
			flush()
			outputs = append(outputs, output{
				cmd:           r.original.Clone(),
				typeKey:       key,
				startTime:     r.startTime,
				endTime:       r.endTime,
				originalIndex: r.originalIndex,
			})
			groupEnd = math.Inf(-1)
			continue
		}

		if len(group) > 0 && r.startTime <= groupEnd+Epsilon {
			group = append(group, r)
			if r.endTime > groupEnd {
				groupEnd = r.endTime
			}
			continue
		}

		flush()
		group = []record{r}
		groupEnd = r.endTime
	}
	flush()

	return outputs
}

// emitGroup builds the output(s) for one merge group: a clone-through
// for singletons, a single fused command for groups of two or more
// (falling back to per-member clone-through if the kind's factory
// refuses the combined values).
func emitGroup(key command.Key, group []record) []output {
	if len(group) == 1 {
		r := group[0]
		return []output{{
			cmd:           r.original.Clone(),
			typeKey:       key,
			startTime:     r.startTime,
			endTime:       r.endTime,
			originalIndex: r.originalIndex,
		}}
	}

	first := group[0]
	last := group[0]
	for _, r := range group[1:] {
		if r.startTime < first.startTime ||
			(r.startTime == first.startTime && r.originalIndex < first.originalIndex) {
			first = r
		}
		if r.endTime > last.endTime ||
			(r.endTime == last.endTime && r.originalIndex > last.originalIndex) {
			last = r
		}
	}

	fused, ok := first.descriptor.Create(first.easing, first.startTime, last.endTime, first.startValue, last.endValue)
	if !ok {
		outputs := make([]output, 0, len(group))
		for _, r := range group {
			outputs = append(outputs, output{
				cmd:           r.original.Clone(),
				typeKey:       key,
				startTime:     r.startTime,
				endTime:       r.endTime,
				originalIndex: r.originalIndex,
			})
		}
		return outputs
	}

	return []output{{
		cmd:           fused,
		typeKey:       key,
		startTime:     first.startTime,
		endTime:       last.endTime,
		originalIndex: first.originalIndex,
	}}
}

func cloneGroup(g command.Group) command.Group {
	clone := g.Clone()
	cloned, ok := clone.(command.Group)
	if !ok {
		// A Group whose Clone() does not preserve the Group contract is a
		// caller bug; fall back to treating it as an opaque command so
		// fusion still never throws.
		return wrappedGroup{Command: clone, inner: nil}
	}
	return cloned
}

// wrappedGroup adapts a plain Command to Group when a caller's Clone
// implementation lost the Group type. Inner returns nil, matching an
// empty inner list.
type wrappedGroup struct {
	command.Command
	inner []command.Command
}

func (w wrappedGroup) Inner() []command.Command { return w.inner }

// sanitize avoids importing package object (which would create a
// dependency from fusion, a leaf package, back toward the object
// contracts) purely for the NaN/Inf helper; the sanitization rule is
// simple enough to inline and is part of fusion's own contract.
func sanitize(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return t
}

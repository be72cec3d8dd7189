// Package rebuild implements the SpriteTimelineRebuilder: applying a
// fused command list back to a sprite-like object and resyncing its
// derived display state.
//
// Resyncing derived state is an explicit, optional capability
// (DisplayState) the coordinator invokes directly rather than reaching
// into sprite-internal fields by reflection; a sprite that does not
// implement it simply gets its raw command list replaced and nothing
// else.
package rebuild

import (
	"math"

	"github.com/lucidforge/sbcoord/command"
	"github.com/lucidforge/sbcoord/object"
)

// DisplayState is the capability a sprite-like object exposes so the
// coordinator can resync derived per-family timelines, group state, and
// cached bounds after fusion without reaching into private fields.
type DisplayState interface {
	// EnterGroup is called when a CommandGroup (loop/trigger) is
	// encountered in the fused list, before its inner commands (if any
	// display bookkeeping cares about them) are considered.
	EnterGroup(group command.Group)
	// ExitGroup closes the group opened by the matching EnterGroup.
	ExitGroup()
	// SetHasTrigger records whether any fused command is a trigger group.
	SetHasTrigger(hasTrigger bool)
	// SetBounds caches the sanitized min-start/max-end cumulants over
	// the fused list.
	SetBounds(start, end float64)
}

// TriggerKind is the Key a Group must report for HasTrigger detection.
// Callers whose trigger kind differs can still get correct SetBounds/
// EnterGroup/ExitGroup behavior; HasTrigger is best-effort by design.
const TriggerKind command.Key = "trigger"

// Apply replaces sprite's command list with fused and, if sprite also
// implements DisplayState, rebuilds its derived state: it enters and
// exits a display group around every CommandGroup, flags HasTrigger,
// and caches the sanitized start/end bounds.
func Apply(sprite object.Sprite, fused []command.Command) {
	sprite.SetCommands(fused)

	ds, ok := sprite.(DisplayState)
	if !ok {
		return
	}

	hasTrigger := false
	start, end := math.Inf(1), math.Inf(-1)

	for _, c := range fused {
		if c == nil {
			continue
		}
		if grp, ok := c.(command.Group); ok {
			ds.EnterGroup(grp)
			ds.ExitGroup()
			if grp.Kind() == TriggerKind {
				hasTrigger = true
			}
		}
		s, e := object.Sanitize(c.StartTime()), object.Sanitize(c.EndTime())
		if s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}

	ds.SetHasTrigger(hasTrigger)
	if len(fused) > 0 {
		ds.SetBounds(start, end)
	} else {
		ds.SetBounds(0, 0)
	}
}

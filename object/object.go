// Package object defines the storyboard object contracts the
// coordinator and fusion engine operate over: plain objects, sprite-like
// objects owning a command list, and segments owning child objects.
package object

import (
	"math"

	"github.com/lucidforge/sbcoord/command"
)

// Object is the minimum contract for anything a coordinator can track:
// a finite (or sanitizable) time span.
type Object interface {
	StartTime() float64
	EndTime() float64
}

// Sprite is a storyboard object that owns an ordered command list and
// must be kept consistent with it after fusion.
type Sprite interface {
	Object
	Commands() []command.Command
	SetCommands(commands []command.Command)
}

// Segment is a storyboard object that owns child storyboard objects,
// which may themselves be segments. Recursion depth is unbounded in
// principle; callers are expected to bound it in practice.
type Segment interface {
	Object
	Children() []Object
}

// Sanitize maps a non-finite time to 0, per the core's NaN/Inf policy
// for ordering and merge decisions.
func Sanitize(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return t
}

// Bounds computes an object's (start, end) span, recursing through
// segments to the min/max over their closure. Sprites and plain
// objects report their own sanitized span.
func Bounds(obj Object) (start, end float64) {
	if seg, ok := obj.(Segment); ok {
		children := seg.Children()
		if len(children) == 0 {
			return Sanitize(obj.StartTime()), Sanitize(obj.EndTime())
		}
		start, end = math.Inf(1), math.Inf(-1)
		for _, child := range children {
			cs, ce := Bounds(child)
			if cs < start {
				start = cs
			}
			if ce > end {
				end = ce
			}
		}
		return start, end
	}
	return Sanitize(obj.StartTime()), Sanitize(obj.EndTime())
}

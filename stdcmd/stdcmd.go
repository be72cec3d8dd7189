// Package stdcmd is a small set of concrete command kinds — the sort of
// move/fade/scale/rotate/color/parameter vocabulary an osu! storyboard
// scripting layer actually emits — used to exercise the fusion engine
// end to end and to give callers a RegisterAll they can reach for
// without hand-rolling descriptors themselves.
package stdcmd

import (
	"fmt"

	"github.com/lucidforge/sbcoord/command"
	"github.com/lucidforge/sbcoord/kind"
)

const (
	KindMove      kind.Key = "move"
	KindFade      kind.Key = "fade"
	KindScale     kind.Key = "scale"
	KindRotate    kind.Key = "rotate"
	KindColor     kind.Key = "color"
	KindParameter kind.Key = "parameter"
)

// Vec2 is the payload for Move.
type Vec2 struct{ X, Y float64 }

// RGB is the payload for Color.
type RGB struct{ R, G, B float64 }

type baseCommand struct {
	kind      kind.Key
	easing    command.Easing
	startTime float64
	endTime   float64
}

func (b baseCommand) Kind() command.Key      { return b.kind }
func (b baseCommand) Easing() command.Easing { return b.easing }
func (b baseCommand) StartTime() float64     { return b.startTime }
func (b baseCommand) EndTime() float64       { return b.endTime }

// Move interpolates a sprite's (x, y) position.
type Move struct {
	baseCommand
	Start, End Vec2
}

func NewMove(easing command.Easing, startTime, endTime float64, start, end Vec2) Move {
	return Move{baseCommand{KindMove, easing, startTime, endTime}, start, end}
}
func (m Move) StartValue() any    { return m.Start }
func (m Move) EndValue() any      { return m.End }
func (m Move) Clone() command.Command { return m }

// Fade interpolates opacity.
type Fade struct {
	baseCommand
	Start, End float64
}

func NewFade(easing command.Easing, startTime, endTime float64, start, end float64) Fade {
	return Fade{baseCommand{KindFade, easing, startTime, endTime}, start, end}
}
func (f Fade) StartValue() any    { return f.Start }
func (f Fade) EndValue() any      { return f.End }
func (f Fade) Clone() command.Command { return f }

// Scale interpolates a uniform scale factor.
type Scale struct {
	baseCommand
	Start, End float64
}

func NewScale(easing command.Easing, startTime, endTime float64, start, end float64) Scale {
	return Scale{baseCommand{KindScale, easing, startTime, endTime}, start, end}
}
func (s Scale) StartValue() any    { return s.Start }
func (s Scale) EndValue() any      { return s.End }
func (s Scale) Clone() command.Command { return s }

// Rotate interpolates rotation in radians.
type Rotate struct {
	baseCommand
	Start, End float64
}

func NewRotate(easing command.Easing, startTime, endTime float64, start, end float64) Rotate {
	return Rotate{baseCommand{KindRotate, easing, startTime, endTime}, start, end}
}
func (r Rotate) StartValue() any    { return r.Start }
func (r Rotate) EndValue() any      { return r.End }
func (r Rotate) Clone() command.Command { return r }

// Color interpolates an RGB tint.
type Color struct {
	baseCommand
	Start, End RGB
}

func NewColor(easing command.Easing, startTime, endTime float64, start, end RGB) Color {
	return Color{baseCommand{KindColor, easing, startTime, endTime}, start, end}
}
func (c Color) StartValue() any    { return c.Start }
func (c Color) EndValue() any      { return c.End }
func (c Color) Clone() command.Command { return c }

// Parameter is a point-like toggle (e.g. horizontal flip, additive
// blending) applied at a single instant. Its start and end value must
// agree, since it has no meaningful range.
type Parameter struct {
	baseCommand
	Value string
}

func NewParameter(startTime float64, value string) Parameter {
	return Parameter{baseCommand{KindParameter, command.EasingNone, startTime, startTime}, value}
}
func (p Parameter) StartValue() any    { return p.Value }
func (p Parameter) EndValue() any      { return p.Value }
func (p Parameter) Clone() command.Command { return p }

// Group wraps an ordered list of inner commands under a container kind
// (loop, trigger, ...). Groups are opaque to fusion.
type Group struct {
	baseCommand
	kindName string
	inner    []command.Command
}

func NewGroup(kindName string, startTime, endTime float64, inner []command.Command) Group {
	return Group{baseCommand{kind.Key(kindName), command.EasingNone, startTime, endTime}, kindName, inner}
}
func (g Group) StartValue() any { return nil }
func (g Group) EndValue() any   { return nil }
func (g Group) Inner() []command.Command { return g.inner }
func (g Group) Clone() command.Command {
	cloned := make([]command.Command, len(g.inner))
	for i, c := range g.inner {
		cloned[i] = c.Clone()
	}
	return Group{g.baseCommand, g.kindName, cloned}
}

// RegisterAll populates r with descriptors for every kind this package
// defines.
func RegisterAll(r *kind.Registry) {
	r.Register(kind.BuildDescriptor(KindMove, false, moveFactory))
	r.Register(kind.BuildDescriptor(KindFade, false, fadeFactory))
	r.Register(kind.BuildDescriptor(KindScale, false, scaleFactory))
	r.Register(kind.BuildDescriptor(KindRotate, false, rotateFactory))
	r.Register(kind.BuildDescriptor(KindColor, false, colorFactory))
	r.Register(kind.BuildDescriptor(KindParameter, true, parameterFactory))
}

func moveFactory(easing command.Easing, startTime, endTime float64, startValue, endValue any) (command.Command, bool) {
	start, ok1 := startValue.(Vec2)
	end, ok2 := endValue.(Vec2)
	if !ok1 || !ok2 {
		return nil, false
	}
	return NewMove(easing, startTime, endTime, start, end), true
}

func fadeFactory(easing command.Easing, startTime, endTime float64, startValue, endValue any) (command.Command, bool) {
	start, ok1 := startValue.(float64)
	end, ok2 := endValue.(float64)
	if !ok1 || !ok2 {
		return nil, false
	}
	return NewFade(easing, startTime, endTime, start, end), true
}

func scaleFactory(easing command.Easing, startTime, endTime float64, startValue, endValue any) (command.Command, bool) {
	start, ok1 := startValue.(float64)
	end, ok2 := endValue.(float64)
	if !ok1 || !ok2 {
		return nil, false
	}
	return NewScale(easing, startTime, endTime, start, end), true
}

func rotateFactory(easing command.Easing, startTime, endTime float64, startValue, endValue any) (command.Command, bool) {
	start, ok1 := startValue.(float64)
	end, ok2 := endValue.(float64)
	if !ok1 || !ok2 {
		return nil, false
	}
	return NewRotate(easing, startTime, endTime, start, end), true
}

func colorFactory(easing command.Easing, startTime, endTime float64, startValue, endValue any) (command.Command, bool) {
	start, ok1 := startValue.(RGB)
	end, ok2 := endValue.(RGB)
	if !ok1 || !ok2 {
		return nil, false
	}
	return NewColor(easing, startTime, endTime, start, end), true
}

// parameterFactory refuses to build a fused Parameter when the two
// endpoints disagree: a point-like command has no meaningful range, so
// a mismatch means the caller asked fusion to merge two genuinely
// different instants and the descriptor must decline (kind.Descriptor's
// point-like factory contract).
func parameterFactory(easing command.Easing, startTime, endTime float64, startValue, endValue any) (command.Command, bool) {
	start, ok1 := startValue.(string)
	end, ok2 := endValue.(string)
	if !ok1 || !ok2 || start != end {
		return nil, false
	}
	return NewParameter(startTime, start), true
}

// String renders a command for debug logging, used by cmd/sbinspect.
func String(c command.Command) string {
	return fmt.Sprintf("%s[%.2f-%.2f] %v -> %v", c.Kind(), c.StartTime(), c.EndTime(), c.StartValue(), c.EndValue())
}

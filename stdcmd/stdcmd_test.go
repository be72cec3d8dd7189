package stdcmd_test

import (
	"testing"

	"github.com/lucidforge/sbcoord/command"
	"github.com/lucidforge/sbcoord/kind"
	"github.com/lucidforge/sbcoord/stdcmd"
)

func TestRegisterAll_RegistersEveryKind(t *testing.T) {
	r := kind.NewRegistry()
	stdcmd.RegisterAll(r)
	for _, k := range []kind.Key{stdcmd.KindMove, stdcmd.KindFade, stdcmd.KindScale, stdcmd.KindRotate, stdcmd.KindColor, stdcmd.KindParameter} {
		if _, ok := r.Lookup(k); !ok {
			t.Fatalf("expected %s to be registered and supported", k)
		}
	}
}

func TestParameterFactory_RefusesDisagreeingEndpoints(t *testing.T) {
	r := kind.NewRegistry()
	stdcmd.RegisterAll(r)
	d, _ := r.Lookup(stdcmd.KindParameter)
	if _, ok := d.Create(command.EasingNone, 0, 0, "H", "V"); ok {
		t.Fatalf("expected a point-like factory to refuse disagreeing endpoints")
	}
}

func TestParameterFactory_AcceptsAgreeingEndpoints(t *testing.T) {
	r := kind.NewRegistry()
	stdcmd.RegisterAll(r)
	d, _ := r.Lookup(stdcmd.KindParameter)
	c, ok := d.Create(command.EasingNone, 0, 0, "H", "H")
	if !ok || c.StartValue() != "H" {
		t.Fatalf("expected agreeing endpoints to build a Parameter command")
	}
}

func TestGroup_CloneDeepCopiesInner(t *testing.T) {
	inner := []command.Command{stdcmd.NewFade(command.EasingNone, 0, 5, 0, 1)}
	group := stdcmd.NewGroup("loop", 0, 5, inner)
	cloned := group.Clone().(command.Group)
	if len(cloned.Inner()) != 1 {
		t.Fatalf("expected cloned group to preserve inner command count")
	}
	if &cloned.Inner()[0] == &inner[0] {
		t.Fatalf("expected Clone to produce independent inner commands")
	}
}

func TestMoveFactory_RejectsWrongValueType(t *testing.T) {
	r := kind.NewRegistry()
	stdcmd.RegisterAll(r)
	d, _ := r.Lookup(stdcmd.KindMove)
	if _, ok := d.Create(command.EasingNone, 0, 10, "not-a-vec2", stdcmd.Vec2{}); ok {
		t.Fatalf("expected the move factory to reject a mistyped start value")
	}
}

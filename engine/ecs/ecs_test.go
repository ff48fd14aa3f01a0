package ecs

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

func newOrbitRig(t *testing.T, name string) rig.Rig {
	t.Helper()
	c := controller.DefaultOrbit()
	c.SmoothingWeight = 0
	r, err := rig.NewRig(c, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, rig.WithName(name))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSpawnSeedsPose(t *testing.T) {
	world := donburi.NewWorld()
	e := Spawn(world, newOrbitRig(t, "a"))

	pose := PoseComponent.Get(world.Entry(e))
	if pose.Eye != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("pose eye = %v, want (0, 0, 5)", pose.Eye)
	}
}

func TestSendRoutesToEntity(t *testing.T) {
	world := donburi.NewWorld()
	sys := NewSystem(world)
	a := Spawn(world, newOrbitRig(t, "a"))
	b := Spawn(world, newOrbitRig(t, "b"))

	Send(world, b, controller.ZoomEvent{Scalar: 2})
	if n := sys.Update(input.Frame{}, 1.0/60, input.Enable); n != 2 {
		t.Errorf("Update updated %d rigs, want 2", n)
	}

	if r := PoseComponent.Get(world.Entry(a)).Radius(); r != 5 {
		t.Errorf("entity a radius = %v, want 5", r)
	}
	if r := PoseComponent.Get(world.Entry(b)).Radius(); r < 9.999 || r > 10.001 {
		t.Errorf("entity b radius = %v, want 10", r)
	}
}

func TestSendToRemovedEntityIsDropped(t *testing.T) {
	world := donburi.NewWorld()
	sys := NewSystem(world)
	e := Spawn(world, newOrbitRig(t, "a"))
	world.Remove(e)

	Send(world, e, controller.ZoomEvent{Scalar: 2})
	if n := sys.Update(input.Frame{}, 1.0/60, input.Enable); n != 0 {
		t.Errorf("Update updated %d rigs, want 0", n)
	}
}

func TestActiveReceivesInput(t *testing.T) {
	world := donburi.NewWorld()
	sys := NewSystem(world)
	a := Spawn(world, newOrbitRig(t, "a"))
	b := Spawn(world, newOrbitRig(t, "b"))

	if _, ok := Active(world); ok {
		t.Error("no entity should be active before SetActive")
	}
	if !SetActive(world, a) || !SetActive(world, b) {
		t.Fatal("SetActive failed")
	}
	if got, ok := Active(world); !ok || got != b {
		t.Errorf("Active = %v, %v; want b", got, ok)
	}

	wheel := input.Frame{Wheel: []float32{-2}}
	sys.Update(wheel, 1.0/60, input.Enable)
	if r := PoseComponent.Get(world.Entry(a)).Radius(); r != 5 {
		t.Errorf("inactive radius = %v, want 5", r)
	}
	zoomed := PoseComponent.Get(world.Entry(b)).Radius()
	if zoomed >= 5 {
		t.Errorf("active radius = %v, want < 5", zoomed)
	}

	sys.Update(wheel, 1.0/60, input.Disable)
	if r := PoseComponent.Get(world.Entry(b)).Radius(); r != zoomed {
		t.Errorf("gated radius = %v, want %v", r, zoomed)
	}

	if !SetActive(world, donburi.Null) {
		t.Fatal("SetActive(Null) failed")
	}
	if _, ok := Active(world); ok {
		t.Error("entity still active after clearing")
	}
}

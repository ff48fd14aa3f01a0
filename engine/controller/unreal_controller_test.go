package controller

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestUnrealLocomotionWalksOnGround(t *testing.T) {
	// Looking down at 45° toward -Z.
	pose := look.NewTransform(mgl32.Vec3{0, 5, 5}, mgl32.Vec3{0, 0, 0})
	radius := pose.Radius()

	got := DefaultUnreal().Reduce(pose, pose.Basis(), []Event{LocomotionEvent{Delta: mgl32.Vec2{0, 2}}})

	if !near(got.Eye, mgl32.Vec3{0, 5, 3}, 1e-4) {
		t.Errorf("Eye = %v, want (0, 5, 3)", got.Eye)
	}
	if math32.Abs(got.Radius()-radius) > 1e-4 {
		t.Errorf("Radius = %v, want %v", got.Radius(), radius)
	}
	if !near(got.LookDirection(), pose.LookDirection(), 1e-5) {
		t.Errorf("LookDirection = %v, want %v", got.LookDirection(), pose.LookDirection())
	}
}

func TestUnrealPan(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	got := DefaultUnreal().Reduce(pose, pose.Basis(), []Event{PanEvent{Delta: mgl32.Vec2{1, 2}}})

	if !near(got.Eye, mgl32.Vec3{1, 2, 5}, 1e-4) {
		t.Errorf("Eye = %v, want (1, 2, 5)", got.Eye)
	}
	if !near(got.Target, mgl32.Vec3{1, 2, 0}, 1e-4) {
		t.Errorf("Target = %v, want (1, 2, 0)", got.Target)
	}
}

func TestUnrealLocomotionTurns(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 4})

	got := DefaultUnreal().Reduce(pose, pose.Basis(), []Event{LocomotionEvent{Delta: mgl32.Vec2{-math32.Pi / 2, 1}}})

	// Yaw +π/2 faces +X, then walks one unit that way.
	if !near(got.Eye, mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Errorf("Eye = %v, want (1, 0, 0)", got.Eye)
	}
	if !near(got.Target, mgl32.Vec3{5, 0, 0}, 1e-4) {
		t.Errorf("Target = %v, want (5, 0, 0)", got.Target)
	}
}

func TestUnrealMapInput(t *testing.T) {
	c := DefaultUnreal()
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	turn := c.MapInput(input.Frame{
		Buttons: map[common.MouseButton]bool{common.MouseButtonRight: true},
		Keys:    map[common.Key]bool{common.KeyW: true, common.KeyE: true},
		Motion:  []mgl32.Vec2{{10, 0}},
	}, pose)
	if len(turn) != 3 {
		t.Fatalf("len(events) = %d, want 3: %#v", len(turn), turn)
	}
	if _, ok := turn[0].(RotateEvent); !ok {
		t.Errorf("events[0] = %T, want RotateEvent", turn[0])
	}
	if walk := turn[1].(LocomotionEvent); walk.Delta != (mgl32.Vec2{0, c.KeyboardMoveSensitivity}) {
		t.Errorf("walk = %v", walk.Delta)
	}
	if pan := turn[2].(PanEvent); pan.Delta != (mgl32.Vec2{0, c.KeyboardMoveSensitivity}) {
		t.Errorf("pan = %v", pan.Delta)
	}

	pan := c.MapInput(input.Frame{
		Buttons: map[common.MouseButton]bool{common.MouseButtonMiddle: true},
		Motion:  []mgl32.Vec2{{5, 5}},
	}, pose)
	if len(pan) != 1 {
		t.Fatalf("middle drag events = %#v", pan)
	}
	if got := pan[0].(PanEvent).Delta; got.Y() >= 0 {
		t.Errorf("dragging down should pan down, got %v", got)
	}

	wheel := c.MapInput(input.Frame{Wheel: []float32{1, 1}}, pose)
	if len(wheel) != 1 || wheel[0].(LocomotionEvent).Delta != (mgl32.Vec2{0, 2 * c.WheelTranslateSensitivity}) {
		t.Errorf("wheel events = %#v", wheel)
	}

	// Movement keys without the right button do nothing.
	if idle := c.MapInput(input.Frame{Keys: map[common.Key]bool{common.KeyW: true}}, pose); len(idle) != 0 {
		t.Errorf("keys without right button produced %#v", idle)
	}
}

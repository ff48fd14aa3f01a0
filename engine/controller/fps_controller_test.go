package controller

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestFpsRotationPreservesRadius(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{-2, 0, -4})
	before := pose.Radius()

	got := DefaultFps().Reduce(pose, pose.Basis(), []Event{
		RotateEvent{Delta: mgl32.Vec2{0.4, 0.1}},
		RotateEvent{Delta: mgl32.Vec2{-1.3, 0.7}},
	})

	if got.Eye != pose.Eye {
		t.Errorf("Eye moved to %v", got.Eye)
	}
	if math32.Abs(got.Radius()-before) > 1e-4 {
		t.Errorf("Radius = %v, want %v", got.Radius(), before)
	}
}

func TestFpsRotateSigns(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 10})

	got := DefaultFps().Reduce(pose, pose.Basis(), []Event{RotateEvent{Delta: mgl32.Vec2{0.2, 0.1}}})
	angles := look.AnglesFromVector(got.LookDirection())

	if math32.Abs(angles.Yaw()+0.2) > 1e-5 {
		t.Errorf("yaw = %v, want -0.2", angles.Yaw())
	}
	if math32.Abs(angles.Pitch()+0.1) > 1e-5 {
		t.Errorf("pitch = %v, want -0.1", angles.Pitch())
	}
}

func TestFpsTranslateAlongLookAxisClosesOnTarget(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	got := DefaultFps().Reduce(pose, pose.Basis(), []Event{TranslateEyeEvent{Delta: mgl32.Vec3{0, 0, -2}}})
	if !near(got.Eye, mgl32.Vec3{0, 0, 3}, 1e-5) {
		t.Errorf("Eye = %v, want (0, 0, 3)", got.Eye)
	}
	if !near(got.Target, mgl32.Vec3{0, 0, 0}, 1e-4) {
		t.Errorf("Target = %v, want (0, 0, 0)", got.Target)
	}
	if r := got.Radius(); math32.Abs(r-3) > 1e-4 {
		t.Errorf("Radius = %v, want 3", r)
	}
}

func TestFpsStrafeKeepsDirection(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	got := DefaultFps().Reduce(pose, pose.Basis(), []Event{TranslateEyeEvent{Delta: mgl32.Vec3{3, 0, 0}}})
	if !near(got.Eye, mgl32.Vec3{3, 0, 5}, 1e-5) {
		t.Errorf("Eye = %v, want (3, 0, 5)", got.Eye)
	}
	if !near(got.LookDirection(), pose.LookDirection(), 1e-5) {
		t.Errorf("LookDirection = %v, want %v", got.LookDirection(), pose.LookDirection())
	}
}

func TestFpsIgnoresForeignEvents(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	got := DefaultFps().Reduce(pose, pose.Basis(), []Event{ZoomEvent{Scalar: 4}, OrbitEvent{Delta: mgl32.Vec2{1, 1}}})
	if !near(got.Eye, pose.Eye, 1e-5) || !near(got.Target, pose.Target, 1e-5) {
		t.Errorf("Reduce = %+v, want %+v", got, pose)
	}
}

func TestFpsMapInput(t *testing.T) {
	c := DefaultFps()
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	frame := input.Frame{
		Keys:   map[common.Key]bool{common.KeyW: true, common.KeyD: true},
		Motion: []mgl32.Vec2{{10, 5}, {30, -15}},
	}

	events := c.MapInput(frame, pose)
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3: %#v", len(events), events)
	}

	rot, ok := events[0].(RotateEvent)
	if !ok {
		t.Fatalf("events[0] = %T, want RotateEvent", events[0])
	}
	if want := (mgl32.Vec2{40 * 0.002, -10 * 0.002}); rot.Delta.Sub(want).Len() > 1e-6 {
		t.Errorf("rotate delta = %v, want %v", rot.Delta, want)
	}

	fwd := events[1].(TranslateEyeEvent)
	if !near(fwd.Delta, mgl32.Vec3{0, 0, -0.5}, 1e-6) {
		t.Errorf("W delta = %v, want (0, 0, -0.5)", fwd.Delta)
	}
	strafe := events[2].(TranslateEyeEvent)
	if !near(strafe.Delta, mgl32.Vec3{0.5, 0, 0}, 1e-6) {
		t.Errorf("D delta = %v, want (0.5, 0, 0)", strafe.Delta)
	}
}

func TestFpsMapInputDisabled(t *testing.T) {
	c := DefaultFps()
	c.Enabled = false
	frame := input.Frame{Keys: map[common.Key]bool{common.KeyW: true}, Motion: []mgl32.Vec2{{1, 1}}}
	if events := c.MapInput(frame, look.NewTransform(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})); events != nil {
		t.Errorf("disabled MapInput = %#v, want nil", events)
	}
}

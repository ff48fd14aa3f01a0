package controller

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitOrbitThenZoomScenario(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	got := DefaultOrbit().Reduce(pose, pose.Basis(), []Event{
		OrbitEvent{Delta: mgl32.Vec2{0.1, 0}},
		ZoomEvent{Scalar: 2},
	})

	if got.Target != pose.Target {
		t.Errorf("Target = %v, want origin", got.Target)
	}
	if math32.Abs(got.Radius()-10) > 1e-4 {
		t.Errorf("Radius = %v, want 10", got.Radius())
	}
	angles := look.AnglesFromVector(got.Eye.Sub(got.Target))
	if math32.Abs(angles.Yaw()+0.1) > 1e-5 {
		t.Errorf("yaw = %v, want -0.1", angles.Yaw())
	}
	want := mgl32.Vec3{10 * math32.Sin(-0.1), 0, 10 * math32.Cos(-0.1)}
	if !near(got.Eye, want, 1e-4) {
		t.Errorf("Eye = %v, want %v", got.Eye, want)
	}
}

func TestOrbitZoomComposesMultiplicatively(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{1, 2, 7}, mgl32.Vec3{1, 0, 0})
	c := DefaultOrbit()

	two := c.Reduce(pose, pose.Basis(), []Event{ZoomEvent{Scalar: 1.5}, ZoomEvent{Scalar: 0.4}})
	one := c.Reduce(pose, pose.Basis(), []Event{ZoomEvent{Scalar: 1.5 * 0.4}})

	if math32.Abs(two.Radius()-one.Radius()) > 1e-4 {
		t.Errorf("Zoom(a)+Zoom(b) radius = %v, Zoom(a*b) radius = %v", two.Radius(), one.Radius())
	}
	if math32.Abs(one.Radius()-pose.Radius()*0.6) > 1e-4 {
		t.Errorf("radius = %v, want %v", one.Radius(), pose.Radius()*0.6)
	}
}

func TestOrbitPitchIsClamped(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	got := DefaultOrbit().Reduce(pose, pose.Basis(), []Event{OrbitEvent{Delta: mgl32.Vec2{0, 10}}})

	angles := look.AnglesFromVector(got.Eye.Sub(got.Target))
	if angles.Pitch() > look.MaxPitch+1e-5 {
		t.Errorf("pitch = %v, want <= %v", angles.Pitch(), look.MaxPitch)
	}
	if got.Eye.Y() <= 0 {
		t.Errorf("eye should be above the target, got %v", got.Eye)
	}
}

func TestOrbitTranslateTargetUsesHostBasis(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	basis := look.Basis{Right: mgl32.Vec3{1, 0, 0}, Up: mgl32.Vec3{0, 1, 0}, Forward: mgl32.Vec3{0, 0, -1}}

	got := DefaultOrbit().Reduce(pose, basis, []Event{TranslateTargetEvent{Delta: mgl32.Vec2{2, 3}}})

	if !near(got.Target, mgl32.Vec3{-2, 3, 0}, 1e-5) {
		t.Errorf("Target = %v, want (-2, 3, 0)", got.Target)
	}
	if !near(got.Eye.Sub(got.Target), pose.Eye.Sub(pose.Target), 1e-4) {
		t.Errorf("eye offset = %v, want %v", got.Eye.Sub(got.Target), pose.Eye.Sub(pose.Target))
	}
}

func TestOrbitRadiusBounds(t *testing.T) {
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	c := DefaultOrbit()
	c.MinRadius = 2
	c.MaxRadius = 8

	if got := c.Reduce(pose, pose.Basis(), []Event{ZoomEvent{Scalar: 10}}).Radius(); math32.Abs(got-8) > 1e-4 {
		t.Errorf("zoomed-out radius = %v, want 8", got)
	}
	if got := c.Reduce(pose, pose.Basis(), []Event{ZoomEvent{Scalar: 0.01}}).Radius(); math32.Abs(got-2) > 1e-4 {
		t.Errorf("zoomed-in radius = %v, want 2", got)
	}

	c.MaxRadius = 0
	if got := c.Reduce(pose, pose.Basis(), []Event{ZoomEvent{Scalar: 0.01}}).Radius(); math32.Abs(got-2) > 1e-4 {
		t.Errorf("min-only radius = %v, want 2", got)
	}

	c.MinRadius, c.MaxRadius = 9, 3
	if err := c.Validate(); err == nil {
		t.Error("expected error for min > max")
	}
}

func TestOrbitMapInput(t *testing.T) {
	c := DefaultOrbit()
	pose := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
	frame := input.Frame{
		Keys:    map[common.Key]bool{common.KeyLeftControl: true},
		Buttons: map[common.MouseButton]bool{common.MouseButtonRight: true},
		Motion:  []mgl32.Vec2{{1, 2}, {3, 4}},
		Wheel:   []float32{1, 2},
	}

	events := c.MapInput(frame, pose)
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3: %#v", len(events), events)
	}

	orbit := events[0].(OrbitEvent)
	if want := (mgl32.Vec2{4 * 0.006, 6 * 0.006}); orbit.Delta.Sub(want).Len() > 1e-6 {
		t.Errorf("orbit delta = %v, want %v", orbit.Delta, want)
	}
	pan := events[1].(TranslateTargetEvent)
	if want := (mgl32.Vec2{4 * 0.008, 6 * 0.008}); pan.Delta.Sub(want).Len() > 1e-6 {
		t.Errorf("translate delta = %v, want %v", pan.Delta, want)
	}
	zoom := events[2].(ZoomEvent)
	if want := float32(1.15 * 1.3); math32.Abs(zoom.Scalar-want) > 1e-5 {
		t.Errorf("zoom scalar = %v, want %v", zoom.Scalar, want)
	}
}

func TestOrbitMapInputIdle(t *testing.T) {
	if events := DefaultOrbit().MapInput(input.Frame{Motion: []mgl32.Vec2{{5, 5}}}, look.Transform{}); len(events) != 0 {
		t.Errorf("motion without modifiers produced %#v", events)
	}
}

package look

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestAnglesRoundTrip(t *testing.T) {
	for _, y := range []float32{-0.95, -0.5, -0.1, 0, 0.3, 0.7, 0.95} {
		for i := 0; i < 16; i++ {
			theta := float32(i) * (2 * math32.Pi / 16)
			h := math32.Sqrt(1 - y*y)
			v := mgl32.Vec3{h * math32.Cos(theta), y, h * math32.Sin(theta)}

			got := AnglesFromVector(v).UnitVector()
			if !near(got, v, 1e-5) {
				t.Errorf("round trip of %v = %v", v, got)
			}
		}
	}
}

func TestAnglesFromVectorUnnormalized(t *testing.T) {
	v := mgl32.Vec3{3, 4, -12}
	got := AnglesFromVector(v).UnitVector()
	if !near(got, v.Normalize(), 1e-5) {
		t.Errorf("UnitVector = %v, want %v", got, v.Normalize())
	}
}

func TestAnglesConvention(t *testing.T) {
	a := AnglesFromVector(mgl32.Vec3{0, 0, 1})
	if a.Yaw() != 0 || a.Pitch() != 0 {
		t.Errorf("+Z angles = (%v, %v), want (0, 0)", a.Yaw(), a.Pitch())
	}

	a = AnglesFromVector(mgl32.Vec3{1, 0, 0})
	if math32.Abs(a.Yaw()-math32.Pi/2) > 1e-6 {
		t.Errorf("+X yaw = %v, want π/2", a.Yaw())
	}
}

func TestAnglesPitchBound(t *testing.T) {
	var a Angles
	deltas := []float32{0.5, 0.9, 1.7, 3, -0.2, 10, -25, 0.001, -0.3, 100}
	for i := 0; i < 200; i++ {
		a.AddPitch(deltas[i%len(deltas)] * float32(i%7-3))
		if math32.Abs(a.Pitch()) > MaxPitch {
			t.Fatalf("step %d: pitch %v exceeds %v", i, a.Pitch(), MaxPitch)
		}
		a.AssertNotLookingUp()
	}
}

func TestAnglesPitchSaturates(t *testing.T) {
	var a Angles
	for i := 0; i < 10; i++ {
		a.AddPitch(1)
	}
	if a.Pitch() != MaxPitch {
		t.Errorf("pitch = %v, want %v", a.Pitch(), MaxPitch)
	}
	if a.Pitch() >= math32.Pi/2 {
		t.Errorf("pitch %v reached the pole", a.Pitch())
	}
}

func TestAnglesFromVerticalVectorIsClamped(t *testing.T) {
	a := AnglesFromVector(mgl32.Vec3{0, 1, 0})
	if a.Pitch() != MaxPitch {
		t.Errorf("pitch = %v, want %v", a.Pitch(), MaxPitch)
	}
	a.AssertNotLookingUp()
}

func TestAnglesYawWraps(t *testing.T) {
	var a Angles
	a.SetYaw(math32.Pi - 0.05)
	a.AddYaw(0.1)
	if got, want := a.Yaw(), -math32.Pi+0.05; math32.Abs(got-want) > 1e-5 {
		t.Errorf("yaw = %v, want %v", got, want)
	}

	a.SetYaw(-math32.Pi)
	if a.Yaw() != math32.Pi {
		t.Errorf("yaw(-π) = %v, want π", a.Yaw())
	}

	a.SetYaw(0)
	for i := 0; i < 100; i++ {
		a.AddYaw(-0.5)
		if a.Yaw() <= -math32.Pi || a.Yaw() > math32.Pi {
			t.Fatalf("yaw %v outside (-π, π]", a.Yaw())
		}
	}
}

func TestAssertNotLookingUpPanicsOnDegenerateVector(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for angles built from a zero vector")
		}
	}()
	AnglesFromVector(mgl32.Vec3{}).AssertNotLookingUp()
}

package look

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is an "eye looking at target" pose.
// Eye and Target must not coincide; the look direction is undefined otherwise and
// nothing in this package guards against it.
type Transform struct {
	// Eye is the world-space camera position.
	Eye mgl32.Vec3 `yaml:"eye"`

	// Target is the world-space point the camera looks at.
	Target mgl32.Vec3 `yaml:"target"`
}

// Basis holds the orthonormal axes of a Transform's view, consistent with a
// right-handed LookAt matrix using +Y as world up.
type Basis struct {
	Right   mgl32.Vec3
	Up      mgl32.Vec3
	Forward mgl32.Vec3
}

// NewTransform creates a Transform from an eye and a target position.
//
// Parameters:
//   - eye: world-space camera position
//   - target: world-space look-at point
//
// Returns:
//   - Transform: the pose
func NewTransform(eye, target mgl32.Vec3) Transform {
	return Transform{Eye: eye, Target: target}
}

// LookDirection returns normalize(Target - Eye). Recomputed on every call.
func (t Transform) LookDirection() mgl32.Vec3 {
	return t.Target.Sub(t.Eye).Normalize()
}

// Radius returns the eye-to-target distance. Recomputed on every call.
func (t Transform) Radius() float32 {
	return t.Target.Sub(t.Eye).Len()
}

// Lerp linearly interpolates eye and target toward other by factor s.
//
// Parameters:
//   - other: the pose to move toward
//   - s: interpolation factor, 0 returns t and 1 returns other
//
// Returns:
//   - Transform: the blended pose
func (t Transform) Lerp(other Transform, s float32) Transform {
	return Transform{
		Eye:    t.Eye.Add(other.Eye.Sub(t.Eye).Mul(s)),
		Target: t.Target.Add(other.Target.Sub(t.Target).Mul(s)),
	}
}

// Basis computes the view axes of the pose.
// If eye and target coincide, or the view is parallel to world up, all returned
// axes are zero.
//
// Returns:
//   - Basis: right, up, and forward unit vectors
func (t Transform) Basis() Basis {
	// backward = normalize(eye - target), matching LookAt's z-axis
	back := t.Eye.Sub(t.Target)
	bLen := back.Len()
	if bLen < 1e-8 {
		return Basis{}
	}
	back = back.Mul(1 / bLen)

	// right = normalize(cross(worldUp, backward)) where worldUp = (0, 1, 0)
	right := mgl32.Vec3{back.Z(), 0, -back.X()}
	rLen := math32.Sqrt(right.X()*right.X() + right.Z()*right.Z())
	if rLen < 1e-8 {
		return Basis{}
	}
	right = right.Mul(1 / rLen)

	return Basis{
		Right:   right,
		Up:      back.Cross(right),
		Forward: back.Mul(-1),
	}
}

// Package look holds the pose math shared by every camera rig: the eye/target
// Transform, the yaw/pitch Angles used to rotate it without gimbal flips, and the
// frame-rate independent Smoother that turns raw poses into rendered ones.
package look

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PitchMargin is the distance in radians kept between the pitch and either pole.
const PitchMargin float32 = 0.01

// MaxPitch is the largest absolute pitch an Angles value can hold.
const MaxPitch = math32.Pi/2 - PitchMargin

// Angles is a yaw/pitch pair describing a look direction.
// Yaw rotates around the world Y axis (0 = +Z) and is wrapped to (-π, π].
// Pitch is the elevation from the horizontal plane and is clamped to
// [-MaxPitch, MaxPitch] so the direction never becomes parallel to Y.
// The zero value looks down +Z.
type Angles struct {
	yaw   float32
	pitch float32
}

// AnglesFromVector derives yaw and pitch from a direction vector.
// The vector must be non-zero; a zero vector yields NaN angles which
// AssertNotLookingUp reports.
//
// Parameters:
//   - v: direction to convert (need not be normalized)
//
// Returns:
//   - Angles: the yaw/pitch pair pointing along v, pitch clamped
func AnglesFromVector(v mgl32.Vec3) Angles {
	var a Angles
	a.SetDirection(v)
	return a
}

// Yaw returns the yaw angle in radians.
func (a Angles) Yaw() float32 {
	return a.yaw
}

// Pitch returns the pitch angle in radians.
func (a Angles) Pitch() float32 {
	return a.pitch
}

// SetYaw sets the yaw angle, wrapping it to (-π, π].
func (a *Angles) SetYaw(yaw float32) {
	a.yaw = wrapAngle(yaw)
}

// SetPitch sets the pitch angle, clamping it to [-MaxPitch, MaxPitch].
func (a *Angles) SetPitch(pitch float32) {
	a.pitch = common.Clamp(pitch, -MaxPitch, MaxPitch)
}

// AddYaw accumulates delta radians of yaw.
func (a *Angles) AddYaw(delta float32) {
	a.SetYaw(a.yaw + delta)
}

// AddPitch accumulates delta radians of pitch. The result is clamped, so repeated
// calls saturate at MaxPitch instead of reaching the pole.
func (a *Angles) AddPitch(delta float32) {
	a.SetPitch(a.pitch + delta)
}

// SetDirection points the angles along v.
//
// Parameters:
//   - v: non-zero direction vector
func (a *Angles) SetDirection(v mgl32.Vec3) {
	n := v.Normalize()
	// Normalization can leave |y| a few ulps above 1, which Asin turns into NaN.
	a.SetPitch(math32.Asin(common.Clamp(n.Y(), -1, 1)))
	a.SetYaw(math32.Atan2(n.X(), n.Z()))
}

// UnitVector returns the normalized direction described by the angles.
// It is the inverse of AnglesFromVector for directions within the pitch bound.
//
// Returns:
//   - mgl32.Vec3: unit look direction
func (a Angles) UnitVector() mgl32.Vec3 {
	sy, cy := math32.Sin(a.yaw), math32.Cos(a.yaw)
	sp, cp := math32.Sin(a.pitch), math32.Cos(a.pitch)
	return mgl32.Vec3{cp * sy, sp, cp * cy}
}

// AssertNotLookingUp panics if the pitch has reached a pole or is not a number.
// Reducers call it after applying a tick's pitch deltas; a failure means the clamp
// was bypassed or the angles were built from a degenerate vector, which is a
// programming error rather than a recoverable condition.
func (a Angles) AssertNotLookingUp() {
	if !(math32.Abs(a.pitch) < math32.Pi/2) {
		panic(fmt.Sprintf("look: pitch %v is outside (-π/2, π/2)", a.pitch))
	}
	if y := a.UnitVector().Y(); y == 1 || y == -1 {
		panic(fmt.Sprintf("look: look direction is parallel to the up axis (pitch %v)", a.pitch))
	}
}

// wrapAngle maps an angle to (-π, π].
func wrapAngle(angle float32) float32 {
	if angle > -math32.Pi && angle <= math32.Pi {
		return angle
	}
	angle = math32.Mod(angle+math32.Pi, 2*math32.Pi)
	if angle <= 0 {
		angle += 2 * math32.Pi
	}
	return angle - math32.Pi
}

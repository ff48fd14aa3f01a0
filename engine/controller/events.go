package controller

import "github.com/go-gl/mathgl/mgl32"

// Event is a control event consumed by a Controller's Reduce.
// The set is closed: only the types in this package implement it.
type Event interface {
	controlEvent()
}

// RotateEvent turns the view by yaw (X) and pitch (Y) deltas in radians.
// Consumed by the fps and unreal styles.
type RotateEvent struct {
	Delta mgl32.Vec2
}

// TranslateEyeEvent moves the eye by a world-space offset. Consumed by the fps style.
type TranslateEyeEvent struct {
	Delta mgl32.Vec3
}

// OrbitEvent swings the eye around the target by yaw (X) and pitch (Y) deltas in
// radians. Consumed by the orbit style.
type OrbitEvent struct {
	Delta mgl32.Vec2
}

// TranslateTargetEvent moves the target along the host camera's screen-space
// right (X) and up (Y) axes. Consumed by the orbit style.
type TranslateTargetEvent struct {
	Delta mgl32.Vec2
}

// ZoomEvent scales the eye-to-target distance. Scalars from one tick compose
// multiplicatively. Consumed by the orbit style.
type ZoomEvent struct {
	Scalar float32
}

// LocomotionEvent turns by a yaw delta (X) and walks along the horizontal look
// direction (Y). Consumed by the unreal style.
type LocomotionEvent struct {
	Delta mgl32.Vec2
}

// PanEvent moves the eye along the horizontal right axis (X) and world up (Y).
// Consumed by the unreal style.
type PanEvent struct {
	Delta mgl32.Vec2
}

func (RotateEvent) controlEvent()          {}
func (TranslateEyeEvent) controlEvent()    {}
func (OrbitEvent) controlEvent()           {}
func (TranslateTargetEvent) controlEvent() {}
func (ZoomEvent) controlEvent()            {}
func (LocomotionEvent) controlEvent()      {}
func (PanEvent) controlEvent()             {}

package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

// RigBuilderOption is a function that configures a rig.
type RigBuilderOption func(*rigImpl)

// WithName sets the rig's name. Defaults to the controller's style name.
//
// Parameters:
//   - name: the rig name
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithName(name string) RigBuilderOption {
	return func(r *rigImpl) {
		r.name = name
	}
}

// WithSmoothedStart seeds the smoother with a pose other than the initial one, so
// the first Updates glide from it toward the initial pose.
//
// Parameters:
//   - eye: eye position the smoothed pose starts from
//   - target: target position the smoothed pose starts from
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithSmoothedStart(eye, target mgl32.Vec3) RigBuilderOption {
	return func(r *rigImpl) {
		r.smoother.Reset()
		r.smoother.Smooth(look.NewTransform(eye, target), 0)
	}
}

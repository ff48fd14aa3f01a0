// Package controller implements the camera styles a rig can be built with.
// Each style is a value-type configuration implementing Controller: it maps raw
// input to style-specific control events and folds a tick's events into a new
// look.Transform.
package controller

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

// Style identifies a camera control style.
type Style uint8

const (
	// StyleFps is a first-person fly camera: the eye moves freely and the target follows.
	StyleFps Style = iota
	// StyleOrbit orbits the eye around a movable target.
	StyleOrbit
	// StyleUnreal is an editor-viewport style walk/look/pan camera.
	StyleUnreal
)

// Controller is the contract shared by every camera style.
// Implementations are plain value types and are safe to copy.
type Controller interface {
	// Style returns the camera style implemented by the controller.
	//
	// Returns:
	//   - Style: the style identifier
	Style() Style

	// IsEnabled reports whether the controller may change its rig's pose.
	// A disabled controller still has its events drained each tick.
	//
	// Returns:
	//   - bool: true if enabled
	IsEnabled() bool

	// Smoothing returns the lag weight used for the rig's Smoother.
	//
	// Returns:
	//   - float32: smoothing weight in [0, 1)
	Smoothing() float32

	// Validate checks the configuration for values the rig cannot run with.
	//
	// Returns:
	//   - error: a description of the first invalid field, or nil
	Validate() error

	// MapInput translates a tick's raw input into control events for this style.
	// Returns nil when the controller is disabled.
	//
	// Parameters:
	//   - frame: raw input observed during the tick
	//   - pose: the rig's current unsmoothed pose
	//
	// Returns:
	//   - []Event: events to queue on the rig, in order
	MapInput(frame input.Frame, pose look.Transform) []Event

	// Reduce folds a tick's events, in arrival order, into a new pose.
	// Events belonging to other styles are ignored. A disabled controller returns
	// pose unchanged.
	//
	// Parameters:
	//   - pose: the current unsmoothed pose
	//   - basis: orientation of the host's render camera this tick
	//   - events: the tick's queued events
	//
	// Returns:
	//   - look.Transform: the new pose
	Reduce(pose look.Transform, basis look.Basis, events []Event) look.Transform
}

// New returns the default controller for a style.
//
// Parameters:
//   - style: the camera style
//
// Returns:
//   - Controller: the style's default configuration
//   - error: error if the style is unknown
func New(style Style) (Controller, error) {
	switch style {
	case StyleFps:
		return DefaultFps(), nil
	case StyleOrbit:
		return DefaultOrbit(), nil
	case StyleUnreal:
		return DefaultUnreal(), nil
	default:
		return nil, fmt.Errorf("controller: unknown style %d", uint8(style))
	}
}

func (s Style) String() string {
	switch s {
	case StyleFps:
		return "fps"
	case StyleOrbit:
		return "orbit"
	case StyleUnreal:
		return "unreal"
	default:
		return fmt.Sprintf("Style(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if s > StyleUnreal {
		return nil, fmt.Errorf("controller: unknown style %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "fps", "first_person", "first-person":
		*s = StyleFps
	case "orbit":
		*s = StyleOrbit
	case "unreal":
		*s = StyleUnreal
	default:
		return fmt.Errorf("controller: unknown style %q", text)
	}
	return nil
}

// validateWeight checks a smoothing weight against [0, 1).
func validateWeight(style Style, w float32) error {
	if !(w >= 0 && w < 1) {
		return fmt.Errorf("controller: %s smoothing weight %v outside [0, 1)", style, w)
	}
	return nil
}

// scale2 multiplies two Vec2 values component-wise.
func scale2(s, v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{s[0] * v[0], s[1] * v[1]}
}

var worldUp = mgl32.Vec3{0, 1, 0}

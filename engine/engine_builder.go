package engine

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(tps)
	}
}

// WithWindow sets the window whose input drives the rigs. Without a window the
// engine runs headless and input is fed through Input().
//
// Parameters:
//   - w: a pre-configured window, typically from window.NewWindow
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRecorder sets the recorder drained each tick, overriding the window's.
//
// Parameters:
//   - r: the recorder
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRecorder(r input.Recorder) EngineBuilderOption {
	return func(e *engine) {
		e.recorder = r
	}
}

// WithRigSystem sets the rig system ticked by the engine.
//
// Parameters:
//   - sys: the rig system
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRigSystem(sys rig.System) EngineBuilderOption {
	return func(e *engine) {
		e.rigs = sys
	}
}

// WithInputBehavior sets the initial input gating. Defaults to input.Enable.
//
// Parameters:
//   - b: the behavior
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInputBehavior(b input.Behavior) EngineBuilderOption {
	return func(e *engine) {
		e.behavior = b
	}
}

// WithCamera binds a camera to a rig of the system given by WithRigSystem.
// Options are applied in order, so WithRigSystem must come first. Unknown rig names
// are ignored.
//
// Parameters:
//   - rigName: the rig to follow
//   - cam: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(rigName string, cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		if e.rigs == nil {
			return
		}
		if r, ok := e.rigs.Rig(rigName); ok {
			cam.SetSource(r)
			cam.Update()
			e.cameras[rigName] = cam
		}
	}
}

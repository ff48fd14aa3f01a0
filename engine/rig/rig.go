// Package rig bundles a camera controller with its pose, event queue and smoother,
// and drives any number of rigs once per tick.
package rig

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// ErrDegeneratePose is returned when eye and target coincide.
var ErrDegeneratePose = errors.New("rig: eye and target coincide")

// Rig is a single camera: a controller, its unsmoothed pose, the control events
// queued for the next tick and the smoother producing the rendered pose.
// All methods are safe for concurrent use.
type Rig interface {
	// Name returns the rig's unique name within a System.
	//
	// Returns:
	//   - string: the rig name
	Name() string

	// Controller returns the rig's current controller configuration.
	//
	// Returns:
	//   - controller.Controller: the controller
	Controller() controller.Controller

	// SetController swaps the controller while keeping the pose. The smoother adopts
	// the new controller's smoothing weight.
	//
	// Parameters:
	//   - c: the new controller
	//
	// Returns:
	//   - error: error if c is nil or fails validation
	SetController(c controller.Controller) error

	// Transform returns the unsmoothed pose produced by the last reduction.
	//
	// Returns:
	//   - look.Transform: the raw pose
	Transform() look.Transform

	// Smoothed returns the pose produced by the last Update, the one a render camera
	// should use.
	//
	// Returns:
	//   - look.Transform: the smoothed pose
	Smoothed() look.Transform

	// Teleport jumps to a pose without smoothing lag, cancelling any transition.
	//
	// Parameters:
	//   - eye: new eye position
	//   - target: new target position
	//
	// Returns:
	//   - error: ErrDegeneratePose if eye equals target
	Teleport(eye, target mgl32.Vec3) error

	// TransitionTo eases the pose to a destination over duration seconds. While the
	// transition runs, queued events are drained without being reduced.
	//
	// Parameters:
	//   - eye: destination eye position
	//   - target: destination target position
	//   - duration: length of the transition in seconds
	//   - fn: easing function, nil for ease.InOutQuad
	//
	// Returns:
	//   - error: ErrDegeneratePose if eye equals target, or an error for a non-positive duration
	TransitionTo(eye, target mgl32.Vec3, duration float32, fn ease.TweenFunc) error

	// Transitioning reports whether a TransitionTo is still running.
	//
	// Returns:
	//   - bool: true while a transition is active
	Transitioning() bool

	// Send queues control events for the next Update.
	//
	// Parameters:
	//   - events: events to append, in order
	Send(events ...controller.Event)

	// MapInput runs the controller's default mapper over a tick's raw input and queues
	// the resulting events.
	//
	// Parameters:
	//   - frame: raw input observed during the tick
	MapInput(frame input.Frame)

	// Pending returns the number of queued events.
	//
	// Returns:
	//   - int: the queue length
	Pending() int

	// Update drains the queue, reduces it into a new pose and smooths it.
	// A disabled controller leaves the pose unchanged but the queue is still drained.
	// The first Update after NewRig or Teleport returns the raw pose unsmoothed.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous Update
	//
	// Returns:
	//   - look.Transform: the smoothed pose
	Update(dt float32) look.Transform

	// EventsProcessed returns the number of events drained since creation.
	//
	// Returns:
	//   - uint64: the event count
	EventsProcessed() uint64
}

// rigImpl is the implementation of the Rig interface.
type rigImpl struct {
	mu *sync.Mutex

	name       string
	ctrl       controller.Controller
	transform  look.Transform
	smoothed   look.Transform
	smoother   *look.Smoother
	queue      []controller.Event
	transition *transition
	processed  uint64
}

var _ Rig = &rigImpl{}

// NewRig creates a rig looking from eye toward target.
//
// Parameters:
//   - ctrl: the controller configuration
//   - eye: initial eye position
//   - target: initial target position
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
//   - error: error if the controller is invalid or the pose is degenerate
func NewRig(ctrl controller.Controller, eye, target mgl32.Vec3, options ...RigBuilderOption) (Rig, error) {
	if ctrl == nil {
		return nil, errors.New("rig: nil controller")
	}
	if err := ctrl.Validate(); err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}
	if eye == target {
		return nil, ErrDegeneratePose
	}

	r := &rigImpl{
		mu:        &sync.Mutex{},
		ctrl:      ctrl,
		transform: look.NewTransform(eye, target),
		smoother:  look.NewSmoother(ctrl.Smoothing()),
	}

	for _, option := range options {
		option(r)
	}

	r.name = common.Coalesce(r.name, ctrl.Style().String())
	// The smoother stays empty unless an option seeded it, so the first Update
	// returns that tick's raw pose.
	r.smoothed = r.transform
	if lag, ok := r.smoother.Lag(); ok {
		r.smoothed = lag
	}
	return r, nil
}

func (r *rigImpl) Name() string {
	return r.name
}

func (r *rigImpl) Controller() controller.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrl
}

func (r *rigImpl) SetController(c controller.Controller) error {
	if c == nil {
		return errors.New("rig: nil controller")
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("rig %s: %w", r.name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl = c
	r.smoother.SetWeight(c.Smoothing())
	return nil
}

func (r *rigImpl) Transform() look.Transform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transform
}

func (r *rigImpl) Smoothed() look.Transform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.smoothed
}

func (r *rigImpl) Teleport(eye, target mgl32.Vec3) error {
	if eye == target {
		return ErrDegeneratePose
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transform = look.NewTransform(eye, target)
	r.transition = nil
	r.smoother.Reset()
	r.smoothed = r.transform
	return nil
}

func (r *rigImpl) TransitionTo(eye, target mgl32.Vec3, duration float32, fn ease.TweenFunc) error {
	if eye == target {
		return ErrDegeneratePose
	}
	if !(duration > 0) {
		return fmt.Errorf("rig %s: transition duration %v must be positive", r.name, duration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transition = newTransition(r.transform, look.NewTransform(eye, target), duration, fn)
	return nil
}

func (r *rigImpl) Transitioning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transition != nil
}

func (r *rigImpl) Send(events ...controller.Event) {
	if len(events) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, events...)
}

func (r *rigImpl) MapInput(frame input.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, r.ctrl.MapInput(frame, r.transform)...)
}

func (r *rigImpl) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

func (r *rigImpl) Update(dt float32) look.Transform {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := r.queue
	r.queue = nil
	r.processed += uint64(len(events))

	if r.transition != nil {
		pose, done := r.transition.update(dt)
		r.transform = pose
		if done {
			r.transition = nil
		}
	} else {
		// Reducers run every tick, even with nothing queued.
		basis := r.smoothed.Basis()
		if basis == (look.Basis{}) {
			basis = r.transform.Basis()
		}
		r.transform = r.ctrl.Reduce(r.transform, basis, events)
	}

	r.smoothed = r.smoother.Smooth(r.transform, dt)
	return r.smoothed
}

func (r *rigImpl) EventsProcessed() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.processed
}

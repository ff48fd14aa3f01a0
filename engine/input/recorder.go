package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Recorder accumulates raw input between ticks.
// Window callbacks write to it from the platform thread while the tick loop drains
// it from its own goroutine, so all methods are safe for concurrent use.
type Recorder interface {
	// KeyDown marks a key as held.
	//
	// Parameters:
	//   - k: the key code
	KeyDown(k common.Key)

	// KeyUp marks a key as released.
	//
	// Parameters:
	//   - k: the key code
	KeyUp(k common.Key)

	// ButtonDown marks a mouse button as held.
	//
	// Parameters:
	//   - b: the mouse button
	ButtonDown(b common.MouseButton)

	// ButtonUp marks a mouse button as released.
	//
	// Parameters:
	//   - b: the mouse button
	ButtonUp(b common.MouseButton)

	// MouseMotion records a relative pointer-motion sample.
	//
	// Parameters:
	//   - dx, dy: motion in pixels since the previous sample
	MouseMotion(dx, dy float32)

	// CursorMoved records an absolute cursor position. The first position after
	// creation or Reset only establishes the origin; later positions are recorded
	// as motion relative to the previous one.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	CursorMoved(x, y float32)

	// Scroll records a vertical scroll sample.
	//
	// Parameters:
	//   - dy: scroll delta (positive = away from the user)
	Scroll(dy float32)

	// Reset releases every key and button and discards pending samples.
	Reset()

	// Drain returns the input recorded since the previous Drain and clears the
	// motion and scroll samples. Held keys and buttons stay held.
	//
	// Returns:
	//   - Frame: a snapshot owned by the caller
	Drain() Frame
}

// recorderImpl is the implementation of the Recorder interface.
type recorderImpl struct {
	mu *sync.Mutex

	keys    map[common.Key]bool
	buttons map[common.MouseButton]bool
	motion  []mgl32.Vec2
	wheel   []float32

	cursor    mgl32.Vec2
	hasCursor bool
}

var _ Recorder = &recorderImpl{}

// NewRecorder creates an empty Recorder.
//
// Returns:
//   - Recorder: the newly created recorder
func NewRecorder() Recorder {
	return &recorderImpl{
		mu:      &sync.Mutex{},
		keys:    make(map[common.Key]bool),
		buttons: make(map[common.MouseButton]bool),
	}
}

func (r *recorderImpl) KeyDown(k common.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[k] = true
}

func (r *recorderImpl) KeyUp(k common.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, k)
}

func (r *recorderImpl) ButtonDown(b common.MouseButton) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buttons[b] = true
}

func (r *recorderImpl) ButtonUp(b common.MouseButton) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.buttons, b)
}

func (r *recorderImpl) MouseMotion(dx, dy float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.motion = append(r.motion, mgl32.Vec2{dx, dy})
}

func (r *recorderImpl) CursorMoved(x, y float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos := mgl32.Vec2{x, y}
	if r.hasCursor {
		r.motion = append(r.motion, pos.Sub(r.cursor))
	}
	r.cursor = pos
	r.hasCursor = true
}

func (r *recorderImpl) Scroll(dy float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wheel = append(r.wheel, dy)
}

func (r *recorderImpl) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.keys)
	clear(r.buttons)
	r.motion = nil
	r.wheel = nil
	r.hasCursor = false
}

func (r *recorderImpl) Drain() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := Frame{
		Keys:    make(map[common.Key]bool, len(r.keys)),
		Buttons: make(map[common.MouseButton]bool, len(r.buttons)),
		Motion:  r.motion,
		Wheel:   r.wheel,
	}
	for k := range r.keys {
		f.Keys[k] = true
	}
	for b := range r.buttons {
		f.Buttons[b] = true
	}
	r.motion = nil
	r.wheel = nil
	return f
}

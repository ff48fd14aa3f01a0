// Package ebiten_input feeds an input.Recorder from ebiten's polled input state, for
// hosts that run rigs inside an ebiten game loop instead of a GLFW window.
package ebiten_input

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// keyMap maps the keys camera controllers use to their ebiten equivalents.
var keyMap = map[common.Key]ebiten.Key{
	common.KeyW:            ebiten.KeyW,
	common.KeyA:            ebiten.KeyA,
	common.KeyS:            ebiten.KeyS,
	common.KeyD:            ebiten.KeyD,
	common.KeyQ:            ebiten.KeyQ,
	common.KeyE:            ebiten.KeyE,
	common.KeySpace:        ebiten.KeySpace,
	common.KeyEsc:          ebiten.KeyEscape,
	common.KeyLeftShift:    ebiten.KeyShiftLeft,
	common.KeyLeftControl:  ebiten.KeyControlLeft,
	common.KeyLeftAlt:      ebiten.KeyAltLeft,
	common.KeyRightShift:   ebiten.KeyShiftRight,
	common.KeyRightControl: ebiten.KeyControlRight,
}

var buttonMap = map[common.MouseButton]ebiten.MouseButton{
	common.MouseButtonLeft:   ebiten.MouseButtonLeft,
	common.MouseButtonRight:  ebiten.MouseButtonRight,
	common.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Device is the polled input source. The default reads ebiten's global state;
// tests substitute their own.
type Device interface {
	IsKeyPressed(k ebiten.Key) bool
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	CursorPosition() (x, y int)
	Wheel() (xoff, yoff float64)
}

type ebitenDevice struct{}

func (ebitenDevice) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }

func (ebitenDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenDevice) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenDevice) Wheel() (float64, float64) { return ebiten.Wheel() }

// Poller turns per-frame input state into Recorder edge events.
// Call Poll once from the game's Update. Not safe for concurrent use.
type Poller struct {
	recorder input.Recorder
	device   Device

	keys    map[common.Key]bool
	buttons map[common.MouseButton]bool
}

// NewPoller creates a Poller writing into recorder.
//
// Parameters:
//   - recorder: the recorder to feed
//   - options: functional options to configure the poller
//
// Returns:
//   - *Poller: the poller
func NewPoller(recorder input.Recorder, options ...PollerOption) *Poller {
	p := &Poller{
		recorder: recorder,
		device:   ebitenDevice{},
		keys:     make(map[common.Key]bool, len(keyMap)),
		buttons:  make(map[common.MouseButton]bool, len(buttonMap)),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// PollerOption is a function that configures a Poller.
type PollerOption func(*Poller)

// WithDevice replaces the ebiten input source.
//
// Parameters:
//   - d: the device to poll
//
// Returns:
//   - PollerOption: option function to apply
func WithDevice(d Device) PollerOption {
	return func(p *Poller) {
		p.device = d
	}
}

// Poll compares the current input state with the previous poll and records key and
// button transitions, the cursor position and any wheel movement.
func (p *Poller) Poll() {
	for k, ek := range keyMap {
		down := p.device.IsKeyPressed(ek)
		if down == p.keys[k] {
			continue
		}
		p.keys[k] = down
		if down {
			p.recorder.KeyDown(k)
		} else {
			p.recorder.KeyUp(k)
		}
	}

	for b, eb := range buttonMap {
		down := p.device.IsMouseButtonPressed(eb)
		if down == p.buttons[b] {
			continue
		}
		p.buttons[b] = down
		if down {
			p.recorder.ButtonDown(b)
		} else {
			p.recorder.ButtonUp(b)
		}
	}

	x, y := p.device.CursorPosition()
	p.recorder.CursorMoved(float32(x), float32(y))

	if _, yoff := p.device.Wheel(); yoff != 0 {
		p.recorder.Scroll(float32(yoff))
	}
}

// Package window opens the platform window and feeds its raw input into an
// input.Recorder for the rig tick loop.
package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and raw input capture.
// Keyboard, mouse button, cursor and scroll events are written to the window's
// input.Recorder from the platform thread.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Input returns the recorder the window writes raw input into.
	//
	// Returns:
	//   - input.Recorder: the recorder
	Input() input.Recorder

	// SetCursorCaptured hides the cursor and reports unbounded motion while enabled,
	// as first-person cameras need.
	//
	// Parameters:
	//   - captured: true to capture the cursor
	SetCursorCaptured(captured bool)

	// CursorCaptured reports whether the cursor is captured.
	//
	// Returns:
	//   - bool: true if captured
	CursorCaptured() bool

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Aspect returns width / height, or 1 while the window is minimized.
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer size, not the window size.
	width  int
	height int

	escapeCloses   bool
	cursorCaptured bool

	recorder input.Recorder

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate func()
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a new Window with the specified options.
// Applies default values first, then each option in order.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:        "oxy-rig",
		maxWidth:     1600,
		maxHeight:    1200,
		minWidth:     600,
		minHeight:    200,
		width:        1280,
		height:       720,
		escapeCloses: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.recorder == nil {
		w.recorder = input.NewRecorder()
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Input() input.Recorder {
	return w.recorder
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	w.cursorCaptured = captured
	platformSetCursorCaptured(w, captured)
}

func (w *engineWindow) CursorCaptured() bool {
	return w.cursorCaptured
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Aspect() float32 {
	if w.width <= 0 || w.height <= 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

// resize stores new framebuffer dimensions and notifies the resize callback.
func (w *engineWindow) resize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

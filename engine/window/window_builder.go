package window

import "github.com/Carmen-Shannon/oxy-rig/engine/input"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSizeLimits sets the minimum and maximum window size.
//
// Parameters:
//   - minWidth, minHeight: minimum size in pixels
//   - maxWidth, maxHeight: maximum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithSize sets the initial window size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithRecorder makes the window write raw input into an existing recorder instead of
// creating its own.
//
// Parameters:
//   - r: the recorder
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithRecorder(r input.Recorder) WindowBuilderOption {
	return func(w *engineWindow) {
		w.recorder = r
	}
}

// WithEscapeCloses controls whether pressing Escape closes the window. Defaults to true.
//
// Parameters:
//   - closes: true to close on Escape
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithEscapeCloses(closes bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.escapeCloses = closes
	}
}

// WithCursorCaptured captures the cursor as soon as the window opens.
//
// Parameters:
//   - captured: true to capture the cursor
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCursorCaptured(captured bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.cursorCaptured = captured
	}
}

package common

// Key is a virtual key code for cross-platform input handling.
// Values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key uint32

const (
	KeyW     Key = 87  // W key (ASCII)
	KeyA     Key = 65  // A key (ASCII)
	KeyS     Key = 83  // S key (ASCII)
	KeyD     Key = 68  // D key (ASCII)
	KeyQ     Key = 81  // Q key (ASCII)
	KeyE     Key = 69  // E key (ASCII)
	KeySpace Key = 32  // Spacebar (ASCII)
	KeyEsc   Key = 256 // Escape key (GLFW)
)

// Modifier keys
const (
	KeyLeftShift    Key = 340 // Left Shift (GLFW)
	KeyLeftControl  Key = 341 // Left Control (GLFW)
	KeyLeftAlt      Key = 342 // Left Alt (GLFW)
	KeyRightShift   Key = 344 // Right Shift (GLFW)
	KeyRightControl Key = 345 // Right Control (GLFW)
)

// MouseButton identifies a pointer button. Values match GLFW mouse button codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

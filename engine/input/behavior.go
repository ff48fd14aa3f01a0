package input

import (
	"fmt"
	"strings"
)

// Behavior decides whether default input mapping runs on a tick.
// The zero value is Enable. Nothing in this module switches Disable back to
// Enable; that is left to the host.
type Behavior uint8

const (
	// Enable lets default input mappers consume raw input.
	Enable Behavior = iota
	// Disable skips default input mapping. Reducers still run.
	Disable
)

// ShouldConsume reports whether default input mappers should run.
func (b Behavior) ShouldConsume() bool {
	return b != Disable
}

func (b Behavior) String() string {
	switch b {
	case Enable:
		return "enable"
	case Disable:
		return "disable"
	default:
		return fmt.Sprintf("Behavior(%d)", uint8(b))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Behavior) MarshalText() ([]byte, error) {
	switch b {
	case Enable, Disable:
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("input: unknown behavior %d", uint8(b))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. Accepts "enable" and
// "disable" case-insensitively; an empty string means Enable.
func (b *Behavior) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "enable":
		*b = Enable
	case "disable":
		*b = Disable
	default:
		return fmt.Errorf("input: unknown behavior %q", text)
	}
	return nil
}

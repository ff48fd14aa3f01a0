package common

import (
	"math"
	"testing"
)

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "orbit", "fps"); got != "orbit" {
		t.Errorf("Coalesce = %q, want %q", got, "orbit")
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce of zeros = %d, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(float32(2), -1, 1); got != 1 {
		t.Errorf("Clamp(2) = %v, want 1", got)
	}
	if got := Clamp(float32(-2), -1, 1); got != -1 {
		t.Errorf("Clamp(-2) = %v, want -1", got)
	}
	if got := Clamp(float32(0.5), -1, 1); got != 0.5 {
		t.Errorf("Clamp(0.5) = %v, want 0.5", got)
	}
	nan := float32(math.NaN())
	if got := Clamp(nan, -1, 1); got == got {
		t.Errorf("Clamp(NaN) = %v, want NaN", got)
	}
}

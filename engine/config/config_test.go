package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
)

const sample = `
input_behavior: disable
active: walker
rigs:
  - name: overview
    style: orbit
    eye: [0, 2, 8]
    target: [0, 0, 0]
    orbit:
      min_radius: 2
      max_radius: 20
  - name: walker
    style: first_person
    eye: [0, 1, 0]
    target: [0, 1, 1]
    fps:
      translate_sensitivity: 0.25
`

func TestParseFillsDefaults(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.InputBehavior != input.Disable {
		t.Errorf("InputBehavior = %v, want disable", f.InputBehavior)
	}
	if len(f.Rigs) != 2 {
		t.Fatalf("len(Rigs) = %d, want 2", len(f.Rigs))
	}

	orbit, ok := f.Rigs[0].Controller().(controller.Orbit)
	if !ok {
		t.Fatalf("rig 0 controller = %T, want Orbit", f.Rigs[0].Controller())
	}
	if orbit.MinRadius != 2 || orbit.MaxRadius != 20 {
		t.Errorf("radius bounds = (%v, %v), want (2, 20)", orbit.MinRadius, orbit.MaxRadius)
	}
	if want := controller.DefaultOrbit().MouseWheelZoomSensitivity; orbit.MouseWheelZoomSensitivity != want {
		t.Errorf("wheel sensitivity = %v, want default %v", orbit.MouseWheelZoomSensitivity, want)
	}
	if !orbit.Enabled {
		t.Error("orbit should default to enabled")
	}

	fps, ok := f.Rigs[1].Controller().(controller.Fps)
	if !ok {
		t.Fatalf("rig 1 controller = %T, want Fps", f.Rigs[1].Controller())
	}
	if fps.TranslateSensitivity != 0.25 {
		t.Errorf("TranslateSensitivity = %v, want 0.25", fps.TranslateSensitivity)
	}
	if f.Rigs[1].Eye != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Eye = %v, want (0, 1, 0)", f.Rigs[1].Eye)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown style":   "rigs:\n  - style: isometric\n    eye: [0, 0, 1]\n    target: [0, 0, 0]\n",
		"degenerate pose": "rigs:\n  - style: orbit\n    eye: [1, 1, 1]\n    target: [1, 1, 1]\n",
		"duplicate names": "rigs:\n  - style: orbit\n    eye: [0, 0, 1]\n    target: [0, 0, 0]\n  - style: orbit\n    eye: [0, 0, 2]\n    target: [0, 0, 0]\n",
		"bad weight":      "rigs:\n  - style: fps\n    eye: [0, 0, 1]\n    target: [0, 0, 0]\n    fps:\n      smoothing_weight: 1\n",
		"missing active":  "active: nope\nrigs:\n  - style: fps\n    eye: [0, 0, 1]\n    target: [0, 0, 0]\n",
		"no rigs":         "input_behavior: enable\n",
		"bad behavior":    "input_behavior: sometimes\nrigs:\n  - style: fps\n    eye: [0, 0, 1]\n    target: [0, 0, 0]\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	_, err := Parse([]byte("rigs:\n  - style: orbit\n    eye: [1, 1, 1]\n    target: [1, 1, 1]\n"))
	if !errors.Is(err, rig.ErrDegeneratePose) {
		t.Errorf("error = %v, want ErrDegeneratePose", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rigs.yaml")
	want, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "unreal:") {
		t.Errorf("saved file carries unused style blocks:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.InputBehavior != want.InputBehavior || got.Active != want.Active {
		t.Errorf("header = (%v, %q), want (%v, %q)", got.InputBehavior, got.Active, want.InputBehavior, want.Active)
	}
	for i := range want.Rigs {
		if got.Rigs[i].Controller() != want.Rigs[i].Controller() {
			t.Errorf("rig %d controller = %+v, want %+v", i, got.Rigs[i].Controller(), want.Rigs[i].Controller())
		}
		if got.Rigs[i].Eye != want.Rigs[i].Eye || got.Rigs[i].Target != want.Rigs[i].Target {
			t.Errorf("rig %d pose = (%v, %v), want (%v, %v)", i, got.Rigs[i].Eye, got.Rigs[i].Target, want.Rigs[i].Eye, want.Rigs[i].Target)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestBuildAndApply(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	sys, err := f.Build(rig.WithWorkers(1))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if active, ok := sys.Active(); !ok || active.Name() != "walker" {
		t.Fatalf("active rig = %v, %v; want walker", active, ok)
	}

	overview, _ := sys.Rig("overview")
	overview.Send(controller.ZoomEvent{Scalar: 2})
	sys.Tick(input.Frame{}, 1.0/60, input.Disable)
	moved := overview.Transform()

	// Reloading swaps controllers without resetting poses.
	f.Rigs[0].Orbit.MouseWheelZoomSensitivity = 0.5
	if err := f.Apply(sys); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if overview.Transform() != moved {
		t.Errorf("Transform = %v after Apply, want %v", overview.Transform(), moved)
	}
	if got := overview.Controller().(controller.Orbit).MouseWheelZoomSensitivity; got != 0.5 {
		t.Errorf("wheel sensitivity = %v, want 0.5", got)
	}
	if n := len(sys.Rigs()); n != 2 {
		t.Errorf("len(Rigs) = %d, want 2", n)
	}
}

func TestDefault(t *testing.T) {
	f := Default()
	if err := f.Validate(); err != nil {
		t.Fatalf("Default invalid: %v", err)
	}
	if f.Rigs[0].Style != controller.StyleOrbit || f.Rigs[0].RigName() != "main" {
		t.Errorf("default rig = %s %q", f.Rigs[0].Style, f.Rigs[0].RigName())
	}
}

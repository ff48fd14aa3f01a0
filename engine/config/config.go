// Package config loads and saves rig definitions as YAML and applies them to a
// rig.System.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// File is the top-level rig configuration document.
type File struct {
	// InputBehavior gates default input mapping. Empty means enable.
	InputBehavior input.Behavior `yaml:"input_behavior"`

	// Active names the rig that receives raw input. Empty selects the first rig.
	Active string `yaml:"active,omitempty"`

	// Rigs lists the rigs to create.
	Rigs []RigSpec `yaml:"rigs"`
}

// RigSpec describes one rig. Only the block matching Style is used; missing fields
// in that block keep the style's defaults.
type RigSpec struct {
	Name   string            `yaml:"name"`
	Style  controller.Style  `yaml:"style"`
	Eye    mgl32.Vec3        `yaml:"eye"`
	Target mgl32.Vec3        `yaml:"target"`
	Fps    controller.Fps    `yaml:"fps"`
	Orbit  controller.Orbit  `yaml:"orbit"`
	Unreal controller.Unreal `yaml:"unreal"`
}

// rigSpecOut is the on-disk form of a RigSpec carrying only the active style's block.
type rigSpecOut struct {
	Name   string             `yaml:"name"`
	Style  controller.Style   `yaml:"style"`
	Eye    mgl32.Vec3         `yaml:"eye,flow"`
	Target mgl32.Vec3         `yaml:"target,flow"`
	Fps    *controller.Fps    `yaml:"fps,omitempty"`
	Orbit  *controller.Orbit  `yaml:"orbit,omitempty"`
	Unreal *controller.Unreal `yaml:"unreal,omitempty"`
}

// Default returns a configuration with a single orbit rig looking at the origin.
//
// Returns:
//   - *File: the default configuration
func Default() *File {
	return &File{
		Rigs: []RigSpec{NewRigSpec("main", controller.DefaultOrbit(), mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})},
	}
}

// NewRigSpec builds a RigSpec from a controller, filling the other styles' blocks
// with their defaults.
//
// Parameters:
//   - name: the rig name
//   - c: the controller configuration
//   - eye: initial eye position
//   - target: initial target position
//
// Returns:
//   - RigSpec: the spec
func NewRigSpec(name string, c controller.Controller, eye, target mgl32.Vec3) RigSpec {
	s := defaultRigSpec()
	s.Name = name
	s.Eye = eye
	s.Target = target
	switch v := c.(type) {
	case controller.Fps:
		s.Style, s.Fps = controller.StyleFps, v
	case controller.Orbit:
		s.Style, s.Orbit = controller.StyleOrbit, v
	case controller.Unreal:
		s.Style, s.Unreal = controller.StyleUnreal, v
	}
	return s
}

func defaultRigSpec() RigSpec {
	return RigSpec{
		Fps:    controller.DefaultFps(),
		Orbit:  controller.DefaultOrbit(),
		Unreal: controller.DefaultUnreal(),
	}
}

// UnmarshalYAML decodes a RigSpec on top of the style defaults.
func (s *RigSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain RigSpec
	p := plain(defaultRigSpec())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = RigSpec(p)
	return nil
}

// MarshalYAML encodes a RigSpec with only its style's controller block.
func (s RigSpec) MarshalYAML() (any, error) {
	out := rigSpecOut{Name: s.Name, Style: s.Style, Eye: s.Eye, Target: s.Target}
	switch s.Style {
	case controller.StyleFps:
		out.Fps = &s.Fps
	case controller.StyleOrbit:
		out.Orbit = &s.Orbit
	case controller.StyleUnreal:
		out.Unreal = &s.Unreal
	}
	return out, nil
}

// RigName returns the spec's name, defaulting to the style name.
func (s RigSpec) RigName() string {
	return common.Coalesce(s.Name, s.Style.String())
}

// Controller returns the configuration block selected by Style.
//
// Returns:
//   - controller.Controller: the controller
func (s RigSpec) Controller() controller.Controller {
	switch s.Style {
	case controller.StyleOrbit:
		return s.Orbit
	case controller.StyleUnreal:
		return s.Unreal
	default:
		return s.Fps
	}
}

// Validate checks every rig for a usable pose and controller and that names are
// unique.
//
// Returns:
//   - error: the first problem found, or nil
func (f *File) Validate() error {
	if len(f.Rigs) == 0 {
		return errors.New("config: no rigs defined")
	}
	seen := make(map[string]bool, len(f.Rigs))
	for i, s := range f.Rigs {
		name := s.RigName()
		if seen[name] {
			return fmt.Errorf("config: rig %d: duplicate name %q", i, name)
		}
		seen[name] = true
		if s.Eye == s.Target {
			return fmt.Errorf("config: rig %q: %w", name, rig.ErrDegeneratePose)
		}
		if err := s.Controller().Validate(); err != nil {
			return fmt.Errorf("config: rig %q: %w", name, err)
		}
	}
	if f.Active != "" && !seen[f.Active] {
		return fmt.Errorf("config: active rig %q is not defined", f.Active)
	}
	return nil
}

// Parse decodes and validates a YAML document.
//
// Parameters:
//   - data: the YAML bytes
//
// Returns:
//   - *File: the decoded configuration
//   - error: error if decoding or validation fails
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses a YAML file.
//
// Parameters:
//   - filename: path to the file
//
// Returns:
//   - *File: the decoded configuration
//   - error: error if reading, decoding or validation fails
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", filename, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", filename, err)
	}
	return f, nil
}

// Marshal encodes a configuration as YAML.
//
// Parameters:
//   - f: the configuration
//
// Returns:
//   - []byte: the YAML document
//   - error: error if encoding fails
func Marshal(f *File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Save writes a configuration to a YAML file.
//
// Parameters:
//   - filename: path to the file
//   - f: the configuration
//
// Returns:
//   - error: error if encoding or writing fails
func Save(filename string, f *File) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("config: save %s: %w", filename, err)
	}
	return nil
}

// Build creates a rig.System holding every rig in the configuration.
//
// Parameters:
//   - options: functional options for the system
//
// Returns:
//   - rig.System: the populated system
//   - error: error if a rig cannot be created
func (f *File) Build(options ...rig.SystemBuilderOption) (rig.System, error) {
	sys := rig.NewSystem(options...)
	if err := f.Apply(sys); err != nil {
		return nil, err
	}
	return sys, nil
}

// Apply brings a running system in line with the configuration. Existing rigs keep
// their pose and take the new controller; new rigs are created at their configured
// pose. Rigs missing from the configuration are left alone.
//
// Parameters:
//   - sys: the system to update
//
// Returns:
//   - error: error if the configuration is invalid or a rig cannot be updated
func (f *File) Apply(sys rig.System) error {
	if err := f.Validate(); err != nil {
		return err
	}

	for _, s := range f.Rigs {
		name := s.RigName()
		if existing, ok := sys.Rig(name); ok {
			if err := existing.SetController(s.Controller()); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log.Printf("[Config] Updated rig %q (%s)", name, s.Style)
			continue
		}

		r, err := rig.NewRig(s.Controller(), s.Eye, s.Target, rig.WithName(name))
		if err != nil {
			return fmt.Errorf("config: rig %q: %w", name, err)
		}
		if err := sys.Add(r); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		log.Printf("[Config] Added rig %q (%s)", name, s.Style)
	}

	if f.Active != "" {
		if err := sys.SetActive(f.Active); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

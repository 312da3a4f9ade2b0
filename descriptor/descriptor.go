// Package descriptor loads and saves particle system definitions as YAML,
// so effects can be authored as data and tuned without recompiling. Build
// turns a descriptor into a live ember.System; Snapshot goes the other way.
package descriptor

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SystemDesc is the root of a particle system definition.
type SystemDesc struct {
	Step   *StepDesc   `yaml:"step,omitempty"`
	Camera *[3]float32 `yaml:"camera,omitempty"`
	AABB   bool        `yaml:"aabb,omitempty"`
	Groups []GroupDesc `yaml:"groups"`
}

// StepDesc selects the stepping policy. Mode is "real", "constant" or
// "adaptive"; a non-zero Clamp caps the frame delta before decomposition.
type StepDesc struct {
	Mode     string  `yaml:"mode"`
	Constant float32 `yaml:"constant,omitempty"`
	Min      float32 `yaml:"min,omitempty"`
	Max      float32 `yaml:"max,omitempty"`
	Clamp    float32 `yaml:"clamp,omitempty"`
}

// RangeDesc is an inclusive [Min, Max] value range.
type RangeDesc struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// GroupDesc defines one particle pool with its emitters and modifiers.
// Params is keyed by parameter name ("size", "mass", "angle", "texture",
// "rotation").
type GroupDesc struct {
	Capacity  int                  `yaml:"capacity"`
	Lifetime  *RangeDesc           `yaml:"lifetime,omitempty"`
	Immortal  bool                 `yaml:"immortal,omitempty"`
	Sort      bool                 `yaml:"sort,omitempty"`
	Params    map[string]ParamDesc `yaml:"params,omitempty"`
	Emitters  []EmitterDesc        `yaml:"emitters,omitempty"`
	Modifiers []ModifierDesc       `yaml:"modifiers,omitempty"`
}

// ParamDesc defines one parameter rule. Exactly one form applies:
//   - Value: constant
//   - Min/Max: random per particle
//   - Start/End (+ optional Ease): interpolated over the lifetime
type ParamDesc struct {
	Value *float32   `yaml:"value,omitempty"`
	Min   *float32   `yaml:"min,omitempty"`
	Max   *float32   `yaml:"max,omitempty"`
	Start *RangeDesc `yaml:"start,omitempty"`
	End   *RangeDesc `yaml:"end,omitempty"`
	Ease  string     `yaml:"ease,omitempty"`
}

// ZoneDesc defines a zone. Type is one of "point", "sphere", "plane",
// "box", "cylinder", "ring"; the other fields apply per type.
type ZoneDesc struct {
	Type     string     `yaml:"type"`
	Position [3]float32 `yaml:"position,omitempty"`

	Radius float32 `yaml:"radius,omitempty"` // sphere, cylinder

	Normal *[3]float32 `yaml:"normal,omitempty"` // plane, ring

	Dimension *[3]float32 `yaml:"dimension,omitempty"` // box half-extents
	Front     *[3]float32 `yaml:"front,omitempty"`
	Up        *[3]float32 `yaml:"up,omitempty"`

	Direction *[3]float32 `yaml:"direction,omitempty"` // cylinder
	Length    float32     `yaml:"length,omitempty"`

	MinRadius float32 `yaml:"min_radius,omitempty"` // ring
	MaxRadius float32 `yaml:"max_radius,omitempty"`
}

// EmitterDesc defines an emitter. Type is one of "static", "straight",
// "spheric", "random", "normal". A nil Tank means unlimited; Surface
// restricts spawn positions to the zone boundary.
type EmitterDesc struct {
	Type      string      `yaml:"type"`
	Zone      *ZoneDesc   `yaml:"zone,omitempty"`
	Surface   bool        `yaml:"surface,omitempty"`
	Flow      float32     `yaml:"flow"`
	Tank      *int        `yaml:"tank,omitempty"`
	Force     *RangeDesc  `yaml:"force,omitempty"`
	Direction *[3]float32 `yaml:"direction,omitempty"` // straight
	Inverted  bool        `yaml:"inverted,omitempty"`  // normal
}

// ModifierDesc defines a modifier. Type is one of "gravity", "drag",
// "obstacle".
type ModifierDesc struct {
	Type string `yaml:"type"`

	Acceleration *[3]float32 `yaml:"acceleration,omitempty"` // gravity

	Value float32 `yaml:"value,omitempty"` // drag

	Zone     *ZoneDesc `yaml:"zone,omitempty"` // obstacle
	Bouncing float32   `yaml:"bouncing,omitempty"`
	Friction float32   `yaml:"friction,omitempty"`
	Test     []string  `yaml:"test,omitempty"`
}

// Load parses a YAML system descriptor.
func Load(r io.Reader) (*SystemDesc, error) {
	var desc SystemDesc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decoding system descriptor: %w", err)
	}
	return &desc, nil
}

// LoadFile reads and parses a YAML system descriptor file.
func LoadFile(path string) (*SystemDesc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Save writes the descriptor as YAML.
func Save(w io.Writer, desc *SystemDesc) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(desc); err != nil {
		return fmt.Errorf("encoding system descriptor: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the descriptor to a YAML file.
func SaveFile(path string, desc *SystemDesc) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, desc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

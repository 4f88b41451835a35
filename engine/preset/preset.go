package preset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownStep is returned for a step whose type is not one of the step types.
	ErrUnknownStep = errors.New("unknown step type")

	// ErrBadStep is returned when a step is missing a field its type needs.
	ErrBadStep = errors.New("invalid step")
)

// Step types.
const (
	StepRotation    = "rotation"
	StepTranslation = "translation"
	StepScale       = "scale"
	StepShear       = "shear"
	StepPath        = "path"
	StepKeyframe    = "keyframe"
)

// RepeatCount is a YAML repeat count. Besides numbers it accepts "inf", "infinity" and "forever".
type RepeatCount float32

func (r *RepeatCount) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "inf", "+inf", "infinity", "forever":
		*r = RepeatCount(animation.RepeatForever)
		return nil
	}
	var f float32
	if err := value.Decode(&f); err != nil {
		return fmt.Errorf("repeat count: %w", err)
	}
	*r = RepeatCount(f)
	return nil
}

func (r RepeatCount) MarshalYAML() (any, error) {
	if math.IsInf(float64(r), 1) {
		return "inf", nil
	}
	return float32(r), nil
}

// Step is one configuration call replayed onto an Animator.
type Step struct {
	Type string `yaml:"type"`

	// rotation
	Axis    string  `yaml:"axis,omitempty"`
	Degrees float64 `yaml:"degrees,omitempty"`
	Radians float64 `yaml:"radians,omitempty"`

	// translation and shear
	X float32 `yaml:"x,omitempty"`
	Y float32 `yaml:"y,omitempty"`

	// scale
	Factor float64 `yaml:"factor,omitempty"`

	// path
	Shape        string     `yaml:"shape,omitempty"`
	CornerRadius float32    `yaml:"cornerRadius,omitempty"`
	Center       [2]float32 `yaml:"center,omitempty"`
	Radius       float32    `yaml:"radius,omitempty"`
	StartAngle   float32    `yaml:"startAngle,omitempty"`
	EndAngle     float32    `yaml:"endAngle,omitempty"`
	Clockwise    bool       `yaml:"clockwise,omitempty"`

	// keyframe
	Points   [][2]float32 `yaml:"points,omitempty"`
	KeyTimes []float32    `yaml:"keyTimes,omitempty"`

	// shared; zero values keep the call's defaults
	Duration            float64      `yaml:"duration,omitempty"`
	RepeatCount         *RepeatCount `yaml:"repeatCount,omitempty"`
	Autoreverses        bool         `yaml:"autoreverses,omitempty"`
	TimingFunction      string       `yaml:"timingFunction,omitempty"`
	KeyPath             string       `yaml:"keyPath,omitempty"`
	FillMode            string       `yaml:"fillMode,omitempty"`
	RemovedOnCompletion *bool        `yaml:"removedOnCompletion,omitempty"`
}

// Preset is a named, declarative animation group.
type Preset struct {
	Name string `yaml:"name"`

	// Duration is the group duration in seconds.
	Duration     float64      `yaml:"duration"`
	RepeatCount  *RepeatCount `yaml:"repeatCount,omitempty"`
	Autoreverses bool         `yaml:"autoreverses,omitempty"`

	// TimingFunction is the group override: a curve name, or "custom" with ControlPoints.
	TimingFunction string    `yaml:"timingFunction,omitempty"`
	ControlPoints  []float32 `yaml:"controlPoints,omitempty"`

	// Perspective, when set, is written to the target's super layer before any step.
	Perspective *float32 `yaml:"perspective,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Load decodes every YAML document in r as a Preset and validates it.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - []*Preset: the presets in document order
//   - error: a decode or validation error
func Load(r io.Reader) ([]*Preset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var presets []*Preset
	for {
		var p Preset
		err := dec.Decode(&p)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode preset %d: %w", len(presets), err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		presets = append(presets, &p)
	}
	return presets, nil
}

// LoadFile loads the presets in the YAML file at path.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - []*Preset: the presets in document order
//   - error: an open, decode or validation error
func LoadFile(path string) ([]*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	presets, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[Preset] loaded %d preset(s) from %s", len(presets), path)
	return presets, nil
}

// LoadFiles loads several preset files concurrently. The result keeps argument order.
// The first failure cancels the remaining loads.
//
// Parameters:
//   - ctx: cancels loads that have not started
//   - paths: the files to load
//
// Returns:
//   - []*Preset: the presets of every file, in argument then document order
//   - error: the first error encountered
func LoadFiles(ctx context.Context, paths ...string) ([]*Preset, error) {
	results := make([][]*Preset, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			presets, err := LoadFile(path)
			if err != nil {
				return err
			}
			results[i] = presets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*Preset
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// Validate checks the group fields and every step without touching any layer.
//
// Returns:
//   - error: the first problem found, naming the preset and step index
func (p *Preset) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("preset %q: %w: got %g", p.Name, animation.ErrNonPositiveDuration, p.Duration)
	}
	if _, err := p.groupTimingFunction(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	for i := range p.Steps {
		if _, err := p.Steps[i].options(); err != nil {
			return fmt.Errorf("preset %q step %d: %w", p.Name, i, err)
		}
		if err := p.Steps[i].check(); err != nil {
			return fmt.Errorf("preset %q step %d: %w", p.Name, i, err)
		}
	}
	return nil
}

// HasPath reports whether any step morphs a path.
func (p *Preset) HasPath() bool {
	for _, s := range p.Steps {
		if s.Type == StepPath {
			return true
		}
	}
	return false
}

func (p *Preset) groupTimingFunction() (*animation.TimingFunction, error) {
	if p.TimingFunction == "" {
		return nil, nil
	}
	if strings.EqualFold(p.TimingFunction, string(animation.TimingCustom)) {
		if len(p.ControlPoints) != 4 {
			return nil, fmt.Errorf("custom timing function needs 4 control points, got %d", len(p.ControlPoints))
		}
		cp := p.ControlPoints
		return animation.NewCustomTimingFunction(cp[0], cp[1], cp[2], cp[3]), nil
	}
	name, err := animation.ParseTimingFunctionName(p.TimingFunction)
	if err != nil {
		return nil, err
	}
	return animation.NewTimingFunction(name), nil
}

func (s *Step) check() error {
	switch s.Type {
	case StepRotation:
		if _, err := animation.ParseAxis(s.Axis); err != nil {
			return fmt.Errorf("%w: %w", ErrBadStep, err)
		}
	case StepTranslation, StepShear:
	case StepScale:
		if s.Factor == 0 {
			return fmt.Errorf("%w: scale needs a factor", ErrBadStep)
		}
	case StepPath:
		if _, err := s.shapeSpec(); err != nil {
			return fmt.Errorf("%w: %w", ErrBadStep, err)
		}
	case StepKeyframe:
		if len(s.Points) == 0 {
			return fmt.Errorf("%w: keyframe needs points", ErrBadStep)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownStep, s.Type)
	}
	return nil
}

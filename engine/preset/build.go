package preset

import (
	"fmt"
	"log"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-animate/common"
	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
	"github.com/Carmen-Shannon/oxy-animate/engine/animator"
	"github.com/Carmen-Shannon/oxy-animate/engine/layer"
	"github.com/Carmen-Shannon/oxy-animate/engine/shape"
)

// Build replays the preset's steps onto a. Nothing is committed.
// Path steps need target to be a layer.ShapeLayer. Every check runs before the
// perspective or the timing override touch the layer or the builder.
//
// Parameters:
//   - a: the builder to configure
//   - target: the layer the preset animates
//
// Returns:
//   - error: the first invalid step, naming the preset and step index
func (p *Preset) Build(a animator.Animator, target layer.Layer) error {
	if target == nil {
		return fmt.Errorf("preset %q: %w", p.Name, animator.ErrNoLayer)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := target.(layer.ShapeLayer); p.HasPath() && !ok {
		return fmt.Errorf("preset %q: %w: path step needs a shape layer", p.Name, ErrBadStep)
	}
	if p.Perspective != nil {
		if super := target.SuperLayer(); super != nil {
			a.Perspective(super, *p.Perspective)
		} else {
			log.Printf("[Preset] %q: perspective ignored, layer %d has no super layer", p.Name, target.ID())
		}
	}
	if tf, _ := p.groupTimingFunction(); tf != nil {
		overrideTiming(a, tf)
	}

	for i := range p.Steps {
		if err := p.Steps[i].replay(a, target); err != nil {
			return fmt.Errorf("preset %q step %d: %w", p.Name, i, err)
		}
	}
	return nil
}

// Apply builds the preset and commits it to target. Presets with a path step are
// committed with ApplyPath so the morphed path is held.
//
// Parameters:
//   - a: the builder to configure and commit with
//   - target: the layer the preset animates
//
// Returns:
//   - error: a build or commit error
func (p *Preset) Apply(a animator.Animator, target layer.Layer) error {
	if err := p.Build(a, target); err != nil {
		a.Reset()
		return err
	}
	if p.HasPath() {
		// Build already rejected non-shape targets
		return a.ApplyPath(target.(layer.ShapeLayer), p.Duration)
	}

	return a.ApplyTo(target, p.Duration,
		animator.WithRepeatCount(float32(common.Deref(p.RepeatCount, 1))),
		animator.WithAutoreverses(p.Autoreverses),
	)
}

func overrideTiming(a animator.Animator, tf *animation.TimingFunction) {
	switch tf.Name {
	case animation.TimingLinear:
		a.WithLinearTimingFunction()
	case animation.TimingEaseIn:
		a.WithEaseInTimingFunction()
	case animation.TimingEaseOut:
		a.WithEaseOutTimingFunction()
	case animation.TimingEaseInEaseOut:
		a.WithEaseInEaseOutTimingFunction()
	case animation.TimingDefault:
		a.WithDefaultTimingFunction()
	default:
		x1, y1, x2, y2 := tf.ControlPoints()
		a.WithCustomTimingFunction(x1, y1, x2, y2)
	}
}

func (s *Step) replay(a animator.Animator, target layer.Layer) error {
	options, err := s.options()
	if err != nil {
		return err
	}

	switch s.Type {
	case StepRotation:
		axis, err := animation.ParseAxis(s.Axis)
		if err != nil {
			return err
		}
		options = append(options, animator.WithAngleDegrees(s.Degrees), animator.WithAngleRadians(s.Radians))
		a.Rotation(axis, options...)
	case StepTranslation:
		a.Translation(s.X, s.Y, options...)
	case StepScale:
		a.Scale(s.Factor, options...)
	case StepShear:
		a.Shear(s.X, s.Y, options...)
	case StepPath:
		spec, err := s.shapeSpec()
		if err != nil {
			return err
		}
		sl, ok := target.(layer.ShapeLayer)
		if !ok {
			return fmt.Errorf("%w: path step needs a shape layer", ErrBadStep)
		}
		a.PathDeformation(sl, spec, options...)
	case StepKeyframe:
		points := make([]math32.Vector2, len(s.Points))
		for i, pt := range s.Points {
			points[i] = math32.Vec2(pt[0], pt[1])
		}
		if len(s.KeyTimes) > 0 {
			options = append(options, animator.WithKeyTimes(s.KeyTimes...))
		}
		a.KeyframeAnimate(points, options...)
	default:
		return fmt.Errorf("%w %q", ErrUnknownStep, s.Type)
	}
	return nil
}

// options converts the shared step fields into animator options. Unset fields add nothing.
func (s *Step) options() ([]animator.Option, error) {
	var options []animator.Option
	if s.Duration != 0 {
		options = append(options, animator.WithDuration(s.Duration))
	}
	if s.RepeatCount != nil {
		options = append(options, animator.WithRepeatCount(float32(*s.RepeatCount)))
	}
	if s.Autoreverses {
		options = append(options, animator.WithAutoreverses(true))
	}
	if s.TimingFunction != "" {
		name, err := animation.ParseTimingFunctionName(s.TimingFunction)
		if err != nil {
			return nil, err
		}
		options = append(options, animator.WithTimingFunctionName(name))
	}
	if s.KeyPath != "" {
		options = append(options, animator.WithKeyPath(s.KeyPath))
	}
	if s.FillMode != "" {
		f, err := animation.ParseFillMode(s.FillMode)
		if err != nil {
			return nil, err
		}
		options = append(options, animator.WithFillMode(f))
	}
	if s.RemovedOnCompletion != nil {
		options = append(options, animator.WithRemovedOnCompletion(*s.RemovedOnCompletion))
	}
	return options, nil
}

func (s *Step) shapeSpec() (shape.Spec, error) {
	kind, err := shape.ParseKind(s.Shape)
	if err != nil {
		return shape.Spec{}, err
	}
	switch kind {
	case shape.KindRect:
		return shape.Rect(s.CornerRadius), nil
	case shape.KindArc:
		if s.Radius <= 0 {
			return shape.Spec{}, fmt.Errorf("arc needs a positive radius, got %g", s.Radius)
		}
		center := math32.Vec2(s.Center[0], s.Center[1])
		return shape.Arc(center, s.Radius, s.StartAngle, s.EndAngle, s.Clockwise), nil
	}
	return shape.Spec{Kind: kind}, nil
}

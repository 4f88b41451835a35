package animator

import (
	"errors"
	"fmt"

	"cogentcore.org/lab/base/randx"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint/ppath"
	"github.com/Carmen-Shannon/oxy-animate/common"
	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
	"github.com/Carmen-Shannon/oxy-animate/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-animate/engine/layer"
	"github.com/Carmen-Shannon/oxy-animate/engine/shape"
)

var (
	// ErrNoLayer is returned by Apply when neither the builder nor the call names a target layer.
	ErrNoLayer = errors.New("no target layer")

	// ErrNilShapeLayer is recorded when a path deformation is configured without a shape layer.
	ErrNilShapeLayer = errors.New("path deformation needs a shape layer")
)

// animator is the implementation of the Animator interface.
type animator struct {
	layer       layer.Layer
	queue       dispatch.Queue
	rnd         randx.Rand
	descriptors []animation.Descriptor
	delegate    animation.Delegate
	override    *animation.TimingFunction
	err         error
}

// Animator accumulates animation descriptors and commits them to a layer as one group.
//
// Every configuration method appends exactly one descriptor and returns the same Animator,
// so calls chain. Apply, ApplyTo and ApplyPath freeze the pending descriptors into an
// animation.Group, clear the pending list, and dispatch the registration onto the queue;
// the group is never registered before the call returns.
// Callbacks and the group timing override survive a commit and apply to later commits too.
//
// An Animator has a single owner and is not safe for concurrent use.
type Animator interface {
	// Rotation appends a rotation about axis from 0 to the configured angle.
	// Defaults: 1s, one iteration, linear, fill forwards, not removed on completion.
	//
	// Parameters:
	//   - axis: the rotation axis
	//   - options: WithAngleDegrees or WithAngleRadians plus timing options
	//
	// Returns:
	//   - Animator: the same builder
	Rotation(axis animation.Axis, options ...Option) Animator

	// Translation appends an offset animation to (dx, dy) on "transform.translation".
	//
	// Parameters:
	//   - dx, dy: the target offset
	//   - options: timing options and WithKeyPath
	//
	// Returns:
	//   - Animator: the same builder
	Translation(dx, dy float32, options ...Option) Animator

	// Scale appends a uniform scale animation to factor on "transform.scale", linear by default.
	//
	// Parameters:
	//   - factor: the target scale
	//   - options: timing options and WithKeyPath
	//
	// Returns:
	//   - Animator: the same builder
	Scale(factor float64, options ...Option) Animator

	// Perspective sets component (3,4) of superLayer's sublayer transform right away.
	// It appends nothing. A nil layer is ignored.
	//
	// Parameters:
	//   - superLayer: the parent of the layers that will rotate in 3D
	//   - m34: the depth coefficient, e.g. -1/500
	//
	// Returns:
	//   - Animator: the same builder
	Perspective(superLayer layer.Layer, m34 float32) Animator

	// Shear appends a "transform" animation from identity to identity with (2,1) = y and (1,2) = x.
	//
	// Parameters:
	//   - x, y: the shear factors
	//   - options: timing options and WithKeyPath
	//
	// Returns:
	//   - Animator: the same builder
	Shear(x, y float32, options ...Option) Animator

	// PathDeformation appends a "path" animation from target's current path to the path
	// generated for spec inside target's bounds. The start path is read now, not at commit.
	//
	// Parameters:
	//   - target: the shape layer to morph
	//   - spec: the end shape
	//   - options: timing options
	//
	// Returns:
	//   - Animator: the same builder
	PathDeformation(target layer.ShapeLayer, spec shape.Spec, options ...Option) Animator

	// PathDeformationTo is PathDeformation with an explicit end path.
	//
	// Parameters:
	//   - target: the shape layer to morph
	//   - end: the end path
	//   - options: timing options
	//
	// Returns:
	//   - Animator: the same builder
	PathDeformationTo(target layer.ShapeLayer, end ppath.Path, options ...Option) Animator

	// KeyframeAnimate appends a keyframe animation through points on "position".
	// Defaults: 1s, one iteration, fill forwards, not removed on completion.
	//
	// Parameters:
	//   - points: the keyframe values in order
	//   - options: WithKeyTimes, WithKeyPath and timing options
	//
	// Returns:
	//   - Animator: the same builder
	KeyframeAnimate(points []math32.Vector2, options ...Option) Animator

	// WithCompletion sets the completion callback. Only the last callback set is kept.
	//
	// Parameters:
	//   - fn: called when a committed group stops
	//
	// Returns:
	//   - Animator: the same builder
	WithCompletion(fn func()) Animator

	// WithStartFunction sets the start callback. Only the last callback set is kept.
	//
	// Parameters:
	//   - fn: called when a committed group starts
	//
	// Returns:
	//   - Animator: the same builder
	WithStartFunction(fn func()) Animator

	// WithLinearTimingFunction sets the group timing override to linear.
	WithLinearTimingFunction() Animator

	// WithEaseInEaseOutTimingFunction sets the group timing override to ease in ease out.
	WithEaseInEaseOutTimingFunction() Animator

	// WithEaseOutTimingFunction sets the group timing override to ease out.
	WithEaseOutTimingFunction() Animator

	// WithEaseInTimingFunction sets the group timing override to ease in.
	WithEaseInTimingFunction() Animator

	// WithDefaultTimingFunction sets the group timing override to the platform default curve.
	WithDefaultTimingFunction() Animator

	// WithCustomTimingFunction sets the group timing override to a custom cubic curve.
	//
	// Parameters:
	//   - x1, y1, x2, y2: the inner control points
	//
	// Returns:
	//   - Animator: the same builder
	WithCustomTimingFunction(x1, y1, x2, y2 float32) Animator

	// Apply commits the pending descriptors to the builder's layer.
	//
	// Parameters:
	//   - duration: the group duration in seconds
	//   - options: WithRepeatCount, WithAutoreverses and other group timing options
	//
	// Returns:
	//   - error: ErrNoLayer, a recorded configuration error, or a validation error; nothing is committed on error
	Apply(duration float64, options ...Option) error

	// ApplyTo commits the pending descriptors to target and makes it the builder's layer.
	//
	// Parameters:
	//   - target: the layer to commit to
	//   - duration: the group duration in seconds
	//   - options: group timing options
	//
	// Returns:
	//   - error: ErrNoLayer, a recorded configuration error, or a validation error
	ApplyTo(target layer.Layer, duration float64, options ...Option) error

	// ApplyPath commits the pending descriptors to target with a group that holds its final
	// state: fill forwards and not removed on completion.
	//
	// Parameters:
	//   - target: the shape layer to commit to
	//   - duration: the group duration in seconds
	//
	// Returns:
	//   - error: ErrNoLayer, a recorded configuration error, or a validation error
	ApplyPath(target layer.ShapeLayer, duration float64) error

	// Pending returns the number of descriptors waiting for a commit.
	//
	// Returns:
	//   - int: pending descriptor count
	Pending() int

	// Descriptors returns a copy of the pending descriptors in configuration order.
	//
	// Returns:
	//   - []animation.Descriptor: the pending descriptors
	Descriptors() []animation.Descriptor

	// Err returns the first configuration error recorded since the last Reset, or nil.
	//
	// Returns:
	//   - error: the recorded error
	Err() error

	// Reset drops the pending descriptors and any recorded error. Callbacks and the timing
	// override are kept.
	Reset()

	// Layer returns the builder's target layer, or nil.
	//
	// Returns:
	//   - layer.Layer: the target layer
	Layer() layer.Layer
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with the given options.
//
// Parameters:
//   - options: functional options to configure the builder
//
// Returns:
//   - Animator: the configured builder
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{}
	for _, option := range options {
		option(a)
	}
	if a.queue == nil {
		a.queue = dispatch.Main()
	}
	return a
}

func (a *animator) Rotation(axis animation.Axis, options ...Option) Animator {
	timing := heldTiming()
	timing.TimingFunction = animation.NewTimingFunction(animation.TimingLinear)
	c := newConfig(animation.RotationKeyPath(axis), timing, options)

	angle := c.radians
	if c.degrees != 0 {
		angle = common.DegreesToRadians(c.degrees)
	}
	return a.append(animation.Descriptor{
		KeyPath: c.keyPath,
		From:    animation.Scalar(0),
		To:      animation.Scalar(angle),
		Timing:  c.timing,
	})
}

func (a *animator) Translation(dx, dy float32, options ...Option) Animator {
	c := newConfig(animation.KeyPathTranslation, animation.DefaultTiming(), options)
	return a.append(animation.Descriptor{
		KeyPath: c.keyPath,
		To:      animation.Point{X: dx, Y: dy},
		Timing:  c.timing,
	})
}

func (a *animator) Scale(factor float64, options ...Option) Animator {
	timing := animation.DefaultTiming()
	timing.TimingFunction = animation.NewTimingFunction(animation.TimingLinear)
	c := newConfig(animation.KeyPathScale, timing, options)
	return a.append(animation.Descriptor{
		KeyPath: c.keyPath,
		To:      animation.Scalar(factor),
		Timing:  c.timing,
	})
}

func (a *animator) Perspective(superLayer layer.Layer, m34 float32) Animator {
	if superLayer == nil {
		return a
	}
	t := superLayer.SublayerTransform()
	t.Set(3, 4, m34)
	superLayer.SetSublayerTransform(t)
	return a
}

func (a *animator) Shear(x, y float32, options ...Option) Animator {
	c := newConfig(animation.KeyPathTransform, animation.DefaultTiming(), options)
	to := common.Identity3D()
	to.Set(2, 1, y)
	to.Set(1, 2, x)
	return a.append(animation.Descriptor{
		KeyPath: c.keyPath,
		From:    animation.Transform(common.Identity3D()),
		To:      animation.Transform(to),
		Timing:  c.timing,
	})
}

func (a *animator) PathDeformation(target layer.ShapeLayer, spec shape.Spec, options ...Option) Animator {
	if target == nil {
		a.fail(fmt.Errorf("%w: %s", ErrNilShapeLayer, spec))
		return a
	}
	bounds := target.Bounds()
	end := shape.Generate(spec, bounds, bounds.Center(), a.rnd)
	return a.PathDeformationTo(target, end, options...)
}

func (a *animator) PathDeformationTo(target layer.ShapeLayer, end ppath.Path, options ...Option) Animator {
	if target == nil {
		a.fail(ErrNilShapeLayer)
		return a
	}
	c := newConfig(animation.KeyPathPath, animation.DefaultTiming(), options)
	d := animation.Descriptor{
		KeyPath: c.keyPath,
		To:      animation.PathValue(end.Clone()),
		Timing:  c.timing,
	}
	if start := target.Path(); !start.Empty() {
		d.From = animation.PathValue(start)
	}
	return a.append(d)
}

func (a *animator) KeyframeAnimate(points []math32.Vector2, options ...Option) Animator {
	c := newConfig(animation.KeyPathPosition, heldTiming(), options)
	values := make([]animation.Value, len(points))
	for i, p := range points {
		values[i] = animation.Point(p)
	}
	return a.append(animation.Descriptor{
		KeyPath:  c.keyPath,
		Kind:     animation.KindKeyframe,
		Values:   values,
		KeyTimes: c.keyTimes,
		Timing:   c.timing,
	})
}

func (a *animator) WithCompletion(fn func()) Animator {
	a.delegate.SetCompletion(fn)
	return a
}

func (a *animator) WithStartFunction(fn func()) Animator {
	a.delegate.SetStart(fn)
	return a
}

func (a *animator) WithLinearTimingFunction() Animator {
	return a.withOverride(animation.NewTimingFunction(animation.TimingLinear))
}

func (a *animator) WithEaseInEaseOutTimingFunction() Animator {
	return a.withOverride(animation.NewTimingFunction(animation.TimingEaseInEaseOut))
}

func (a *animator) WithEaseOutTimingFunction() Animator {
	return a.withOverride(animation.NewTimingFunction(animation.TimingEaseOut))
}

func (a *animator) WithEaseInTimingFunction() Animator {
	return a.withOverride(animation.NewTimingFunction(animation.TimingEaseIn))
}

func (a *animator) WithDefaultTimingFunction() Animator {
	return a.withOverride(animation.NewTimingFunction(animation.TimingDefault))
}

func (a *animator) WithCustomTimingFunction(x1, y1, x2, y2 float32) Animator {
	return a.withOverride(animation.NewCustomTimingFunction(x1, y1, x2, y2))
}

func (a *animator) Apply(duration float64, options ...Option) error {
	return a.commit(a.layer, a.groupTiming(duration, options))
}

func (a *animator) ApplyTo(target layer.Layer, duration float64, options ...Option) error {
	if target != nil {
		a.layer = target
	}
	return a.commit(target, a.groupTiming(duration, options))
}

func (a *animator) ApplyPath(target layer.ShapeLayer, duration float64) error {
	timing := a.groupTiming(duration, nil)
	timing.FillMode = animation.FillModeForwards
	timing.RemovedOnCompletion = false
	if target == nil {
		return ErrNoLayer
	}
	return a.commit(target, timing)
}

func (a *animator) Pending() int {
	return len(a.descriptors)
}

func (a *animator) Descriptors() []animation.Descriptor {
	out := make([]animation.Descriptor, len(a.descriptors))
	for i, d := range a.descriptors {
		out[i] = d.Clone()
	}
	return out
}

func (a *animator) Err() error {
	return a.err
}

func (a *animator) Reset() {
	a.descriptors = nil
	a.err = nil
}

func (a *animator) Layer() layer.Layer {
	return a.layer
}

func (a *animator) append(d animation.Descriptor) Animator {
	a.descriptors = append(a.descriptors, d)
	return a
}

func (a *animator) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *animator) withOverride(tf *animation.TimingFunction) Animator {
	a.override = tf
	return a
}

// groupTiming builds the timing of a committed group: the given duration, one iteration,
// removed on completion, and the builder's timing override.
func (a *animator) groupTiming(duration float64, options []Option) animation.Timing {
	timing := animation.DefaultTiming()
	timing.Duration = duration
	timing.TimingFunction = a.override
	c := newConfig("", timing, options)
	return c.timing
}

func (a *animator) commit(target layer.Layer, timing animation.Timing) error {
	if target == nil {
		return ErrNoLayer
	}
	if a.err != nil {
		return a.err
	}
	delegate := a.delegate
	g := animation.NewGroup(a.descriptors, timing, &delegate)
	if err := g.Validate(); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	a.descriptors = nil
	a.queue.Dispatch(func() {
		target.AddAnimation(animation.GroupKey, g)
	})
	return nil
}

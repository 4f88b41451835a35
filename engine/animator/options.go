package animator

import (
	"github.com/Carmen-Shannon/oxy-animate/common"
	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
)

// descriptorConfig collects the per-call settings of one configuration method.
// Each method seeds it with its own defaults before applying the caller's options.
type descriptorConfig struct {
	timing   animation.Timing
	keyPath  string
	keyTimes []float32
	degrees  float64
	radians  float64
}

// Option adjusts a single configuration call or an Apply call.
type Option func(*descriptorConfig)

// WithDuration sets the duration of one iteration in seconds.
//
// Parameters:
//   - seconds: the duration, must be positive
//
// Returns:
//   - Option: the option
func WithDuration(seconds float64) Option {
	return func(c *descriptorConfig) {
		c.timing.Duration = seconds
	}
}

// WithRepeatCount sets the number of iterations. animation.RepeatForever never ends.
//
// Parameters:
//   - n: the repeat count
//
// Returns:
//   - Option: the option
func WithRepeatCount(n float32) Option {
	return func(c *descriptorConfig) {
		c.timing.RepeatCount = n
	}
}

// WithAutoreverses plays each iteration forwards then backwards.
//
// Parameters:
//   - autoreverses: true to autoreverse
//
// Returns:
//   - Option: the option
func WithAutoreverses(autoreverses bool) Option {
	return func(c *descriptorConfig) {
		c.timing.Autoreverses = autoreverses
	}
}

// WithTimingFunction sets the easing curve. nil leaves pacing to the compositor.
//
// Parameters:
//   - tf: the timing function
//
// Returns:
//   - Option: the option
func WithTimingFunction(tf *animation.TimingFunction) Option {
	return func(c *descriptorConfig) {
		c.timing.TimingFunction = tf
	}
}

// WithTimingFunctionName sets one of the standard easing curves.
//
// Parameters:
//   - name: the curve name
//
// Returns:
//   - Option: the option
func WithTimingFunctionName(name animation.TimingFunctionName) Option {
	return func(c *descriptorConfig) {
		c.timing.TimingFunction = animation.NewTimingFunction(name)
	}
}

// WithKeyPath overrides the animated key path.
//
// Parameters:
//   - keyPath: the key path, e.g. animation.KeyPathPosition
//
// Returns:
//   - Option: the option
func WithKeyPath(keyPath string) Option {
	return func(c *descriptorConfig) {
		c.keyPath = common.Coalesce(keyPath, c.keyPath)
	}
}

// WithFillMode sets whether the final state is held after completion.
//
// Parameters:
//   - f: the fill mode
//
// Returns:
//   - Option: the option
func WithFillMode(f animation.FillMode) Option {
	return func(c *descriptorConfig) {
		c.timing.FillMode = f
	}
}

// WithRemovedOnCompletion sets whether the animation is removed from the layer when it ends.
//
// Parameters:
//   - removed: true to remove on completion
//
// Returns:
//   - Option: the option
func WithRemovedOnCompletion(removed bool) Option {
	return func(c *descriptorConfig) {
		c.timing.RemovedOnCompletion = removed
	}
}

// WithKeyTimes sets the normalized keyframe times. Only KeyframeAnimate reads them.
//
// Parameters:
//   - keyTimes: one time in [0, 1] per keyframe value, non-decreasing
//
// Returns:
//   - Option: the option
func WithKeyTimes(keyTimes ...float32) Option {
	return func(c *descriptorConfig) {
		c.keyTimes = append([]float32(nil), keyTimes...)
	}
}

// WithAngleDegrees sets the rotation angle in degrees. A non-zero value takes precedence
// over WithAngleRadians. Only Rotation reads it.
//
// Parameters:
//   - deg: the angle in degrees
//
// Returns:
//   - Option: the option
func WithAngleDegrees(deg float64) Option {
	return func(c *descriptorConfig) {
		c.degrees = deg
	}
}

// WithAngleRadians sets the rotation angle in radians. Only Rotation reads it.
//
// Parameters:
//   - rad: the angle in radians
//
// Returns:
//   - Option: the option
func WithAngleRadians(rad float64) Option {
	return func(c *descriptorConfig) {
		c.radians = rad
	}
}

func newConfig(keyPath string, timing animation.Timing, options []Option) descriptorConfig {
	c := descriptorConfig{keyPath: keyPath, timing: timing}
	for _, opt := range options {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// heldTiming is the default timing of descriptors that keep their final state.
func heldTiming() animation.Timing {
	t := animation.DefaultTiming()
	t.FillMode = animation.FillModeForwards
	t.RemovedOnCompletion = false
	return t
}

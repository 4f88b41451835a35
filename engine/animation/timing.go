package animation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cogentcore.org/core/math32"
)

// RepeatForever repeats an animation until it is removed.
var RepeatForever = float32(math.Inf(1))

var (
	// ErrNonPositiveDuration is returned when a descriptor or group has a duration <= 0.
	ErrNonPositiveDuration = errors.New("duration must be positive")

	// ErrNegativeRepeatCount is returned when a repeat count is negative or NaN.
	ErrNegativeRepeatCount = errors.New("repeat count must not be negative")
)

// FillMode controls whether a layer holds an animation's values outside its active time.
type FillMode int

const (
	// FillModeRemoved drops the animation's effect once it is no longer active.
	FillModeRemoved FillMode = iota
	// FillModeForwards holds the final value after completion.
	FillModeForwards
	// FillModeBackwards applies the first value before the animation begins.
	FillModeBackwards
	// FillModeBoth combines forwards and backwards.
	FillModeBoth
)

var fillModeNames = map[FillMode]string{
	FillModeRemoved:   "removed",
	FillModeForwards:  "forwards",
	FillModeBackwards: "backwards",
	FillModeBoth:      "both",
}

func (f FillMode) String() string {
	if s, ok := fillModeNames[f]; ok {
		return s
	}
	return fmt.Sprintf("FillMode(%d)", int(f))
}

// ParseFillMode parses a fill mode name ("removed", "forwards", "backwards", "both").
//
// Parameters:
//   - s: the fill mode name
//
// Returns:
//   - FillMode: the parsed fill mode
//   - error: error if the name is unknown
func ParseFillMode(s string) (FillMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range fillModeNames {
		if n == name {
			return f, nil
		}
	}
	return FillModeRemoved, fmt.Errorf("unknown fill mode %q", s)
}

// TimingFunctionName names one of the standard easing curves.
type TimingFunctionName string

const (
	TimingLinear        TimingFunctionName = "linear"
	TimingEaseIn        TimingFunctionName = "easeIn"
	TimingEaseOut       TimingFunctionName = "easeOut"
	TimingEaseInEaseOut TimingFunctionName = "easeInEaseOut"
	TimingDefault       TimingFunctionName = "default"
	TimingCustom        TimingFunctionName = "custom"
)

// standard cubic Bézier control points for the named curves
var namedControlPoints = map[TimingFunctionName][4]float32{
	TimingLinear:        {0, 0, 1, 1},
	TimingEaseIn:        {0.42, 0, 1, 1},
	TimingEaseOut:       {0, 0, 0.58, 1},
	TimingEaseInEaseOut: {0.42, 0, 0.58, 1},
	TimingDefault:       {0.25, 0.1, 0.25, 1},
}

// TimingFunction is an easing curve: a cubic Bézier from (0,0) to (1,1) with two control points.
type TimingFunction struct {
	// Name is the standard curve name, or TimingCustom for explicit control points.
	Name TimingFunctionName

	// P1 and P2 are the inner control points.
	P1, P2 math32.Vector2
}

// NewTimingFunction returns the standard curve with the given name.
// Unknown names resolve to the linear curve.
//
// Parameters:
//   - name: the curve name
//
// Returns:
//   - *TimingFunction: the timing function
func NewTimingFunction(name TimingFunctionName) *TimingFunction {
	cp, ok := namedControlPoints[name]
	if !ok {
		name = TimingLinear
		cp = namedControlPoints[TimingLinear]
	}
	return &TimingFunction{
		Name: name,
		P1:   math32.Vec2(cp[0], cp[1]),
		P2:   math32.Vec2(cp[2], cp[3]),
	}
}

// NewCustomTimingFunction returns a curve with explicit control points (x1,y1) and (x2,y2).
//
// Parameters:
//   - x1, y1: first control point
//   - x2, y2: second control point
//
// Returns:
//   - *TimingFunction: the timing function
func NewCustomTimingFunction(x1, y1, x2, y2 float32) *TimingFunction {
	return &TimingFunction{
		Name: TimingCustom,
		P1:   math32.Vec2(x1, y1),
		P2:   math32.Vec2(x2, y2),
	}
}

// ControlPoints returns x1, y1, x2, y2.
func (tf *TimingFunction) ControlPoints() (x1, y1, x2, y2 float32) {
	return tf.P1.X, tf.P1.Y, tf.P2.X, tf.P2.Y
}

func (tf *TimingFunction) String() string {
	if tf == nil {
		return "<nil>"
	}
	if tf.Name == TimingCustom {
		return fmt.Sprintf("custom(%g, %g, %g, %g)", tf.P1.X, tf.P1.Y, tf.P2.X, tf.P2.Y)
	}
	return string(tf.Name)
}

// ParseTimingFunctionName parses one of the standard curve names.
// Both camel case ("easeInEaseOut") and dashed ("ease-in-ease-out") spellings are accepted.
//
// Parameters:
//   - s: the curve name
//
// Returns:
//   - TimingFunctionName: the parsed name
//   - error: error if the name is unknown
func ParseTimingFunctionName(s string) (TimingFunctionName, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for name := range namedControlPoints {
		if strings.ToLower(string(name)) == key {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown timing function %q", s)
}

// Timing holds the media timing shared by descriptors and groups.
type Timing struct {
	// Duration is the length of one iteration in seconds.
	Duration float64

	// RepeatCount is the number of iterations; RepeatForever never ends. Zero plays once.
	RepeatCount float32

	// Autoreverses plays each iteration forwards then backwards.
	Autoreverses bool

	// FillMode controls the held state outside the active time.
	FillMode FillMode

	// RemovedOnCompletion removes the animation from its layer when it finishes.
	RemovedOnCompletion bool

	// TimingFunction is the easing curve; nil uses the compositor's default pacing.
	TimingFunction *TimingFunction
}

// DefaultTiming returns the timing every descriptor starts from:
// one second, one iteration, removed on completion.
//
// Returns:
//   - Timing: the default timing
func DefaultTiming() Timing {
	return Timing{
		Duration:            1,
		RepeatCount:         1,
		FillMode:            FillModeRemoved,
		RemovedOnCompletion: true,
	}
}

// Repeats reports whether the timing never finishes on its own.
func (t Timing) Repeats() bool {
	return math.IsInf(float64(t.RepeatCount), 1)
}

// ActiveDuration returns the total active time in seconds:
// duration * max(repeatCount, 1), doubled when autoreversing. It is +Inf when repeating forever.
//
// Returns:
//   - float64: the active duration in seconds
func (t Timing) ActiveDuration() float64 {
	if t.Repeats() {
		return math.Inf(1)
	}
	iterations := math.Max(float64(t.RepeatCount), 1)
	d := t.Duration * iterations
	if t.Autoreverses {
		d *= 2
	}
	return d
}

// Validate checks the duration and repeat count.
//
// Returns:
//   - error: ErrNonPositiveDuration or ErrNegativeRepeatCount, wrapped with the offending value
func (t Timing) Validate() error {
	if !(t.Duration > 0) || math.IsInf(t.Duration, 0) {
		return fmt.Errorf("%w: got %g", ErrNonPositiveDuration, t.Duration)
	}
	if math.IsNaN(float64(t.RepeatCount)) || t.RepeatCount < 0 {
		return fmt.Errorf("%w: got %g", ErrNegativeRepeatCount, t.RepeatCount)
	}
	return nil
}

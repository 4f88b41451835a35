package animation

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyTimesMismatch is returned when key times are supplied but their count differs from the value count.
	ErrKeyTimesMismatch = errors.New("key time count does not match value count")

	// ErrKeyTimesRange is returned when a key time is outside [0, 1] or key times decrease.
	ErrKeyTimesRange = errors.New("key times must be non-decreasing within [0, 1]")

	// ErrMissingValue is returned when a descriptor has nothing to animate towards.
	ErrMissingValue = errors.New("descriptor has no target value")
)

// Kind distinguishes from/to descriptors from keyframe descriptors.
type Kind int

const (
	// KindBasic animates from From (or the current value when nil) to To.
	KindBasic Kind = iota
	// KindKeyframe animates through Values, optionally paced by KeyTimes.
	KindKeyframe
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindKeyframe:
		return "keyframe"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Descriptor is one configured, not yet submitted animation of a single key path.
// Descriptors are values; once appended to a group they are not modified.
type Descriptor struct {
	// KeyPath is the animated layer property, e.g. KeyPathRotationY.
	KeyPath string

	// Kind selects between From/To and Values/KeyTimes.
	Kind Kind

	// From is the start value; nil animates from the layer's current value.
	From Value

	// To is the end value of a basic descriptor.
	To Value

	// Values are the ordered keyframe values of a keyframe descriptor.
	Values []Value

	// KeyTimes are optional normalized times in [0, 1], one per value.
	KeyTimes []float32

	Timing
}

// Validate checks the timing, that a target value exists, and that key times line up with values.
//
// Returns:
//   - error: the first problem found, or nil
func (d Descriptor) Validate() error {
	if err := d.Timing.Validate(); err != nil {
		return fmt.Errorf("%s: %w", d.KeyPath, err)
	}
	switch d.Kind {
	case KindBasic:
		if d.To == nil {
			return fmt.Errorf("%s: %w", d.KeyPath, ErrMissingValue)
		}
	case KindKeyframe:
		if len(d.Values) == 0 {
			return fmt.Errorf("%s: %w", d.KeyPath, ErrMissingValue)
		}
		if len(d.KeyTimes) == 0 {
			return nil
		}
		if len(d.KeyTimes) != len(d.Values) {
			return fmt.Errorf("%s: %w: %d key times for %d values", d.KeyPath, ErrKeyTimesMismatch, len(d.KeyTimes), len(d.Values))
		}
		prev := float32(0)
		for i, kt := range d.KeyTimes {
			if !(kt >= prev && kt <= 1) {
				return fmt.Errorf("%s: %w: key time %d is %g", d.KeyPath, ErrKeyTimesRange, i, kt)
			}
			prev = kt
		}
	}
	return nil
}

// Clone returns a copy whose slices do not alias d's.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.Values != nil {
		out.Values = append([]Value(nil), d.Values...)
	}
	if d.KeyTimes != nil {
		out.KeyTimes = append([]float32(nil), d.KeyTimes...)
	}
	return out
}

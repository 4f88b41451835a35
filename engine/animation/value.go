package animation

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint/ppath"
	"github.com/Carmen-Shannon/oxy-animate/common"
)

// Value is a from, to, or keyframe value carried by a Descriptor.
// The set of implementations is closed: Scalar, Point, Transform and PathValue.
type Value interface {
	isValue()
}

// Scalar is a single animatable number such as a rotation angle in radians or a scale factor.
type Scalar float64

// Point is a 2D offset or position.
type Point math32.Vector2

// Transform is a full 4x4 layer transform.
type Transform common.Transform3D

// PathValue is a vector path used by path morph descriptors.
type PathValue ppath.Path

func (Scalar) isValue()    {}
func (Point) isValue()     {}
func (Transform) isValue() {}
func (PathValue) isValue() {}

// Vector2 returns the point as a math32.Vector2.
func (p Point) Vector2() math32.Vector2 {
	return math32.Vector2(p)
}

// Transform3D returns the transform as a common.Transform3D.
func (t Transform) Transform3D() common.Transform3D {
	return common.Transform3D(t)
}

// Path returns the path as a ppath.Path.
func (p PathValue) Path() ppath.Path {
	return ppath.Path(p)
}

// Key paths recognized by the layer compositor.
const (
	KeyPathRotationX   = "transform.rotation.x"
	KeyPathRotationY   = "transform.rotation.y"
	KeyPathRotationZ   = "transform.rotation.z"
	KeyPathTranslation = "transform.translation"
	KeyPathScale       = "transform.scale"
	KeyPathTransform   = "transform"
	KeyPathPath        = "path"
	KeyPathPosition    = "position"
)

// GroupKey is the registry key every committed group is added under.
// Adding a second group under the same key replaces the running one.
const GroupKey = "animationGroup"

// Axis names a rotation axis.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// RotationKeyPath returns the rotation key path for the axis.
//
// Parameters:
//   - axis: the rotation axis
//
// Returns:
//   - string: "transform.rotation.<axis>"
func RotationKeyPath(axis Axis) string {
	return "transform.rotation." + string(axis)
}

// ParseAxis parses "x", "y" or "z" (case-insensitive).
//
// Parameters:
//   - s: the axis name
//
// Returns:
//   - Axis: the parsed axis
//   - error: error if the name is not a known axis
func ParseAxis(s string) (Axis, error) {
	switch a := Axis(strings.ToLower(strings.TrimSpace(s))); a {
	case AxisX, AxisY, AxisZ:
		return a, nil
	}
	return "", fmt.Errorf("unknown rotation axis %q", s)
}

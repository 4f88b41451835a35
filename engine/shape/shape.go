package shape

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
)

// Kind is the tag selecting which path the generator builds.
type Kind int

const (
	KindOval Kind = iota
	KindRect
	KindArc
	KindTriangle
	KindStar
	KindHeart
	KindArrow
	KindBlob
)

var kindNames = [...]string{
	KindOval:     "oval",
	KindRect:     "rect",
	KindArc:      "arc",
	KindTriangle: "triangle",
	KindStar:     "star",
	KindHeart:    "heart",
	KindArrow:    "arrow",
	KindBlob:     "blob",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a shape name such as "star" or "heart" (case-insensitive).
//
// Parameters:
//   - s: the shape name
//
// Returns:
//   - Kind: the parsed kind
//   - error: error if the name is unknown
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindOval, fmt.Errorf("unknown shape %q", s)
}

// Spec describes the end shape of a path morph. Only the fields relevant to Kind are read.
type Spec struct {
	Kind Kind

	// CornerRadius is the uniform corner radius of KindRect.
	CornerRadius float32

	// ArcCenter, Radius, StartAngle, EndAngle and Clockwise define KindArc.
	// The arc center is independent of the generator's bounds and center.
	ArcCenter  math32.Vector2
	Radius     float32
	StartAngle float32
	EndAngle   float32
	Clockwise  bool
}

// Oval returns the spec of an ellipse inscribed in the bounds.
func Oval() Spec { return Spec{Kind: KindOval} }

// Rect returns the spec of the bounds rectangle with uniform corner radius r.
//
// Parameters:
//   - r: corner radius, 0 for square corners
//
// Returns:
//   - Spec: the rect spec
func Rect(r float32) Spec { return Spec{Kind: KindRect, CornerRadius: r} }

// Arc returns the spec of an open circular arc. Angles are in radians.
//
// Parameters:
//   - center: arc center
//   - radius: arc radius
//   - start: start angle
//   - end: end angle
//   - clockwise: winding direction from start to end
//
// Returns:
//   - Spec: the arc spec
func Arc(center math32.Vector2, radius, start, end float32, clockwise bool) Spec {
	return Spec{
		Kind:       KindArc,
		ArcCenter:  center,
		Radius:     radius,
		StartAngle: start,
		EndAngle:   end,
		Clockwise:  clockwise,
	}
}

func Triangle() Spec { return Spec{Kind: KindTriangle} }

func Star() Spec { return Spec{Kind: KindStar} }

func Heart() Spec { return Spec{Kind: KindHeart} }

func Arrow() Spec { return Spec{Kind: KindArrow} }

// Blob returns the spec of the randomized eight point blob.
func Blob() Spec { return Spec{Kind: KindBlob} }

func (s Spec) String() string {
	switch s.Kind {
	case KindRect:
		return fmt.Sprintf("rect(r=%g)", s.CornerRadius)
	case KindArc:
		return fmt.Sprintf("arc(c=(%g,%g) r=%g %g..%g cw=%t)", s.ArcCenter.X, s.ArcCenter.Y, s.Radius, s.StartAngle, s.EndAngle, s.Clockwise)
	}
	return s.Kind.String()
}

package shape

import (
	"cogentcore.org/lab/base/randx"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint/ppath"
)

const (
	starPoints       = 5
	starInnerRatio   = 0.4
	blobPoints       = 8
	blobVariationPct = 0.2
)

// Generate builds the path for spec inside bounds.
// Star and blob are placed around center; every other kind is laid out from bounds,
// except arcs which use the spec's own center.
// Every kind except KindBlob is deterministic. Blob perturbations are drawn from rnd;
// a nil rnd uses the global source.
//
// Parameters:
//   - spec: the shape to build
//   - bounds: the bounding rectangle, Min is the top-left corner
//   - center: the center used by star and blob
//   - rnd: the randomness source for blob, may be nil
//
// Returns:
//   - ppath.Path: the generated path, closed for every kind except arc
func Generate(spec Spec, bounds math32.Box2, center math32.Vector2, rnd randx.Rand) ppath.Path {
	p := ppath.New()
	x, y := bounds.Min.X, bounds.Min.Y
	size := bounds.Size()
	w, h := size.X, size.Y

	switch spec.Kind {
	case KindOval:
		c := bounds.Center()
		p.Ellipse(c.X, c.Y, w/2, h/2)

	case KindRect:
		p.RoundedRectangle(x, y, w, h, spec.CornerRadius)

	case KindArc:
		arc(p, spec.ArcCenter, spec.Radius, spec.StartAngle, spec.EndAngle, spec.Clockwise)

	case KindTriangle:
		p.MoveTo(x+w/2, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.Close()

	case KindStar:
		outer := math32.Min(w, h) / 2
		inner := outer * starInnerRatio
		for i := 0; i < starPoints*2; i++ {
			r := outer
			if i%2 == 1 {
				r = inner
			}
			pt := polar(center, r, float32(i)*math32.Pi/starPoints)
			if i == 0 {
				p.MoveTo(pt.X, pt.Y)
			} else {
				p.LineTo(pt.X, pt.Y)
			}
		}
		p.Close()

	case KindHeart:
		p.MoveTo(x+w/2, y+h)
		p.QuadTo(x+w/4, y+h/2, x, y+h/4)
		arc(p, math32.Vec2(x+w/4, y+h/4), w/4, math32.Pi, 0, false)
		arc(p, math32.Vec2(x+3*w/4, y+h/4), w/4, math32.Pi, 0, false)
		p.QuadTo(x+3*w/4, y+h/2, x+w/2, y+h)
		p.Close()

	case KindArrow:
		p.MoveTo(x+w/2, y)
		p.LineTo(x+w, y+h/2)
		p.LineTo(x+3*w/4, y+h/2)
		p.LineTo(x+3*w/4, y+h)
		p.LineTo(x+w/4, y+h)
		p.LineTo(x+w/4, y+h/2)
		p.LineTo(x, y+h/2)
		p.Close()

	case KindBlob:
		if rnd == nil {
			rnd = randx.NewGlobalRand()
		}
		radius := math32.Min(w, h) / 2
		variation := radius * blobVariationPct
		jitter := func() float32 {
			return float32(rnd.Float64()*2-1) * variation
		}
		step := float32(2*math32.Pi) / blobPoints
		for i := 0; i < blobPoints; i++ {
			pt := polar(center, radius+jitter(), float32(i)*step)
			if i == 0 {
				p.MoveTo(pt.X, pt.Y)
				continue
			}
			prevAngle := float32(i-1) * step
			sin, cos := math32.Sincos(prevAngle)
			prev := math32.Vec2(
				center.X+(radius+jitter())*cos,
				center.Y+(radius+jitter())*sin,
			)
			ctrl := prev.Add(pt).MulScalar(0.5)
			p.QuadTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		}
		p.Close()
	}
	return *p
}

// polar returns c + r*(cos a, sin a).
func polar(c math32.Vector2, r, a float32) math32.Vector2 {
	sin, cos := math32.Sincos(a)
	return math32.Vec2(c.X+r*cos, c.Y+r*sin)
}

// arc appends a circular arc from start to end. A clockwise arc runs with decreasing
// angle and the end is wrapped below the start; otherwise the end is wrapped above it.
// The pen is moved, or a line is drawn, to the arc start first.
func arc(p *ppath.Path, c math32.Vector2, r, start, end float32, clockwise bool) {
	if r <= 0 {
		return
	}
	if clockwise {
		for end > start {
			end -= 2 * math32.Pi
		}
	} else {
		for end < start {
			end += 2 * math32.Pi
		}
	}
	from := polar(c, r, start)
	if len(*p) == 0 {
		p.MoveTo(from.X, from.Y)
	} else {
		p.LineTo(from.X, from.Y)
	}
	if start == end {
		return
	}
	p.Arc(r, r, 0, start, end)
}

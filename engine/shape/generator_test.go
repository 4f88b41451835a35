package shape

import (
	"testing"

	"cogentcore.org/lab/base/randx"
	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint/ppath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	box100    = math32.B2(0, 0, 100, 100)
	center100 = math32.Vec2(50, 50)
)

// vertices returns the end points of every MoveTo and LineTo in p and whether p ends closed.
func vertices(p ppath.Path) ([]math32.Vector2, bool) {
	var pts []math32.Vector2
	closed := false
	s := p.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case ppath.MoveTo, ppath.LineTo:
			pts = append(pts, s.End())
		case ppath.Close:
			closed = true
		}
	}
	return pts, closed
}

// samples evaluates every drawn segment of p at n+1 evenly spaced parameters.
func samples(p ppath.Path, n int) []math32.Vector2 {
	var pts []math32.Vector2
	s := p.Scanner()
	for s.Scan() {
		p0, p3 := s.Start(), s.End()
		for i := 0; i <= n; i++ {
			t := float32(i) / float32(n)
			u := 1 - t
			switch s.Cmd() {
			case ppath.LineTo, ppath.Close:
				pts = append(pts, p0.MulScalar(u).Add(p3.MulScalar(t)))
			case ppath.QuadTo:
				pts = append(pts, p0.MulScalar(u*u).Add(s.CP1().MulScalar(2*u*t)).Add(p3.MulScalar(t*t)))
			case ppath.CubeTo:
				pts = append(pts, p0.MulScalar(u*u*u).
					Add(s.CP1().MulScalar(3*u*u*t)).
					Add(s.CP2().MulScalar(3*u*t*t)).
					Add(p3.MulScalar(t*t*t)))
			}
		}
	}
	return pts
}

func sampleBounds(pts []math32.Vector2) math32.Box2 {
	b := math32.B2(pts[0].X, pts[0].Y, pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		b.Min = b.Min.Min(pt)
		b.Max = b.Max.Max(pt)
	}
	return b
}

func assertBox(t *testing.T, want, got math32.Box2, tol float32) {
	t.Helper()
	tolassert.EqualTol(t, want.Min.X, got.Min.X, tol)
	tolassert.EqualTol(t, want.Min.Y, got.Min.Y, tol)
	tolassert.EqualTol(t, want.Max.X, got.Max.X, tol)
	tolassert.EqualTol(t, want.Max.Y, got.Max.Y, tol)
}

func TestStarVertices(t *testing.T) {
	p := Generate(Star(), box100, center100, nil)
	pts, closed := vertices(p)

	require.Len(t, pts, 10)
	assert.True(t, closed)
	for i, pt := range pts {
		want := float32(50)
		if i%2 == 1 {
			want = 20
		}
		tolassert.EqualTol(t, want, pt.Sub(center100).Length(), 1e-3)
	}
	tolassert.EqualTol(t, float32(100), pts[0].X, 1e-4)
	tolassert.EqualTol(t, float32(50), pts[0].Y, 1e-4)
}

func TestRectWithoutRadiusIsPlainRectangle(t *testing.T) {
	bounds := math32.B2(10, 20, 110, 80)
	got := Generate(Rect(0), bounds, bounds.Center(), nil)
	want := ppath.New().Rectangle(10, 20, 100, 60)
	assert.True(t, got.Equals(*want))

	rounded := Generate(Rect(8), bounds, bounds.Center(), nil)
	assert.True(t, rounded.Equals(*ppath.New().RoundedRectangle(10, 20, 100, 60, 8)))
	assert.False(t, rounded.Equals(got))
}

func TestDeterministicShapes(t *testing.T) {
	specs := []Spec{
		Oval(),
		Rect(0),
		Rect(12),
		Arc(math32.Vec2(30, 30), 20, 0, math32.Pi, true),
		Triangle(),
		Star(),
		Heart(),
		Arrow(),
	}
	for _, spec := range specs {
		t.Run(spec.String(), func(t *testing.T) {
			a := Generate(spec, box100, center100, randx.NewSysRand(1))
			b := Generate(spec, box100, center100, randx.NewSysRand(2))
			assert.False(t, a.Empty())
			assert.True(t, a.Equals(b))
		})
	}
}

func TestTriangleAndArrowVertices(t *testing.T) {
	tri, closed := vertices(Generate(Triangle(), box100, center100, nil))
	assert.True(t, closed)
	assert.Equal(t, []math32.Vector2{{X: 50, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}}, tri)

	arrow, closed := vertices(Generate(Arrow(), math32.B2(0, 0, 40, 80), center100, nil))
	assert.True(t, closed)
	assert.Equal(t, []math32.Vector2{
		{X: 20, Y: 0},
		{X: 40, Y: 40},
		{X: 30, Y: 40},
		{X: 30, Y: 80},
		{X: 10, Y: 80},
		{X: 10, Y: 40},
		{X: 0, Y: 40},
	}, arrow)
}

func TestHeartIsClosedAndStartsAtBottomCenter(t *testing.T) {
	p := Generate(Heart(), box100, center100, nil)
	assert.True(t, p.Closed())
	tolassert.EqualTol(t, float32(50), p.StartPos().X, 1e-4)
	tolassert.EqualTol(t, float32(100), p.StartPos().Y, 1e-4)
}

func TestHeartLobesAndControlPoints(t *testing.T) {
	p := Generate(Heart(), box100, center100, nil)
	left, right := math32.Vec2(25, 25), math32.Vec2(75, 25)

	var quads []ppath.Scanner
	var cmds []float32
	s := p.Scanner()
	for s.Scan() {
		cmds = append(cmds, s.Cmd())
		switch s.Cmd() {
		case ppath.QuadTo:
			quads = append(quads, *s)
		case ppath.CubeTo:
			end := s.End()
			lobe := right
			if end.X <= 50+1e-3 {
				lobe = left
			}
			tolassert.EqualTol(t, float32(25), end.Sub(lobe).Length(), 1e-3)
			assert.LessOrEqual(t, end.Y, float32(25)+1e-3, "lobes run over the top")
		}
	}
	require.NotEmpty(t, cmds)
	assert.Equal(t, ppath.MoveTo, cmds[0])
	assert.Equal(t, ppath.Close, cmds[len(cmds)-1])

	require.Len(t, quads, 2)
	assert.Equal(t, math32.Vec2(25, 50), quads[0].CP1())
	assert.Equal(t, math32.Vec2(0, 25), quads[0].End())
	assert.Equal(t, math32.Vec2(75, 50), quads[1].CP1())
	assert.Equal(t, math32.Vec2(50, 100), quads[1].End())

	pts := samples(p, 32)
	assertBox(t, box100, sampleBounds(pts), 0.05)
	var topLeft, topRight bool
	for _, pt := range pts {
		if pt.Y < 0.05 {
			topLeft = topLeft || math32.Abs(pt.X-25) < 1
			topRight = topRight || math32.Abs(pt.X-75) < 1
		}
	}
	assert.True(t, topLeft, "left lobe peaks at (25, 0)")
	assert.True(t, topRight, "right lobe peaks at (75, 0)")
}

func TestOvalIsInscribedInBounds(t *testing.T) {
	bounds := math32.B2(10, 20, 110, 80)
	p := Generate(Oval(), bounds, center100, nil)
	assert.True(t, p.Closed())

	pts := samples(p, 32)
	assertBox(t, bounds, sampleBounds(pts), 0.05)
	for _, pt := range pts {
		dx, dy := (pt.X-60)/50, (pt.Y-50)/30
		tolassert.EqualTol(t, float32(1), dx*dx+dy*dy, 0.01)
	}
}

func TestArcWinding(t *testing.T) {
	c := math32.Vec2(50, 50)
	tests := []struct {
		name      string
		clockwise bool
		bounds    math32.Box2
	}{
		{"clockwise runs through the top and left", true, math32.B2(30, 30, 70, 70)},
		{"counter clockwise takes the short way", false, math32.B2(50, 50, 70, 70)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Generate(Arc(c, 20, 0, math32.Pi/2, tt.clockwise), box100, center100, nil)
			pts := samples(p, 32)
			require.Greater(t, len(pts), 2)
			for _, pt := range pts {
				tolassert.EqualTol(t, float32(20), pt.Sub(c).Length(), 0.05)
			}
			assertBox(t, tt.bounds, sampleBounds(pts), 0.05)

			tolassert.EqualTol(t, float32(70), p.StartPos().X, 1e-3)
			tolassert.EqualTol(t, float32(50), p.StartPos().Y, 1e-3)
			tolassert.EqualTol(t, float32(50), p.Pos().X, 1e-3)
			tolassert.EqualTol(t, float32(70), p.Pos().Y, 1e-3)
			assert.Equal(t, tt.clockwise, pts[1].Y < 50, "clockwise leaves the start with decreasing angle")
		})
	}
}

func TestArcIsOpen(t *testing.T) {
	c := math32.Vec2(200, 200)
	p := Generate(Arc(c, 10, 0, math32.Pi/2, false), box100, center100, nil)
	assert.False(t, p.Closed())
	tolassert.EqualTol(t, float32(210), p.StartPos().X, 1e-4)
	tolassert.EqualTol(t, float32(200), p.StartPos().Y, 1e-4)
	tolassert.EqualTol(t, float32(200), p.Pos().X, 1e-3)
	tolassert.EqualTol(t, float32(210), p.Pos().Y, 1e-3)

	assert.True(t, Generate(Arc(c, 0, 0, 1, false), box100, center100, nil).Empty())
}

func TestBlobStaysWithinVariation(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		p := Generate(Blob(), box100, center100, randx.NewSysRand(seed))
		assert.True(t, p.Closed())

		s := p.Scanner()
		segments := 0
		for s.Scan() {
			if s.Cmd() == ppath.Close {
				continue
			}
			r := s.End().Sub(center100).Length()
			assert.GreaterOrEqual(t, r, float32(40)-1e-3)
			assert.LessOrEqual(t, r, float32(60)+1e-3)
			segments++
		}
		assert.Equal(t, 8, segments)
	}
}

func TestBlobSeedReproducible(t *testing.T) {
	a := Generate(Blob(), box100, center100, randx.NewSysRand(42))
	b := Generate(Blob(), box100, center100, randx.NewSysRand(42))
	c := Generate(Blob(), box100, center100, randx.NewSysRand(43))
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"oval", "rect", "arc", "triangle", "star", "heart", "arrow", "blob"} {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.String())
	}
	k, err := ParseKind(" Heart ")
	require.NoError(t, err)
	assert.Equal(t, KindHeart, k)
	_, err = ParseKind("hexagon")
	assert.Error(t, err)
}

package layer

import (
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint/ppath"
	"github.com/Carmen-Shannon/oxy-animate/common"
	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(timing animation.Timing, d *animation.Delegate, descriptors ...animation.Descriptor) *animation.Group {
	return animation.NewGroup(descriptors, timing, d)
}

func kinds(events []animation.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Kind.String()
		if e.Kind == animation.EventStop && e.Finished {
			out[i] += ":finished"
		}
	}
	return out
}

func TestNewLayerDefaults(t *testing.T) {
	a := NewLayer(WithName("a"), WithBounds(math32.B2(0, 0, 10, 20)), WithPosition(3, 4))
	b := NewLayer()

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, math32.Vec2(10, 20), a.Bounds().Size())
	assert.Equal(t, math32.Vec2(3, 4), a.Position())
	assert.True(t, a.Transform().IsIdentity())
	assert.True(t, a.SublayerTransform().IsIdentity())
	assert.Nil(t, a.SuperLayer())
	assert.Equal(t, uint64(99), NewLayer(WithID(99)).ID())
}

func TestSublayers(t *testing.T) {
	child := NewLayer(WithName("child"))
	first := NewLayer(WithSublayers(child))
	require.Equal(t, first, child.SuperLayer())

	second := NewLayer()
	second.AddSublayer(child)
	assert.Empty(t, first.Sublayers())
	assert.Equal(t, []Layer{child}, second.Sublayers())
	assert.Equal(t, second, child.SuperLayer())

	child.RemoveFromSuperLayer()
	assert.Nil(t, child.SuperLayer())
	assert.Empty(t, second.Sublayers())
	assert.NotPanics(t, child.RemoveFromSuperLayer)

	second.AddSublayer(second)
	assert.Empty(t, second.Sublayers())
}

func TestEffectiveTransformUsesSuperSublayerTransform(t *testing.T) {
	perspective := common.Identity3D()
	perspective.Set(3, 4, -1.0/500)

	child := NewLayer()
	parent := NewLayer(WithSublayerTransform(perspective), WithSublayers(child))

	assert.Equal(t, perspective, child.EffectiveTransform())
	assert.True(t, parent.EffectiveTransform().IsIdentity())
}

func TestAdvanceLifecycle(t *testing.T) {
	var calls []string
	d := &animation.Delegate{}
	d.SetStart(func() { calls = append(calls, "start") })
	d.SetCompletion(func() { calls = append(calls, "done") })

	l := NewLayer()
	timing := animation.DefaultTiming()
	timing.Duration = 1
	l.AddAnimation(animation.GroupKey, group(timing, d))
	assert.Equal(t, 1, l.ActiveAnimations())

	ev := l.Advance(0.25)
	assert.Equal(t, []string{"start"}, kinds(ev))
	for _, e := range ev {
		e.Deliver()
	}
	assert.Empty(t, l.Advance(0.5))

	ev = l.Advance(0.5)
	assert.Equal(t, []string{"stop:finished"}, kinds(ev))
	for _, e := range ev {
		e.Deliver()
	}
	assert.Equal(t, []string{"start", "done"}, calls)
	assert.Nil(t, l.Animation(animation.GroupKey), "removed on completion")
	assert.Equal(t, 0, l.ActiveAnimations())
	assert.Empty(t, l.Advance(1))
}

func TestRepeatForeverNeverFinishes(t *testing.T) {
	l := NewLayer()
	timing := animation.DefaultTiming()
	timing.RepeatCount = animation.RepeatForever
	l.AddAnimation("spin", group(timing, nil))

	l.Advance(0)
	for i := 0; i < 100; i++ {
		assert.Empty(t, l.Advance(10))
	}
	assert.Equal(t, 1, l.ActiveAnimations())
}

func TestReplaceStopsPreviousGroup(t *testing.T) {
	l := NewLayer()
	first := group(animation.DefaultTiming(), nil)
	second := group(animation.DefaultTiming(), nil)

	l.AddAnimation(animation.GroupKey, first)
	l.Advance(0)
	l.AddAnimation(animation.GroupKey, second)
	assert.Same(t, second, l.Animation(animation.GroupKey))
	assert.Equal(t, []string{animation.GroupKey}, l.AnimationKeys())

	ev := l.Advance(0)
	require.Len(t, ev, 2)
	assert.Equal(t, animation.EventStop, ev[0].Kind)
	assert.False(t, ev[0].Finished)
	assert.Same(t, first, ev[0].Group)
	assert.Equal(t, animation.EventStart, ev[1].Kind)
	assert.Same(t, second, ev[1].Group)
}

func TestRemoveAnimations(t *testing.T) {
	l := NewLayer()
	l.AddAnimation("a", group(animation.DefaultTiming(), nil))
	l.AddAnimation("b", group(animation.DefaultTiming(), nil))
	l.AddAnimation("c", group(animation.DefaultTiming(), nil))
	assert.Equal(t, []string{"a", "b", "c"}, l.AnimationKeys())

	l.RemoveAnimation("b")
	l.RemoveAnimation("missing")
	assert.Equal(t, []string{"a", "c"}, l.AnimationKeys())

	l.RemoveAllAnimations()
	assert.Empty(t, l.AnimationKeys())
	assert.Equal(t, []string{"stop", "stop", "stop"}, kinds(l.Advance(0)))
}

func TestFinishedHeldGroupWritesFinalValues(t *testing.T) {
	start := *ppath.New().Rectangle(0, 0, 10, 10)
	end := *ppath.New().Ellipse(5, 5, 5, 5)
	s := NewShapeLayer(WithPath(start))
	assert.True(t, s.Path().Equals(start))

	hold := animation.DefaultTiming()
	hold.FillMode = animation.FillModeForwards
	hold.RemovedOnCompletion = false

	// children keep the default timing; the holding group clamps them
	s.AddAnimation(animation.GroupKey, group(hold, nil,
		animation.Descriptor{KeyPath: animation.KeyPathPath, From: animation.PathValue(start), To: animation.PathValue(end), Timing: animation.DefaultTiming()},
		animation.Descriptor{
			KeyPath: animation.KeyPathPosition,
			Kind:    animation.KindKeyframe,
			Values:  []animation.Value{animation.Point{X: 1, Y: 1}, animation.Point{X: 7, Y: 9}},
			Timing:  animation.DefaultTiming(),
		},
	))
	s.Advance(0)
	ev := s.Advance(1)
	assert.Equal(t, []string{"stop:finished"}, kinds(ev))

	assert.True(t, s.Path().Equals(end))
	assert.Equal(t, math32.Vec2(7, 9), s.Position())
	assert.NotNil(t, s.Animation(animation.GroupKey), "held groups stay registered")
	assert.Equal(t, 0, s.ActiveAnimations())

	s.RemoveAnimation(animation.GroupKey)
	assert.Empty(t, s.Advance(0), "finished groups do not stop twice")
}

func TestHeldAutoreversingGroupEndsOnStartValues(t *testing.T) {
	start := *ppath.New().Rectangle(0, 0, 10, 10)
	end := *ppath.New().Ellipse(5, 5, 5, 5)
	shear := common.Identity3D()
	shear.Set(2, 1, 0.5)

	tests := []struct {
		name      string
		group     bool
		child     bool
		wantPath  ppath.Path
		wantPoint math32.Vector2
	}{
		{"forwards", false, false, end, math32.Vec2(7, 9)},
		{"group autoreverses", true, false, start, math32.Vec2(1, 1)},
		{"child autoreverses", false, true, start, math32.Vec2(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShapeLayer(WithPath(*ppath.New().Rectangle(0, 0, 1, 1)), WithPosition(-1, -1))

			hold := animation.DefaultTiming()
			hold.FillMode = animation.FillModeBoth
			hold.RemovedOnCompletion = false
			hold.Autoreverses = tt.group
			child := animation.DefaultTiming()
			child.Autoreverses = tt.child

			s.AddAnimation(animation.GroupKey, group(hold, nil,
				animation.Descriptor{KeyPath: animation.KeyPathPath, From: animation.PathValue(start), To: animation.PathValue(end), Timing: child},
				animation.Descriptor{
					KeyPath: animation.KeyPathPosition,
					Kind:    animation.KindKeyframe,
					Values:  []animation.Value{animation.Point{X: 1, Y: 1}, animation.Point{X: 7, Y: 9}},
					Timing:  child,
				},
				animation.Descriptor{KeyPath: animation.KeyPathTransform, To: animation.Transform(shear), Timing: child},
			))
			s.Advance(0)
			require.Equal(t, []string{"stop:finished"}, kinds(s.Advance(2)))

			assert.True(t, s.Path().Equals(tt.wantPath))
			assert.Equal(t, tt.wantPoint, s.Position())
			if tt.group || tt.child {
				assert.True(t, s.Transform().IsIdentity(), "a nil start value leaves the layer untouched")
			} else {
				assert.Equal(t, shear, s.Transform())
			}
		})
	}
}

func TestWalkAndAdvanceTree(t *testing.T) {
	leaf := NewLayer(WithName("leaf"))
	mid := NewLayer(WithName("mid"), WithSublayers(leaf))
	other := NewLayer(WithName("other"))
	root := NewLayer(WithName("root"), WithSublayers(mid, other))

	var names []string
	Walk(root, func(l Layer) bool {
		names = append(names, l.Name())
		return l.Name() != "mid"
	})
	assert.Equal(t, []string{"root", "mid", "other"}, names)

	leaf.AddAnimation("a", group(animation.DefaultTiming(), nil))
	other.AddAnimation("b", group(animation.DefaultTiming(), nil))
	assert.Equal(t, 2, ActiveTree(root))

	ev := AdvanceTree(root, 0)
	require.Len(t, ev, 2)
	assert.Equal(t, "a", ev[0].Key)
	assert.Equal(t, "b", ev[1].Key)

	Walk(nil, func(Layer) bool { t.Fatal("visited nil"); return true })
}

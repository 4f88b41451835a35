package layer

import (
	"sync"
	"sync/atomic"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint/ppath"
	"github.com/Carmen-Shannon/oxy-animate/common"
	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
)

var nextID atomic.Uint64

type entry struct {
	key      string
	group    *animation.Group
	elapsed  float64
	started  bool
	finished bool
}

type layer struct {
	mu sync.RWMutex

	id                uint64
	name              string
	bounds            math32.Box2
	position          math32.Vector2
	transform         common.Transform3D
	sublayerTransform common.Transform3D
	path              ppath.Path

	self      Layer
	super     Layer
	sublayers []Layer

	// registry in insertion order
	entries []*entry
	// stop events of replaced or removed groups, emitted on the next Advance
	pending []animation.Event
}

// Layer is a node in the layer tree that animation groups are attached to.
// The layer only tracks the lifecycle of its groups; it does not interpolate values.
// Groups whose timing holds the final state (not removed on completion, fill forwards or both)
// write their final position, transform and path values to the layer when they finish.
type Layer interface {
	// ID returns the layer's unique identifier.
	//
	// Returns:
	//   - uint64: the layer ID
	ID() uint64

	// Name returns the layer's name, may be empty.
	//
	// Returns:
	//   - string: the layer name
	Name() string

	// Bounds returns the layer's local bounding box.
	//
	// Returns:
	//   - math32.Box2: the bounds
	Bounds() math32.Box2

	// SetBounds sets the layer's local bounding box.
	//
	// Parameters:
	//   - b: the new bounds
	SetBounds(b math32.Box2)

	// Position returns the layer's position in its super layer.
	//
	// Returns:
	//   - math32.Vector2: the position
	Position() math32.Vector2

	// SetPosition sets the layer's position in its super layer.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p math32.Vector2)

	// Transform returns the layer's own transform.
	//
	// Returns:
	//   - common.Transform3D: the transform
	Transform() common.Transform3D

	// SetTransform sets the layer's own transform.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t common.Transform3D)

	// SublayerTransform returns the transform applied to every sublayer, e.g. perspective.
	//
	// Returns:
	//   - common.Transform3D: the sublayer transform
	SublayerTransform() common.Transform3D

	// SetSublayerTransform sets the transform applied to every sublayer.
	//
	// Parameters:
	//   - t: the new sublayer transform
	SetSublayerTransform(t common.Transform3D)

	// SuperLayer returns the parent layer, or nil for a root layer.
	//
	// Returns:
	//   - Layer: the parent or nil
	SuperLayer() Layer

	// Sublayers returns a snapshot of the child layers in insertion order.
	//
	// Returns:
	//   - []Layer: the child layers
	Sublayers() []Layer

	// AddSublayer appends child to this layer, detaching it from its previous parent first.
	//
	// Parameters:
	//   - child: the layer to add
	AddSublayer(child Layer)

	// RemoveFromSuperLayer detaches the layer from its parent. It is a no-op for root layers.
	RemoveFromSuperLayer()

	// AddAnimation registers g under key. A group already registered under key is replaced
	// and receives a stop event with finished set to false on the next Advance.
	//
	// Parameters:
	//   - key: the registry key
	//   - g: the group to run
	AddAnimation(key string, g *animation.Group)

	// RemoveAnimation removes the group registered under key, if any.
	// The group receives a stop event with finished set to false on the next Advance.
	//
	// Parameters:
	//   - key: the registry key
	RemoveAnimation(key string)

	// RemoveAllAnimations removes every registered group.
	RemoveAllAnimations()

	// Animation returns the group registered under key, or nil.
	//
	// Parameters:
	//   - key: the registry key
	//
	// Returns:
	//   - *animation.Group: the registered group or nil
	Animation(key string) *animation.Group

	// AnimationKeys returns the registry keys in insertion order.
	//
	// Returns:
	//   - []string: the keys
	AnimationKeys() []string

	// ActiveAnimations returns the number of registered groups that have not finished.
	//
	// Returns:
	//   - int: the active group count
	ActiveAnimations() int

	// EffectiveTransform returns the super layer's sublayer transform concatenated with
	// this layer's transform.
	//
	// Returns:
	//   - common.Transform3D: the effective transform
	EffectiveTransform() common.Transform3D

	// Advance moves every registered group forward by dt seconds and returns the lifecycle
	// events produced, in registry order after any pending stop events. A group starts on the
	// first Advance after it was added and stops once its active duration has elapsed.
	// Advance does not descend into sublayers.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - []animation.Event: the events to deliver
	Advance(dt float64) []animation.Event

	setSuperLayer(parent Layer)
}

var _ Layer = &layer{}

// NewLayer creates a new Layer configured with the given options.
//
// Parameters:
//   - options: functional options to configure the layer
//
// Returns:
//   - Layer: the newly created layer
func NewLayer(options ...LayerBuilderOption) Layer {
	l := newLayer(options...)
	l.adopt(l)
	return l
}

func newLayer(options ...LayerBuilderOption) *layer {
	l := &layer{
		id:                nextID.Add(1),
		transform:         common.Identity3D(),
		sublayerTransform: common.Identity3D(),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// adopt records the outermost value wrapping l and parents the sublayers given as options.
func (l *layer) adopt(self Layer) {
	l.self = self
	for _, c := range l.sublayers {
		c.setSuperLayer(self)
	}
}

func (l *layer) ID() uint64 {
	return l.id
}

func (l *layer) Name() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.name
}

func (l *layer) Bounds() math32.Box2 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.bounds
}

func (l *layer) SetBounds(b math32.Box2) {
	l.mu.Lock()
	l.bounds = b
	l.mu.Unlock()
}

func (l *layer) Position() math32.Vector2 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *layer) SetPosition(p math32.Vector2) {
	l.mu.Lock()
	l.position = p
	l.mu.Unlock()
}

func (l *layer) Transform() common.Transform3D {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.transform
}

func (l *layer) SetTransform(t common.Transform3D) {
	l.mu.Lock()
	l.transform = t
	l.mu.Unlock()
}

func (l *layer) SublayerTransform() common.Transform3D {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sublayerTransform
}

func (l *layer) SetSublayerTransform(t common.Transform3D) {
	l.mu.Lock()
	l.sublayerTransform = t
	l.mu.Unlock()
}

func (l *layer) SuperLayer() Layer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.super
}

func (l *layer) Sublayers() []Layer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Layer(nil), l.sublayers...)
}

func (l *layer) AddSublayer(child Layer) {
	if child == nil || child == l.self {
		return
	}
	child.RemoveFromSuperLayer()
	l.mu.Lock()
	l.sublayers = append(l.sublayers, child)
	l.mu.Unlock()
	child.setSuperLayer(l.self)
}

func (l *layer) RemoveFromSuperLayer() {
	l.mu.Lock()
	parent := l.super
	l.super = nil
	l.mu.Unlock()
	if parent == nil {
		return
	}
	parent.(interface{ removeSublayer(Layer) }).removeSublayer(l.self)
}

func (l *layer) removeSublayer(child Layer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, s := range l.sublayers {
		if s == child {
			l.sublayers = append(l.sublayers[:i], l.sublayers[i+1:]...)
			return
		}
	}
}

func (l *layer) setSuperLayer(parent Layer) {
	l.mu.Lock()
	l.super = parent
	l.mu.Unlock()
}

func (l *layer) AddAnimation(key string, g *animation.Group) {
	if g == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(key); i >= 0 {
		l.stopLocked(i)
	}
	l.entries = append(l.entries, &entry{key: key, group: g})
}

func (l *layer) RemoveAnimation(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(key); i >= 0 {
		l.stopLocked(i)
	}
}

func (l *layer) RemoveAllAnimations() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for len(l.entries) > 0 {
		l.stopLocked(0)
	}
}

func (l *layer) Animation(key string) *animation.Group {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(key); i >= 0 {
		return l.entries[i].group
	}
	return nil
}

func (l *layer) AnimationKeys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, len(l.entries))
	for i, e := range l.entries {
		keys[i] = e.key
	}
	return keys
}

func (l *layer) ActiveAnimations() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, e := range l.entries {
		if !e.finished {
			n++
		}
	}
	return n
}

func (l *layer) EffectiveTransform() common.Transform3D {
	l.mu.RLock()
	own, parent := l.transform, l.super
	l.mu.RUnlock()
	if parent == nil {
		return own
	}
	return parent.SublayerTransform().Concat(own)
}

func (l *layer) Advance(dt float64) []animation.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.pending
	l.pending = nil

	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.finished {
			kept = append(kept, e)
			continue
		}
		if !e.started {
			e.started = true
			events = append(events, animation.Event{Kind: animation.EventStart, Key: e.key, Group: e.group})
		} else {
			e.elapsed += dt
		}
		if e.elapsed < e.group.ActiveDuration() {
			kept = append(kept, e)
			continue
		}
		e.finished = true
		events = append(events, animation.Event{Kind: animation.EventStop, Key: e.key, Group: e.group, Finished: true})
		if e.group.RemovedOnCompletion {
			continue
		}
		if holdsForwards(e.group.FillMode) {
			l.holdLocked(e.group)
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = nil
	}
	l.entries = kept
	return events
}

func (l *layer) indexOf(key string) int {
	for i, e := range l.entries {
		if e.key == key {
			return i
		}
	}
	return -1
}

// stopLocked removes entry i and queues its stop event unless it already finished.
func (l *layer) stopLocked(i int) {
	e := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	if e.finished {
		return
	}
	l.pending = append(l.pending, animation.Event{Kind: animation.EventStop, Key: e.key, Group: e.group})
}

func holdsForwards(f animation.FillMode) bool {
	return f == animation.FillModeForwards || f == animation.FillModeBoth
}

// holdLocked writes the value every descriptor of g has when g ends. A holding group clamps
// its children, so their own fill modes do not apply. Descriptors that end where they began,
// because they or the group autoreverse, write their start value; a nil From writes nothing.
func (l *layer) holdLocked(g *animation.Group) {
	for _, d := range g.Animations {
		switch v := finalValue(d, g.Autoreverses || d.Autoreverses).(type) {
		case animation.Point:
			if d.KeyPath == animation.KeyPathPosition {
				l.position = v.Vector2()
			}
		case animation.Transform:
			if d.KeyPath == animation.KeyPathTransform {
				l.transform = v.Transform3D()
			}
		case animation.PathValue:
			if d.KeyPath == animation.KeyPathPath {
				l.path = v.Path().Clone()
			}
		}
	}
}

func finalValue(d animation.Descriptor, reversed bool) animation.Value {
	if d.Kind == animation.KindKeyframe {
		if len(d.Values) == 0 {
			return nil
		}
		if reversed {
			return d.Values[0]
		}
		return d.Values[len(d.Values)-1]
	}
	if reversed {
		return d.From
	}
	return d.To
}

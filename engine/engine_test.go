package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
	"github.com/Carmen-Shannon/oxy-animate/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-animate/engine/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingGroup(name string, calls *[]string, duration float64) *animation.Group {
	d := &animation.Delegate{}
	d.SetStart(func() { *calls = append(*calls, name+":start") })
	d.SetCompletion(func() { *calls = append(*calls, name+":stop") })
	timing := animation.DefaultTiming()
	timing.Duration = duration
	return animation.NewGroup(nil, timing, d)
}

func TestLayerRegistry(t *testing.T) {
	a, b := layer.NewLayer(), layer.NewLayer()
	e := NewEngine(WithQueue(dispatch.NewManualQueue()), WithLayer(1, a), WithLayer(2, nil))

	assert.Equal(t, a, e.Layer(1))
	assert.Nil(t, e.Layer(2))

	e.AddLayer(3, b)
	layers := e.Layers()
	assert.Len(t, layers, 2)
	delete(layers, 1)
	assert.Equal(t, a, e.Layer(1))

	e.RemoveLayer(1)
	assert.Nil(t, e.Layer(1))
	assert.Equal(t, map[int]layer.Layer{3: b}, e.Layers())
}

func TestAdvanceDeliversInZOrder(t *testing.T) {
	var calls []string
	back := layer.NewLayer(layer.WithName("back"))
	child := layer.NewLayer()
	front := layer.NewLayer(layer.WithName("front"), layer.WithSublayers(child))

	front.AddAnimation("a", recordingGroup("front", &calls, 1))
	child.AddAnimation("a", recordingGroup("child", &calls, 2))
	back.AddAnimation("a", recordingGroup("back", &calls, 1))

	var ticks []float64
	e := NewEngine(WithQueue(dispatch.NewManualQueue()), WithWorkers(4), WithLayer(10, front), WithLayer(-1, back))
	e.SetTickCallback(func(dt float64) { ticks = append(ticks, dt) })

	assert.Equal(t, 3, e.Advance(0.5))
	assert.Equal(t, []string{"back:start", "front:start", "child:start"}, calls)

	calls = nil
	assert.Equal(t, 2, e.Advance(1))
	assert.Equal(t, []string{"back:stop", "front:stop"}, calls)

	calls = nil
	assert.Equal(t, 1, e.Advance(1))
	assert.Equal(t, []string{"child:stop"}, calls)
	assert.Equal(t, []float64{0.5, 1, 1}, ticks)
}

func TestAdvanceIdleLayer(t *testing.T) {
	l := layer.NewLayer()
	e := NewEngine(WithQueue(dispatch.NewManualQueue()), WithLayer(0, l))
	e.SetTickCallback(nil)
	assert.Zero(t, e.Advance(0.1))
}

func TestRunTicksOntoQueueUntilQuit(t *testing.T) {
	q := dispatch.NewManualQueue()
	var mu sync.Mutex
	var started bool
	d := &animation.Delegate{}
	d.SetStart(func() {
		mu.Lock()
		started = true
		mu.Unlock()
	})
	l := layer.NewLayer()
	l.AddAnimation("a", animation.NewGroup(nil, animation.DefaultTiming(), d))

	e := NewEngine(WithQueue(q), WithTickRate(500), WithLayer(0, l), WithProfiling(true))
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool { return q.Len() > 0 }, 2*time.Second, time.Millisecond)
	// a queued tick blocks further ticks until it runs
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, q.Len())

	q.Drain()
	mu.Lock()
	assert.True(t, started)
	mu.Unlock()

	e.SetTickRate(250)
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.NotPanics(t, e.Quit)
	assert.Zero(t, e.Advance(1))
}

func TestQuitLeavesMainQueueUsable(t *testing.T) {
	q := dispatch.NewMainQueue()
	e := NewEngine(WithQueue(q), WithTickRate(500))
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	ran := make(chan struct{})
	q.Dispatch(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not run the queue")
	}

	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}

	later := make(chan struct{})
	q.Dispatch(func() { close(later) })
	assert.GreaterOrEqual(t, q.Len(), 1, "a queue outlives the engine that ran it")

	next := NewEngine(WithQueue(q), WithTickRate(500))
	nextDone := make(chan struct{})
	go func() {
		next.Run()
		close(nextDone)
	}()
	select {
	case <-later:
	case <-time.After(2 * time.Second):
		t.Fatal("task dispatched after Quit never ran")
	}
	next.Quit()
	select {
	case <-nextDone:
	case <-time.After(2 * time.Second):
		t.Fatal("second Run did not return after Quit")
	}
	q.Stop()
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(0))
	assert.Equal(t, time.Second/60, tickInterval(-5))
	assert.Equal(t, 4*time.Millisecond, tickInterval(250))
}

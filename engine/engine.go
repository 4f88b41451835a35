package engine

import (
	"log"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-animate/engine/animation"
	"github.com/Carmen-Shannon/oxy-animate/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-animate/engine/layer"
	"github.com/Carmen-Shannon/oxy-animate/engine/profiler"
	"github.com/Carmen-Shannon/oxy-animate/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick goroutine, the owning queue and the optional window.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	queue  dispatch.Queue

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float64)

	// tickPending is set while an Advance dispatched by the tick goroutine has not run yet.
	tickPending atomic.Bool

	mu     sync.RWMutex
	layers map[int]layer.Layer

	workers int
	pool    worker.DynamicWorkerPool
}

// Engine hosts root layer trees and advances their animations at a fixed tick rate.
// Layer state is owned by the engine's queue: Advance runs there and so do lifecycle callbacks.
type Engine interface {
	// Window returns the host window, or nil when the engine runs headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Queue returns the queue that owns the hosted layers.
	// Pass it to animator.WithQueue so commits land on the same queue as ticks.
	//
	// Returns:
	//   - dispatch.Queue: the owning queue
	Queue() dispatch.Queue

	// EnableProfiler enables periodic profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// SetTickRate sets the tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called on the queue after every Advance.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float64))

	// AddLayer registers a root layer at the given z-index key, replacing any layer at that key.
	//
	// Parameters:
	//   - key: the z-index; events of lower keys are delivered first
	//   - l: the root layer
	AddLayer(key int, l layer.Layer)

	// RemoveLayer removes the root layer at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the layer to remove
	RemoveLayer(key int)

	// Layer retrieves the root layer at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the layer to retrieve
	//
	// Returns:
	//   - layer.Layer: the layer at the key, or nil if not found
	Layer(key int) layer.Layer

	// Layers returns a copy of all root layers keyed by z-index.
	//
	// Returns:
	//   - map[int]layer.Layer: a copy of the layers map
	Layers() map[int]layer.Layer

	// Advance moves every hosted tree forward by dt. Trees are advanced in parallel on the
	// worker pool, then lifecycle events are delivered in ascending z-index order.
	// Must be called on the owning queue.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - int: the number of events delivered
	Advance(dt float64) int

	// Run starts ticking and blocks on the window message loop, or runs the queue when it can run
	// itself, until Quit is called or the window closes. The queue is left running-capable:
	// Quit never stops it.
	Run()

	// Quit stops ticking and makes Run return.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// The queue defaults to the window when one is set, otherwise to dispatch.Main().
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		layers:          make(map[int]layer.Layer),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		workers:         max(runtime.NumCPU()-1, 1),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.queue == nil {
		if e.window != nil {
			e.queue = e.window
		} else {
			e.queue = dispatch.Main()
		}
	}

	// Workers are reused across ticks; a WaitGroup gives the per-tick barrier.
	e.pool = worker.NewDynamicWorkerPool(e.workers, 64, time.Second)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Queue() dispatch.Queue {
	return e.queue
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
	} else if q, ok := e.queue.(interface{ RunUntil(done <-chan struct{}) }); ok {
		q.RunUntil(e.quitChannel)
	} else {
		<-e.quitChannel
	}

	e.signalQuit()
	e.wg.Wait()
	e.pool.Stop()
	e.running.Store(false)

	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	}
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel and asks the window to close. The queue is never
// stopped; Run leaves it usable for whoever else dispatches onto it.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// handle launches the tick goroutine, tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(1)
	go e.handleEngine()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Each tick dispatches Advance onto the owning queue. While a dispatched tick has not run,
// later ticks are skipped and their time is folded into the next dt.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			if !e.tickPending.CompareAndSwap(false, true) {
				continue
			}
			dt := now.Sub(lastTick).Seconds()
			lastTick = now

			e.queue.Dispatch(func() {
				defer e.tickPending.Store(false)
				e.Advance(dt)
			})
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) Advance(dt float64) int {
	if e.quitting() {
		return 0
	}

	keys, roots := e.sortedLayers()
	events := make([][]animation.Event, len(roots))
	active := make([]int, len(roots))

	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		e.pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: keys[i],
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						log.Printf("[Engine] advance of layer at z %d panicked: %v", keys[i], r)
					}
				}()
				events[i] = layer.AdvanceTree(root, dt)
				active[i] = layer.ActiveTree(root)
				return nil, nil
			},
		})
	}
	wg.Wait()

	delivered, groups := 0, 0
	for i := range roots {
		for _, ev := range events[i] {
			ev.Deliver()
			delivered++
		}
		groups += active[i]
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.profilingEnabled.Load() {
		e.profiler.Tick(groups, delivered)
	}
	return delivered
}

// sortedLayers snapshots the root layers in ascending z-index order.
func (e *engine) sortedLayers() ([]int, []layer.Layer) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.layers))
	for k := range e.layers {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	roots := make([]layer.Layer, len(keys))
	for i, k := range keys {
		roots[i] = e.layers[k]
	}
	return keys, roots
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	if e.running.Load() {
		// Non-blocking send - if a change is pending, replace it
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float64)) {
	e.tickCallback = callback
}

func (e *engine) AddLayer(key int, l layer.Layer) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layers[key] = l
}

func (e *engine) RemoveLayer(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.layers, key)
}

func (e *engine) Layer(key int) layer.Layer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.layers[key]
}

func (e *engine) Layers() map[int]layer.Layer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]layer.Layer, len(e.layers))
	for k, v := range e.layers {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a tick rate to a ticker interval. Values <= 0 mean 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

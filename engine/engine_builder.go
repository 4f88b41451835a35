package engine

import (
	"github.com/Carmen-Shannon/oxy-animate/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-animate/engine/layer"
	"github.com/Carmen-Shannon/oxy-animate/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables profiling output.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithWindow hosts the engine in a window. The window becomes the owning queue
// unless WithQueue is also given.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithQueue sets the queue that owns the hosted layers.
//
// Parameters:
//   - q: the owning queue
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithQueue(q dispatch.Queue) EngineBuilderOption {
	return func(e *engine) {
		e.queue = q
	}
}

// WithLayer registers a root layer at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index; events of lower keys are delivered first
//   - l: the root layer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLayer(key int, l layer.Layer) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.layers[key] = l
		}
	}
}

// WithWorkers sets the maximum number of workers advancing layer trees in parallel.
// Values <= 0 keep the default of one less than the CPU count.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

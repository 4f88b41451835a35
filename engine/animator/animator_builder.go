package animator

import (
	"cogentcore.org/lab/base/randx"
	"github.com/Carmen-Shannon/oxy-animate/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-animate/engine/layer"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithLayer sets the layer Apply commits to.
//
// Parameters:
//   - l: the target layer
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the target layer
func WithLayer(l layer.Layer) AnimatorBuilderOption {
	return func(a *animator) {
		a.layer = l
	}
}

// WithQueue sets the queue commits are dispatched on. The default is dispatch.Main().
//
// Parameters:
//   - q: the owning queue of the target layers
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the queue
func WithQueue(q dispatch.Queue) AnimatorBuilderOption {
	return func(a *animator) {
		if q != nil {
			a.queue = q
		}
	}
}

// WithRand sets the randomness source used for blob path deformations.
//
// Parameters:
//   - rnd: the source, nil uses the global source
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the randomness source
func WithRand(rnd randx.Rand) AnimatorBuilderOption {
	return func(a *animator) {
		a.rnd = rnd
	}
}

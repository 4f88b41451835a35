package layer

import "github.com/Carmen-Shannon/oxy-animate/engine/animation"

// Walk visits root and its sublayers depth first, parents before children.
// Returning false from fn skips the visited layer's sublayers.
//
// Parameters:
//   - root: the layer to start from, may be nil
//   - fn: called for every visited layer
func Walk(root Layer, fn func(Layer) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, c := range root.Sublayers() {
		Walk(c, fn)
	}
}

// AdvanceTree advances root and every sublayer by dt and returns the collected events
// in visiting order.
//
// Parameters:
//   - root: the tree to advance
//   - dt: elapsed time in seconds
//
// Returns:
//   - []animation.Event: the events produced by the whole tree
func AdvanceTree(root Layer, dt float64) []animation.Event {
	var events []animation.Event
	Walk(root, func(l Layer) bool {
		events = append(events, l.Advance(dt)...)
		return true
	})
	return events
}

// ActiveTree returns the number of active groups in root and its sublayers.
//
// Parameters:
//   - root: the tree to count
//
// Returns:
//   - int: the active group count
func ActiveTree(root Layer) int {
	n := 0
	Walk(root, func(l Layer) bool {
		n += l.ActiveAnimations()
		return true
	})
	return n
}

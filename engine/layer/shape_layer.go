package layer

import (
	"cogentcore.org/core/paint/ppath"
)

type shapeLayer struct {
	*layer
}

// ShapeLayer is a Layer that carries a vector path, the target of path morph groups.
type ShapeLayer interface {
	Layer

	// Path returns a copy of the layer's current path.
	//
	// Returns:
	//   - ppath.Path: the current path, empty if unset
	Path() ppath.Path

	// SetPath replaces the layer's path with a copy of p.
	//
	// Parameters:
	//   - p: the new path
	SetPath(p ppath.Path)
}

var _ ShapeLayer = &shapeLayer{}

// NewShapeLayer creates a new ShapeLayer configured with the given options.
//
// Parameters:
//   - options: functional options to configure the layer, WithPath sets the initial path
//
// Returns:
//   - ShapeLayer: the newly created shape layer
func NewShapeLayer(options ...LayerBuilderOption) ShapeLayer {
	s := &shapeLayer{layer: newLayer(options...)}
	s.adopt(s)
	return s
}

func (s *shapeLayer) Path() ppath.Path {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path.Clone()
}

func (s *shapeLayer) SetPath(p ppath.Path) {
	s.mu.Lock()
	s.path = p.Clone()
	s.mu.Unlock()
}

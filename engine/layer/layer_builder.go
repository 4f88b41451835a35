package layer

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint/ppath"
	"github.com/Carmen-Shannon/oxy-animate/common"
)

// LayerBuilderOption is a functional option for configuring a Layer during construction.
type LayerBuilderOption func(*layer)

// WithID overrides the generated ID of the Layer.
//
// Parameters:
//   - id: unique identifier for the Layer
//
// Returns:
//   - LayerBuilderOption: functional option to set the ID
func WithID(id uint64) LayerBuilderOption {
	return func(l *layer) {
		l.id = id
	}
}

// WithName sets the name of the Layer.
//
// Parameters:
//   - name: the layer name
//
// Returns:
//   - LayerBuilderOption: functional option to set the name
func WithName(name string) LayerBuilderOption {
	return func(l *layer) {
		l.name = name
	}
}

// WithBounds sets the local bounds of the Layer.
//
// Parameters:
//   - b: the bounding box
//
// Returns:
//   - LayerBuilderOption: functional option to set the bounds
func WithBounds(b math32.Box2) LayerBuilderOption {
	return func(l *layer) {
		l.bounds = b
	}
}

// WithPosition sets the position of the Layer in its super layer.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//
// Returns:
//   - LayerBuilderOption: functional option to set the position
func WithPosition(x, y float32) LayerBuilderOption {
	return func(l *layer) {
		l.position = math32.Vec2(x, y)
	}
}

// WithTransform sets the initial transform of the Layer.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - LayerBuilderOption: functional option to set the transform
func WithTransform(t common.Transform3D) LayerBuilderOption {
	return func(l *layer) {
		l.transform = t
	}
}

// WithSublayerTransform sets the initial sublayer transform of the Layer.
//
// Parameters:
//   - t: the sublayer transform
//
// Returns:
//   - LayerBuilderOption: functional option to set the sublayer transform
func WithSublayerTransform(t common.Transform3D) LayerBuilderOption {
	return func(l *layer) {
		l.sublayerTransform = t
	}
}

// WithSublayers queues children to be attached once the Layer is constructed.
//
// Parameters:
//   - children: the sublayers, in order
//
// Returns:
//   - LayerBuilderOption: functional option to add sublayers
func WithSublayers(children ...Layer) LayerBuilderOption {
	return func(l *layer) {
		for _, c := range children {
			if c == nil {
				continue
			}
			c.RemoveFromSuperLayer()
			l.sublayers = append(l.sublayers, c)
		}
	}
}

// WithPath sets the initial path. Only shape layers expose it.
//
// Parameters:
//   - p: the initial path
//
// Returns:
//   - LayerBuilderOption: functional option to set the path
func WithPath(p ppath.Path) LayerBuilderOption {
	return func(l *layer) {
		l.path = p.Clone()
	}
}

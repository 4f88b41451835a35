package animation

import (
	"fmt"

	"github.com/google/uuid"
)

// Group is the committed unit submitted to a layer: an ordered set of descriptors
// sharing one group-level timing and one lifecycle delegate.
type Group struct {
	// ID identifies this commit. Two applies never share an ID.
	ID uuid.UUID

	// Animations are the descriptors in configuration order.
	Animations []Descriptor

	// Delegate receives the start and stop notifications, may be nil.
	Delegate *Delegate

	Timing
}

// NewGroup freezes the given descriptors into a group with a fresh ID.
// The descriptors are cloned so later changes to the caller's slice are not observed.
//
// Parameters:
//   - descriptors: the descriptors in configuration order
//   - timing: the group timing
//   - delegate: the lifecycle delegate, may be nil
//
// Returns:
//   - *Group: the new group
func NewGroup(descriptors []Descriptor, timing Timing, delegate *Delegate) *Group {
	anims := make([]Descriptor, len(descriptors))
	for i, d := range descriptors {
		anims[i] = d.Clone()
	}
	return &Group{
		ID:         uuid.New(),
		Animations: anims,
		Delegate:   delegate,
		Timing:     timing,
	}
}

// Len returns the number of descriptors in the group.
func (g *Group) Len() int {
	return len(g.Animations)
}

// Empty reports whether the group carries no descriptors. Empty groups are valid no-ops.
func (g *Group) Empty() bool {
	return len(g.Animations) == 0
}

// Validate checks the group timing and every descriptor.
//
// Returns:
//   - error: the first problem found, naming the descriptor index, or nil
func (g *Group) Validate() error {
	if err := g.Timing.Validate(); err != nil {
		return fmt.Errorf("group: %w", err)
	}
	for i, d := range g.Animations {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("animation %d: %w", i, err)
		}
	}
	return nil
}

package animation

// Delegate holds at most one start callback and one completion callback.
// Setting a callback again replaces the previous one; callbacks are never queued.
// The delegate is invoked by the compositor that runs the group, never by the builder.
type Delegate struct {
	didStart   func()
	completion func()
}

// SetStart replaces the start callback. nil clears it.
//
// Parameters:
//   - fn: called when the group starts
func (d *Delegate) SetStart(fn func()) {
	d.didStart = fn
}

// SetCompletion replaces the completion callback. nil clears it.
//
// Parameters:
//   - fn: called when the group stops, whether it finished or was removed
func (d *Delegate) SetCompletion(fn func()) {
	d.completion = fn
}

// AnimationDidStart runs the start callback, if any.
func (d *Delegate) AnimationDidStart() {
	if d != nil && d.didStart != nil {
		d.didStart()
	}
}

// AnimationDidStop runs the completion callback, if any.
// finished is false when the group was removed or replaced before it ended;
// the completion callback runs in both cases.
//
// Parameters:
//   - finished: true when the group ran to its end
func (d *Delegate) AnimationDidStop(finished bool) {
	if d != nil && d.completion != nil {
		d.completion()
	}
}

// EventKind is the lifecycle transition an Event reports.
type EventKind int

const (
	EventStart EventKind = iota
	EventStop
)

func (k EventKind) String() string {
	if k == EventStart {
		return "start"
	}
	return "stop"
}

// Event is a lifecycle notification produced by a layer while it advances its animations.
type Event struct {
	// Kind is start or stop.
	Kind EventKind

	// Key is the registry key the group was added under.
	Key string

	// Group is the group the event refers to.
	Group *Group

	// Finished is meaningful for stop events: true when the group ran to its end.
	Finished bool
}

// Deliver invokes the group's delegate for the event.
func (e Event) Deliver() {
	if e.Group == nil {
		return
	}
	switch e.Kind {
	case EventStart:
		e.Group.Delegate.AnimationDidStart()
	case EventStop:
		e.Group.Delegate.AnimationDidStop(e.Finished)
	}
}

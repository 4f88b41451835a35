package dispatch

// ManualQueue is a Queue that only runs tasks when Drain is called.
// It makes deferred submission observable step by step in tests and tools.
type ManualQueue struct {
	list taskList
}

var _ Queue = &ManualQueue{}

// NewManualQueue creates an empty ManualQueue.
//
// Returns:
//   - *ManualQueue: the new queue
func NewManualQueue() *ManualQueue {
	return &ManualQueue{}
}

func (q *ManualQueue) Dispatch(task func()) {
	if task == nil {
		return
	}
	q.list.push(task)
}

// Drain runs queued tasks on the calling goroutine until the queue is empty,
// including tasks dispatched by the tasks themselves.
//
// Returns:
//   - int: the number of tasks run
func (q *ManualQueue) Drain() int {
	n := 0
	for {
		tasks := q.list.take()
		if len(tasks) == 0 {
			return n
		}
		for _, task := range tasks {
			run(task)
			n++
		}
	}
}

// Len returns the number of tasks waiting to run.
func (q *ManualQueue) Len() int {
	return q.list.len()
}

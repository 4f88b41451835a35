package dispatch

import (
	"log"
	"runtime/debug"
	"sync"
)

// Queue is an execution context that owns layer state.
// Dispatch schedules a task to run later on the queue's goroutine, in FIFO order.
// Dispatch never runs the task before returning.
type Queue interface {
	// Dispatch schedules task to run on the queue.
	//
	// Parameters:
	//   - task: the function to run, nil is ignored
	Dispatch(task func())
}

// QueueFunc adapts a plain function to the Queue interface.
type QueueFunc func(task func())

func (f QueueFunc) Dispatch(task func()) {
	f(task)
}

// taskList is a mutex guarded FIFO shared by the queue implementations.
type taskList struct {
	mu    sync.Mutex
	tasks []func()
}

func (t *taskList) push(task func()) {
	t.mu.Lock()
	t.tasks = append(t.tasks, task)
	t.mu.Unlock()
}

// take removes and returns every queued task.
func (t *taskList) take() []func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	tasks := t.tasks
	t.tasks = nil
	return tasks
}

func (t *taskList) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tasks)
}

// run executes task, logging and swallowing a panic so one bad task cannot stop the loop.
func run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Dispatch] task panicked: %v\n%s", r, debug.Stack())
		}
	}()
	task()
}

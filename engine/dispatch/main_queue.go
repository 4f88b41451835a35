package dispatch

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
)

// MainQueue is a FIFO run loop bound to the OS thread that calls Run.
type MainQueue interface {
	Queue

	// Run locks the calling goroutine to its OS thread and executes dispatched tasks
	// until Stop is called. Tasks still queued when Stop is called are run before Run returns.
	Run()

	// RunUntil is Run that also returns once done is closed. Tasks queued by then are run first.
	// The queue is not stopped, so it keeps accepting tasks and can be run again.
	//
	// Parameters:
	//   - done: closing it ends the loop
	RunUntil(done <-chan struct{})

	// Stop ends Run for good. Calling it more than once is safe. Tasks dispatched after Stop
	// are dropped.
	Stop()

	// Len returns the number of tasks waiting to run.
	//
	// Returns:
	//   - int: queued task count
	Len() int
}

type mainQueue struct {
	list     taskList
	wake     chan struct{}
	quit     chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

var _ MainQueue = &mainQueue{}

// NewMainQueue creates a new MainQueue. Nothing runs until Run is called.
//
// Returns:
//   - MainQueue: the new queue
func NewMainQueue() MainQueue {
	return &mainQueue{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

var (
	mainOnce    sync.Once
	defaultMain MainQueue
)

// Main returns the process wide default MainQueue.
// The program's main goroutine is expected to call Run or RunUntil on it.
// Stopping it is permanent for the whole process.
//
// Returns:
//   - MainQueue: the shared main queue
func Main() MainQueue {
	mainOnce.Do(func() {
		defaultMain = NewMainQueue()
	})
	return defaultMain
}

func (q *mainQueue) Dispatch(task func()) {
	if task == nil {
		return
	}
	if q.stopped.Load() {
		log.Printf("[Dispatch] queue stopped, dropping task")
		return
	}
	q.list.push(task)
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *mainQueue) Run() {
	q.RunUntil(nil)
}

func (q *mainQueue) RunUntil(done <-chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-q.wake:
			q.drain()
		case <-q.quit:
			q.drain()
			return
		case <-done:
			q.drain()
			return
		}
	}
}

func (q *mainQueue) drain() {
	for {
		tasks := q.list.take()
		if len(tasks) == 0 {
			return
		}
		for _, task := range tasks {
			run(task)
		}
	}
}

func (q *mainQueue) Stop() {
	q.stopOnce.Do(func() {
		q.stopped.Store(true)
		close(q.quit)
	})
}

func (q *mainQueue) Len() int {
	return q.list.len()
}

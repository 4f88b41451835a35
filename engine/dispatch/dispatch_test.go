package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualQueueDefersUntilDrain(t *testing.T) {
	q := NewManualQueue()
	var order []int

	q.Dispatch(func() { order = append(order, 1) })
	q.Dispatch(nil)
	q.Dispatch(func() {
		order = append(order, 2)
		q.Dispatch(func() { order = append(order, 3) })
	})

	assert.Empty(t, order)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Drain())
}

func TestManualQueueSurvivesPanickingTask(t *testing.T) {
	q := NewManualQueue()
	ran := false
	q.Dispatch(func() { panic("boom") })
	q.Dispatch(func() { ran = true })

	assert.NotPanics(t, func() { q.Drain() })
	assert.True(t, ran)
}

func TestQueueFunc(t *testing.T) {
	var got []func()
	var q Queue = QueueFunc(func(task func()) { got = append(got, task) })
	q.Dispatch(func() {})
	assert.Len(t, got, 1)
}

func TestMainQueueRunsInOrderAndStops(t *testing.T) {
	q := NewMainQueue()
	done := make(chan struct{})
	go func() {
		q.Run()
		close(done)
	}()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		q.Dispatch(func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	wg.Wait()

	mu.Lock()
	require.Len(t, order, 50)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
	mu.Unlock()

	q.Stop()
	q.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	q.Dispatch(func() { t.Error("task ran after Stop") })
	assert.Equal(t, 0, q.Len())
}

func TestMainQueueRunUntilKeepsQueueUsable(t *testing.T) {
	q := NewMainQueue()
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		q.RunUntil(stop)
		close(done)
	}()

	ran := make(chan struct{})
	q.Dispatch(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunUntil did not return after done closed")
	}

	q.Dispatch(func() {})
	assert.Equal(t, 1, q.Len(), "tasks are still accepted")

	again := make(chan struct{})
	go q.RunUntil(again)
	require.Eventually(t, func() bool { return q.Len() == 0 }, 2*time.Second, time.Millisecond)
	q.Stop()
	close(again)
}

func TestMainIsShared(t *testing.T) {
	assert.Same(t, Main(), Main())
}

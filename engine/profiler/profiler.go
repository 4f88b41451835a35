package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Profiler tracks the compositor tick rate, active animation groups and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	tickCount      int
	eventCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
	logf           func(format string, args ...any)
}

// Stats is one profiler sample.
type Stats struct {
	// TickRate is the number of ticks per second over the sample interval.
	TickRate float64

	// ActiveGroups is the number of running animation groups at the last tick.
	ActiveGroups int

	// Events is the number of lifecycle events delivered during the interval.
	Events int

	// HeapMB is the live heap in megabytes.
	HeapMB float64

	// AllocRateMB is the allocation rate in megabytes per second.
	AllocRateMB float64

	// GC is the total number of completed collections.
	GC uint32

	// MaxPauseUs is the longest collection pause during the interval, in microseconds.
	MaxPauseUs uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("Ticks: %.2f/s | Groups: %d | Events: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max: %d µs)",
		s.TickRate, s.ActiveGroups, s.Events, s.HeapMB, s.AllocRateMB, s.GC, s.MaxPauseUs)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options for the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logf:           log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per compositor tick.
// Logs a Stats line when the update interval has elapsed.
//
// Parameters:
//   - activeGroups: the number of running animation groups after the tick
//   - events: the number of lifecycle events the tick delivered
//
// Returns:
//   - *Stats: the sample if stats were logged this tick, nil otherwise
func (p *Profiler) Tick(activeGroups, events int) *Stats {
	p.tickCount++
	p.eventCount += events
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return nil
	}

	runtime.ReadMemStats(&p.memStats)
	s := &Stats{
		TickRate:     float64(p.tickCount) / elapsed.Seconds(),
		ActiveGroups: activeGroups,
		Events:       p.eventCount,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GC:           p.memStats.NumGC,
	}

	// PauseNs is a circular buffer of the last 256 pauses
	startIdx := p.lastGCCount
	if s.GC-startIdx > 256 {
		startIdx = s.GC - 256
	}
	for i := startIdx; i < s.GC; i++ {
		s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.logf("[Profiler] %s", s)

	p.tickCount = 0
	p.eventCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s
}

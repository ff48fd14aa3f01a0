// Package profiler logs tick rate, rig activity and memory statistics at a fixed
// interval.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Sample is the rig activity observed during one tick.
type Sample struct {
	// Rigs is the number of rigs updated.
	Rigs int
	// Events is the number of control events drained.
	Events uint64
}

// Report summarizes one profiling interval.
type Report struct {
	TPS        float64
	Rigs       int
	EventRate  float64
	HeapMB     float64
	AllocRate  float64
	GCCount    uint32
	LastPause  uint64
	MaxPause   uint64
	SysMB      float64
	Interval   time.Duration
	TotalTicks int
}

// Profiler tracks tick rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval. Not safe for concurrent use.
type Profiler struct {
	tickCount      int
	eventCount     uint64
	lastTime       time.Time
	updateInterval time.Duration
	quiet          bool
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a function that configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are reported. Defaults to 1 second.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithQuiet computes reports without logging them.
//
// Parameters:
//   - quiet: true to suppress logging
//
// Returns:
//   - ProfilerOption: option function to apply
func WithQuiet(quiet bool) ProfilerOption {
	return func(p *Profiler) {
		p.quiet = quiet
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick should be called once per engine tick.
// Logs statistics when the update interval has elapsed: ticks per second, rig count,
// events per second, heap usage, allocation rate, GC count/pause times and total memory.
//
// Parameters:
//   - s: the tick's rig activity
//
// Returns:
//   - Report: the interval summary, valid only when the bool is true
//   - bool: true if an interval completed this tick
func (p *Profiler) Tick(s Sample) (Report, bool) {
	p.tickCount++
	p.eventCount += s.Events
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return Report{}, false
	}
	seconds := max(elapsed.Seconds(), 1e-9)

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		TPS:        float64(p.tickCount) / seconds,
		Rigs:       s.Rigs,
		EventRate:  float64(p.eventCount) / seconds,
		HeapMB:     float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:      float64(p.memStats.Sys) / 1024 / 1024,
		AllocRate:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:    p.memStats.NumGC,
		Interval:   elapsed,
		TotalTicks: p.tickCount,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		r.LastPause = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			r.MaxPause = max(r.MaxPause, p.memStats.PauseNs[i%256]/1000)
		}
	}

	if !p.quiet {
		log.Printf("[Profiler] TPS: %.2f | Rigs: %d | Events: %.1f/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			r.TPS, r.Rigs, r.EventRate, r.HeapMB, r.AllocRate, r.GCCount, r.LastPause, r.MaxPause, r.SysMB)
	}

	p.tickCount = 0
	p.eventCount = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return r, true
}

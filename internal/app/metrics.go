package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks event loop timing.
type Metrics struct {
	// Frame timing (render plus backend apply)
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64
	cellsDrawn   atomic.Uint64

	// Event handling
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	// Background highlighting
	highlightCount   atomic.Uint64
	highlightTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the time to draw a frame and how many cells it changed.
func (m *Metrics) RecordFrame(duration time.Duration, cells int) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)
	m.cellsDrawn.Add(uint64(cells))

	for {
		old := m.frameMinNs.Load()
		if ns >= old {
			break
		}
		if m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := m.frameMaxNs.Load()
		if ns <= old {
			break
		}
		if m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records event processing timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordHighlight records one highlight step.
func (m *Metrics) RecordHighlight(duration time.Duration) {
	m.highlightCount.Add(1)
	m.highlightTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	eventCount := m.eventCount.Load()
	highlightCount := m.highlightCount.Load()

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: average(m.frameTotalNs.Load(), frameCount),
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		CellsDrawn:     m.cellsDrawn.Load(),
		EventCount:     eventCount,
		AvgEventNs:     average(m.eventTotalNs.Load(), eventCount),
		HighlightSteps: highlightCount,
		AvgHighlightNs: average(m.highlightTotalNs.Load(), highlightCount),
	}
}

func average(total int64, n uint64) int64 {
	if n == 0 {
		return 0
	}
	return total / int64(n)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	CellsDrawn     uint64
	EventCount     uint64
	AvgEventNs     int64
	HighlightSteps uint64
	AvgHighlightNs int64
}

// String formats the snapshot for the message line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("frames %d (avg %v, max %v, %d cells)  events %d (avg %v)  highlight steps %d (avg %v)",
		s.FrameCount,
		time.Duration(s.AvgFrameTimeNs), time.Duration(s.MaxFrameTimeNs), s.CellsDrawn,
		s.EventCount, time.Duration(s.AvgEventNs),
		s.HighlightSteps, time.Duration(s.AvgHighlightNs))
}

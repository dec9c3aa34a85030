package app

import (
	"strings"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	snapshot := m.Snapshot()
	if snapshot.FrameCount != 0 {
		t.Errorf("expected 0 frame count, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != 0 {
		t.Errorf("expected 0 min frame time (sentinel handled), got %d", snapshot.MinFrameTimeNs)
	}
	if snapshot.AvgEventNs != 0 {
		t.Errorf("expected 0 average without events, got %d", snapshot.AvgEventNs)
	}
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10*time.Millisecond, 100)
	m.RecordFrame(20*time.Millisecond, 5)
	m.RecordFrame(5*time.Millisecond, 0)

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 3 {
		t.Errorf("expected 3 frames, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != int64(5*time.Millisecond) {
		t.Errorf("expected min 5ms, got %d ns", snapshot.MinFrameTimeNs)
	}
	if snapshot.MaxFrameTimeNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", snapshot.MaxFrameTimeNs)
	}
	if snapshot.LastFrameNs != int64(5*time.Millisecond) {
		t.Errorf("expected last 5ms, got %d ns", snapshot.LastFrameNs)
	}
	if snapshot.AvgFrameTimeNs != int64(35*time.Millisecond)/3 {
		t.Errorf("avg = %d", snapshot.AvgFrameTimeNs)
	}
	if snapshot.CellsDrawn != 105 {
		t.Errorf("cells = %d", snapshot.CellsDrawn)
	}
}

func TestMetrics_EventsAndHighlight(t *testing.T) {
	m := NewMetrics()
	m.RecordEvent(2 * time.Millisecond)
	m.RecordEvent(4 * time.Millisecond)
	m.RecordHighlight(time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.EventCount != 2 || snapshot.AvgEventNs != int64(3*time.Millisecond) {
		t.Errorf("events = %d avg %d", snapshot.EventCount, snapshot.AvgEventNs)
	}
	if snapshot.HighlightSteps != 1 {
		t.Errorf("highlight steps = %d", snapshot.HighlightSteps)
	}
	if !strings.Contains(snapshot.String(), "events 2 (avg 3ms)") {
		t.Errorf("String() = %q", snapshot.String())
	}
}

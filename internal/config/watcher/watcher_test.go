package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, debounce time.Duration) (*Watcher, <-chan Event) {
	t.Helper()
	events := make(chan Event, 16)
	w, err := New(func(ev Event) { events <- ev }, WithDebounce(debounce))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w, events
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcherWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, events := newTestWatcher(t, 30*time.Millisecond)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// Writes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ev := waitEvent(t, events)
	if ev.Path != path {
		t.Errorf("Path = %s, want %s", ev.Path, path)
	}
	if ev.Op != OpWrite {
		t.Errorf("Op = %v, want write", ev.Op)
	}

	select {
	case extra := <-events:
		t.Errorf("burst should coalesce into one event, got extra %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.toml")

	w, events := newTestWatcher(t, 0)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch of a missing file: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ev := waitEvent(t, events); ev.Op != OpCreate || ev.Path != path {
		t.Errorf("event = %+v", ev)
	}
}

func TestWatcherSharedDirectoryAndStop(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")

	w, _ := newTestWatcher(t, 0)
	if err := w.Watch(a); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(a); err != nil {
		t.Errorf("second Watch should be a no-op: %v", err)
	}
	if len(w.files) != 2 {
		t.Errorf("files = %v", w.files)
	}
	if w.dirs[dir] != 2 {
		t.Errorf("dir refcount = %d", w.dirs[dir])
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
	if err := w.Watch(a); err != ErrNotRunning {
		t.Errorf("Watch after Stop = %v", err)
	}
}

func TestWatcherErrorHandler(t *testing.T) {
	errs := make(chan error, 1)
	w, err := New(nil, WithErrorHandler(func(err error) { errs <- err }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })

	overflow := errors.New("event queue overflow")
	w.fsw.Errors <- overflow

	select {
	case got := <-errs:
		if got != overflow {
			t.Errorf("error = %v, want %v", got, overflow)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w, _ := newTestWatcher(t, 0)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "config.toml")); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		prev Operation
		next Operation
		want Operation
	}{
		{OpWrite, OpWrite, OpWrite},
		{OpCreate, OpWrite, OpCreate},
		{OpWrite, OpRemove, OpRemove},
		{OpRemove, OpCreate, OpWrite},
		{OpRename, OpCreate, OpWrite},
		{OpWrite, OpRename, OpRename},
	}
	for _, tt := range tests {
		got := coalesce(tt.prev, Event{Op: tt.next})
		if got.Op != tt.want {
			t.Errorf("coalesce(%v, %v) = %v, want %v", tt.prev, tt.next, got.Op, tt.want)
		}
	}
}

func TestOperationString(t *testing.T) {
	names := map[Operation]string{
		OpWrite:       "write",
		OpCreate:      "create",
		OpRemove:      "remove",
		OpRename:      "rename",
		Operation(99): "unknown",
	}
	for op, want := range names {
		if op.String() != want {
			t.Errorf("%d.String() = %s", op, op.String())
		}
	}
}

package history

import (
	"errors"
	"time"

	"github.com/zuedev/zedit/internal/engine/buffer"
)

// ErrHistoryExhausted is returned by UndoErr and RedoErr when there is
// nothing left to undo or redo. The buffer is untouched in that case.
var ErrHistoryExhausted = errors.New("history exhausted")

// DefaultMaxEntries is the capacity used when New is given a non-positive value.
const DefaultMaxEntries = 1000

// Entry is a single undo unit.
type Entry struct {
	Name string
	Time time.Time

	forward  []EditOp
	inverses []EditOp
}

// Forward returns the ops that redo the entry, in application order.
func (e Entry) Forward() []EditOp {
	return append([]EditOp(nil), e.forward...)
}

// Backward returns the ops that undo the entry, in application order.
func (e Entry) Backward() []EditOp {
	out := make([]EditOp, len(e.inverses))
	for i, op := range e.inverses {
		out[len(out)-1-i] = op
	}
	return out
}

// Len returns the number of primitive ops in the entry.
func (e Entry) Len() int { return len(e.forward) }

// History is a bounded undo/redo log.
//
// Entries are kept in a ring of fixed capacity. Positions [0, cursor)
// relative to the oldest entry can be undone, [cursor, count) can be redone.
type History struct {
	ring   []Entry
	start  int // ring index of the oldest entry
	count  int // entries stored
	cursor int // entries that can be undone

	depth   int
	pending Entry
}

// New creates a history holding at most maxEntries undo units.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{ring: make([]Entry, maxEntries)}
}

// Record stores op together with the op that reverses it. Any redoable
// entries are discarded.
func (h *History) Record(op, inverse EditOp) {
	if op.IsEmpty() && inverse.IsEmpty() {
		return
	}
	if h.depth > 0 {
		h.pending.forward = append(h.pending.forward, op)
		h.pending.inverses = append(h.pending.inverses, inverse)
		return
	}
	h.push(Entry{
		Time:     time.Now(),
		forward:  []EditOp{op},
		inverses: []EditOp{inverse},
	})
}

// RecordResult records the ops described by an applied edit.
func (h *History) RecordResult(res buffer.EditResult) {
	ops := OpsFromResult(res)
	if len(ops) == 0 {
		return
	}
	if len(ops) == 1 {
		h.Record(ops[0], ops[0].Inverse())
		return
	}
	h.BeginGroup("replace")
	for _, op := range ops {
		h.Record(op, op.Inverse())
	}
	h.EndGroup()
}

func (h *History) push(e Entry) {
	// Drop the redo tail.
	for i := h.cursor; i < h.count; i++ {
		h.ring[h.index(i)] = Entry{}
	}
	h.count = h.cursor

	if h.count == len(h.ring) {
		h.ring[h.start] = Entry{}
		h.start = (h.start + 1) % len(h.ring)
		h.count--
		h.cursor--
	}
	h.ring[h.index(h.count)] = e
	h.count++
	h.cursor++
}

func (h *History) index(i int) int {
	return (h.start + i) % len(h.ring)
}

// Undo steps back one entry and returns it. Apply its Backward ops to
// revert the buffer. It returns false when there is nothing to undo.
func (h *History) Undo() (Entry, bool) {
	h.flushGroup()
	if h.cursor == 0 {
		return Entry{}, false
	}
	h.cursor--
	return h.ring[h.index(h.cursor)], true
}

// Redo steps forward one entry and returns it. Apply its Forward ops to
// replay the edit. It returns false when there is nothing to redo.
func (h *History) Redo() (Entry, bool) {
	h.flushGroup()
	if h.cursor == h.count {
		return Entry{}, false
	}
	e := h.ring[h.index(h.cursor)]
	h.cursor++
	return e, true
}

// UndoErr is Undo with ErrHistoryExhausted in place of false.
func (h *History) UndoErr() (Entry, error) {
	e, ok := h.Undo()
	if !ok {
		return Entry{}, ErrHistoryExhausted
	}
	return e, nil
}

// RedoErr is Redo with ErrHistoryExhausted in place of false.
func (h *History) RedoErr() (Entry, error) {
	e, ok := h.Redo()
	if !ok {
		return Entry{}, ErrHistoryExhausted
	}
	return e, nil
}

// CanUndo reports whether Undo would return an entry.
func (h *History) CanUndo() bool { return h.cursor > 0 || len(h.pending.forward) > 0 }

// CanRedo reports whether Redo would return an entry.
func (h *History) CanRedo() bool { return h.cursor < h.count }

// UndoCount returns the number of entries that can be undone.
func (h *History) UndoCount() int { return h.cursor }

// RedoCount returns the number of entries that can be redone.
func (h *History) RedoCount() int { return h.count - h.cursor }

// MaxEntries returns the ring capacity.
func (h *History) MaxEntries() int { return len(h.ring) }

// SetMaxEntries resizes the ring. Shrinking drops the oldest undo entries
// first, then the newest redo entries, so whatever stays still lines up
// with the current text.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	if n == len(h.ring) {
		return
	}
	excess := max(h.count-n, 0)
	drop := min(excess, h.cursor)
	keep := h.count - excess

	ring := make([]Entry, n)
	for i := 0; i < keep; i++ {
		ring[i] = h.ring[h.index(drop+i)]
	}
	h.ring = ring
	h.start = 0
	h.count = keep
	h.cursor -= drop
}

// Clear forgets every entry, including an open group.
func (h *History) Clear() {
	for i := range h.ring {
		h.ring[i] = Entry{}
	}
	h.start, h.count, h.cursor = 0, 0, 0
	h.depth = 0
	h.pending = Entry{}
}

// BeginGroup starts collecting edits into a single entry. Groups nest;
// only the outermost EndGroup commits.
func (h *History) BeginGroup(name string) {
	if h.depth == 0 {
		h.pending = Entry{Name: name, Time: time.Now()}
	}
	h.depth++
}

// EndGroup closes the current group. An empty group records nothing.
func (h *History) EndGroup() {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 {
		h.commitGroup()
	}
}

// CancelGroup drops the open group without recording it. Edits already
// applied to the buffer are not reverted.
func (h *History) CancelGroup() {
	h.depth = 0
	h.pending = Entry{}
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool { return h.depth > 0 }

func (h *History) flushGroup() {
	if h.depth == 0 {
		return
	}
	h.depth = 0
	h.commitGroup()
}

func (h *History) commitGroup() {
	e := h.pending
	h.pending = Entry{}
	if len(e.forward) == 0 {
		return
	}
	h.push(e)
}

// Transaction runs fn inside a group. The group is cancelled if fn fails.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}
	h.EndGroup()
	return nil
}

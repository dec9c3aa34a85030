// Package backend draws render diffs on a display surface and reports
// input events.
package backend

import (
	"sync"

	"github.com/zuedev/zedit/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	// EventInterrupt carries Data posted from another goroutine.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// PasteStart is true at the start of a bracketed paste, false at its end.
	PasteStart bool

	Data any
}

// KeyEvent returns a key event for a special key.
func KeyEvent(k Key, mod ModMask) Event {
	return Event{Type: EventKey, Key: k, Mod: mod}
}

// RuneEvent returns a key event for a typed character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Backend is a display surface. The renderer computes which cells
// changed; a backend only translates them for its device.
type Backend interface {
	// Init prepares the display. It must be called before anything else.
	Init() error

	// Fini restores the display.
	Fini()

	// Size returns the display size in cells.
	Size() (width, height int)

	// Apply draws changed cells. Continuation cells of wide runes are
	// covered by the rune to their left and are skipped.
	Apply(changes []core.CellChange)

	// Show flushes applied changes to the device.
	Show()

	// Sync redraws the whole display from scratch, for example after
	// another program wrote to the terminal.
	Sync()

	ShowCursor(pos core.Pos)
	HideCursor()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// PostEvent queues an event. It is safe to call from any goroutine.
	PostEvent(ev Event)

	Beep()
}

// Null is an in-memory backend for tests and headless use.
type Null struct {
	mu            sync.Mutex
	width, height int
	cells         []core.Cell
	cursor        core.Pos
	cursorVisible bool
	applied       int
	events        chan Event
}

// NewNull creates an in-memory backend of the given size.
func NewNull(width, height int) *Null {
	b := &Null{events: make(chan Event, 100)}
	b.resize(width, height)
	return b
}

func (b *Null) resize(width, height int) {
	b.width, b.height = width, height
	b.cells = make([]core.Cell, width*height)
	for i := range b.cells {
		b.cells[i] = core.EmptyCell()
	}
}

func (b *Null) Init() error { return nil }
func (b *Null) Fini()       {}

func (b *Null) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Null) Apply(changes []core.CellChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range changes {
		if ch.Row < 0 || ch.Row >= b.height || ch.Col < 0 || ch.Col >= b.width {
			continue
		}
		b.cells[ch.Row*b.width+ch.Col] = ch.Cell
		b.applied++
	}
}

func (b *Null) Show() {}
func (b *Null) Sync() {}

func (b *Null) ShowCursor(pos core.Pos) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = pos
	b.cursorVisible = true
}

func (b *Null) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *Null) PollEvent() Event {
	return <-b.events
}

func (b *Null) PostEvent(ev Event) {
	select {
	case b.events <- ev:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *Null) Beep() {}

// Cell returns the cell at a position.
func (b *Null) Cell(row, col int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return core.EmptyCell()
	}
	return b.cells[row*b.width+col]
}

// Row returns the text of a screen row. Continuation cells are skipped.
func (b *Null) Row(row int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= b.height {
		return ""
	}
	rs := make([]rune, 0, b.width)
	for _, c := range b.cells[row*b.width : (row+1)*b.width] {
		if !c.IsContinuation() {
			rs = append(rs, c.Rune)
		}
	}
	return string(rs)
}

// Cursor returns the cursor position and visibility.
func (b *Null) Cursor() (core.Pos, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor, b.cursorVisible
}

// Applied returns the number of cells drawn so far.
func (b *Null) Applied() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied
}

// Resize simulates a terminal resize: the screen is cleared and a resize
// event is queued.
func (b *Null) Resize(width, height int) {
	b.mu.Lock()
	b.resize(width, height)
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

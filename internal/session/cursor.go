package session

import (
	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/engine/cursor"
	"github.com/zuedev/zedit/internal/renderer"
)

// Motion is a cursor movement.
type Motion int

const (
	MoveLeft Motion = iota
	MoveRight
	MoveUp
	MoveDown
	MoveLineStart
	MoveLineEnd
	MoveFirstNonBlank
	MoveWordForward
	MoveWordBackward
	MoveDocStart
	MoveDocEnd
	MovePageUp
	MovePageDown
)

var motionNames = [...]string{
	MoveLeft:          "left",
	MoveRight:         "right",
	MoveUp:            "up",
	MoveDown:          "down",
	MoveLineStart:     "line-start",
	MoveLineEnd:       "line-end",
	MoveFirstNonBlank: "first-non-blank",
	MoveWordForward:   "word-forward",
	MoveWordBackward:  "word-backward",
	MoveDocStart:      "doc-start",
	MoveDocEnd:        "doc-end",
	MovePageUp:        "page-up",
	MovePageDown:      "page-down",
}

// String returns the motion name.
func (m Motion) String() string {
	if m >= 0 && int(m) < len(motionNames) {
		return motionNames[m]
	}
	return "unknown"
}

// Cursor returns the cursor position.
func (s *Session) Cursor() buffer.Point {
	p, err := s.buf.OffsetToPoint(s.sel.Head)
	if err != nil {
		return buffer.Point{}
	}
	return p
}

// Offset returns the cursor's byte offset.
func (s *Session) Offset() ByteOffset {
	return s.sel.Head
}

// Selection returns the current selection. It is empty when only the
// cursor is set.
func (s *Session) Selection() cursor.Selection {
	return s.sel
}

// SelectedText returns the selected text.
func (s *Session) SelectedText() string {
	text, err := s.buf.Slice(s.sel.Start(), s.sel.Len())
	if err != nil {
		return ""
	}
	return text
}

// ClearSelection collapses the selection to the cursor.
func (s *Session) ClearSelection() {
	s.sel = s.sel.Collapse()
}

// SetCursor moves the cursor to off. Unlike motions it rejects offsets
// outside the document or inside a character.
func (s *Session) SetCursor(off ByteOffset) error {
	if _, err := s.buf.Slice(off, 0); err != nil {
		return err
	}
	s.setCursor(off)
	return nil
}

func (s *Session) setCursor(off ByteOffset) {
	s.sel = cursor.NewCursorSelection(min(max(off, 0), s.buf.Len()))
	s.want = -1
	s.follow()
}

// Move moves the cursor and drops any selection.
func (s *Session) Move(m Motion) {
	s.move(m, false)
}

// Select moves the cursor while keeping the selection anchor.
func (s *Session) Select(m Motion) {
	s.move(m, true)
}

func (s *Session) move(m Motion, extend bool) {
	head := s.sel.Head
	want := -1
	var off ByteOffset

	switch m {
	case MoveLeft:
		off = cursor.Left(s.buf, head)
	case MoveRight:
		off = cursor.Right(s.buf, head)
	case MoveUp, MoveDown:
		delta := 1
		if m == MoveUp {
			delta = -1
		}
		off, want = cursor.Vertical(s.buf, s.rend.Tabs(), head, delta, s.want)
	case MovePageUp, MovePageDown:
		delta := max(s.vp.Height()-1, 1)
		if m == MovePageUp {
			delta = -delta
		}
		// Scroll with the cursor so it keeps its screen row.
		s.vp.ScrollBy(delta)
		off, want = cursor.Vertical(s.buf, s.rend.Tabs(), head, delta, s.want)
	case MoveLineStart:
		off = cursor.LineStart(s.buf, head)
	case MoveLineEnd:
		off = cursor.LineEnd(s.buf, head)
	case MoveFirstNonBlank:
		off = cursor.FirstNonBlank(s.buf, head)
	case MoveWordForward:
		off = cursor.WordForward(s.buf, head)
	case MoveWordBackward:
		off = cursor.WordBackward(s.buf, head)
	case MoveDocStart:
		off = 0
	case MoveDocEnd:
		off = s.buf.Len()
	default:
		return
	}

	if extend {
		s.sel = s.sel.Extend(off)
	} else {
		s.sel = cursor.NewCursorSelection(off)
	}
	s.want = want
	s.follow()
}

// GotoLine moves to the first non-blank character of a 1-based line,
// clamped to the document. A jump more than a screen away centers the
// line.
func (s *Session) GotoLine(n int) {
	line := uint32(min(max(n, 1), int(s.buf.LineCount())) - 1)
	start, err := s.buf.LineStart(line)
	if err != nil {
		return
	}
	s.setCursor(cursor.FirstNonBlank(s.buf, start))
}

// CenterCursor scrolls so the cursor line is in the middle of the screen.
func (s *Session) CenterCursor() {
	s.layout()
	s.vp.CenterOn(s.Cursor().Line)
}

// selection converts the selection to the renderer's line/column form.
func (s *Session) selection() renderer.Selection {
	if s.sel.IsEmpty() {
		return renderer.NoSelection
	}
	anchor, err1 := s.buf.OffsetToPoint(s.sel.Anchor)
	head, err2 := s.buf.OffsetToPoint(s.sel.Head)
	if err1 != nil || err2 != nil {
		return renderer.NoSelection
	}
	return renderer.Selection{Anchor: anchor, Head: head}
}

package session

import (
	"fmt"
	"strings"

	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/engine/cursor"
	"github.com/zuedev/zedit/internal/engine/history"
)

// replace applies one edit and records it. On failure the buffer is
// unchanged and the error is returned to the caller to report.
func (s *Session) replace(start, end ByteOffset, text string) (buffer.EditResult, error) {
	res, err := s.buf.Replace(start, end-start, text)
	if err != nil {
		s.log.Warn("edit at %d rejected: %v", start, err)
		return buffer.EditResult{}, err
	}
	s.hist.RecordResult(res)
	s.edited(res)
	return res, nil
}

// edited propagates an applied edit to everything that caches positions.
func (s *Session) edited(res buffer.EditResult) {
	if res.IsNoOp() {
		return
	}
	s.hl.OnEdit(res)
	s.sel = cursor.TransformSelection(s.sel, res)
	s.modified = true
}

// InsertText inserts text at the cursor, replacing the selection.
func (s *Session) InsertText(text string) error {
	res, err := s.replace(s.sel.Start(), s.sel.End(), text)
	if err != nil {
		return err
	}
	s.setCursor(res.NewRange.End)
	return nil
}

// InsertNewline breaks the line at the cursor and indents the new line
// like the current one.
func (s *Session) InsertNewline() error {
	start := cursor.LineStart(s.buf, s.sel.Start())
	indentEnd := min(cursor.FirstNonBlank(s.buf, start), s.sel.Start())
	indent, err := s.buf.Slice(start, indentEnd-start)
	if err != nil {
		return err
	}
	return s.InsertText("\n" + indent)
}

// Backspace deletes the selection, or the grapheme cluster before the
// cursor. At the start of a line it joins the line to the previous one.
func (s *Session) Backspace() error {
	if !s.sel.IsEmpty() {
		return s.DeleteSelection()
	}
	head := s.sel.Head
	prev := cursor.Left(s.buf, head)
	if prev == head {
		return nil
	}
	if _, err := s.replace(prev, head, ""); err != nil {
		return err
	}
	s.setCursor(prev)
	return nil
}

// DeleteForward deletes the selection, or the grapheme cluster at the
// cursor.
func (s *Session) DeleteForward() error {
	if !s.sel.IsEmpty() {
		return s.DeleteSelection()
	}
	head := s.sel.Head
	next := cursor.Right(s.buf, head)
	if next == head {
		return nil
	}
	if _, err := s.replace(head, next, ""); err != nil {
		return err
	}
	s.setCursor(head)
	return nil
}

// DeleteSelection removes the selected text.
func (s *Session) DeleteSelection() error {
	if s.sel.IsEmpty() {
		return nil
	}
	start := s.sel.Start()
	if _, err := s.replace(start, s.sel.End(), ""); err != nil {
		return err
	}
	s.setCursor(start)
	return nil
}

// DeleteLine removes the cursor's line and returns its text. The cursor
// lands on the first non-blank character of the line that takes its
// place.
func (s *Session) DeleteLine() (string, error) {
	p := s.Cursor()
	start, err := s.buf.LineStart(p.Line)
	if err != nil {
		return "", err
	}
	last := p.Line+1 >= s.buf.LineCount()
	end := s.buf.Len()
	switch {
	case !last:
		end, _ = s.buf.LineStart(p.Line + 1)
	case p.Line > 0:
		// The last line takes the newline before it.
		start--
	}

	res, err := s.replace(start, end, "")
	if err != nil {
		return "", err
	}
	target := start
	if last && p.Line > 0 {
		target = cursor.LineStart(s.buf, start)
	}
	s.setCursor(cursor.FirstNonBlank(s.buf, target))

	if last {
		return strings.TrimPrefix(res.OldText, "\n"), nil
	}
	return strings.TrimSuffix(res.OldText, "\n"), nil
}

// Undo reverts the most recent undo unit. It reports false when there is
// nothing to undo; that is not an error.
func (s *Session) Undo() (bool, error) {
	e, ok := s.hist.Undo()
	if !ok {
		return false, nil
	}
	results, err := history.ApplyAll(s.buf, e.Backward())
	if err != nil {
		// The buffer is unchanged; put the entry back on the undo side.
		s.hist.Redo()
		s.log.Error("undo %q: %v", e.Name, err)
		return false, fmt.Errorf("undo: %w", err)
	}
	s.afterHistory(results, false)
	return true, nil
}

// Redo re-applies the most recently undone unit. It reports false when
// there is nothing to redo.
func (s *Session) Redo() (bool, error) {
	e, ok := s.hist.Redo()
	if !ok {
		return false, nil
	}
	results, err := history.ApplyAll(s.buf, e.Forward())
	if err != nil {
		s.hist.Undo()
		s.log.Error("redo %q: %v", e.Name, err)
		return false, fmt.Errorf("redo: %w", err)
	}
	s.afterHistory(results, true)
	return true, nil
}

func (s *Session) afterHistory(results []buffer.EditResult, redo bool) {
	for _, res := range results {
		s.edited(res)
	}
	if len(results) == 0 {
		return
	}
	last := results[len(results)-1]
	off := last.NewRange.Start
	if redo {
		off = last.NewRange.End
	}
	s.setCursor(off)
}

// BeginGroup starts collecting edits into one undo unit, as for a run of
// typing in insert mode. Groups nest.
func (s *Session) BeginGroup(name string) {
	s.hist.BeginGroup(name)
}

// EndGroup closes the innermost group.
func (s *Session) EndGroup() {
	s.hist.EndGroup()
}

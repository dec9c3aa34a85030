// Package cursor provides the cursor and selection model for editing.
//
// Selections use an anchor/head model where:
//   - Anchor: the position where the selection started
//   - Head: the cursor position, where typing occurs
//
// When Anchor == Head the selection is just a cursor. Positions are byte
// offsets into the buffer and always lie on character boundaries.
//
// After every edit the session maps its selection through the edit's
// buffer.EditResult with TransformSelection, so the cursor keeps denoting
// a valid position.
//
// Motions (Left, Right, Vertical, WordForward, ...) are pure functions of
// the document text. Horizontal motion steps over whole grapheme
// clusters, so a cursor never lands inside a combined character:
//
//	off = cursor.Right(buf, off)
//	off, want = cursor.Vertical(buf, tabs, off, 1, want)
package cursor

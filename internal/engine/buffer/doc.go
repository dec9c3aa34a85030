// Package buffer provides the text buffer that owns a document's content.
//
// A Buffer wraps an immutable rope and adds bounds-checked editing, line
// lookup and byte/character offset conversion. Offsets are UTF-8 byte
// offsets that must lie on character boundaries: an offset outside the
// document fails with ErrOutOfBounds and one that falls inside a multi-byte
// character fails with ErrInvalidBoundary. Positions are never clamped, so
// callers can detect and correct them.
//
// Every mutation returns an EditResult describing the affected byte and
// line ranges, which is what edit history and incremental highlighting
// consume:
//
//	b := buffer.NewBufferFromString("abc")
//	res, _ := b.Insert(0, "x")     // "xabc"
//	_ = res.NewRange               // [0, 1)
//	line, _ := b.OffsetToLine(2)   // 0
//
// A Buffer is not safe for concurrent mutation; it is owned by a single
// editing session. Snapshot returns an immutable view that may be handed
// to other goroutines (for example a background save).
package buffer

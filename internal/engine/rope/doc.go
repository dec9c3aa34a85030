// Package rope provides an immutable rope for storing document text.
//
// The rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache a TextSummary (bytes, runes, newlines) per child.
// Seeking by byte offset, rune offset or line number walks one root-to-leaf
// path, so every query and edit is O(log n) in the document size.
//
// Edits copy only the path they touch and return a new Rope; the receiver is
// never modified, which makes snapshots free:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")   // "hello, world"
//	r = r.Delete(0, 7)     // "world"
//	line := r.LineOf(3)    // 0
//
// Line boundaries are never stored; they are derived from the newline counts
// in the summaries.
package rope

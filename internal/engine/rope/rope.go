package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	chunks := splitIntoChunks(s)
	if len(chunks) == 0 {
		return New()
	}
	return Rope{root: buildRoot(packLeaves(chunks))}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// RuneCount returns the number of Unicode code points.
func (r Rope) RuneCount() uint64 {
	return r.Summary().Runes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	return r.Summary().Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in the byte range [start, end).
// The range is clipped to the rope.
func (r Rope) Slice(start, end ByteOffset) string {
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(end - start))
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at the given offset.
// Returns 0 and false if offset is out of range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if offset >= r.Len() {
		return 0, false
	}
	c, prefix, ok := r.root.descend(func(p, s TextSummary) bool {
		return offset < p.Bytes+s.Bytes
	})
	if !ok {
		return 0, false
	}
	return c.data[offset-prefix.Bytes], true
}

// IsCharBoundary reports whether offset is 0, the end of the rope, or the
// first byte of a UTF-8 sequence.
func (r Rope) IsCharBoundary(offset ByteOffset) bool {
	if offset == 0 || offset == r.Len() {
		return true
	}
	b, ok := r.ByteAt(offset)
	return ok && isUTF8Start(b)
}

// Insert inserts text at the given byte offset. Offsets past the end append.
// Returns a new rope; original is unchanged.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}

	offset = min(offset, r.Len())
	return Rope{root: buildRoot(r.root.insert(offset, text))}
}

// Delete removes text in the byte range [start, end).
// Returns a new rope; original is unchanged.
func (r Rope) Delete(start, end ByteOffset) Rope {
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return r
	}

	root := r.root.deleteRange(start, end)
	if root == nil {
		return New()
	}
	for !root.IsLeaf() && len(root.children) == 1 {
		root = root.children[0]
	}
	return Rope{root: root}
}

// Replace replaces text in the byte range [start, end) with new text.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// LineStartOffset returns the byte offset of the start of the given line.
// Lines are 0-indexed; lines past the end return Len().
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if line == 0 || r.root == nil {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}

	c, prefix, ok := r.root.descend(func(p, s TextSummary) bool {
		return p.Lines+s.Lines >= line
	})
	if !ok {
		return r.Len()
	}
	return prefix.Bytes + ByteOffset(nthNewline(c.data, line-prefix.Lines)+1)
}

// LineEndOffset returns the byte offset of the end of the given line
// (not including the newline character).
func (r Rope) LineEndOffset(line uint32) ByteOffset {
	if line+1 >= r.LineCount() {
		return r.Len()
	}
	return r.LineStartOffset(line+1) - 1
}

// LineText returns the text of the given line (not including newline).
func (r Rope) LineText(line uint32) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// LineOf returns the 0-indexed line containing offset. Offsets past the
// end resolve to the last line.
func (r Rope) LineOf(offset ByteOffset) uint32 {
	if offset >= r.Len() {
		return r.Summary().Lines
	}
	c, prefix, ok := r.root.descend(func(p, s TextSummary) bool {
		return offset < p.Bytes+s.Bytes
	})
	if !ok {
		return r.Summary().Lines
	}
	return prefix.Lines + CountLines(c.data[:offset-prefix.Bytes])
}

// OffsetToPoint converts a byte offset to a line/column position.
func (r Rope) OffsetToPoint(offset ByteOffset) Point {
	offset = min(offset, r.Len())
	line := r.LineOf(offset)
	return Point{Line: line, Column: uint32(offset - r.LineStartOffset(line))}
}

// PointToOffset converts a line/column position to a byte offset, clamping
// the column to the line's length.
func (r Rope) PointToOffset(point Point) ByteOffset {
	start := r.LineStartOffset(point.Line)
	end := r.LineEndOffset(point.Line)
	return min(start+ByteOffset(point.Column), end)
}

// OffsetToRune converts a byte offset to a rune (code point) offset.
// The byte offset should lie on a character boundary.
func (r Rope) OffsetToRune(offset ByteOffset) uint64 {
	if offset >= r.Len() {
		return r.RuneCount()
	}
	c, prefix, ok := r.root.descend(func(p, s TextSummary) bool {
		return offset < p.Bytes+s.Bytes
	})
	if !ok {
		return r.RuneCount()
	}
	return prefix.Runes + c.runesBefore(int(offset-prefix.Bytes))
}

// RuneToOffset converts a rune offset to a byte offset.
// Rune offsets past the end return Len().
func (r Rope) RuneToOffset(n uint64) ByteOffset {
	if n >= r.RuneCount() {
		return r.Len()
	}
	c, prefix, ok := r.root.descend(func(p, s TextSummary) bool {
		return n < p.Runes+s.Runes
	})
	if !ok {
		return r.Len()
	}
	return prefix.Bytes + ByteOffset(c.byteOfRune(n-prefix.Runes))
}

// WriteTo writes the rope's text to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Chunk().String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Height returns the height of the rope tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}

package buffer

import (
	"sort"

	"github.com/zuedev/zedit/internal/engine/rope"
)

// lineExtendWindow bounds how far past the known prefix a lookup will
// extend the index. Farther lookups are answered by the rope directly.
const lineExtendWindow = 64

// lineIndex memoizes line start offsets for a contiguous prefix of lines.
// starts is strictly increasing and starts[0] == 0. A mutation on line L
// keeps starts[0..L] (none of those moved) and drops the rest; the suffix
// is rebuilt lazily as lines are queried.
type lineIndex struct {
	starts []ByteOffset
}

func newLineIndex() *lineIndex {
	return &lineIndex{starts: []ByteOffset{0}}
}

// invalidateFrom drops every cached entry after line.
func (ix *lineIndex) invalidateFrom(line uint32) {
	if int(line)+1 < len(ix.starts) {
		ix.starts = ix.starts[:line+1]
	}
}

// reset forgets everything but line 0.
func (ix *lineIndex) reset() {
	ix.starts = ix.starts[:1]
}

// known returns the number of lines with a cached start.
func (ix *lineIndex) known() int {
	return len(ix.starts)
}

// start returns the start offset of line, which must be < r.LineCount().
func (ix *lineIndex) start(r rope.Rope, line uint32) ByteOffset {
	if int(line) < len(ix.starts) {
		return ix.starts[line]
	}
	if int(line)-len(ix.starts) >= lineExtendWindow {
		return ByteOffset(r.LineStartOffset(line))
	}

	for n := uint32(len(ix.starts)); n <= line; n++ {
		ix.starts = append(ix.starts, ByteOffset(r.LineStartOffset(n)))
	}
	return ix.starts[line]
}

// lineOf returns the line containing offset, which must be <= r.Len().
func (ix *lineIndex) lineOf(r rope.Rope, offset ByteOffset) uint32 {
	last := len(ix.starts) - 1
	if last > 0 && offset < ix.starts[last] {
		// First entry greater than offset, minus one.
		i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset })
		return uint32(i - 1)
	}
	return r.LineOf(rope.ByteOffset(offset))
}

package cursor

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Text is the read side of a document that motions need.
// *buffer.Buffer satisfies it.
type Text interface {
	Len() ByteOffset
	LineCount() uint32
	LineAt(line uint32) (string, error)
	LineStart(line uint32) (ByteOffset, error)
	OffsetToPoint(offset ByteOffset) (Point, error)
	RuneAt(offset ByteOffset) (rune, int)
	RuneBefore(offset ByteOffset) (rune, int)
}

// Columns converts between byte offsets and display columns within a
// line. *layout.TabExpander satisfies it.
type Columns interface {
	OffsetToColumn(s string, byteOffset int) int
	ColumnToOffset(s string, visualCol int) int
}

// NextBoundary returns the end of the grapheme cluster starting at col.
func NextBoundary(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(line[col:], -1)
	return col + len(cluster)
}

// ClusterStart returns the start of the grapheme cluster containing col,
// or len(line) when col is at or past the end.
func ClusterStart(line string, col int) int {
	state := -1
	pos := 0
	rest := line
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if col < pos+len(cluster) {
			return pos
		}
		pos += len(cluster)
	}
	return len(line)
}

// PrevBoundary returns the start of the grapheme cluster ending at col.
func PrevBoundary(line string, col int) int {
	if col <= 0 {
		return 0
	}
	return ClusterStart(line, min(col, len(line))-1)
}

// Left moves one grapheme cluster back. At the start of a line it moves
// to the end of the previous line.
func Left(t Text, off ByteOffset) ByteOffset {
	p, err := t.OffsetToPoint(off)
	if err != nil || off == 0 {
		return min(max(off, 0), t.Len())
	}
	if p.Column == 0 {
		return off - 1
	}
	line, _ := t.LineAt(p.Line)
	return off - ByteOffset(int(p.Column)-PrevBoundary(line, int(p.Column)))
}

// Right moves one grapheme cluster forward. At the end of a line it moves
// to the start of the next line.
func Right(t Text, off ByteOffset) ByteOffset {
	p, err := t.OffsetToPoint(off)
	if err != nil {
		return min(max(off, 0), t.Len())
	}
	line, _ := t.LineAt(p.Line)
	col := int(p.Column)
	if col >= len(line) {
		if p.Line+1 < t.LineCount() {
			return off + 1
		}
		return off
	}
	return off + ByteOffset(NextBoundary(line, col)-col)
}

// Vertical moves delta lines up (negative) or down, keeping display
// column want. A negative want uses the column of off. It returns the
// new offset and the column to keep for the next vertical move.
func Vertical(t Text, cols Columns, off ByteOffset, delta int, want int) (ByteOffset, int) {
	p, err := t.OffsetToPoint(off)
	if err != nil {
		return off, want
	}
	if want < 0 {
		line, _ := t.LineAt(p.Line)
		want = cols.OffsetToColumn(line, int(p.Column))
	}
	target := min(max(int64(p.Line)+int64(delta), 0), int64(t.LineCount())-1)
	text, _ := t.LineAt(uint32(target))
	start, _ := t.LineStart(uint32(target))
	col := ClusterStart(text, cols.ColumnToOffset(text, want))
	return start + ByteOffset(col), want
}

// LineStart returns the start of the line containing off.
func LineStart(t Text, off ByteOffset) ByteOffset {
	p, err := t.OffsetToPoint(off)
	if err != nil {
		return off
	}
	return off - ByteOffset(p.Column)
}

// LineEnd returns the offset of the end of the line containing off,
// before its newline.
func LineEnd(t Text, off ByteOffset) ByteOffset {
	p, err := t.OffsetToPoint(off)
	if err != nil {
		return off
	}
	line, _ := t.LineAt(p.Line)
	return off - ByteOffset(p.Column) + ByteOffset(len(line))
}

// FirstNonBlank returns the first character on off's line that is not a
// space or tab, or the line end.
func FirstNonBlank(t Text, off ByteOffset) ByteOffset {
	start := LineStart(t, off)
	p, err := t.OffsetToPoint(off)
	if err != nil {
		return off
	}
	line, _ := t.LineAt(p.Line)
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return start + ByteOffset(i)
		}
	}
	return start + ByteOffset(len(line))
}

type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

// WordForward moves to the start of the next word. Runs of letters,
// digits and underscores are words, as are runs of other non-space
// characters.
func WordForward(t Text, off ByteOffset) ByteOffset {
	r, size := t.RuneAt(off)
	if size == 0 {
		return off
	}
	if c := classOf(r); c != classSpace {
		off = skipForward(t, off, c)
	}
	return skipForward(t, off, classSpace)
}

// WordBackward moves to the start of the current or previous word.
func WordBackward(t Text, off ByteOffset) ByteOffset {
	off = skipBackward(t, off, classSpace)
	r, size := t.RuneBefore(off)
	if size == 0 {
		return off
	}
	return skipBackward(t, off, classOf(r))
}

func skipForward(t Text, off ByteOffset, c charClass) ByteOffset {
	for {
		r, size := t.RuneAt(off)
		if size == 0 || classOf(r) != c {
			return off
		}
		off += ByteOffset(size)
	}
}

func skipBackward(t Text, off ByteOffset, c charClass) ByteOffset {
	for {
		r, size := t.RuneBefore(off)
		if size == 0 || classOf(r) != c {
			return off
		}
		off -= ByteOffset(size)
	}
}

package rope

import "unicode/utf8"

// ByteOffset represents an absolute byte position in the rope.
type ByteOffset uint64

// Point represents a line/column position.
// Line and Column are both 0-indexed; Column counts bytes.
type Point struct {
	Line   uint32
	Column uint32
}

// TextSummary holds aggregated metrics for a text span.
// Summaries combine with Add, so a node's summary is the sum of its children.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// Runes is the number of Unicode code points.
	Runes uint64

	// Lines is the number of newline characters.
	Lines uint32

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines

	// FlagHasTabs indicates the text contains tab characters.
	FlagHasTabs
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	// ASCII holds only if both sides are ASCII; the others if either side has them.
	flags := (s.Flags & other.Flags & FlagASCII) | ((s.Flags | other.Flags) &^ FlagASCII)

	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Runes: s.Runes + other.Runes,
		Lines: s.Lines + other.Lines,
		Flags: flags,
	}
}

// IsZero returns true if this is the empty summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: ByteOffset(len(s)), Flags: FlagASCII}

	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '\n':
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		case b == '\t':
			sum.Flags |= FlagHasTabs
		case b >= utf8.RuneSelf:
			sum.Flags &^= FlagASCII
		}
		if isUTF8Start(b) {
			sum.Runes++
		}
	}

	return sum
}

// CountLines returns the number of newlines in a string.
func CountLines(s string) uint32 {
	var count uint32
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
		}
	}
	return count
}

// nthNewline returns the byte index of the nth newline (1-indexed) in s,
// or -1 if s has fewer than n newlines.
func nthNewline(s string, n uint32) int {
	if n == 0 {
		return -1
	}

	var count uint32
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

// nthRune returns the byte index at which the nth rune (0-indexed) of s
// starts, or len(s) if s has n or fewer runes.
func nthRune(s string, n uint64) int {
	var count uint64
	for i := 0; i < len(s); i++ {
		if !isUTF8Start(s[i]) {
			continue
		}
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zuedev/zedit/internal/engine/rope"
)

// Buffer wraps a Rope with bounds-checked editing and line lookup.
type Buffer struct {
	rope       rope.Rope
	lines      *lineIndex
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		rope:       rope.New(),
		lines:      newLineIndex(),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. Invalid UTF-8
// sequences are replaced with U+FFFD so the document is always valid text.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if !utf8.ValidString(s) {
		s = toValidUTF8(s)
	}
	b.rope = rope.FromString(s)
	return b
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return ByteOffset(b.rope.Len())
}

// CharCount returns the number of characters (code points) in the buffer.
func (b *Buffer) CharCount() int64 {
	return int64(b.rope.RuneCount())
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	return b.rope.LineCount()
}

// Slice returns length bytes of text starting at offset.
func (b *Buffer) Slice(offset, length ByteOffset) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: negative length %d", ErrOutOfBounds, length)
	}
	if err := b.checkOffset(offset); err != nil {
		return "", err
	}
	if err := b.checkOffset(offset + length); err != nil {
		return "", err
	}
	return b.rope.Slice(rope.ByteOffset(offset), rope.ByteOffset(offset+length)), nil
}

// LineAt returns the text of a line without its terminating newline.
func (b *Buffer) LineAt(line uint32) (string, error) {
	if line >= b.rope.LineCount() {
		return "", fmt.Errorf("%w: line %d of %d", ErrOutOfBounds, line, b.rope.LineCount())
	}
	start := b.lines.start(b.rope, line)
	return b.rope.Slice(rope.ByteOffset(start), rope.ByteOffset(b.lineEnd(line))), nil
}

// LineStart returns the byte offset at which a line starts.
func (b *Buffer) LineStart(line uint32) (ByteOffset, error) {
	if line >= b.rope.LineCount() {
		return 0, fmt.Errorf("%w: line %d of %d", ErrOutOfBounds, line, b.rope.LineCount())
	}
	return b.lines.start(b.rope, line), nil
}

// LineLen returns the byte length of a line without its newline.
func (b *Buffer) LineLen(line uint32) (ByteOffset, error) {
	start, err := b.LineStart(line)
	if err != nil {
		return 0, err
	}
	return b.lineEnd(line) - start, nil
}

// lineEnd returns the offset of the newline ending line, or Len() for the
// last line.
func (b *Buffer) lineEnd(line uint32) ByteOffset {
	if line+1 >= b.rope.LineCount() {
		return b.Len()
	}
	return b.lines.start(b.rope, line+1) - 1
}

// OffsetToLine returns the line containing offset.
func (b *Buffer) OffsetToLine(offset ByteOffset) (uint32, error) {
	if offset < 0 || offset > b.Len() {
		return 0, fmt.Errorf("%w: offset %d, length %d", ErrOutOfBounds, offset, b.Len())
	}
	return b.lines.lineOf(b.rope, offset), nil
}

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) (Point, error) {
	line, err := b.OffsetToLine(offset)
	if err != nil {
		return Point{}, err
	}
	return Point{Line: line, Column: uint32(offset - b.lines.start(b.rope, line))}, nil
}

// PointToOffset converts line/column to a byte offset. Columns past the end
// of the line are reported as out of bounds.
func (b *Buffer) PointToOffset(p Point) (ByteOffset, error) {
	start, err := b.LineStart(p.Line)
	if err != nil {
		return 0, err
	}
	offset := start + ByteOffset(p.Column)
	if offset > b.lineEnd(p.Line) {
		return 0, fmt.Errorf("%w: column %d on line %d", ErrOutOfBounds, p.Column, p.Line)
	}
	if !b.rope.IsCharBoundary(rope.ByteOffset(offset)) {
		return 0, fmt.Errorf("%w: column %d on line %d", ErrInvalidBoundary, p.Column, p.Line)
	}
	return offset, nil
}

// ByteToChar converts a byte offset to a character (code point) offset.
func (b *Buffer) ByteToChar(offset ByteOffset) (int64, error) {
	if err := b.checkOffset(offset); err != nil {
		return 0, err
	}
	return int64(b.rope.OffsetToRune(rope.ByteOffset(offset))), nil
}

// CharToByte converts a character offset to a byte offset.
func (b *Buffer) CharToByte(char int64) (ByteOffset, error) {
	if char < 0 || char > b.CharCount() {
		return 0, fmt.Errorf("%w: character %d of %d", ErrOutOfBounds, char, b.CharCount())
	}
	return ByteOffset(b.rope.RuneToOffset(uint64(char))), nil
}

// RuneAt returns the character starting at offset and its byte size.
// Returns utf8.RuneError and size 0 if offset is not a valid position.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= b.Len() || !b.rope.IsCharBoundary(rope.ByteOffset(offset)) {
		return utf8.RuneError, 0
	}
	end := min(offset+utf8.UTFMax, b.Len())
	return utf8.DecodeRuneInString(b.rope.Slice(rope.ByteOffset(offset), rope.ByteOffset(end)))
}

// RuneBefore returns the character ending at offset and its byte size.
func (b *Buffer) RuneBefore(offset ByteOffset) (rune, int) {
	if offset <= 0 || offset > b.Len() || !b.rope.IsCharBoundary(rope.ByteOffset(offset)) {
		return utf8.RuneError, 0
	}
	start := max(offset-utf8.UTFMax, 0)
	return utf8.DecodeLastRuneInString(b.rope.Slice(rope.ByteOffset(start), rope.ByteOffset(offset)))
}

// Write Operations

// Insert inserts text at offset.
func (b *Buffer) Insert(offset ByteOffset, text string) (EditResult, error) {
	if err := b.checkOffset(offset); err != nil {
		return EditResult{}, err
	}
	if !utf8.ValidString(text) {
		return EditResult{}, fmt.Errorf("%w: insert at %d", ErrInvalidText, offset)
	}

	startLine := b.lines.lineOf(b.rope, offset)
	res := EditResult{
		OldRange:   Range{Start: offset, End: offset},
		NewRange:   Range{Start: offset, End: offset + ByteOffset(len(text))},
		NewText:    text,
		StartLine:  startLine,
		OldEndLine: startLine,
		NewEndLine: startLine + rope.CountLines(text),
	}
	if text == "" {
		return res, nil
	}

	b.rope = b.rope.Insert(rope.ByteOffset(offset), text)
	b.mutated(startLine)
	return res, nil
}

// Delete removes length bytes starting at offset.
func (b *Buffer) Delete(offset, length ByteOffset) (EditResult, error) {
	removed, err := b.Slice(offset, length)
	if err != nil {
		return EditResult{}, err
	}

	startLine := b.lines.lineOf(b.rope, offset)
	res := EditResult{
		OldRange:   Range{Start: offset, End: offset + length},
		NewRange:   Range{Start: offset, End: offset},
		OldText:    removed,
		StartLine:  startLine,
		OldEndLine: startLine + rope.CountLines(removed),
		NewEndLine: startLine,
	}
	if length == 0 {
		return res, nil
	}

	b.rope = b.rope.Delete(rope.ByteOffset(offset), rope.ByteOffset(offset+length))
	b.mutated(startLine)
	return res, nil
}

// Replace replaces length bytes at offset with text as a single edit.
func (b *Buffer) Replace(offset, length ByteOffset, text string) (EditResult, error) {
	removed, err := b.Slice(offset, length)
	if err != nil {
		return EditResult{}, err
	}
	if !utf8.ValidString(text) {
		return EditResult{}, fmt.Errorf("%w: replace at %d", ErrInvalidText, offset)
	}

	startLine := b.lines.lineOf(b.rope, offset)
	res := EditResult{
		OldRange:   Range{Start: offset, End: offset + length},
		NewRange:   Range{Start: offset, End: offset + ByteOffset(len(text))},
		OldText:    removed,
		NewText:    text,
		StartLine:  startLine,
		OldEndLine: startLine + rope.CountLines(removed),
		NewEndLine: startLine + rope.CountLines(text),
	}
	if res.IsNoOp() {
		return res, nil
	}

	b.rope = b.rope.Replace(rope.ByteOffset(offset), rope.ByteOffset(offset+length), text)
	b.mutated(startLine)
	return res, nil
}

// Reset replaces the whole content, as when a new document snapshot is
// loaded. Invalid UTF-8 is replaced with U+FFFD.
func (b *Buffer) Reset(text string) {
	if !utf8.ValidString(text) {
		text = toValidUTF8(text)
	}
	b.rope = rope.FromString(text)
	b.lines.reset()
	b.revisionID = NewRevisionID()
}

func (b *Buffer) mutated(line uint32) {
	b.lines.invalidateFrom(line)
	b.revisionID = NewRevisionID()
}

// checkOffset validates that offset is inside the document and on a
// character boundary.
func (b *Buffer) checkOffset(offset ByteOffset) error {
	if offset < 0 || offset > b.Len() {
		return fmt.Errorf("%w: offset %d, length %d", ErrOutOfBounds, offset, b.Len())
	}
	if !b.rope.IsCharBoundary(rope.ByteOffset(offset)) {
		return fmt.Errorf("%w: offset %d", ErrInvalidBoundary, offset)
	}
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// SetLineEnding sets the line ending style used when saving.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns an immutable view of the current content.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{rope: b.rope, revisionID: b.revisionID, lineEnding: b.lineEnding}
}

func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

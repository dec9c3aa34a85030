// Package layout maps between byte offsets in a line and display columns.
// The renderer and cursor motion share it so both agree on where a
// character is drawn.
package layout

import "github.com/zuedev/zedit/internal/renderer/core"

// DefaultTabWidth is used when a width below one is requested.
const DefaultTabWidth = 4

// TabExpander computes display widths with tab expansion.
type TabExpander struct {
	tabWidth int
}

// NewTabExpander creates a tab expander with the given tab width.
func NewTabExpander(tabWidth int) *TabExpander {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &TabExpander{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (t *TabExpander) TabWidth() int {
	return t.tabWidth
}

// SetTabWidth sets the tab width.
func (t *TabExpander) SetTabWidth(width int) {
	if width < 1 {
		width = 1
	}
	t.tabWidth = width
}

// NextTabStop returns the next tab stop column after the given column.
func (t *TabExpander) NextTabStop(col int) int {
	return col + t.tabWidth - (col % t.tabWidth)
}

// Width returns the number of columns r takes when drawn at col. Tabs
// extend to the next tab stop and control characters are shown in caret
// notation (^A), which takes two columns.
func (t *TabExpander) Width(r rune, col int) int {
	switch {
	case r == '\t':
		return t.NextTabStop(col) - col
	case IsControl(r):
		return 2
	}
	return core.RuneWidth(r)
}

// IsControl reports whether r is drawn in caret notation.
func IsControl(r rune) bool {
	return (r < 0x20 && r != '\t') || r == 0x7F
}

// Caret returns the printable letter shown after '^' for a control rune.
func Caret(r rune) rune {
	if r == 0x7F {
		return '?'
	}
	return r + '@'
}

// ExpandedWidth returns the display width of s.
func (t *TabExpander) ExpandedWidth(s string) int {
	col := 0
	for _, r := range s {
		col += t.Width(r, col)
	}
	return col
}

// OffsetToColumn converts a byte offset in s to the display column the
// character there starts at. Offsets past the end map to the column
// after the last character.
func (t *TabExpander) OffsetToColumn(s string, byteOffset int) int {
	col := 0
	for i, r := range s {
		if i >= byteOffset {
			return col
		}
		col += t.Width(r, col)
	}
	return col
}

// ColumnToOffset returns the byte offset of the character covering
// display column visualCol. Columns past the end map to len(s).
func (t *TabExpander) ColumnToOffset(s string, visualCol int) int {
	col := 0
	for i, r := range s {
		w := t.Width(r, col)
		if visualCol < col+w {
			return i
		}
		col += w
	}
	return len(s)
}

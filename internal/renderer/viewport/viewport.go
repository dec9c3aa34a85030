// Package viewport tracks which part of the document is on screen.
package viewport

import "fmt"

// LineRange is a half-open span of document lines [Start, End).
type LineRange struct {
	Start uint32
	End   uint32
}

// Len returns the number of lines in the range.
func (r LineRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

// Contains reports whether line lies in the range.
func (r LineRange) Contains(line uint32) bool {
	return line >= r.Start && line < r.End
}

// String returns the range as [start, end).
func (r LineRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Viewport is the visible window over the document: a top line, a left
// display column and a size in cells.
type Viewport struct {
	top  uint32
	left int

	width  int
	height int

	margins Margins

	lineCount uint32
}

// New creates a viewport with the given text area size. Sizes are
// clamped to at least one cell.
func New(width, height int) *Viewport {
	return &Viewport{
		width:     max(width, 1),
		height:    max(height, 1),
		lineCount: 1,
	}
}

// Width returns the number of visible text columns.
func (v *Viewport) Width() int { return v.width }

// Height returns the number of visible text rows.
func (v *Viewport) Height() int { return v.height }

// Top returns the first visible line.
func (v *Viewport) Top() uint32 { return v.top }

// Left returns the first visible display column.
func (v *Viewport) Left() int { return v.left }

// Resize changes the text area size and keeps the top line valid.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.clampTop()
}

// SetLineCount tells the viewport how long the document is.
func (v *Viewport) SetLineCount(n uint32) {
	v.lineCount = max(n, 1)
	v.clampTop()
}

// LineCount returns the document length last given to SetLineCount.
func (v *Viewport) LineCount() uint32 { return v.lineCount }

// Visible returns the lines on screen. The range may extend past the end
// of the document; the renderer draws filler rows there.
func (v *Viewport) Visible() LineRange {
	return LineRange{Start: v.top, End: v.top + uint32(v.height)}
}

// IsLineVisible reports whether line is on screen.
func (v *Viewport) IsLineVisible(line uint32) bool {
	return v.Visible().Contains(line)
}

// Reveal scrolls so that line and display column col are visible. It
// moves by the minimum amount, except when the target is more than a
// screen away from the visible area; then it centers the target line.
// It reports whether the viewport moved.
func (v *Viewport) Reveal(line uint32, col int) bool {
	oldTop, oldLeft := v.top, v.left
	m := v.effectiveMargins()

	switch {
	case line < v.top+uint32(m.Top):
		if v.top-min(v.top, line) > uint32(v.height) {
			v.center(line)
			break
		}
		v.top = line - min(line, uint32(m.Top))
	case line+uint32(m.Bottom) >= v.top+uint32(v.height):
		bottom := v.top + uint32(v.height) - 1
		if line > bottom && line-bottom > uint32(v.height) {
			v.center(line)
			break
		}
		v.top = line + uint32(m.Bottom) + 1 - uint32(v.height)
	}
	v.clampTop()

	switch {
	case col < v.left+m.Left:
		v.left = max(col-m.Left, 0)
	case col+m.Right >= v.left+v.width:
		v.left = col + m.Right + 1 - v.width
	}

	return v.top != oldTop || v.left != oldLeft
}

// CenterOn puts line in the middle of the screen.
func (v *Viewport) CenterOn(line uint32) {
	v.center(line)
	v.clampTop()
}

func (v *Viewport) center(line uint32) {
	half := uint32(v.height / 2)
	v.top = line - min(line, half)
}

// ScrollTo makes line the top line.
func (v *Viewport) ScrollTo(line uint32) {
	v.top = line
	v.clampTop()
}

// ScrollBy moves the top line by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	if delta < 0 {
		d := uint32(-delta)
		v.top -= min(v.top, d)
		return
	}
	v.top += uint32(delta)
	v.clampTop()
}

// PageDown scrolls one screen down, keeping a line of overlap.
func (v *Viewport) PageDown() {
	v.ScrollBy(max(v.height-1, 1))
}

// PageUp scrolls one screen up, keeping a line of overlap.
func (v *Viewport) PageUp() {
	v.ScrollBy(-max(v.height-1, 1))
}

// clampTop keeps at least the last document line on screen.
func (v *Viewport) clampTop() {
	if v.top >= v.lineCount {
		v.top = v.lineCount - 1
	}
}

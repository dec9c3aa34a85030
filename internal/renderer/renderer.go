package renderer

import (
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/highlight"
	"github.com/zuedev/zedit/internal/renderer/core"
	"github.com/zuedev/zedit/internal/renderer/layout"
	"github.com/zuedev/zedit/internal/renderer/viewport"
)

// TextSource provides the document lines to draw.
type TextSource interface {
	LineAt(line uint32) (string, error)
	LineCount() uint32
}

// TokenSource provides cached highlight tokens. *highlight.Highlighter
// satisfies it.
type TokenSource interface {
	TokensForLine(line uint32) []grammar.Token
}

// Selection is a span of the document between two points. The points
// may be in either order.
type Selection struct {
	Anchor buffer.Point
	Head   buffer.Point
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// IsEmpty reports whether the selection covers nothing.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Ordered returns the selection's start and end in document order.
func (s Selection) Ordered() (start, end buffer.Point) {
	if s.Anchor.Compare(s.Head) <= 0 {
		return s.Anchor, s.Head
	}
	return s.Head, s.Anchor
}

// Contains reports whether the character at p is selected.
func (s Selection) Contains(p buffer.Point) bool {
	if s.IsEmpty() {
		return false
	}
	start, end := s.Ordered()
	return p.Compare(start) >= 0 && p.Compare(end) < 0
}

// coversLineEnd reports whether the line break after line is selected.
func (s Selection) coversLineEnd(line uint32, lineLen int) bool {
	return s.Contains(buffer.Point{Line: line, Column: uint32(lineLen)})
}

// Status is the content of the status line.
type Status struct {
	Mode     string
	Name     string
	Language string
	Modified bool
	ReadOnly bool
	// Line and Column are 1-based.
	Line   int
	Column int
}

// Options configures the renderer.
type Options struct {
	LineNumbers bool
	TabWidth    int
	StatusLine  bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		LineNumbers: true,
		TabWidth:    layout.DefaultTabWidth,
		StatusLine:  true,
	}
}

// Renderer composes the screen into a target grid and reports the cells
// that differ from what it drew last.
type Renderer struct {
	opts  Options
	theme *highlight.Theme
	tabs  *layout.TabExpander

	text   TextSource
	tokens TokenSource

	width, height int
	target, last  *Grid
	drawn         bool
	changes       []core.CellChange

	left       int
	status     Status
	message    string
	messageErr bool

	cursorPos     core.Pos
	cursorVisible bool
}

// New creates a renderer for a screen of the given size.
func New(width, height int, theme *highlight.Theme, opts Options) *Renderer {
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	r := &Renderer{
		opts:  opts,
		theme: theme,
		tabs:  layout.NewTabExpander(opts.TabWidth),
	}
	r.Resize(width, height)
	return r
}

// SetSource sets the document and the highlight cache to draw. tokens
// may be nil to draw unhighlighted text.
func (r *Renderer) SetSource(text TextSource, tokens TokenSource) {
	r.text = text
	r.tokens = tokens
}

// SetTheme replaces the theme. The next Render redraws the cells whose
// style changed.
func (r *Renderer) SetTheme(theme *highlight.Theme) {
	if theme != nil {
		r.theme = theme
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *highlight.Theme {
	return r.theme
}

// SetOptions replaces the options.
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts
	r.tabs.SetTabWidth(opts.TabWidth)
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Tabs returns the tab expander the renderer lays lines out with.
func (r *Renderer) Tabs() *layout.TabExpander {
	return r.tabs
}

// Resize changes the screen size. The next Render draws every cell.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = max(width, 0), max(height, 0)
	r.target = NewGrid(r.width, r.height)
	r.last = NewGrid(r.width, r.height)
	r.drawn = false
}

// Size returns the screen size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Invalidate forgets what was drawn so the next Render draws every cell.
func (r *Renderer) Invalidate() {
	r.drawn = false
}

// bottomRows returns the number of rows below the text area.
func (r *Renderer) bottomRows() int {
	switch {
	case r.height < 2:
		return 0
	case r.opts.StatusLine && r.height >= 3:
		return 2
	}
	return 1
}

// GutterWidth returns the width of the line number column including its
// trailing space.
func (r *Renderer) GutterWidth() int {
	if !r.opts.LineNumbers || r.text == nil {
		return 0
	}
	digits := len(strconv.FormatUint(uint64(max(r.text.LineCount(), 1)), 10))
	w := max(digits, 3) + 1
	if w >= r.width {
		return 0
	}
	return w
}

// TextArea returns the size of the region document text is drawn in.
func (r *Renderer) TextArea() (width, height int) {
	return max(r.width-r.GutterWidth(), 1), max(r.height-r.bottomRows(), 1)
}

// SetLeftColumn sets the first display column drawn.
func (r *Renderer) SetLeftColumn(col int) {
	r.left = max(col, 0)
}

// SetStatus sets the status line content.
func (r *Renderer) SetStatus(s Status) {
	r.status = s
}

// SetMessage sets the message line. isErr selects the error style.
func (r *Renderer) SetMessage(msg string, isErr bool) {
	r.message = msg
	r.messageErr = isErr
}

// Message returns the current message line.
func (r *Renderer) Message() string {
	return r.message
}

// Cursor returns where the last Render drew the cursor, and whether it
// was on screen.
func (r *Renderer) Cursor() (core.Pos, bool) {
	return r.cursorPos, r.cursorVisible
}

// Frame returns the grid drawn by the last Render.
func (r *Renderer) Frame() *Grid {
	return r.last
}

// Render draws lines with the cursor and selection and returns the cells
// that changed since the previous Render. Precedence per cell is cursor,
// then selection, then token style. The returned slice is reused by the
// next call.
func (r *Renderer) Render(lines viewport.LineRange, cursor buffer.Point, sel Selection) []core.CellChange {
	r.compose(lines, cursor, sel)

	var prev *Grid
	if r.drawn {
		prev = r.last
	}
	r.changes = r.target.Diff(prev, r.changes[:0])
	r.last, r.target = r.target, r.last
	r.drawn = true
	return r.changes
}

func (r *Renderer) compose(lines viewport.LineRange, cursor buffer.Point, sel Selection) {
	r.target.Fill(r.theme.Text)
	r.cursorVisible = false

	_, textHeight := r.TextArea()
	textHeight = min(textHeight, r.height)
	gutter := r.GutterWidth()

	var count uint32
	if r.text != nil {
		count = r.text.LineCount()
	}
	for row := 0; row < textHeight; row++ {
		line := lines.Start + uint32(row)
		if line >= lines.End || line >= count {
			r.target.Set(row, 0, core.NewCell('~', r.theme.Filler))
			continue
		}
		if gutter > 0 {
			r.drawGutter(row, line, gutter, line == cursor.Line)
		}
		r.drawLine(row, line, gutter, cursor, sel)
	}

	switch r.bottomRows() {
	case 2:
		r.drawStatus(r.height - 2)
		r.drawMessage(r.height - 1)
	case 1:
		r.drawMessage(r.height - 1)
	}
}

func (r *Renderer) drawGutter(row int, line uint32, width int, current bool) {
	style := r.theme.Gutter
	if current {
		style = r.theme.GutterCurrent
	}
	num := fmt.Sprintf("%*d ", width-1, line+1)
	r.drawString(row, 0, width, num, style)
}

// drawLine lays out one document line, clipping to the horizontal
// scroll window.
func (r *Renderer) drawLine(row int, line uint32, x0 int, cursor buffer.Point, sel Selection) {
	text, err := r.text.LineAt(line)
	if err != nil {
		return
	}
	var tokens []grammar.Token
	if r.tokens != nil {
		tokens = r.tokens.TokensForLine(line)
	}

	right := r.left + r.width - x0 // first display column past the screen
	col, ti := 0, 0
	for i, ch := range text {
		if col >= right {
			break
		}
		for ti < len(tokens) && int(tokens[ti].End) <= i {
			ti++
		}
		base := r.theme.Text
		if ti < len(tokens) && int(tokens[ti].Start) <= i {
			base = r.theme.StyleFor(tokens[ti].Kind)
		}
		p := buffer.Point{Line: line, Column: uint32(i)}
		if sel.Contains(p) {
			base = base.Merge(r.theme.Selection)
		}
		style := base
		if p == cursor {
			style = base.Merge(r.theme.Cursor)
			r.placeCursor(row, x0, col)
		}

		w := r.tabs.Width(ch, col)
		switch {
		case ch == '\t':
			// Only the first cell of a tab shows the cursor.
			r.put(row, x0, col, ' ', 1, style)
			for k := 1; k < w; k++ {
				r.put(row, x0, col+k, ' ', 1, base)
			}
		case layout.IsControl(ch):
			r.put(row, x0, col, '^', 1, style)
			r.put(row, x0, col+1, layout.Caret(ch), 1, style)
		case w == 0:
			// Combining marks are not drawn on their own.
		default:
			r.put(row, x0, col, ch, w, style)
		}
		col += w
	}

	// The cell after the last character holds the cursor at line end and
	// shows a selected line break.
	eol := buffer.Point{Line: line, Column: uint32(len(text))}
	switch {
	case cursor == eol:
		r.placeCursor(row, x0, col)
		style := r.theme.Text
		if sel.coversLineEnd(line, len(text)) {
			style = style.Merge(r.theme.Selection)
		}
		r.put(row, x0, col, ' ', 1, style.Merge(r.theme.Cursor))
	case sel.coversLineEnd(line, len(text)):
		r.put(row, x0, col, ' ', 1, r.theme.Text.Merge(r.theme.Selection))
	}
}

// put draws a glyph of width w at display column col of a line whose
// text starts at screen column x0. Glyphs cut by the scroll window are
// replaced by blanks.
func (r *Renderer) put(row, x0, col int, ch rune, w int, style core.Style) {
	right := r.left + r.width - x0
	if col+w <= r.left || col >= right {
		return
	}
	if col < r.left || col+w > right {
		for c := max(col, r.left); c < min(col+w, right); c++ {
			r.target.Set(row, x0+c-r.left, core.Cell{Rune: ' ', Width: 1, Style: style})
		}
		return
	}
	x := x0 + col - r.left
	r.target.Set(row, x, core.Cell{Rune: ch, Width: w, Style: style})
	for k := 1; k < w; k++ {
		r.target.Set(row, x+k, core.ContinuationCell(style))
	}
}

func (r *Renderer) placeCursor(row, x0, col int) {
	if col < r.left || col >= r.left+r.width-x0 {
		return
	}
	r.cursorPos = core.Pos{Row: row, Col: x0 + col - r.left}
	r.cursorVisible = true
}

// drawString writes s from column x, stopping before column limit.
func (r *Renderer) drawString(row, x, limit int, s string, style core.Style) int {
	for _, ch := range s {
		w := core.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		r.target.Set(row, x, core.Cell{Rune: ch, Width: w, Style: style})
		for k := 1; k < w; k++ {
			r.target.Set(row, x+k, core.ContinuationCell(style))
		}
		x += w
	}
	return x
}

func (r *Renderer) drawStatus(row int) {
	style := r.theme.StatusLine
	for x := 0; x < r.width; x++ {
		r.target.Set(row, x, core.Cell{Rune: ' ', Width: 1, Style: style})
	}

	s := r.status
	name := s.Name
	if name == "" {
		name = "[No Name]"
	}
	left := " " + name
	if s.Modified {
		left += " [+]"
	}
	if s.ReadOnly {
		left += " [RO]"
	}
	if s.Mode != "" {
		left = " " + s.Mode + " " + left
	}
	right := fmt.Sprintf("%s  %d:%d ", s.Language, s.Line, s.Column)

	rw := runewidth.StringWidth(right)
	if rw >= r.width {
		right, rw = "", 0
	}
	left = runewidth.Truncate(left, r.width-rw, "…")
	r.drawString(row, 0, r.width, left, style)
	r.drawString(row, r.width-rw, r.width, right, style)
}

func (r *Renderer) drawMessage(row int) {
	if r.message == "" {
		return
	}
	style := r.theme.MessageLine
	if r.messageErr {
		style = r.theme.ErrorLine
	}
	msg := runewidth.Truncate(r.message, r.width, "…")
	r.drawString(row, 0, r.width, msg, style)
}

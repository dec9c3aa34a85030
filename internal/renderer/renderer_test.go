package renderer

import (
	"strings"
	"testing"

	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/highlight"
	"github.com/zuedev/zedit/internal/renderer/core"
	"github.com/zuedev/zedit/internal/renderer/viewport"
)

var (
	red   = core.ColorFromRGB(255, 0, 0)
	blue  = core.ColorFromRGB(0, 0, 255)
	black = core.ColorFromRGB(0, 0, 0)
	white = core.ColorFromRGB(255, 255, 255)
)

func testTheme() *highlight.Theme {
	th := highlight.MonochromeTheme()
	th.Selection = core.DefaultStyle().WithBackground(blue)
	th.Cursor = core.NewStyle(black).WithBackground(white)
	th.Tokens = map[grammar.Kind]core.Style{
		grammar.Keyword: core.NewStyle(red),
	}
	return th
}

type doc struct {
	buf *buffer.Buffer
	hl  *highlight.Highlighter
}

func newDoc(text string) *doc {
	buf := buffer.NewBufferFromString(text)
	hl := highlight.New(buf, grammar.DefaultRegistry().ForTag("rust"))
	hl.Refresh()
	return &doc{buf: buf, hl: hl}
}

func (d *doc) insert(t *testing.T, offset int64, text string) {
	t.Helper()
	res, err := d.buf.Insert(offset, text)
	if err != nil {
		t.Fatal(err)
	}
	d.hl.OnEdit(res)
	d.hl.Refresh()
}

func newRenderer(d *doc, w, h int, opts Options) *Renderer {
	r := New(w, h, testTheme(), opts)
	r.SetSource(d.buf, d.hl)
	return r
}

func plainOptions() Options {
	return Options{TabWidth: 4}
}

func screen(lines int) viewport.LineRange {
	return viewport.LineRange{Start: 0, End: uint32(lines)}
}

func TestUnchangedRenderIsEmpty(t *testing.T) {
	d := newDoc("fn main() {}\nlet x = 1;")
	r := newRenderer(d, 20, 5, DefaultOptions())

	first := r.Render(screen(3), buffer.Point{}, NoSelection)
	if len(first) != 20*5 {
		t.Fatalf("first render drew %d cells, want every cell", len(first))
	}
	if again := r.Render(screen(3), buffer.Point{}, NoSelection); len(again) != 0 {
		t.Errorf("unchanged render drew %d cells: %v", len(again), again)
	}
}

func TestEditRedrawsOnlyItsRow(t *testing.T) {
	d := newDoc("fn main() {}\nlet x = 1;\n// end")
	r := newRenderer(d, 20, 6, Options{TabWidth: 4, LineNumbers: true})
	r.Render(screen(5), buffer.Point{}, NoSelection)

	start, _ := d.buf.LineStart(1)
	d.insert(t, start+4, "y")

	changes := r.Render(screen(5), buffer.Point{}, NoSelection)
	if len(changes) == 0 {
		t.Fatal("edit produced no changes")
	}
	for _, ch := range changes {
		if ch.Row != 1 {
			t.Errorf("change outside the edited row: %v", ch)
		}
	}
	if got := r.Frame().Row(1); !strings.HasPrefix(got, "   2 let yx = 1;") {
		t.Errorf("row 1 = %q", got)
	}
}

func TestCursorSelectionTokenPrecedence(t *testing.T) {
	d := newDoc("fn main() {}")
	r := newRenderer(d, 20, 2, plainOptions())

	sel := Selection{Anchor: buffer.Point{Column: 4}, Head: buffer.Point{Column: 0}}
	r.Render(screen(1), buffer.Point{Column: 1}, sel)
	f := r.Frame()

	tests := []struct {
		col    int
		ch     rune
		fg, bg core.Color
	}{
		{0, 'f', red, blue},                     // keyword under selection
		{1, 'n', black, white},                  // cursor wins over both
		{3, 'm', core.ColorDefault, blue},       // identifier under selection
		{5, 'i', core.ColorDefault, core.ColorDefault}, // outside the selection
	}
	for _, tt := range tests {
		c := f.Cell(0, tt.col)
		if c.Rune != tt.ch || c.Style.Foreground != tt.fg || c.Style.Background != tt.bg {
			t.Errorf("cell %d = %q fg=%v bg=%v, want %q fg=%v bg=%v",
				tt.col, c.Rune, c.Style.Foreground, c.Style.Background, tt.ch, tt.fg, tt.bg)
		}
	}
	if pos, ok := r.Cursor(); !ok || pos != (core.Pos{Row: 0, Col: 1}) {
		t.Errorf("cursor = %v %v", pos, ok)
	}
}

func TestSelectedLineBreak(t *testing.T) {
	d := newDoc("ab\ncd")
	r := newRenderer(d, 10, 3, plainOptions())
	sel := Selection{Anchor: buffer.Point{Line: 0, Column: 1}, Head: buffer.Point{Line: 1, Column: 1}}
	r.Render(screen(2), buffer.Point{Line: 1, Column: 1}, sel)

	f := r.Frame()
	if f.Cell(0, 2).Style.Background != blue {
		t.Error("line break inside the selection should be highlighted")
	}
	if f.Cell(0, 3).Style.Background == blue {
		t.Error("only one cell marks the line break")
	}
	if f.Cell(1, 0).Style.Background != blue || f.Cell(1, 1).Style.Background != white {
		t.Errorf("second line = %+v %+v", f.Cell(1, 0).Style, f.Cell(1, 1).Style)
	}
}

func TestCursorAtLineEnd(t *testing.T) {
	d := newDoc("abc")
	r := newRenderer(d, 10, 2, plainOptions())
	r.Render(screen(1), buffer.Point{Column: 3}, NoSelection)

	if pos, ok := r.Cursor(); !ok || pos.Col != 3 {
		t.Errorf("cursor = %v %v", pos, ok)
	}
	if c := r.Frame().Cell(0, 3); c.Rune != ' ' || c.Style.Background != white {
		t.Errorf("end-of-line cursor cell = %+v", c)
	}
}

func TestGutterAndFiller(t *testing.T) {
	d := newDoc("a\nb")
	r := newRenderer(d, 12, 5, Options{TabWidth: 4, LineNumbers: true})
	r.Render(screen(4), buffer.Point{Line: 1}, NoSelection)
	f := r.Frame()

	if r.GutterWidth() != 4 {
		t.Errorf("GutterWidth = %d", r.GutterWidth())
	}
	want := []string{"  1 a", "  2 b", "~", "~"}
	for row, prefix := range want {
		if got := f.Row(row); !strings.HasPrefix(got, prefix) || strings.TrimRight(got, " ") != prefix {
			t.Errorf("row %d = %q, want %q", row, got, prefix)
		}
	}
	th := r.Theme()
	if f.Cell(1, 3).Style != th.GutterCurrent || f.Cell(0, 3).Style != th.Gutter {
		t.Error("current line number should use the current gutter style")
	}
	if f.Cell(2, 0).Style != th.Filler {
		t.Error("filler style")
	}
}

func TestTabsWideAndControl(t *testing.T) {
	d := newDoc("\ta日b\x01")
	r := newRenderer(d, 12, 2, plainOptions())
	r.Render(screen(1), buffer.Point{Line: 5}, NoSelection)
	f := r.Frame()

	if got := strings.TrimRight(f.Row(0), " "); got != "    a日b^A" {
		t.Errorf("row = %q", got)
	}
	if c := f.Cell(0, 5); c.Rune != '日' || c.Width != 2 {
		t.Errorf("wide cell = %+v", c)
	}
	if !f.Cell(0, 6).IsContinuation() {
		t.Error("column after a wide rune should be a continuation")
	}
}

func TestHorizontalScroll(t *testing.T) {
	d := newDoc("abcdef\n日本語")
	r := newRenderer(d, 4, 3, plainOptions())

	r.SetLeftColumn(2)
	r.Render(screen(2), buffer.Point{Line: 0, Column: 1}, NoSelection)
	f := r.Frame()
	if got := f.Row(0); got != "cdef" {
		t.Errorf("row 0 = %q", got)
	}
	if _, ok := r.Cursor(); ok {
		t.Error("cursor left of the window should not be visible")
	}

	r.SetLeftColumn(1)
	r.Render(screen(2), buffer.Point{Line: 0, Column: 1}, NoSelection)
	f = r.Frame()
	// 日 straddles the left edge and 語 the right one.
	if got := f.Row(1); got != " 本 " {
		t.Errorf("row 1 = %q", got)
	}
	if pos, ok := r.Cursor(); !ok || pos.Col != 0 {
		t.Errorf("cursor = %v %v", pos, ok)
	}
}

func TestStatusAndMessage(t *testing.T) {
	d := newDoc("x")
	r := newRenderer(d, 40, 4, Options{TabWidth: 4, StatusLine: true})
	r.SetStatus(Status{Mode: "INSERT", Name: "main.rs", Language: "rust", Modified: true, Line: 3, Column: 4})
	r.SetMessage("written", false)
	r.Render(screen(2), buffer.Point{}, NoSelection)
	f := r.Frame()

	status := f.Row(2)
	for _, want := range []string{"INSERT", "main.rs [+]", "rust  3:4 "} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
	if !strings.HasSuffix(status, "rust  3:4 ") {
		t.Errorf("status should end with the position: %q", status)
	}
	if f.Cell(2, 0).Style != r.Theme().StatusLine {
		t.Error("status style")
	}
	if got := strings.TrimRight(f.Row(3), " "); got != "written" {
		t.Errorf("message = %q", got)
	}

	r.SetMessage("E: failed", true)
	changes := r.Render(screen(2), buffer.Point{}, NoSelection)
	for _, ch := range changes {
		if ch.Row != 3 {
			t.Errorf("message change drew row %d", ch.Row)
		}
	}
	if r.Frame().Cell(3, 0).Style != r.Theme().ErrorLine {
		t.Error("error message style")
	}
}

func TestResizeAndInvalidateRedrawAll(t *testing.T) {
	d := newDoc("abc")
	r := newRenderer(d, 10, 3, plainOptions())
	r.Render(screen(2), buffer.Point{}, NoSelection)

	r.Invalidate()
	if n := len(r.Render(screen(2), buffer.Point{}, NoSelection)); n != 30 {
		t.Errorf("after Invalidate drew %d cells", n)
	}

	r.Resize(12, 4)
	if n := len(r.Render(screen(3), buffer.Point{}, NoSelection)); n != 48 {
		t.Errorf("after Resize drew %d cells", n)
	}
	if w, h := r.TextArea(); w != 12 || h != 3 {
		t.Errorf("TextArea = %dx%d", w, h)
	}
}

func TestThemeChangeRedrawsStyledCells(t *testing.T) {
	d := newDoc("fn x")
	r := newRenderer(d, 10, 2, plainOptions())
	r.Render(screen(1), buffer.Point{Column: 3}, NoSelection)

	th := testTheme()
	th.Tokens[grammar.Keyword] = core.NewStyle(blue)
	r.SetTheme(th)
	changes := r.Render(screen(1), buffer.Point{Column: 3}, NoSelection)
	if len(changes) != 2 {
		t.Errorf("theme change redrew %d cells, want the 2 keyword cells", len(changes))
	}
}

func TestGridDiff(t *testing.T) {
	a := NewGrid(3, 2)
	b := NewGrid(3, 2)
	if n := len(b.Diff(a, nil)); n != 0 {
		t.Errorf("equal grids differ in %d cells", n)
	}
	b.Set(1, 2, core.NewCell('z', core.DefaultStyle()))
	b.Set(5, 5, core.NewCell('z', core.DefaultStyle()))
	diff := b.Diff(a, nil)
	if len(diff) != 1 || diff[0].Pos != (core.Pos{Row: 1, Col: 2}) {
		t.Errorf("diff = %v", diff)
	}
	if n := len(b.Diff(NewGrid(2, 2), nil)); n != 6 {
		t.Errorf("size mismatch diff = %d cells", n)
	}
}

func BenchmarkRender80x24(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("fn compute(x: u32) -> u32 { let y = x * 2; /* twice */ y + 1 }\n")
	}
	d := newDoc(sb.String())
	r := New(80, 24, highlight.DefaultTheme(), DefaultOptions())
	r.SetSource(d.buf, d.hl)
	lines := viewport.LineRange{Start: 0, End: 22}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Alternate cursor rows so every pass has a small diff.
		r.Render(lines, buffer.Point{Line: uint32(i % 2)}, NoSelection)
	}
}

package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/zuedev/zedit/internal/renderer/core"
)

func TestNullApply(t *testing.T) {
	b := NewNull(10, 3)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	red := core.NewStyle(core.ColorFromRGB(255, 0, 0))
	b.Apply([]core.CellChange{
		{Pos: core.Pos{Row: 1, Col: 0}, Cell: core.NewCell('h', red)},
		{Pos: core.Pos{Row: 1, Col: 1}, Cell: core.NewCell('日', red)},
		{Pos: core.Pos{Row: 1, Col: 2}, Cell: core.ContinuationCell(red)},
		{Pos: core.Pos{Row: 5, Col: 0}, Cell: core.NewCell('x', red)},
		{Pos: core.Pos{Row: 0, Col: -1}, Cell: core.NewCell('x', red)},
	})

	if got := b.Row(1); got != "h日       " {
		t.Errorf("Row(1) = %q", got)
	}
	if b.Cell(1, 0).Style != red {
		t.Errorf("style = %+v", b.Cell(1, 0).Style)
	}
	if b.Applied() != 3 {
		t.Errorf("Applied = %d, want 3 (out of range changes dropped)", b.Applied())
	}
	if b.Cell(-1, 0) != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullCursor(t *testing.T) {
	b := NewNull(10, 3)
	b.ShowCursor(core.Pos{Row: 2, Col: 4})
	pos, visible := b.Cursor()
	if !visible || pos != (core.Pos{Row: 2, Col: 4}) {
		t.Errorf("cursor = %v %v", pos, visible)
	}
	b.HideCursor()
	if _, visible := b.Cursor(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullEvents(t *testing.T) {
	b := NewNull(10, 3)
	b.PostEvent(RuneEvent('q'))
	b.PostEvent(KeyEvent(KeyCtrlS, ModCtrl))
	b.Resize(20, 5)

	if ev := b.PollEvent(); ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("first event = %+v", ev)
	}
	if ev := b.PollEvent(); ev.Key != KeyCtrlS || !ev.Mod.Has(ModCtrl) {
		t.Errorf("second event = %+v", ev)
	}
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 20 || ev.Height != 5 {
		t.Errorf("resize event = %+v", ev)
	}
	if w, h := b.Size(); w != 20 || h != 5 {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl
	if !mod.Has(ModShift) || !mod.Has(ModCtrl) {
		t.Error("should have shift and ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("should not have alt")
	}
}

func TestConvertStyle(t *testing.T) {
	s := core.NewStyle(core.ColorFromRGB(1, 2, 3)).
		WithBackground(core.ColorFromIndex(4)).
		With(core.AttrBold | core.AttrReverse)

	fg, bg, attrs := convertStyle(s).Decompose()
	if fg != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("fg = %v", fg)
	}
	if bg != tcell.PaletteColor(4) {
		t.Errorf("bg = %v", bg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrReverse == 0 || attrs&tcell.AttrItalic != 0 {
		t.Errorf("attrs = %v", attrs)
	}

	fg, _, _ = convertStyle(core.DefaultStyle()).Decompose()
	if fg != tcell.ColorDefault {
		t.Errorf("default fg = %v", fg)
	}
}

func TestConvertKeys(t *testing.T) {
	tests := []struct {
		tk   tcell.Key
		want Key
	}{
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyCtrlS, KeyCtrlS},
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyF5, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.tk); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.tk, got, tt.want)
		}
	}
	for _, k := range []Key{KeyEnter, KeyCtrlQ, KeyLeft, KeyBackspace} {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip %v = %v", k, got)
		}
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Fini()
	screen.SetSize(8, 2)

	term.Apply([]core.CellChange{
		{Pos: core.Pos{Row: 0, Col: 0}, Cell: core.NewCell('o', core.DefaultStyle())},
		{Pos: core.Pos{Row: 0, Col: 1}, Cell: core.NewCell('k', core.DefaultStyle())},
	})
	term.Show()

	r, _, _, _ := screen.GetContent(1, 0) //nolint:staticcheck // GetContent is the correct API
	if r != 'k' {
		t.Errorf("cell (0,1) = %q", r)
	}
	if w, h := term.Size(); w != 8 || h != 2 {
		t.Errorf("Size = %dx%d", w, h)
	}

	term.PostEvent(Event{Type: EventInterrupt, Data: "reload"})
	// Init and SetSize queue resize events ahead of the interrupt.
	for i := 0; i < 5; i++ {
		ev := term.PollEvent()
		if ev.Type == EventInterrupt {
			if ev.Data != "reload" {
				t.Errorf("data = %v", ev.Data)
			}
			return
		}
	}
	t.Error("interrupt event not delivered")
}

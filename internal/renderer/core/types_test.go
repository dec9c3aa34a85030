package core

import (
	"testing"
)

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false},
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ColorFromHex(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ColorFromHex(%q) expected error, got nil", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("ColorFromHex(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.hex, c.R, c.G, c.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, "default"},
		{ColorFromIndex(42), "idx(42)"},
		{ColorFromRGB(255, 0, 16), "#FF0010"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend(0) = %v", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend(1) = %v", got)
	}
	mid := black.Blend(white, 0.5)
	if mid.R == 0 || mid.R == 255 || mid.B == 0 || mid.B == 255 {
		t.Errorf("Blend(0.5) = %v, want a gray", mid)
	}

	if got := ColorDefault.Blend(white, 0.3); got != ColorDefault {
		t.Errorf("default blend below half = %v", got)
	}
	if got := ColorDefault.Blend(white, 0.7); got != white {
		t.Errorf("default blend above half = %v", got)
	}
}

func TestStyleMerge(t *testing.T) {
	red := ColorFromRGB(255, 0, 0)
	blue := ColorFromRGB(0, 0, 255)
	base := NewStyle(red).With(AttrBold)
	over := DefaultStyle().WithBackground(blue).With(AttrItalic)

	got := base.Merge(over)
	if got.Foreground != red {
		t.Errorf("default foreground should not override: %v", got.Foreground)
	}
	if got.Background != blue {
		t.Errorf("background = %v", got.Background)
	}
	if !got.Attributes.Has(AttrBold | AttrItalic) {
		t.Errorf("attributes = %b", got.Attributes)
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{0x7F, 0},
		{'日', 2},
		{'한', 2},
		{'é', 1},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
	if got := StringWidth("a日b"); got != 4 {
		t.Errorf("StringWidth = %d, want 4", got)
	}
}

func TestCells(t *testing.T) {
	c := NewCell('日', DefaultStyle())
	if c.Width != 2 || c.IsContinuation() {
		t.Errorf("wide cell = %+v", c)
	}
	if !ContinuationCell(DefaultStyle()).IsContinuation() {
		t.Error("continuation cell not recognized")
	}
	if EmptyCell().IsContinuation() {
		t.Error("empty cell is not a continuation")
	}
}

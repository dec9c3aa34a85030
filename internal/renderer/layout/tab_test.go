package layout

import (
	"testing"
)

func TestNewTabExpander(t *testing.T) {
	te := NewTabExpander(8)
	if te.TabWidth() != 8 {
		t.Errorf("expected tab width 8, got %d", te.TabWidth())
	}

	// Invalid width uses the default
	te = NewTabExpander(0)
	if te.TabWidth() != DefaultTabWidth {
		t.Errorf("expected default tab width, got %d", te.TabWidth())
	}

	te.SetTabWidth(-3)
	if te.TabWidth() != 1 {
		t.Errorf("expected minimum tab width 1, got %d", te.TabWidth())
	}
}

func TestNextTabStop(t *testing.T) {
	te := NewTabExpander(4)

	tests := []struct {
		col      int
		expected int
	}{
		{0, 4},
		{1, 4},
		{3, 4},
		{4, 8},
		{7, 8},
		{8, 12},
	}

	for _, tt := range tests {
		got := te.NextTabStop(tt.col)
		if got != tt.expected {
			t.Errorf("NextTabStop(%d): expected %d, got %d", tt.col, tt.expected, got)
		}
	}
}

func TestWidth(t *testing.T) {
	te := NewTabExpander(4)
	tests := []struct {
		r    rune
		col  int
		want int
	}{
		{'a', 0, 1},
		{'\t', 0, 4},
		{'\t', 3, 1},
		{'日', 0, 2},
		{0x01, 0, 2},
		{0x7F, 5, 2},
	}
	for _, tt := range tests {
		if got := te.Width(tt.r, tt.col); got != tt.want {
			t.Errorf("Width(%q, %d) = %d, want %d", tt.r, tt.col, got, tt.want)
		}
	}
	if Caret(0x01) != 'A' || Caret(0x7F) != '?' {
		t.Error("caret notation")
	}
}

func TestOffsetColumnConversion(t *testing.T) {
	te := NewTabExpander(4)
	s := "a\tb日c"
	// a:0 tab:1-3 b:4 日:5-6 c:7

	offsets := []struct {
		offset int
		col    int
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
		{6, 7},
		{7, 8},
		{100, 8},
	}
	for _, tt := range offsets {
		if got := te.OffsetToColumn(s, tt.offset); got != tt.col {
			t.Errorf("OffsetToColumn(%d) = %d, want %d", tt.offset, got, tt.col)
		}
	}

	columns := []struct {
		col    int
		offset int
	}{
		{0, 0},
		{2, 1}, // inside the tab
		{4, 2},
		{6, 3}, // right half of 日
		{7, 6},
		{20, 7},
	}
	for _, tt := range columns {
		if got := te.ColumnToOffset(s, tt.col); got != tt.offset {
			t.Errorf("ColumnToOffset(%d) = %d, want %d", tt.col, got, tt.offset)
		}
	}

	if got := te.ExpandedWidth(s); got != 8 {
		t.Errorf("ExpandedWidth = %d, want 8", got)
	}
}

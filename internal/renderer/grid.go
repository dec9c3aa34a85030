package renderer

import (
	"strings"

	"github.com/zuedev/zedit/internal/renderer/core"
)

// Grid is a screen-sized matrix of cells.
type Grid struct {
	width, height int
	cells         []core.Cell
}

// NewGrid creates a grid filled with empty cells.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: max(width, 0), height: max(height, 0)}
	g.cells = make([]core.Cell, g.width*g.height)
	g.Fill(core.DefaultStyle())
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Cell returns the cell at a position, or an empty cell outside the grid.
func (g *Grid) Cell(row, col int) core.Cell {
	if !g.inside(row, col) {
		return core.EmptyCell()
	}
	return g.cells[row*g.width+col]
}

// Set replaces the cell at a position. Positions outside the grid are
// ignored.
func (g *Grid) Set(row, col int, cell core.Cell) {
	if g.inside(row, col) {
		g.cells[row*g.width+col] = cell
	}
}

// Fill blanks every cell with style.
func (g *Grid) Fill(style core.Style) {
	blank := core.Cell{Rune: ' ', Width: 1, Style: style}
	for i := range g.cells {
		g.cells[i] = blank
	}
}

// Row returns the text of a row with continuation cells skipped.
func (g *Grid) Row(row int) string {
	if row < 0 || row >= g.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range g.cells[row*g.width : (row+1)*g.width] {
		if !c.IsContinuation() {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

func (g *Grid) inside(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Diff appends to out every cell of g that differs from prev. A nil prev,
// or one of another size, yields every cell.
func (g *Grid) Diff(prev *Grid, out []core.CellChange) []core.CellChange {
	full := prev == nil || prev.width != g.width || prev.height != g.height
	for i, c := range g.cells {
		if !full && prev.cells[i] == c {
			continue
		}
		out = append(out, core.CellChange{
			Pos:  core.Pos{Row: i / g.width, Col: i % g.width},
			Cell: c,
		})
	}
	return out
}

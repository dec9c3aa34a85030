// Package core provides the cell, color and style types shared by the
// renderer, its backends and the highlighter's theme.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Attribute is a set of text attribute flags.
type Attribute uint16

// Text attribute flags.
const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim            // Faint text
	AttrItalic
	AttrUnderline
	AttrReverse // Swap foreground and background
	AttrStrikethrough
)

// Has reports whether a contains every flag in attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr
}

// Color is a terminal color: the terminal default, a palette index or a
// 24-bit RGB value.
type Color struct {
	R, G, B uint8
	// Indexed colors keep their palette index in R.
	Indexed bool
	Default bool
}

// ColorDefault is the terminal's own foreground or background.
var ColorDefault = Color{Default: true}

// ColorFromRGB returns a true color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex returns a palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#rgb" or "#rrggbb"; the leading '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns "default", "idx(n)" or "#RRGGBB".
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes c toward other by amount in [0, 1], interpolating in Lab
// space. Default and indexed colors cannot be mixed and switch over at
// the halfway point.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || c.Indexed || other.Default || other.Indexed {
		if amount < 0.5 {
			return c
		}
		return other
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, amount).Clamped().RGB255()
	return ColorFromRGB(r, g, bl)
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal's default colors and no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle returns a style with the given foreground.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg, Background: ColorDefault}
}

// WithForeground returns s with a different foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns s with a different background.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// With returns s with attrs added.
func (s Style) With(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

// Merge overlays other on s: non-default colors of other win and
// attributes accumulate.
func (s Style) Merge(other Style) Style {
	if !other.Foreground.IsDefault() {
		s.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		s.Background = other.Background
	}
	s.Attributes |= other.Attributes
	return s
}

// Cell is one terminal grid position.
type Cell struct {
	Rune  rune
	Width int // Display columns; 0 for the right half of a wide rune
	Style Style
}

// EmptyCell is a blank in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewCell returns a cell showing r in style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// ContinuationCell fills the column covered by the right half of a wide
// rune. It carries the wide rune's style so diffs stay consistent.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// IsContinuation reports whether c is the right half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// RuneWidth returns the number of columns r occupies. Control characters
// occupy none.
func RuneWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Pos is a screen position, zero-based.
type Pos struct {
	Row int
	Col int
}

// CellChange is one entry of a render diff: the cell that must be drawn
// at a position.
type CellChange struct {
	Pos
	Cell Cell
}

// String renders the change for debugging.
func (c CellChange) String() string {
	return fmt.Sprintf("(%d,%d)=%q", c.Row, c.Col, c.Cell.Rune)
}

package viewport

// Margins is the context kept between the cursor and the viewport edges.
// Zero margins scroll only when the cursor would leave the screen.
type Margins struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// maxMarginRatio limits margins to a third of the viewport so the cursor
// always has room in the middle.
const maxMarginRatio = 3

// SetMargins replaces the scroll margins. Negative values count as zero.
func (v *Viewport) SetMargins(m Margins) {
	v.margins = Margins{
		Top:    max(m.Top, 0),
		Bottom: max(m.Bottom, 0),
		Left:   max(m.Left, 0),
		Right:  max(m.Right, 0),
	}
}

// Margins returns the configured margins.
func (v *Viewport) Margins() Margins {
	return v.margins
}

// effectiveMargins returns the margins clamped to the viewport size.
func (v *Viewport) effectiveMargins() Margins {
	m := v.margins
	maxV := (v.height - 1) / maxMarginRatio
	maxH := (v.width - 1) / maxMarginRatio
	m.Top = min(m.Top, maxV)
	m.Bottom = min(m.Bottom, maxV)
	m.Left = min(m.Left, maxH)
	m.Right = min(m.Right, maxH)
	return m
}

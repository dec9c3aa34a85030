// Package renderer draws the visible part of a document into a cell grid
// and reports which cells changed since the previous frame.
//
// Each Render composes a target grid from the document text, the cached
// highlight tokens, the selection and the cursor, then diffs it against
// the grid drawn last time. Only the differing cells are returned, so a
// frame with no edits and no cursor movement produces an empty diff.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│   Renderer: compose target, diff last   │
//	├─────────────────────────────────────────┤
//	│  viewport (scrolling) │ layout (columns)│
//	├─────────────────────────────────────────┤
//	│  backend: tcell terminal │ in-memory    │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	r := renderer.New(80, 24, highlight.DefaultTheme(), renderer.DefaultOptions())
//	r.SetSource(buf, hl)
//	changes := r.Render(vp.Visible(), cursor, renderer.NoSelection)
//	term.Apply(changes)
//	term.Show()
package renderer
